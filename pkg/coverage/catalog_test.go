package coverage

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_WriteLoadRoundtrip(t *testing.T) {
	orig := DefaultCatalog()

	var buf bytes.Buffer
	require.NoError(t, orig.Write(&buf))

	loaded, err := LoadCatalog(&buf)
	require.NoError(t, err)

	assert.Equal(t, orig.Original, loaded.Original)
	assert.Equal(t, orig.Consolidated, loaded.Consolidated)
	assert.Equal(t, orig.Scenarios, loaded.Scenarios)
}

func TestLoadCatalog_MappingOnly(t *testing.T) {
	src := `
original:
  a.spec: [one, two]
consolidated:
  x.spec: [one]
`
	c, err := LoadCatalog(strings.NewReader(src))
	require.NoError(t, err)

	result := c.Mapper().ValidateCoverage()
	assert.Equal(t, []string{"two"}, result.Missing)
}

func TestLoadCatalog_RejectsInvalidScenario(t *testing.T) {
	src := `
original:
  a.spec: [one]
consolidated:
  x.spec: [one]
scenarios:
  - id: broken
    category: nonsense
    description: bad category value
    priority: P0
    expectedDuration: 5s
    actions: [do something]
    assertions: [something happened]
`
	_, err := LoadCatalog(strings.NewReader(src))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestLoadCatalog_RejectsMissingAssertions(t *testing.T) {
	src := `
scenarios:
  - id: no-assertions
    category: filtering
    description: missing assertions list
    priority: P1
    expectedDuration: 5s
    actions: [do something]
`
	_, err := LoadCatalog(strings.NewReader(src))
	require.Error(t, err)
}

func TestLoadCatalog_BadYAML(t *testing.T) {
	_, err := LoadCatalog(strings.NewReader("original: [not: a: mapping"))
	require.Error(t, err)
}

func TestDefaultCatalog_ScenarioRecordsAreValid(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, DefaultCatalog().Write(&buf))

	// Loading runs struct validation over every declarative scenario.
	loaded, err := LoadCatalog(&buf)
	require.NoError(t, err)
	require.NotEmpty(t, loaded.Scenarios)

	for _, s := range loaded.Scenarios {
		assert.NotEmpty(t, s.ID)
		assert.Greater(t, s.ExpectedDuration, Duration(0))
	}
}

func TestDefaultCatalog_ScenarioIDsExistInMappings(t *testing.T) {
	c := DefaultCatalog()

	inOriginal := make(map[string]bool)
	for _, names := range c.Original {
		for _, n := range names {
			inOriginal[n] = true
		}
	}
	for _, s := range c.Scenarios {
		assert.True(t, inOriginal[s.ID], "scenario record %q has no mapping entry", s.ID)
	}
}
