package coverage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCoverage_FullySuperset(t *testing.T) {
	m := &Mapper{
		Original: map[string][]string{
			"a.spec": {"one", "two"},
			"b.spec": {"three"},
		},
		Consolidated: map[string][]string{
			// Superset: everything plus an extra scenario.
			"all.spec": {"one", "two", "three", "four"},
		},
	}

	result := m.ValidateCoverage()
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 3, result.Covered)
	assert.Equal(t, 100.0, result.Coverage)
	assert.Empty(t, result.Missing)
}

func TestValidateCoverage_MissingIsExactDifference(t *testing.T) {
	m := &Mapper{
		Original: map[string][]string{
			"a.spec": {"one", "two", "three"},
			"b.spec": {"four", "five"},
		},
		Consolidated: map[string][]string{
			"x.spec": {"one", "four"},
			"y.spec": {"three"},
		},
	}

	result := m.ValidateCoverage()
	assert.Equal(t, 5, result.Total)
	assert.Equal(t, 3, result.Covered)
	assert.InDelta(t, 60.0, result.Coverage, 0.001)
	assert.Equal(t, []string{"five", "two"}, result.Missing)
}

func TestValidateCoverage_DuplicateNamesCountOnce(t *testing.T) {
	m := &Mapper{
		Original: map[string][]string{
			"a.spec": {"shared", "only-a"},
			"b.spec": {"shared"},
		},
		Consolidated: map[string][]string{
			"x.spec": {"shared"},
		},
	}

	result := m.ValidateCoverage()
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, []string{"only-a"}, result.Missing)
}

func TestValidateCoverage_EmptyOriginal(t *testing.T) {
	m := &Mapper{
		Original:     map[string][]string{},
		Consolidated: map[string][]string{"x.spec": {"anything"}},
	}

	result := m.ValidateCoverage()
	assert.Equal(t, 0, result.Total)
	assert.Equal(t, 100.0, result.Coverage)
	assert.Empty(t, result.Missing)
}

func TestGenerateDetailedReport_TracksAbsorption(t *testing.T) {
	m := &Mapper{
		Original: map[string][]string{
			"a.spec": {"one", "two"},
		},
		Consolidated: map[string][]string{
			"x.spec": {"one"},
			"y.spec": {"one"},
		},
	}

	reports := m.GenerateDetailedReport()
	require.Len(t, reports, 1)
	require.Len(t, reports[0].Scenarios, 2)

	assert.Equal(t, "a.spec", reports[0].OriginalFile)
	// "one" landed in two consolidated files, "two" was dropped.
	assert.Equal(t, "one", reports[0].Scenarios[0].Name)
	assert.Equal(t, []string{"x.spec", "y.spec"}, reports[0].Scenarios[0].AbsorbedBy)
	assert.Equal(t, "two", reports[0].Scenarios[1].Name)
	assert.Empty(t, reports[0].Scenarios[1].AbsorbedBy)
}

func TestGenerateDetailedReport_StableOrdering(t *testing.T) {
	m := &Mapper{
		Original: map[string][]string{
			"zeta.spec":  {"z2", "z1"},
			"alpha.spec": {"a1"},
		},
		Consolidated: map[string][]string{},
	}

	reports := m.GenerateDetailedReport()
	require.Len(t, reports, 2)
	assert.Equal(t, "alpha.spec", reports[0].OriginalFile)
	assert.Equal(t, "zeta.spec", reports[1].OriginalFile)
	// Scenarios within a file are sorted too.
	assert.Equal(t, "z1", reports[1].Scenarios[0].Name)
}

func TestValidateDistribution_OverloadedFile(t *testing.T) {
	m := &Mapper{
		Consolidated: map[string][]string{
			"big.spec":   {"s1", "s2", "s3", "s4", "s5"},
			"small.spec": {"s6", "s7", "s8", "s9", "s10"},
		},
	}
	// 50/50: balanced.
	assert.True(t, m.ValidateDistribution().IsBalanced)

	m.Consolidated["big.spec"] = append(m.Consolidated["big.spec"], "s11", "s12", "s13")
	// big.spec now holds 8 of 13 (61.5%).
	result := m.ValidateDistribution()
	assert.False(t, result.IsBalanced)
	require.NotEmpty(t, result.Recommendations)
	assert.Contains(t, result.Recommendations[0], "big.spec")
	assert.Contains(t, result.Recommendations[0], "split")
}

func TestValidateDistribution_FortyPercentBoundaryIsBalanced(t *testing.T) {
	m := &Mapper{
		Consolidated: map[string][]string{
			"a.spec": {"s1", "s2", "s3", "s4"}, // exactly 40%
			"b.spec": {"s5", "s6", "s7"},
			"c.spec": {"s8", "s9", "s10"},
		},
	}

	result := m.ValidateDistribution()
	assert.True(t, result.IsBalanced)
	assert.Empty(t, result.Recommendations)
}

func TestValidateDistribution_UnderloadedFileRecommendsOnly(t *testing.T) {
	m := &Mapper{
		Consolidated: map[string][]string{
			"a.spec": {"s1", "s2", "s3", "s4"},
			"b.spec": {"s5", "s6", "s7", "s8"},
			"c.spec": {"s9", "s10", "s11"},
			"d.spec": {"s12"}, // 1 of 12 = 8.3%
		},
	}

	result := m.ValidateDistribution()
	// Underloaded files do not unbalance the suite.
	assert.True(t, result.IsBalanced)
	require.Len(t, result.Recommendations, 1)
	assert.Contains(t, result.Recommendations[0], "d.spec")
	assert.Contains(t, result.Recommendations[0], "merging")
}

func TestValidateDistribution_PerFileShares(t *testing.T) {
	m := &Mapper{
		Consolidated: map[string][]string{
			"a.spec": {"s1", "s2"},
			"b.spec": {"s3", "s4", "s5", "s6"},
		},
	}

	result := m.ValidateDistribution()
	assert.Equal(t, 6, result.Total)
	require.Len(t, result.PerFile, 2)
	assert.Equal(t, "a.spec", result.PerFile[0].File)
	assert.Equal(t, 2, result.PerFile[0].Count)
	assert.InDelta(t, 33.33, result.PerFile[0].Percent, 0.01)
	assert.Equal(t, "b.spec", result.PerFile[1].File)
	assert.InDelta(t, 66.67, result.PerFile[1].Percent, 0.01)
}

func TestValidateDistribution_Empty(t *testing.T) {
	m := &Mapper{Consolidated: map[string][]string{}}
	result := m.ValidateDistribution()
	assert.True(t, result.IsBalanced)
	assert.Zero(t, result.Total)
}

func TestDefaultCatalog_ConsolidationIsComplete(t *testing.T) {
	m := NewMapper()

	result := m.ValidateCoverage()
	assert.Equal(t, 100.0, result.Coverage, "missing: %v", result.Missing)
	assert.Empty(t, result.Missing)

	dist := m.ValidateDistribution()
	assert.True(t, dist.IsBalanced, "recommendations: %v", dist.Recommendations)
}
