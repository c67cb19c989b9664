package coverage

import (
	"fmt"
	"io"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so catalogs read and write "8s" instead of
// raw nanosecond integers.
type Duration time.Duration

// MarshalYAML emits the duration in time.Duration string form.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalYAML accepts time.ParseDuration syntax.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Scenario is the declarative description of one documented test case. It is
// consumed by coverage reporting only; the executable form lives in e2e/.
type Scenario struct {
	ID               string   `yaml:"id" validate:"required"`
	Category         string   `yaml:"category" validate:"required,oneof=filtering navigation layout resilience settings"`
	Description      string   `yaml:"description" validate:"required"`
	Priority         string   `yaml:"priority" validate:"required,oneof=P0 P1 P2"`
	ExpectedDuration Duration `yaml:"expectedDuration" validate:"gt=0"`
	Setup            []string `yaml:"setup,omitempty"`
	Actions          []string `yaml:"actions" validate:"min=1"`
	Assertions       []string `yaml:"assertions" validate:"min=1"`
}

// Catalog is the serializable form of the scenario bookkeeping: the two
// file-to-scenario mappings plus optional declarative scenario records.
type Catalog struct {
	Original     map[string][]string `yaml:"original"`
	Consolidated map[string][]string `yaml:"consolidated"`
	Scenarios    []Scenario          `yaml:"scenarios,omitempty"`
}

// Mapper returns a Mapper over the catalog's two mappings.
func (c *Catalog) Mapper() *Mapper {
	return &Mapper{Original: c.Original, Consolidated: c.Consolidated}
}

// Write serializes the catalog as YAML.
func (c *Catalog) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	return enc.Close()
}

// LoadCatalog parses a YAML catalog and validates every declarative scenario
// record. Mapping-only catalogs (no scenarios) are valid.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var c Catalog
	if err := yaml.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	v := validator.New()
	for i, s := range c.Scenarios {
		if err := v.Struct(s); err != nil {
			return nil, fmt.Errorf("scenario %d (%s): %w", i, s.ID, err)
		}
	}
	return &c, nil
}

// DefaultCatalog is the hard-coded record of the suite consolidation: the
// original per-feature spec files on the left, the three consolidated files
// that replaced them on the right.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Original: map[string][]string{
			"article-list-filtering.spec": {
				"filter by feed",
				"filter by category",
				"unread only toggle",
				"starred only toggle",
				"search narrows list",
				"sort order newest first",
				"combined feed and unread filter",
			},
			"list-state-preservation.spec": {
				"scroll position restored after back navigation",
				"read state survives navigation",
				"filter selection restored from session storage",
				"session state cleared on reset",
			},
			"responsive-layout.spec": {
				"sidebar collapses below tablet breakpoint",
				"sidebar visible on desktop",
				"glass header condenses on scroll",
				"header expands at top",
			},
			"error-handling.spec": {
				"toast shown on article fetch failure",
				"list remains usable after api error",
				"corrupt session storage falls back to defaults",
			},
			"settings-page.spec": {
				"settings sections render",
				"theme toggle persists",
			},
		},
		Consolidated: map[string][]string{
			"core-article-flows.spec": {
				"filter by feed",
				"filter by category",
				"unread only toggle",
				"starred only toggle",
				"search narrows list",
				"sort order newest first",
				"combined feed and unread filter",
			},
			"layout-and-chrome.spec": {
				"sidebar collapses below tablet breakpoint",
				"sidebar visible on desktop",
				"glass header condenses on scroll",
				"header expands at top",
				"settings sections render",
				"theme toggle persists",
			},
			"state-and-resilience.spec": {
				"scroll position restored after back navigation",
				"read state survives navigation",
				"filter selection restored from session storage",
				"session state cleared on reset",
				"toast shown on article fetch failure",
				"list remains usable after api error",
				"corrupt session storage falls back to defaults",
			},
		},
		Scenarios: []Scenario{
			{
				ID:               "filter by feed",
				Category:         "filtering",
				Description:      "Selecting a feed in the sidebar restricts the article list to that feed",
				Priority:         "P0",
				ExpectedDuration: Duration(8 * time.Second),
				Setup:            []string{"seed 20 articles across 4 feeds"},
				Actions:          []string{"open reader", "select feed_001 in sidebar"},
				Assertions:       []string{"every listed article belongs to feed_001"},
			},
			{
				ID:               "unread only toggle",
				Category:         "filtering",
				Description:      "The unread toggle hides read articles",
				Priority:         "P0",
				ExpectedDuration: Duration(6 * time.Second),
				Setup:            []string{"seed articles with alternating read state"},
				Actions:          []string{"open reader", "enable unread filter"},
				Assertions:       []string{"no listed article is marked read"},
			},
			{
				ID:               "scroll position restored after back navigation",
				Category:         "navigation",
				Description:      "Returning from an article restores the previous list scroll offset",
				Priority:         "P0",
				ExpectedDuration: Duration(12 * time.Second),
				Setup:            []string{"seed 50 articles"},
				Actions:          []string{"scroll the list", "open an article", "navigate back"},
				Assertions:       []string{"scroll offset matches the pre-navigation offset"},
			},
			{
				ID:               "sidebar collapses below tablet breakpoint",
				Category:         "layout",
				Description:      "Viewports narrower than 768px hide the sidebar behind a toggle",
				Priority:         "P1",
				ExpectedDuration: Duration(6 * time.Second),
				Actions:          []string{"open reader at 375x667"},
				Assertions:       []string{"sidebar is hidden", "menu toggle is visible"},
			},
			{
				ID:               "toast shown on article fetch failure",
				Category:         "resilience",
				Description:      "A failed article fetch surfaces an error toast without breaking the list",
				Priority:         "P1",
				ExpectedDuration: Duration(8 * time.Second),
				Setup:            []string{"intercept article API requests to fail"},
				Actions:          []string{"open reader", "trigger a refresh"},
				Assertions:       []string{"error toast is visible", "list shell still renders"},
			},
			{
				ID:               "settings sections render",
				Category:         "settings",
				Description:      "The settings page renders its appearance and feed management sections",
				Priority:         "P2",
				ExpectedDuration: Duration(5 * time.Second),
				Actions:          []string{"open /reader/settings"},
				Assertions:       []string{"appearance section present", "feeds section present"},
			},
		},
	}
}
