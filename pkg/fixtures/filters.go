package fixtures

// ReadFilter selects articles by read state.
type ReadFilter string

const (
	ReadAll    ReadFilter = "all"
	ReadOnly   ReadFilter = "read"
	UnreadOnly ReadFilter = "unread"
)

// SortOrder selects list ordering by publish time.
type SortOrder string

const (
	SortNewest SortOrder = "newest"
	SortOldest SortOrder = "oldest"
)

// FilterState describes one UI filter combination. Empty fields mean
// "no constraint" and are left untouched in the UI.
type FilterState struct {
	FeedID      string     `json:"feedId,omitempty"`
	Category    string     `json:"category,omitempty"`
	ReadFilter  ReadFilter `json:"readFilter,omitempty"`
	SortOrder   SortOrder  `json:"sortOrder,omitempty"`
	SearchQuery string     `json:"searchQuery,omitempty"`
}

// FilterPermutations enumerates the filter combinations the filtering tests
// exercise. The list is deterministic and intentionally not exhaustive: it
// covers each control alone plus the pairings that have regressed before.
func FilterPermutations() []FilterState {
	return []FilterState{
		{},
		{ReadFilter: UnreadOnly},
		{ReadFilter: ReadOnly},
		{SortOrder: SortOldest},
		{FeedID: "feed_001"},
		{Category: "tech"},
		{FeedID: "feed_001", ReadFilter: UnreadOnly},
		{Category: "tech", SortOrder: SortOldest},
		{ReadFilter: UnreadOnly, SortOrder: SortOldest},
	}
}

// Viewport describes a browser viewport for responsive layout tests.
type Viewport struct {
	Name   string
	Width  int
	Height int
	Mobile bool
}

// Viewports returns the fixed responsive test matrix. The 768px breakpoint
// is where the reader collapses its sidebar.
func Viewports() []Viewport {
	return []Viewport{
		{Name: "mobile", Width: 375, Height: 667, Mobile: true},
		{Name: "tablet", Width: 768, Height: 1024, Mobile: false},
		{Name: "desktop", Width: 1280, Height: 800, Mobile: false},
		{Name: "wide", Width: 1920, Height: 1080, Mobile: false},
	}
}
