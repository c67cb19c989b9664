// Package fixtures generates deterministic test data for the reader E2E suite.
//
// All generation is formulaic: index-based modulo arithmetic for flags, fixed
// date offsets for timestamps. No randomness, no I/O. The same call always
// produces the same data, so tests can assert on exact values.
package fixtures

import (
	"fmt"
	"time"
)

// baseTime anchors all generated timestamps. Fixed so that ordering
// assertions in specs never depend on the wall clock.
var baseTime = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

// Article is a synthetic reader article used to seed application state.
type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	FeedID      string    `json:"feedId"`
	IsRead      bool      `json:"isRead"`
	IsStarred   bool      `json:"isStarred"`
	PublishedAt time.Time `json:"publishedAt"`
}

// Feed is a synthetic subscription feed.
type Feed struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Category    string `json:"category"`
	UnreadCount int    `json:"unreadCount"`
}

// categories rotate across generated feeds and articles.
var categories = []string{"tech", "news", "science", "culture"}

// ArticleOption overrides a generated field on every article in a batch.
type ArticleOption func(i int, a *Article)

// WithRead forces IsRead on all generated articles.
func WithRead(read bool) ArticleOption {
	return func(_ int, a *Article) { a.IsRead = read }
}

// WithStarred forces IsStarred on all generated articles.
func WithStarred(starred bool) ArticleOption {
	return func(_ int, a *Article) { a.IsStarred = starred }
}

// WithFeedID assigns every generated article to a single feed.
func WithFeedID(feedID string) ArticleOption {
	return func(_ int, a *Article) { a.FeedID = feedID }
}

// WithTitlePrefix replaces the default title prefix.
func WithTitlePrefix(prefix string) ArticleOption {
	return func(i int, a *Article) { a.Title = fmt.Sprintf("%s %d", prefix, i+1) }
}

// Articles returns exactly n articles with sequential zero-padded ids
// (article_001, article_002, ...). Without overrides, IsRead alternates by
// even/odd index (index 0 is read), IsStarred is set on every third article,
// and PublishedAt descends one hour per index from a fixed base time.
// n <= 0 returns an empty slice.
func Articles(n int, opts ...ArticleOption) []Article {
	if n <= 0 {
		return []Article{}
	}
	out := make([]Article, 0, n)
	for i := 0; i < n; i++ {
		a := Article{
			ID:          fmt.Sprintf("article_%03d", i+1),
			Title:       fmt.Sprintf("Test Article %d", i+1),
			Summary:     fmt.Sprintf("Summary for test article %d.", i+1),
			FeedID:      fmt.Sprintf("feed_%03d", i%4+1),
			IsRead:      i%2 == 0,
			IsStarred:   i%3 == 0,
			PublishedAt: baseTime.Add(-time.Duration(i) * time.Hour),
		}
		for _, opt := range opts {
			opt(i, &a)
		}
		out = append(out, a)
	}
	return out
}

// Feeds returns exactly n feeds with sequential zero-padded ids and rotating
// categories. n <= 0 returns an empty slice.
func Feeds(n int) []Feed {
	if n <= 0 {
		return []Feed{}
	}
	out := make([]Feed, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Feed{
			ID:          fmt.Sprintf("feed_%03d", i+1),
			Title:       fmt.Sprintf("Test Feed %d", i+1),
			URL:         fmt.Sprintf("https://feeds.example.com/%d.xml", i+1),
			Category:    categories[i%len(categories)],
			UnreadCount: (i + 1) * 3 % 10,
		})
	}
	return out
}

// Category returns the category assigned to the i-th feed (zero-based).
func Category(i int) string {
	if i < 0 {
		i = 0
	}
	return categories[i%len(categories)]
}
