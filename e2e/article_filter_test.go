//go:build e2e

package e2e

import (
	"fmt"
	"testing"

	"github.com/lumenfeed/reader-e2e/pkg/fixtures"
)

// TestArticleList_ReadFilter drives the read-state dropdown and verifies the
// list matches: fixture seeding alternates read/unread, so both filters
// produce exactly half the articles.
func TestArticleList_ReadFilter(t *testing.T) {
	s := newSession(t, 20)

	if err := s.reader.SetReadFilter(fixtures.UnreadOnly); err != nil {
		t.Fatalf("set unread filter: %v", err)
	}
	flags, err := s.reader.ReadFlags()
	if err != nil {
		t.Fatalf("read flags: %v", err)
	}
	if len(flags) != 10 {
		t.Errorf("unread filter: got %d articles, want 10", len(flags))
	}
	for id, read := range flags {
		if read {
			t.Errorf("unread filter shows read article %s", id)
		}
	}

	if err := s.reader.SetReadFilter(fixtures.ReadOnly); err != nil {
		t.Fatalf("set read filter: %v", err)
	}
	flags, err = s.reader.ReadFlags()
	if err != nil {
		t.Fatalf("read flags: %v", err)
	}
	if len(flags) != 10 {
		t.Errorf("read filter: got %d articles, want 10", len(flags))
	}
	for id, read := range flags {
		if !read {
			t.Errorf("read filter shows unread article %s", id)
		}
	}
}

// TestArticleList_FeedFilter selects a feed in the sidebar and verifies only
// that feed's articles remain listed.
func TestArticleList_FeedFilter(t *testing.T) {
	s := newSession(t, 20)

	if err := s.reader.SelectFeed("feed_001"); err != nil {
		t.Fatalf("select feed: %v", err)
	}
	ids, err := s.reader.ArticleIDs()
	if err != nil {
		t.Fatalf("article ids: %v", err)
	}
	if len(ids) != 5 {
		t.Errorf("feed filter: got %d articles, want 5", len(ids))
	}
	for _, id := range ids {
		if feed := feedOf(t, id); feed != "feed_001" {
			t.Errorf("article %s belongs to %s, want feed_001", id, feed)
		}
	}

	// Back to "All feeds" restores the full list.
	if err := s.reader.SelectFeed(""); err != nil {
		t.Fatalf("select all feeds: %v", err)
	}
	ids, err = s.reader.ArticleIDs()
	if err != nil {
		t.Fatalf("article ids: %v", err)
	}
	if len(ids) != 20 {
		t.Errorf("all feeds: got %d articles, want 20", len(ids))
	}
}

// TestArticleList_Search narrows the list through the search box.
func TestArticleList_Search(t *testing.T) {
	s := newSession(t, 20)

	if err := s.reader.Search("Article 7"); err != nil {
		t.Fatalf("search: %v", err)
	}
	ids, err := s.reader.ArticleIDs()
	if err != nil {
		t.Fatalf("article ids: %v", err)
	}
	if len(ids) != 1 || ids[0] != "article_007" {
		t.Errorf("search result = %v, want [article_007]", ids)
	}

	// Clearing the query restores the list.
	if err := s.reader.Search(""); err != nil {
		t.Fatalf("clear search: %v", err)
	}
	ids, err = s.reader.ArticleIDs()
	if err != nil {
		t.Fatalf("article ids: %v", err)
	}
	if len(ids) != 20 {
		t.Errorf("after clearing search: got %d articles, want 20", len(ids))
	}
}

// TestArticleList_SortOrder flips between newest-first and oldest-first.
// Fixture publish times descend with the article index, so the newest
// article is article_001 and the oldest is the last one seeded.
func TestArticleList_SortOrder(t *testing.T) {
	s := newSession(t, 20)

	ids, err := s.reader.ArticleIDs()
	if err != nil {
		t.Fatalf("article ids: %v", err)
	}
	if len(ids) == 0 || ids[0] != "article_001" {
		t.Errorf("newest first: list starts with %v, want article_001", ids)
	}

	if err := s.reader.SetSortOrder(fixtures.SortOldest); err != nil {
		t.Fatalf("set sort order: %v", err)
	}
	ids, err = s.reader.ArticleIDs()
	if err != nil {
		t.Fatalf("article ids: %v", err)
	}
	if len(ids) == 0 || ids[0] != "article_020" {
		t.Errorf("oldest first: list starts with %v, want article_020", ids)
	}
}

// TestArticleList_FilterMatrix runs the shared filter permutations and
// verifies every listed article satisfies the active constraints.
func TestArticleList_FilterMatrix(t *testing.T) {
	s := newSession(t, 20)

	for i, perm := range fixtures.FilterPermutations() {
		perm := perm
		name := fmt.Sprintf("perm_%02d", i)
		t.Run(name, func(t *testing.T) {
			s.resetFilters(t)
			if err := s.reader.ApplyFilter(perm); err != nil {
				t.Fatalf("apply filter %+v: %v", perm, err)
			}

			ids, err := s.reader.ArticleIDs()
			if err != nil {
				t.Fatalf("article ids: %v", err)
			}
			flags, err := s.reader.ReadFlags()
			if err != nil {
				t.Fatalf("read flags: %v", err)
			}

			for _, id := range ids {
				if perm.FeedID != "" && feedOf(t, id) != perm.FeedID {
					t.Errorf("%s: article %s outside feed %s", name, id, perm.FeedID)
				}
				// Seeded categories map 1:1 onto feeds: tech is feed_001.
				if perm.Category == "tech" && perm.FeedID == "" && feedOf(t, id) != "feed_001" {
					t.Errorf("%s: article %s outside tech category", name, id)
				}
				switch perm.ReadFilter {
				case fixtures.UnreadOnly:
					if flags[id] {
						t.Errorf("%s: read article %s listed", name, id)
					}
				case fixtures.ReadOnly:
					if !flags[id] {
						t.Errorf("%s: unread article %s listed", name, id)
					}
				}
			}
			if perm.SortOrder == fixtures.SortOldest && len(ids) > 1 {
				if articleNum(t, ids[0]) < articleNum(t, ids[len(ids)-1]) {
					t.Errorf("%s: expected oldest first, got %v...%v", name, ids[0], ids[len(ids)-1])
				}
			}
		})
	}
}
