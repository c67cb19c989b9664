package server

import (
	"sort"
	"strings"
	"sync"

	"github.com/lumenfeed/reader-e2e/pkg/fixtures"
)

// Store is the mock reader's in-memory state. It is seeded from the fixture
// factory and guarded by a mutex so concurrent browser requests stay
// consistent. There is deliberately no persistence: every suite run starts
// from the same deterministic state.
type Store struct {
	mu       sync.RWMutex
	articles []fixtures.Article
	feeds    []fixtures.Feed
}

// NewStore seeds a store with n fixture articles and the standard feed set.
func NewStore(n int) *Store {
	s := &Store{}
	s.Reset(n)
	return s
}

// Reset reseeds the store to its initial deterministic state.
func (s *Store) Reset(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.articles = fixtures.Articles(n)
	s.feeds = fixtures.Feeds(4)
}

// Feeds returns all feeds with unread counts recomputed from article state.
func (s *Store) Feeds() []fixtures.Feed {
	s.mu.RLock()
	defer s.mu.RUnlock()

	unread := make(map[string]int)
	for _, a := range s.articles {
		if !a.IsRead {
			unread[a.FeedID]++
		}
	}
	out := make([]fixtures.Feed, len(s.feeds))
	for i, f := range s.feeds {
		f.UnreadCount = unread[f.ID]
		out[i] = f
	}
	return out
}

// Query selects and orders articles the way the reader's filter bar does.
type Query struct {
	FeedID   string
	Category string
	Read     fixtures.ReadFilter
	Starred  bool
	Search   string
	Sort     fixtures.SortOrder
}

// Articles returns the articles matching q, sorted by publish time.
// Unknown feed ids or categories simply match nothing.
func (s *Store) Articles(q Query) []fixtures.Article {
	s.mu.RLock()
	defer s.mu.RUnlock()

	categoryByFeed := make(map[string]string, len(s.feeds))
	for _, f := range s.feeds {
		categoryByFeed[f.ID] = f.Category
	}

	var out []fixtures.Article
	for _, a := range s.articles {
		if q.FeedID != "" && a.FeedID != q.FeedID {
			continue
		}
		if q.Category != "" && categoryByFeed[a.FeedID] != q.Category {
			continue
		}
		switch q.Read {
		case fixtures.ReadOnly:
			if !a.IsRead {
				continue
			}
		case fixtures.UnreadOnly:
			if a.IsRead {
				continue
			}
		}
		if q.Starred && !a.IsStarred {
			continue
		}
		if q.Search != "" && !matchesSearch(a, q.Search) {
			continue
		}
		out = append(out, a)
	}

	oldestFirst := q.Sort == fixtures.SortOldest
	sort.SliceStable(out, func(i, j int) bool {
		if oldestFirst {
			return out[i].PublishedAt.Before(out[j].PublishedAt)
		}
		return out[i].PublishedAt.After(out[j].PublishedAt)
	})
	return out
}

func matchesSearch(a fixtures.Article, q string) bool {
	q = strings.ToLower(q)
	return strings.Contains(strings.ToLower(a.Title), q) ||
		strings.Contains(strings.ToLower(a.Summary), q)
}

// Get returns one article by id.
func (s *Store) Get(id string) (fixtures.Article, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.articles {
		if a.ID == id {
			return a, true
		}
	}
	return fixtures.Article{}, false
}

// MarkRead sets the read flag on one article. Returns false for unknown ids.
func (s *Store) MarkRead(id string, read bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.articles {
		if s.articles[i].ID == id {
			s.articles[i].IsRead = read
			return true
		}
	}
	return false
}

// Star sets the starred flag on one article. Returns false for unknown ids.
func (s *Store) Star(id string, starred bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.articles {
		if s.articles[i].ID == id {
			s.articles[i].IsStarred = starred
			return true
		}
	}
	return false
}

// PurgeRead deletes read, non-starred articles in chunks: at most chunk
// articles are removed per call, oldest first, and the number still eligible
// is reported so callers can keep issuing requests until zero remains.
func (s *Store) PurgeRead(chunk int) (deleted, remaining int) {
	if chunk <= 0 {
		chunk = 100
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	eligible := func(a fixtures.Article) bool { return a.IsRead && !a.IsStarred }

	// Oldest first so repeated purges drain the backlog deterministically.
	idx := make([]int, 0)
	for i, a := range s.articles {
		if eligible(a) {
			idx = append(idx, i)
		}
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return s.articles[idx[i]].PublishedAt.Before(s.articles[idx[j]].PublishedAt)
	})
	if len(idx) > chunk {
		idx = idx[:chunk]
	}

	drop := make(map[int]bool, len(idx))
	for _, i := range idx {
		drop[i] = true
	}
	kept := s.articles[:0]
	for i, a := range s.articles {
		if drop[i] {
			deleted++
			continue
		}
		kept = append(kept, a)
		if eligible(a) {
			remaining++
		}
	}
	s.articles = kept
	return deleted, remaining
}

// Count returns the number of stored articles.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.articles)
}
