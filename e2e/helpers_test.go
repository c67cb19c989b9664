//go:build e2e

package e2e

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/lumenfeed/reader-e2e/cmd/readermock/server"
	"github.com/lumenfeed/reader-e2e/internal/config"
	"github.com/lumenfeed/reader-e2e/pkg/browser"
	"github.com/lumenfeed/reader-e2e/pkg/fixtures"
)

// session bundles one test's server, browser, and page helper. srv is nil
// when the suite targets an external deployment via READER_BASE_URL.
type session struct {
	srv     *server.Server
	client  *browser.Client
	reader  *browser.ReaderPage
	baseURL string
}

// newSession boots the app under test (mock server unless READER_BASE_URL
// is set), launches a browser, opens /reader, and waits for the article
// list. articleCount only applies to the mock server.
func newSession(t *testing.T, articleCount int) *session {
	t.Helper()

	cfg := config.Load()
	s := &session{baseURL: cfg.ReaderBaseURL}

	if s.baseURL == "" {
		srvCfg := server.DefaultConfig()
		srvCfg.ArticleCount = articleCount

		srv, err := server.New(srvCfg)
		if err != nil {
			t.Fatalf("failed to create server: %v", err)
		}
		if _, err := srv.Start(); err != nil {
			t.Fatalf("failed to start server: %v", err)
		}
		t.Cleanup(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				t.Errorf("server shutdown error: %v", err)
			}
		})
		s.srv = srv
		s.baseURL = srv.BaseURL()
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := browser.WaitHealthy(ctx, s.baseURL); err != nil {
			t.Fatalf("reader not healthy: %v", err)
		}
	}

	browserCfg := browser.DefaultConfig()
	browserCfg.Headless = cfg.Headless
	browserCfg.Timeout = cfg.NavTimeout

	client, err := browser.New(browserCfg)
	if err != nil {
		t.Fatalf("failed to create browser: %v", err)
	}
	t.Cleanup(func() {
		if err := client.Close(); err != nil {
			t.Errorf("browser close error: %v", err)
		}
	})
	s.client = client

	if _, err := client.Navigate(s.baseURL + "/reader"); err != nil {
		t.Fatalf("failed to navigate: %v", err)
	}
	reader, err := client.Reader()
	if err != nil {
		t.Fatalf("failed to wrap page: %v", err)
	}
	s.reader = reader

	// Fixed desktop viewport so scroll offsets are deterministic; responsive
	// tests override per subtest.
	if err := reader.SetViewport(desktopViewport()); err != nil {
		t.Fatalf("failed to set viewport: %v", err)
	}
	if err := reader.WaitForArticleList(); err != nil {
		t.Fatalf("article list never loaded: %v", err)
	}
	return s
}

// reload re-opens the reader list page in the same tab, preserving
// sessionStorage.
func (s *session) reload(t *testing.T) {
	t.Helper()
	if _, err := s.client.Navigate(s.baseURL + "/reader"); err != nil {
		t.Fatalf("failed to reload reader: %v", err)
	}
	if err := s.reader.WaitForArticleList(); err != nil {
		t.Fatalf("article list never loaded after reload: %v", err)
	}
}

// resetFilters drives every filter control back to its default.
func (s *session) resetFilters(t *testing.T) {
	t.Helper()
	if err := s.reader.SelectFeed(""); err != nil {
		t.Fatalf("reset feed filter: %v", err)
	}
	if err := s.reader.SetCategory(""); err != nil {
		t.Fatalf("reset category filter: %v", err)
	}
	if err := s.reader.SetReadFilter(fixtures.ReadAll); err != nil {
		t.Fatalf("reset read filter: %v", err)
	}
	if err := s.reader.SetSortOrder(fixtures.SortNewest); err != nil {
		t.Fatalf("reset sort order: %v", err)
	}
	if err := s.reader.Search(""); err != nil {
		t.Fatalf("reset search: %v", err)
	}
}

func desktopViewport() fixtures.Viewport {
	for _, vp := range fixtures.Viewports() {
		if vp.Name == "desktop" {
			return vp
		}
	}
	return fixtures.Viewport{Name: "desktop", Width: 1280, Height: 800}
}

func viewportByName(t *testing.T, name string) fixtures.Viewport {
	t.Helper()
	for _, vp := range fixtures.Viewports() {
		if vp.Name == name {
			return vp
		}
	}
	t.Fatalf("unknown viewport %q", name)
	return fixtures.Viewport{}
}

// articleNum extracts the numeric part of a fixture article id
// ("article_007" -> 7).
func articleNum(t *testing.T, id string) int {
	t.Helper()
	raw := strings.TrimPrefix(id, "article_")
	n, err := strconv.Atoi(raw)
	if err != nil {
		t.Fatalf("unexpected article id %q", id)
	}
	return n
}

// feedOf maps a fixture article id to its seeded feed id: article index i
// (zero-based) belongs to feed_(i%4+1).
func feedOf(t *testing.T, articleID string) string {
	t.Helper()
	i := articleNum(t, articleID) - 1
	return "feed_00" + strconv.Itoa(i%4+1)
}
