package server

import (
	"net/http"
	"testing"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedRSS_ParsesWithGofeed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ArticleCount = 12
	srv := startServer(t, cfg)

	resp, err := http.Get(srv.BaseURL() + "/feeds/feed_001/rss")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/rss+xml")

	feed, err := gofeed.NewParser().Parse(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, "Test Feed 1", feed.Title)
	// 12 articles spread over 4 feeds: 3 per feed.
	require.Len(t, feed.Items, 3)
	for _, item := range feed.Items {
		assert.NotEmpty(t, item.Title)
		assert.NotEmpty(t, item.GUID)
		assert.NotNil(t, item.PublishedParsed, "pubDate must parse: %q", item.Published)
	}
	// Newest first, matching the reader's default sort.
	assert.Equal(t, "Test Article 1", feed.Items[0].Title)
}

func TestFeedRSS_DeterministicGUIDs(t *testing.T) {
	srv := startServer(t, DefaultConfig())

	first, err := srv.renderFeedRSS("feed_002")
	require.NoError(t, err)
	second, err := srv.renderFeedRSS("feed_002")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFeedRSS_UnknownFeed(t *testing.T) {
	srv := startServer(t, DefaultConfig())

	resp, err := http.Get(srv.BaseURL() + "/feeds/feed_999/rss")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
