package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lumenfeed/reader-e2e/pkg/fixtures"
)

// healthResponse is the /api/health payload. The suite's readiness probe
// polls it before driving the browser.
type healthResponse struct {
	Status     string `json:"status"`
	InstanceID string `json:"instanceId"`
	Articles   int    `json:"articles"`
	UptimeSecs int64  `json:"uptimeSecs"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{
		Status:     "ok",
		InstanceID: s.instanceID,
		Articles:   s.store.Count(),
		UptimeSecs: int64(time.Since(s.startedAt).Seconds()),
	})
}

func (s *Server) handleFeeds(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.Feeds())
}

func (s *Server) handleArticles(c echo.Context) error {
	q := Query{
		FeedID:   c.QueryParam("feed"),
		Category: c.QueryParam("category"),
		Read:     fixtures.ReadFilter(c.QueryParam("read")),
		Search:   c.QueryParam("q"),
		Sort:     fixtures.SortOrder(c.QueryParam("sort")),
	}
	if starred, err := strconv.ParseBool(c.QueryParam("starred")); err == nil {
		q.Starred = starred
	}

	articles := s.store.Articles(q)
	if articles == nil {
		articles = []fixtures.Article{}
	}
	return c.JSON(http.StatusOK, articles)
}

func (s *Server) handleArticle(c echo.Context) error {
	a, ok := s.store.Get(c.Param("id"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "article not found")
	}
	return c.JSON(http.StatusOK, a)
}

type flagRequest struct {
	Read    *bool `json:"read"`
	Starred *bool `json:"starred"`
}

func (s *Server) handleMarkRead(c echo.Context) error {
	var req flagRequest
	// Empty bodies mean "mark read"; the list JS sends no payload.
	_ = c.Bind(&req)
	read := true
	if req.Read != nil {
		read = *req.Read
	}
	if !s.store.MarkRead(c.Param("id"), read) {
		return echo.NewHTTPError(http.StatusNotFound, "article not found")
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleStar(c echo.Context) error {
	var req flagRequest
	_ = c.Bind(&req)
	starred := true
	if req.Starred != nil {
		starred = *req.Starred
	}
	if !s.store.Star(c.Param("id"), starred) {
		return echo.NewHTTPError(http.StatusNotFound, "article not found")
	}
	return c.NoContent(http.StatusNoContent)
}

// purgeResponse reports one chunked deletion pass. Clients repeat the call
// until remaining reaches zero.
type purgeResponse struct {
	Deleted   int `json:"deleted"`
	Remaining int `json:"remaining"`
}

func (s *Server) handlePurge(c echo.Context) error {
	chunk := 100
	if v := c.QueryParam("chunk"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "chunk must be a positive integer")
		}
		chunk = n
	}
	deleted, remaining := s.store.PurgeRead(chunk)
	return c.JSON(http.StatusOK, purgeResponse{Deleted: deleted, Remaining: remaining})
}

func (s *Server) handleReset(c echo.Context) error {
	count := 50
	if v := c.QueryParam("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "count must be a non-negative integer")
		}
		count = n
	}
	s.store.Reset(count)
	return c.JSON(http.StatusOK, map[string]int{"articles": s.store.Count()})
}

func (s *Server) handleAppShell(c echo.Context) error {
	return c.HTML(http.StatusOK, appShellHTML)
}

func (s *Server) handleArticlePage(c echo.Context) error {
	if _, ok := s.store.Get(c.Param("id")); !ok {
		return echo.NewHTTPError(http.StatusNotFound, "article not found")
	}
	return c.HTML(http.StatusOK, articlePageHTML)
}

func (s *Server) handleSettingsPage(c echo.Context) error {
	return c.HTML(http.StatusOK, settingsPageHTML)
}

func (s *Server) handleFeedRSS(c echo.Context) error {
	xml, err := s.renderFeedRSS(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.Blob(http.StatusOK, "application/rss+xml; charset=utf-8", xml)
}
