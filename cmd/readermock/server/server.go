// Package server is an importable mock of the reader web application. E2E
// tests start it programmatically on a random port so the suite runs without
// an external deployment; `readermock serve` runs the same server standalone.
//
// The mock implements only the surface the suite exercises: the app shell,
// the article/feed JSON API, health, chunked purge, and a per-feed RSS
// endpoint. It is a test double, not a product.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/lumenfeed/reader-e2e/internal/logger"
)

// Config holds server options.
type Config struct {
	Addr         string        // listen address; ":0" picks a random port
	ArticleCount int           // fixture articles to seed
	ReadTimeout  time.Duration // HTTP read timeout
	WriteTimeout time.Duration // HTTP write timeout
}

// DefaultConfig returns a configuration suitable for testing: random port,
// 50 seeded articles.
func DefaultConfig() Config {
	return Config{
		Addr:         ":0",
		ArticleCount: 50,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// Server is the mock reader application.
type Server struct {
	echo       *echo.Echo
	store      *Store
	log        zerolog.Logger
	instanceID string
	startedAt  time.Time

	mu       sync.Mutex
	listener net.Listener
	addr     string
	running  bool
}

// New creates a server with the given configuration. The server does not
// listen until Start is called.
func New(cfg Config) (*Server, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("empty listen address")
	}
	count := cfg.ArticleCount
	if count < 0 {
		count = 0
	}

	s := &Server{
		store:      NewStore(count),
		log:        logger.Get().With().Str("component", "readermock").Logger(),
		instanceID: uuid.NewString(),
		startedAt:  time.Now(),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.Addr = cfg.Addr
	e.Server.ReadTimeout = cfg.ReadTimeout
	e.Server.WriteTimeout = cfg.WriteTimeout
	e.Use(middleware.Recover())
	e.Use(s.requestLogger)

	// App pages
	e.GET("/reader", s.handleAppShell)
	e.GET("/reader/article/:id", s.handleArticlePage)
	e.GET("/reader/settings", s.handleSettingsPage)

	// JSON API
	e.GET("/api/health", s.handleHealth)
	e.GET("/api/feeds", s.handleFeeds)
	e.GET("/api/articles", s.handleArticles)
	e.GET("/api/articles/:id", s.handleArticle)
	e.POST("/api/articles/:id/read", s.handleMarkRead)
	e.POST("/api/articles/:id/star", s.handleStar)
	e.DELETE("/api/articles", s.handlePurge)
	e.POST("/api/test/reset", s.handleReset)

	// Feed export
	e.GET("/feeds/:id/rss", s.handleFeedRSS)

	s.echo = e
	return s, nil
}

// Start begins serving in a background goroutine and returns the bound
// address (useful when the configured port is 0). Calling Start on a running
// server returns the existing address.
func (s *Server) Start() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return s.addr, nil
	}

	ln, err := net.Listen("tcp", s.echo.Server.Addr)
	if err != nil {
		return "", fmt.Errorf("listen on %s: %w", s.echo.Server.Addr, err)
	}
	s.listener = ln
	s.addr = ln.Addr().String()
	s.running = true
	s.echo.Listener = ln

	go func() {
		if err := s.echo.Start(""); err != nil && err != http.ErrServerClosed {
			s.log.Error().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	s.log.Info().Str("addr", s.addr).Int("articles", s.store.Count()).Msg("readermock listening")
	return s.addr, nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	s.running = false
	return s.echo.Shutdown(ctx)
}

// Addr returns the bound address, or "" before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// BaseURL returns the reader entry URL using localhost, the form the browser
// navigates to. The listener may report "[::]:port".
func (s *Server) BaseURL() string {
	addr := s.Addr()
	if addr == "" {
		return ""
	}
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr
	}
	return "http://localhost:" + port
}

// Store exposes the backing store so tests can assert on server-side state.
func (s *Server) Store() *Store {
	return s.store
}

func (s *Server) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		s.log.Debug().
			Str("method", c.Request().Method).
			Str("path", c.Request().URL.Path).
			Int("status", c.Response().Status).
			Dur("took", time.Since(start)).
			Msg("request")
		return err
	}
}
