// Package browser wraps Rod with the reader-specific helpers the E2E suite
// shares: Chrome lifecycle, page navigation, and the locator patterns the
// tests repeat (article list waits, filter switching, session storage
// access).
package browser

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// Config configures Chrome launch options.
type Config struct {
	Headless bool          // Run in headless mode (default: true)
	Timeout  time.Duration // Default operation timeout (default: 30s)
}

// DefaultConfig returns sensible defaults for E2E testing.
func DefaultConfig() Config {
	return Config{
		Headless: true,
		Timeout:  30 * time.Second,
	}
}

// Client wraps Rod with a Chrome configuration that works in containers.
type Client struct {
	browser *rod.Browser
	page    *rod.Page
	timeout time.Duration
}

// New launches Chrome and connects to it. Rod downloads a browser if none
// is installed.
func New(cfg Config) (*Client, error) {
	l := launcher.New().
		Headless(cfg.Headless).
		Set("no-sandbox").
		Set("disable-gpu")

	url, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch Chrome: %w", err)
	}

	browser := rod.New().ControlURL(url)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to Chrome: %w", err)
	}

	return &Client{
		browser: browser,
		timeout: cfg.Timeout,
	}, nil
}

// Navigate opens a URL with timeout and returns the page.
func (c *Client) Navigate(url string) (*rod.Page, error) {
	page := c.page
	if page == nil {
		page = c.browser.MustPage()
		c.page = page
	}

	err := page.Timeout(c.timeout).Navigate(url)
	if err != nil {
		return nil, fmt.Errorf("failed to navigate to %s: %w", url, err)
	}

	// Cancel timeout so later operations use their own deadlines.
	page.CancelTimeout()
	return page, nil
}

// Page returns the current page, or nil if none open.
func (c *Client) Page() *rod.Page {
	return c.page
}

// Reader returns the reader page helper bound to the current page.
func (c *Client) Reader() (*ReaderPage, error) {
	if c.page == nil {
		return nil, errors.New("no page open, call Navigate first")
	}
	return &ReaderPage{page: c.page, timeout: c.timeout}, nil
}

// WaitStable waits for the page to be stable (no DOM changes).
func (c *Client) WaitStable() error {
	if c.page == nil {
		return errors.New("no page open")
	}
	return c.page.WaitStable(c.timeout)
}

// Close cleans up browser resources.
// Always call this (via defer) to prevent orphaned Chrome processes.
func (c *Client) Close() error {
	if c.browser != nil {
		return c.browser.Close()
	}
	return nil
}
