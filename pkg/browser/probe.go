package browser

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// health mirrors the reader's /api/health payload.
type health struct {
	Status   string `json:"status"`
	Articles int    `json:"articles"`
}

// WaitHealthy polls baseURL's health endpoint until it reports ok or ctx
// expires. Used before driving the browser at an externally-deployed reader,
// where the app may still be starting.
func WaitHealthy(ctx context.Context, baseURL string) error {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(2 * time.Second)
	defer client.GetClient().CloseIdleConnections()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	var lastErr error
	for {
		var h health
		resp, err := client.R().
			SetContext(ctx).
			SetResult(&h).
			Get("/api/health")
		switch {
		case err != nil:
			lastErr = err
		case resp.StatusCode() != http.StatusOK:
			lastErr = fmt.Errorf("health returned %d", resp.StatusCode())
		case h.Status != "ok":
			lastErr = fmt.Errorf("health status %q", h.Status)
		default:
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("reader at %s never became healthy: %w (last: %v)", baseURL, ctx.Err(), lastErr)
		case <-ticker.C:
		}
	}
}
