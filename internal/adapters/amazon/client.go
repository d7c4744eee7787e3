// internal/adapters/amazon/client.go
package amazon

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"amazon_reviews/internal/adapters/observability"
	"amazon_reviews/internal/domain"
)

// blockMarker appears in the body of blocked responses alongside a 503.
const blockMarker = "To discuss automated access to Amazon data please contact"

// browserHeaders make the request look like a regular Chrome page load.
var browserHeaders = map[string]string{
	"authority":                 "www.amazon.com",
	"pragma":                    "no-cache",
	"cache-control":             "no-cache",
	"dnt":                       "1",
	"upgrade-insecure-requests": "1",
	"user-agent":                "Mozilla/5.0 (X11; CrOS x86_64 8172.45.0) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/51.0.2704.64 Safari/537.36",
	"accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,image/apng,*/*;q=0.8,application/signed-exchange;v=b3;q=0.9",
	"sec-fetch-site":            "none",
	"sec-fetch-mode":            "navigate",
	"sec-fetch-dest":            "document",
	"accept-language":           "en-GB,en-US;q=0.9,en;q=0.8",
}

// Client downloads review pages with client-side rate limiting. Blocked or
// failing pages are not retried; the caller gets ErrBlocked/ErrFetchFailed.
type Client struct {
	hc *http.Client
	rl *rate.Limiter
}

func New(rps int) *Client {
	if rps <= 0 {
		rps = 1
	}
	return &Client{
		hc: &http.Client{Timeout: 30 * time.Second},
		rl: rate.NewLimiter(rate.Limit(rps), rps),
	}
}

func (c *Client) FetchPage(ctx context.Context, pageURL string) (string, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}
	for k, v := range browserHeaders {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	defer resp.Body.Close()
	observability.ObserveFetch("amazon", resp.StatusCode, time.Since(start))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read body: %v", domain.ErrFetchFailed, err)
	}

	// Blocked pages come back as 503 with a contact notice in the body.
	if resp.StatusCode > http.StatusInternalServerError {
		if strings.Contains(string(body), blockMarker) {
			return "", fmt.Errorf("%w: %s", domain.ErrBlocked, pageURL)
		}
		return "", fmt.Errorf("%w: status %d for %s", domain.ErrFetchFailed, resp.StatusCode, pageURL)
	}

	return string(body), nil
}
