package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/guiabox/playlist-manager/logging"
)

// Chain fetches a URL through an ordered list of strategies: a direct GET
// first, then one retry through a public relay that proxies the same
// target. The relay endpoint is configuration, not a structural
// requirement; an empty relay base disables the fallback.
type Chain struct {
	client    *http.Client
	relayBase string
	logger    *logging.Logger
}

// NewChain creates a Chain with the given total-per-attempt timeout and
// relay base URL.
func NewChain(timeout time.Duration, relayBase string, logger *logging.Logger) *Chain {
	return &Chain{
		client: &http.Client{
			Timeout: timeout,
		},
		relayBase: relayBase,
		logger:    logger,
	}
}

// Fetch retrieves the body at rawURL. On a failed direct attempt (network
// error or non-success status) it retries once through the relay before
// giving up.
func (c *Chain) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	body, directErr := c.get(ctx, rawURL)
	if directErr == nil {
		return body, nil
	}

	if c.relayBase == "" {
		return nil, directErr
	}

	c.logger.Warn("direct fetch failed, retrying through relay", map[string]interface{}{
		"url":   rawURL,
		"error": directErr.Error(),
	})

	relayURL := c.relayBase + "?url=" + url.QueryEscape(rawURL)
	body, relayErr := c.get(ctx, relayURL)
	if relayErr != nil {
		return nil, fmt.Errorf("direct fetch failed (%v) and relay fetch failed: %w", directErr, relayErr)
	}

	return body, nil
}

// get performs a single HTTP GET attempt.
func (c *Chain) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Warn("failed to close response body", map[string]interface{}{
				"error": closeErr.Error(),
			})
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP request returned status %d: %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, nil
}
