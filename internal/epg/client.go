package epg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/guiabox/playlist-manager/internal/fetcher"
)

// ErrUnavailable means the guide service could not be reached through the
// whole fetch chain, or returned something that is not guide JSON. The
// preview is advisory, so callers degrade to a fixed "could not connect"
// display instead of surfacing this as a blocking error.
var ErrUnavailable = errors.New("could not connect to the guide service")

// Client looks up programme previews for a channel's guide URL against
// the external preview service.
type Client struct {
	baseURL string
	fetch   fetcher.Interface
}

// NewClient creates a preview client for the given service base URL.
func NewClient(baseURL string, fetch fetcher.Interface) *Client {
	return &Client{baseURL: baseURL, fetch: fetch}
}

// Lookup fetches the preview for guideURL. The guide link travels as an
// escaped query value; the fetch chain handles the relay fallback.
func (c *Client) Lookup(ctx context.Context, guideURL string) (Preview, error) {
	target := c.baseURL + "?url=" + url.QueryEscape(guideURL)

	body, err := c.fetch.Fetch(ctx, target)
	if err != nil {
		return Preview{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var p Preview
	if err := json.Unmarshal(body, &p); err != nil {
		return Preview{}, fmt.Errorf("%w: malformed response: %v", ErrUnavailable, err)
	}

	return p, nil
}
