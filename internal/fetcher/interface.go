package fetcher

import "context"

// Interface defines the contract for fetching remote documents that may
// sit behind cross-origin restrictions.
type Interface interface {
	// Fetch retrieves the body at url, falling back to the configured
	// relay when the direct request fails.
	Fetch(ctx context.Context, url string) ([]byte, error)
}
