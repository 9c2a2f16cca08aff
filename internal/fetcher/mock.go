package fetcher

import "context"

// MockFetcher is a mock implementation of the Interface for testing
type MockFetcher struct {
	FetchFunc func(ctx context.Context, url string) ([]byte, error)
}

// Fetch implements Interface.Fetch
func (m *MockFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if m.FetchFunc != nil {
		return m.FetchFunc(ctx, url)
	}
	return nil, nil
}
