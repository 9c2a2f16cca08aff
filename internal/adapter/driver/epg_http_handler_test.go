package driver

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/guiabox/playlist-manager/internal/application"
	"github.com/guiabox/playlist-manager/internal/epg"
	"github.com/guiabox/playlist-manager/internal/fetcher"
)

func newEPGRouter(t *testing.T, fetch fetcher.Interface) *mux.Router {
	t.Helper()
	client := epg.NewClient("http://guide.example.com/", fetch)
	previews := application.NewPreviewService(client, time.Millisecond)
	router := mux.NewRouter()
	NewEPGHTTPHandler(previews).Register(router)
	return router
}

func TestEPGHTTPHandler_Preview(t *testing.T) {
	t.Run("requires a session", func(t *testing.T) {
		router := newEPGRouter(t, &fetcher.MockFetcher{})

		rec := doRequest(router, http.MethodGet, "/epg/preview?guide=http://x", "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("204 when the guide value is not a link", func(t *testing.T) {
		router := newEPGRouter(t, &fetcher.MockFetcher{})

		rec := doRequest(router, http.MethodGet, "/epg/preview?session=s1&guide=not-a-link", "")
		if rec.Code != http.StatusNoContent {
			t.Errorf("expected 204, got %d", rec.Code)
		}
	})

	t.Run("returns the preview truncated to three programmes", func(t *testing.T) {
		fetch := &fetcher.MockFetcher{
			FetchFunc: func(ctx context.Context, url string) ([]byte, error) {
				return []byte(`{
					"canal": "ESPN",
					"total_programas": 5,
					"programacao": [
						{"hora": "18:00", "titulo": "One"},
						{"hora": "19:00", "titulo": "Two"},
						{"hora": "20:00", "titulo": "Three"},
						{"hora": "21:00", "titulo": "Four"},
						{"hora": "22:00", "titulo": "Five"}
					]
				}`), nil
			},
		}
		router := newEPGRouter(t, fetch)

		rec := doRequest(router, http.MethodGet, "/epg/preview?session=s1&guide=http%3A%2F%2Fepg.example.com%2Fespn", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var preview epg.Preview
		decodeBody(t, rec, &preview)
		if preview.Total != 5 {
			t.Errorf("expected full total reported, got %d", preview.Total)
		}
		if len(preview.Programmes) != 3 {
			t.Errorf("expected three programmes rendered, got %d", len(preview.Programmes))
		}
	})

	t.Run("502 when the guide service is unreachable", func(t *testing.T) {
		fetch := &fetcher.MockFetcher{
			FetchFunc: func(ctx context.Context, url string) ([]byte, error) {
				return nil, errors.New("connection refused")
			},
		}
		router := newEPGRouter(t, fetch)

		rec := doRequest(router, http.MethodGet, "/epg/preview?session=s1&guide=http%3A%2F%2Fepg.example.com%2Fespn", "")
		if rec.Code != http.StatusBadGateway {
			t.Errorf("expected 502, got %d", rec.Code)
		}
	})
}

func TestEPGHTTPHandler_CloseSession(t *testing.T) {
	router := newEPGRouter(t, &fetcher.MockFetcher{})

	rec := doRequest(router, http.MethodDelete, "/epg/preview/s1", "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
}
