package driver

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/gorilla/mux"
)

func newSlugRouter() *mux.Router {
	router := mux.NewRouter()
	NewSlugHTTPHandler().Register(router)
	return router
}

func TestSlugHTTPHandler(t *testing.T) {
	router := newSlugRouter()

	t.Run("derives category slugs", func(t *testing.T) {
		rec := doRequest(router, http.MethodGet, "/slug?type=category&name="+url.QueryEscape("  Sports  HD  "), "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var resp struct {
			ID string `json:"id"`
		}
		decodeBody(t, rec, &resp)
		if resp.ID != "sports-hd" {
			t.Errorf("expected sports-hd, got %q", resp.ID)
		}
	})

	t.Run("derives channel slugs", func(t *testing.T) {
		rec := doRequest(router, http.MethodGet, "/slug?type=channel&name="+url.QueryEscape("ESPN HD"), "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var resp struct {
			ID string `json:"id"`
		}
		decodeBody(t, rec, &resp)
		if resp.ID != "espnhd" {
			t.Errorf("expected espnhd, got %q", resp.ID)
		}
	})

	t.Run("rejects an unknown type", func(t *testing.T) {
		rec := doRequest(router, http.MethodGet, "/slug?type=playlist&name=x", "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})
}
