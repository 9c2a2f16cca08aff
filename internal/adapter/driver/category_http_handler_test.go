package driver

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"github.com/guiabox/playlist-manager/internal/application"
	"github.com/guiabox/playlist-manager/internal/playlist"
	"github.com/guiabox/playlist-manager/logging"
)

func testLogger() *logging.Logger {
	return logging.NewWithWriter(logging.ERROR, "[test]", io.Discard)
}

// memStore is an in-memory DocumentStore and SettingsStore for handler
// tests.
type memStore struct {
	doc     *playlist.Document
	lastURL string
}

func (m *memStore) SaveDocument(ctx context.Context, doc playlist.Document) error {
	m.doc = &doc
	return nil
}

func (m *memStore) LoadDocument(ctx context.Context) (playlist.Document, error) {
	if m.doc == nil {
		return playlist.Document{}, playlist.ErrNoDocument
	}
	return *m.doc, nil
}

func (m *memStore) SaveLastImportURL(ctx context.Context, url string) error {
	m.lastURL = url
	return nil
}

func (m *memStore) LastImportURL(ctx context.Context) (string, error) {
	return m.lastURL, nil
}

func newPlaylistService(t *testing.T) *application.PlaylistService {
	t.Helper()
	svc, err := application.NewPlaylistService(context.Background(), &memStore{}, testLogger())
	if err != nil {
		t.Fatalf("failed to create playlist service: %v", err)
	}
	return svc
}

func doRequest(router *mux.Router, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
}

func newCategoryRouter(t *testing.T) (*mux.Router, *application.PlaylistService) {
	t.Helper()
	svc := newPlaylistService(t)
	router := mux.NewRouter()
	NewCategoryHTTPHandler(svc).Register(router)
	return router, svc
}

func TestCategoryHTTPHandler_Create(t *testing.T) {
	t.Run("creates a category", func(t *testing.T) {
		router, svc := newCategoryRouter(t)

		rec := doRequest(router, http.MethodPost, "/categories", `{"id": "sports", "name": "Sports"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}

		var created playlist.Category
		decodeBody(t, rec, &created)
		if created.ID != "sports" || created.Name != "Sports" {
			t.Errorf("unexpected category: %+v", created)
		}
		if cats := svc.Categories(); len(cats) != 1 {
			t.Errorf("expected one category stored, got %+v", cats)
		}
	})

	t.Run("derives the id from the name when blank", func(t *testing.T) {
		router, _ := newCategoryRouter(t)

		rec := doRequest(router, http.MethodPost, "/categories", `{"name": "  Sports  HD  "}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}

		var created playlist.Category
		decodeBody(t, rec, &created)
		if created.ID != "sports-hd" {
			t.Errorf("expected derived id sports-hd, got %q", created.ID)
		}
	})

	t.Run("rejects an empty name", func(t *testing.T) {
		router, _ := newCategoryRouter(t)

		rec := doRequest(router, http.MethodPost, "/categories", `{"name": ""}`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("rejects a duplicate id with 409", func(t *testing.T) {
		router, _ := newCategoryRouter(t)

		doRequest(router, http.MethodPost, "/categories", `{"id": "sports", "name": "Sports"}`)
		rec := doRequest(router, http.MethodPost, "/categories", `{"id": "sports", "name": "Other"}`)
		if rec.Code != http.StatusConflict {
			t.Errorf("expected 409, got %d", rec.Code)
		}
	})

	t.Run("rejects a malformed body", func(t *testing.T) {
		router, _ := newCategoryRouter(t)

		rec := doRequest(router, http.MethodPost, "/categories", `{not json`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})
}

func TestCategoryHTTPHandler_List(t *testing.T) {
	router, _ := newCategoryRouter(t)
	doRequest(router, http.MethodPost, "/categories", `{"id": "a", "name": "A"}`)
	doRequest(router, http.MethodPost, "/categories", `{"id": "b", "name": "B"}`)

	rec := doRequest(router, http.MethodGet, "/categories", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var cats []playlist.Category
	decodeBody(t, rec, &cats)
	if len(cats) != 2 || cats[0].ID != "a" || cats[1].ID != "b" {
		t.Errorf("expected insertion order preserved, got %+v", cats)
	}
}

func TestCategoryHTTPHandler_Update(t *testing.T) {
	t.Run("renames keeping the path id", func(t *testing.T) {
		router, svc := newCategoryRouter(t)
		doRequest(router, http.MethodPost, "/categories", `{"id": "sports", "name": "Sports"}`)

		rec := doRequest(router, http.MethodPut, "/categories/sports", `{"id": "other", "name": "Sports HD"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		cats := svc.Categories()
		if len(cats) != 1 || cats[0].ID != "sports" || cats[0].Name != "Sports HD" {
			t.Errorf("expected renamed category with original id, got %+v", cats)
		}
	})

	t.Run("rejects an empty name", func(t *testing.T) {
		router, _ := newCategoryRouter(t)
		doRequest(router, http.MethodPost, "/categories", `{"id": "sports", "name": "Sports"}`)

		rec := doRequest(router, http.MethodPut, "/categories/sports", `{"name": ""}`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})
}

func TestCategoryHTTPHandler_Delete(t *testing.T) {
	router, svc := newCategoryRouter(t)
	doRequest(router, http.MethodPost, "/categories", `{"id": "sports", "name": "Sports"}`)

	rec := doRequest(router, http.MethodDelete, "/categories/sports", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if cats := svc.Categories(); len(cats) != 0 {
		t.Errorf("expected no categories, got %+v", cats)
	}

	// Deleting again is a quiet no-op.
	rec = doRequest(router, http.MethodDelete, "/categories/sports", "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204 for a missing id, got %d", rec.Code)
	}
}

func TestCategoryHTTPHandler_Reorder(t *testing.T) {
	router, svc := newCategoryRouter(t)
	for _, body := range []string{
		`{"id": "a", "name": "A"}`,
		`{"id": "b", "name": "B"}`,
		`{"id": "c", "name": "C"}`,
	} {
		doRequest(router, http.MethodPost, "/categories", body)
	}

	rec := doRequest(router, http.MethodPost, "/categories/reorder", `{"from": 0, "to": 2}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	cats := svc.Categories()
	wantIDs := []string{"b", "c", "a"}
	for i, id := range wantIDs {
		if cats[i].ID != id {
			t.Fatalf("expected order %v, got %+v", wantIDs, cats)
		}
	}

	t.Run("out-of-range indices leave the order unchanged", func(t *testing.T) {
		rec := doRequest(router, http.MethodPost, "/categories/reorder", `{"from": 7, "to": 0}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		got := svc.Categories()
		for i, id := range wantIDs {
			if got[i].ID != id {
				t.Fatalf("expected order unchanged %v, got %+v", wantIDs, got)
			}
		}
	})
}
