package driver

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/guiabox/playlist-manager/internal/playlist"
)

// SlugHTTPHandler derives entity IDs from display names so the UI's ID
// field can track the name field live while creating an entry.
type SlugHTTPHandler struct{}

// NewSlugHTTPHandler creates a new slug handler.
func NewSlugHTTPHandler() *SlugHTTPHandler {
	return &SlugHTTPHandler{}
}

// slugResponse carries the derived identifier.
type slugResponse struct {
	ID string `json:"id"`
}

// Register wires the slug route onto the router.
func (h *SlugHTTPHandler) Register(r *mux.Router) {
	r.HandleFunc("/slug", h.handleSlug).Methods(http.MethodGet)
}

// handleSlug handles GET /slug?type=category|channel&name=...
func (h *SlugHTTPHandler) handleSlug(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")

	switch r.URL.Query().Get("type") {
	case "category":
		writeJSON(w, http.StatusOK, slugResponse{ID: playlist.CategorySlug(name)})
	case "channel":
		writeJSON(w, http.StatusOK, slugResponse{ID: playlist.ChannelSlug(name)})
	default:
		writeError(w, http.StatusBadRequest, `type must be "category" or "channel"`)
	}
}
