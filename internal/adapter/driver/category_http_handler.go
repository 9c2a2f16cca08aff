package driver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/guiabox/playlist-manager/internal/application"
	"github.com/guiabox/playlist-manager/internal/playlist"
)

// CategoryHTTPHandler handles HTTP requests for category management. It
// is the validation boundary: malformed drafts are rejected here and
// never reach the playlist service.
type CategoryHTTPHandler struct {
	service *application.PlaylistService
}

// NewCategoryHTTPHandler creates a new HTTP handler for categories.
func NewCategoryHTTPHandler(service *application.PlaylistService) *CategoryHTTPHandler {
	return &CategoryHTTPHandler{service: service}
}

// categoryRequest represents the JSON body for creating or updating a
// category. An empty ID on creation is derived from the name.
type categoryRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// reorderRequest carries a drag gesture's source and target row indices.
type reorderRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Register wires the category routes onto the router.
func (h *CategoryHTTPHandler) Register(r *mux.Router) {
	r.HandleFunc("/categories", h.handleList).Methods(http.MethodGet)
	r.HandleFunc("/categories", h.handleCreate).Methods(http.MethodPost)
	r.HandleFunc("/categories/reorder", h.handleReorder).Methods(http.MethodPost)
	r.HandleFunc("/categories/{id}", h.handleUpdate).Methods(http.MethodPut)
	r.HandleFunc("/categories/{id}", h.handleDelete).Methods(http.MethodDelete)
}

// handleList handles GET /categories
func (h *CategoryHTTPHandler) handleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Categories())
}

// handleCreate handles POST /categories
func (h *CategoryHTTPHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.ID == "" {
		req.ID = playlist.CategorySlug(req.Name)
	}

	c, err := playlist.NewCategory(req.ID, req.Name)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.AddCategory(r.Context(), c); err != nil {
		if errors.Is(err, playlist.ErrCategoryExists) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, c)
}

// handleUpdate handles PUT /categories/{id}. Only the name can change;
// the ID in the path wins over anything in the body.
func (h *CategoryHTTPHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := playlist.NewCategory(id, req.Name)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.UpdateCategory(r.Context(), id, c); err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, c)
}

// handleDelete handles DELETE /categories/{id}. Deleting an unknown ID is
// a no-op; the confirmation step lives in the UI.
func (h *CategoryHTTPHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.service.DeleteCategory(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleReorder handles POST /categories/reorder. The handler computes
// the permutation from the gesture indices; the service replaces the
// sequence wholesale.
func (h *CategoryHTTPHandler) handleReorder(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	moved := playlist.Move(h.service.Categories(), req.From, req.To)
	if err := h.service.ReorderCategories(r.Context(), moved); err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, moved)
}
