package driver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/guiabox/playlist-manager/internal/application"
	"github.com/guiabox/playlist-manager/internal/playlist"
)

// ChannelHTTPHandler handles HTTP requests for channel management,
// including draft seeding, duplication and stream URL list handling.
type ChannelHTTPHandler struct {
	service *application.PlaylistService
}

// NewChannelHTTPHandler creates a new HTTP handler for channels.
func NewChannelHTTPHandler(service *application.PlaylistService) *ChannelHTTPHandler {
	return &ChannelHTTPHandler{service: service}
}

// channelRequest represents the JSON body for creating or updating a
// channel. An empty ID on creation is derived from the name.
type channelRequest struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Logo     string   `json:"logo"`
	URL      []string `json:"url"`
	Guide    string   `json:"guide"`
	Category string   `json:"category"`
	Country  string   `json:"country"`
}

func (req channelRequest) toDraft() playlist.Channel {
	return playlist.Channel{
		ID:       req.ID,
		Name:     req.Name,
		Logo:     req.Logo,
		URL:      req.URL,
		Guide:    req.Guide,
		Category: req.Category,
		Country:  req.Country,
	}
}

// Register wires the channel routes onto the router.
func (h *ChannelHTTPHandler) Register(r *mux.Router) {
	r.HandleFunc("/channels", h.handleList).Methods(http.MethodGet)
	r.HandleFunc("/channels", h.handleCreate).Methods(http.MethodPost)
	r.HandleFunc("/channels/draft", h.handleDraft).Methods(http.MethodGet)
	r.HandleFunc("/channels/reorder", h.handleReorder).Methods(http.MethodPost)
	r.HandleFunc("/channels/{id}/duplicate", h.handleDuplicate).Methods(http.MethodGet)
	r.HandleFunc("/channels/{id}", h.handleUpdate).Methods(http.MethodPut)
	r.HandleFunc("/channels/{id}", h.handleDelete).Methods(http.MethodDelete)
}

// handleList handles GET /channels. An optional q parameter filters by
// name, case-insensitively.
func (h *ChannelHTTPHandler) handleList(w http.ResponseWriter, r *http.Request) {
	channels := h.service.Channels()

	if q := strings.ToLower(r.URL.Query().Get("q")); q != "" {
		filtered := make([]playlist.Channel, 0, len(channels))
		for _, ch := range channels {
			if strings.Contains(strings.ToLower(ch.Name), q) {
				filtered = append(filtered, ch)
			}
		}
		channels = filtered
	}

	writeJSON(w, http.StatusOK, channels)
}

// handleDraft handles GET /channels/draft. The draft is seeded with the
// first existing category, one blank URL slot and the default country.
func (h *ChannelHTTPHandler) handleDraft(w http.ResponseWriter, r *http.Request) {
	category := ""
	if categories := h.service.Categories(); len(categories) > 0 {
		category = categories[0].ID
	}
	writeJSON(w, http.StatusOK, playlist.NewDraftChannel(category))
}

// handleDuplicate handles GET /channels/{id}/duplicate. Returns a draft
// copy with suffixed ID and name; nothing is persisted until the operator
// submits it as a new channel.
func (h *ChannelHTTPHandler) handleDuplicate(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	for _, ch := range h.service.Channels() {
		if ch.ID == id {
			writeJSON(w, http.StatusOK, ch.Duplicate())
			return
		}
	}
	writeError(w, http.StatusNotFound, "channel not found")
}

// handleCreate handles POST /channels
func (h *ChannelHTTPHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req channelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.ID == "" {
		req.ID = playlist.ChannelSlug(req.Name)
	}

	ch, err := playlist.NewChannel(req.toDraft())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.AddChannel(r.Context(), ch); err != nil {
		if errors.Is(err, playlist.ErrChannelExists) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, ch)
}

// handleUpdate handles PUT /channels/{id}. The same submit validation as
// creation applies, blank URL slot trimming included; the ID in the path
// wins over anything in the body.
func (h *ChannelHTTPHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req channelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.ID = id
	ch, err := playlist.NewChannel(req.toDraft())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.UpdateChannel(r.Context(), id, ch); err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, ch)
}

// handleDelete handles DELETE /channels/{id}. Deleting an unknown ID is a
// no-op; the confirmation step lives in the UI.
func (h *ChannelHTTPHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.service.DeleteChannel(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleReorder handles POST /channels/reorder, the drag gesture's
// remove-and-reinsert permutation applied to the full channel sequence.
func (h *ChannelHTTPHandler) handleReorder(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	moved := playlist.Move(h.service.Channels(), req.From, req.To)
	if err := h.service.ReorderChannels(r.Context(), moved); err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, moved)
}
