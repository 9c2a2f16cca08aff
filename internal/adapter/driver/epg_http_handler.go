package driver

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/guiabox/playlist-manager/internal/application"
	"github.com/guiabox/playlist-manager/internal/epg"
)

// previewProgrammeLimit caps how many upcoming programme entries the
// preview renders; the total count still reports the full figure.
const previewProgrammeLimit = 3

// EPGHTTPHandler handles HTTP requests for the advisory EPG preview. The
// preview never gates a channel save: failures degrade to a fixed
// message and superseded lookups simply produce no content.
type EPGHTTPHandler struct {
	previews *application.PreviewService
}

// NewEPGHTTPHandler creates a new HTTP handler for EPG previews.
func NewEPGHTTPHandler(previews *application.PreviewService) *EPGHTTPHandler {
	return &EPGHTTPHandler{previews: previews}
}

// Register wires the EPG preview routes onto the router.
func (h *EPGHTTPHandler) Register(r *mux.Router) {
	r.HandleFunc("/epg/preview", h.handlePreview).Methods(http.MethodGet)
	r.HandleFunc("/epg/preview/{session}", h.handleCloseSession).Methods(http.MethodDelete)
}

// handlePreview handles GET /epg/preview?session=...&guide=...
// Responses: 200 with the preview, 204 when the lookup was skipped or
// superseded, 502 when the guide service is unreachable.
func (h *EPGHTTPHandler) handlePreview(w http.ResponseWriter, r *http.Request) {
	session := r.URL.Query().Get("session")
	guide := r.URL.Query().Get("guide")
	if session == "" {
		writeError(w, http.StatusBadRequest, "session is required")
		return
	}

	preview, err := h.previews.Preview(r.Context(), session, guide)
	switch {
	case errors.Is(err, application.ErrNotALink), errors.Is(err, application.ErrSuperseded):
		w.WriteHeader(http.StatusNoContent)
		return
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		// Client went away mid-debounce; nothing to render.
		w.WriteHeader(http.StatusNoContent)
		return
	case errors.Is(err, epg.ErrUnavailable):
		writeError(w, http.StatusBadGateway, epg.ErrUnavailable.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if len(preview.Programmes) > previewProgrammeLimit {
		preview.Programmes = preview.Programmes[:previewProgrammeLimit]
	}
	writeJSON(w, http.StatusOK, preview)
}

// handleCloseSession handles DELETE /epg/preview/{session}, discarding
// anything still pending for a closed channel editor.
func (h *EPGHTTPHandler) handleCloseSession(w http.ResponseWriter, r *http.Request) {
	h.previews.CloseSession(mux.Vars(r)["session"])
	w.WriteHeader(http.StatusNoContent)
}
