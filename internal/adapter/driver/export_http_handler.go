package driver

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/guiabox/playlist-manager/internal/application"
)

// ExportHTTPHandler handles HTTP requests for exporting the playlist.
type ExportHTTPHandler struct {
	service *application.ExportService
}

// NewExportHTTPHandler creates a new HTTP handler for exports.
func NewExportHTTPHandler(service *application.ExportService) *ExportHTTPHandler {
	return &ExportHTTPHandler{service: service}
}

// exportResponse carries the rendered JSON text for display/copy plus the
// advisory warnings. Warnings never block the export.
type exportResponse struct {
	Filename string   `json:"filename"`
	JSON     string   `json:"json"`
	Warnings []string `json:"warnings"`
}

// Register wires the export routes onto the router.
func (h *ExportHTTPHandler) Register(r *mux.Router) {
	r.HandleFunc("/export", h.handleExport).Methods(http.MethodGet)
	r.HandleFunc("/export/"+application.ExportFilename, h.handleDownload).Methods(http.MethodGet)
}

// handleExport handles GET /export
func (h *ExportHTTPHandler) handleExport(w http.ResponseWriter, r *http.Request) {
	export, err := h.service.Export()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	warnings := export.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	writeJSON(w, http.StatusOK, exportResponse{
		Filename: export.Filename,
		JSON:     string(export.JSON),
		Warnings: warnings,
	})
}

// handleDownload handles GET /export/playlist_data.json, serving the
// exact export text as a file attachment.
func (h *ExportHTTPHandler) handleDownload(w http.ResponseWriter, r *http.Request) {
	export, err := h.service.Export()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(export.JSON)
}
