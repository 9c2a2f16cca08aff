package driver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/guiabox/playlist-manager/internal/application"
	"github.com/guiabox/playlist-manager/internal/playlist"
)

// maxImportBytes caps the size of pasted or uploaded playlist documents.
const maxImportBytes = 16 << 20

// ImportHTTPHandler handles HTTP requests for the three import sources:
// pasted text, uploaded file and remote URL.
type ImportHTTPHandler struct {
	service *application.ImportService
}

// NewImportHTTPHandler creates a new HTTP handler for imports.
func NewImportHTTPHandler(service *application.ImportService) *ImportHTTPHandler {
	return &ImportHTTPHandler{service: service}
}

// importURLRequest represents the JSON body for a URL import.
type importURLRequest struct {
	URL string `json:"url"`
}

// importResponse reports what the successful import replaced the
// document with.
type importResponse struct {
	Channels   int `json:"channels"`
	Categories int `json:"categories"`
}

// lastURLResponse carries the remembered import URL.
type lastURLResponse struct {
	URL string `json:"url"`
}

// Register wires the import routes onto the router.
func (h *ImportHTTPHandler) Register(r *mux.Router) {
	r.HandleFunc("/import/text", h.handleText).Methods(http.MethodPost)
	r.HandleFunc("/import/file", h.handleFile).Methods(http.MethodPost)
	r.HandleFunc("/import/url", h.handleURL).Methods(http.MethodPost)
	r.HandleFunc("/import/last-url", h.handleLastURL).Methods(http.MethodGet)
}

// handleText handles POST /import/text. The request body is the raw JSON
// text exactly as pasted.
func (h *ImportHTTPHandler) handleText(w http.ResponseWriter, r *http.Request) {
	text, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	if len(text) == 0 {
		writeError(w, http.StatusBadRequest, "the pasted text is empty")
		return
	}

	doc, err := h.service.ImportText(r.Context(), string(text))
	if err != nil {
		h.writeImportError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, importResponse{
		Channels:   len(doc.Channels),
		Categories: len(doc.Categories),
	})
}

// handleFile handles POST /import/file, a multipart upload whose "file"
// part is read in full and parsed like pasted text.
func (h *ImportHTTPHandler) handleFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportBytes)
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file upload")
		return
	}
	defer file.Close()

	text, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read uploaded file")
		return
	}

	doc, err := h.service.ImportText(r.Context(), string(text))
	if err != nil {
		h.writeImportError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, importResponse{
		Channels:   len(doc.Channels),
		Categories: len(doc.Categories),
	})
}

// handleURL handles POST /import/url
func (h *ImportHTTPHandler) handleURL(w http.ResponseWriter, r *http.Request) {
	var req importURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.URL == "" {
		writeError(w, http.StatusBadRequest, "import URL cannot be empty")
		return
	}

	doc, err := h.service.ImportURL(r.Context(), req.URL)
	if err != nil {
		if isShapeError(err) {
			h.writeImportError(w, err)
			return
		}
		// Transport failure: surface the underlying text so the operator
		// can tell a dead link from a CORS-style rejection.
		writeError(w, http.StatusBadGateway, fmt.Sprintf("import from URL failed: %v", err))
		return
	}
	writeJSON(w, http.StatusOK, importResponse{
		Channels:   len(doc.Channels),
		Categories: len(doc.Categories),
	})
}

// handleLastURL handles GET /import/last-url
func (h *ImportHTTPHandler) handleLastURL(w http.ResponseWriter, r *http.Request) {
	url, err := h.service.LastImportURL(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, lastURLResponse{URL: url})
}

// writeImportError maps a decode failure to a response. Shape violations
// get 422 with their field-specific message; anything else is a syntax
// problem in the supplied JSON.
func (h *ImportHTTPHandler) writeImportError(w http.ResponseWriter, err error) {
	if isShapeError(err) {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeError(w, http.StatusBadRequest, fmt.Sprintf("could not parse JSON: %v", err))
}

func isShapeError(err error) bool {
	return errors.Is(err, playlist.ErrNotAnObject) ||
		errors.Is(err, playlist.ErrMissingChannels) ||
		errors.Is(err, playlist.ErrMissingCategories)
}
