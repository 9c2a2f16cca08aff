package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/guiabox/playlist-manager/internal/fetcher"
	"github.com/guiabox/playlist-manager/internal/playlist"
	"github.com/guiabox/playlist-manager/internal/port/driven"
	"github.com/guiabox/playlist-manager/logging"
)

// ImportService turns untrusted external JSON into the playlist document.
// All three entry sources (pasted text, uploaded file content, remote URL)
// converge on one decode-validate-replace step; nothing reaches the
// playlist store until the shape checks pass.
type ImportService struct {
	playlist *PlaylistService
	fetch    fetcher.Interface
	settings driven.SettingsStore
	logger   *logging.Logger
}

// NewImportService creates an ImportService.
func NewImportService(playlistSvc *PlaylistService, fetch fetcher.Interface, settings driven.SettingsStore, logger *logging.Logger) *ImportService {
	return &ImportService{
		playlist: playlistSvc,
		fetch:    fetch,
		settings: settings,
		logger:   logger,
	}
}

// ImportText parses raw JSON text (pasted or read from an uploaded file),
// validates the document shape and replaces the playlist wholesale.
// On any error the existing document is left untouched.
func (s *ImportService) ImportText(ctx context.Context, text string) (playlist.Document, error) {
	doc, err := playlist.DecodeDocument([]byte(text))
	if err != nil {
		return playlist.Document{}, err
	}

	if err := s.playlist.Replace(ctx, doc); err != nil {
		return playlist.Document{}, err
	}

	s.logger.Info("playlist imported", map[string]interface{}{
		"channels":   len(doc.Channels),
		"categories": len(doc.Categories),
	})
	return doc, nil
}

// ImportURL fetches JSON from a remote URL (direct first, then through the
// relay) and runs the same validate-and-replace step. The URL is
// remembered as the default for the next session before the fetch is
// attempted, matching how an operator retries a flaky link.
func (s *ImportService) ImportURL(ctx context.Context, rawURL string) (playlist.Document, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return playlist.Document{}, fmt.Errorf("import URL cannot be empty")
	}

	if err := s.settings.SaveLastImportURL(ctx, rawURL); err != nil {
		// A convenience, not a gate.
		s.logger.Warn("failed to remember import URL", map[string]interface{}{
			"error": err.Error(),
		})
	}

	body, err := s.fetch.Fetch(ctx, rawURL)
	if err != nil {
		return playlist.Document{}, fmt.Errorf("fetching playlist from URL: %w", err)
	}

	return s.ImportText(ctx, string(body))
}

// LastImportURL returns the URL remembered by the previous ImportURL call,
// or "" when none has been saved.
func (s *ImportService) LastImportURL(ctx context.Context) (string, error) {
	return s.settings.LastImportURL(ctx)
}
