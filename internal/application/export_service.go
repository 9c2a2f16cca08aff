package application

import (
	"fmt"

	"github.com/guiabox/playlist-manager/internal/playlist"
)

// ExportFilename is the fixed name of the downloaded playlist file.
const ExportFilename = "playlist_data.json"

// Export is a rendered snapshot of the current document: the exact pretty
// JSON text offered for copy and download, plus advisory data-quality
// warnings. Warnings never block the export.
type Export struct {
	Filename string
	JSON     []byte
	Warnings []string
}

// ExportService serializes the current in-memory document for the
// consuming playback application.
type ExportService struct {
	playlist *PlaylistService
}

// NewExportService creates an ExportService.
func NewExportService(playlistSvc *PlaylistService) *ExportService {
	return &ExportService{playlist: playlistSvc}
}

// Export renders the current document. The three warnings are independent
// and computed against the in-memory state: empty channel list, empty
// category list, and the count of channels referencing a category ID that
// does not exist.
func (s *ExportService) Export() (Export, error) {
	doc := s.playlist.Document()

	data, err := playlist.EncodeDocument(doc)
	if err != nil {
		return Export{}, fmt.Errorf("encoding playlist: %w", err)
	}

	var warnings []string
	if len(doc.Channels) == 0 {
		warnings = append(warnings, "the channel list is empty")
	}
	if len(doc.Categories) == 0 {
		warnings = append(warnings, "the category list is empty")
	}
	if orphans := doc.OrphanedChannels(); orphans > 0 {
		warnings = append(warnings, fmt.Sprintf("%d channel(s) reference a category id that does not exist", orphans))
	}

	return Export{
		Filename: ExportFilename,
		JSON:     data,
		Warnings: warnings,
	}, nil
}
