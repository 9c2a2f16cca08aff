package driven

import (
	"context"

	"github.com/guiabox/playlist-manager/internal/playlist"
)

// DocumentStore defines the driven port for playlist persistence. The
// document is always written whole: every committed mutation results in
// exactly one full-document write, never an incremental one.
type DocumentStore interface {
	// SaveDocument persists the full document, replacing any previous value.
	SaveDocument(ctx context.Context, doc playlist.Document) error

	// LoadDocument returns the persisted document. Returns
	// playlist.ErrNoDocument when nothing has been persisted yet.
	LoadDocument(ctx context.Context) (playlist.Document, error)
}

// SettingsStore persists small operator conveniences kept outside the
// playlist document.
type SettingsStore interface {
	// SaveLastImportURL remembers the most recently used import URL.
	SaveLastImportURL(ctx context.Context, url string) error

	// LastImportURL returns the remembered import URL, or "" when none
	// has been saved.
	LastImportURL(ctx context.Context) (string, error)
}
