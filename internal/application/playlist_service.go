package application

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/guiabox/playlist-manager/internal/playlist"
	"github.com/guiabox/playlist-manager/internal/port/driven"
	"github.com/guiabox/playlist-manager/logging"
)

// PlaylistService owns the playlist document as the single source of
// truth. Every mutation persists the full document through the store
// before the in-memory value is swapped, so a crash leaves storage
// consistent with the last completed mutation.
//
// Structural validity is the caller's job: editors pre-validate drafts and
// never hand this service a malformed entity. The one check the service
// does enforce is ID uniqueness on add, because IDs are immutable after
// creation and updates are never re-checked.
type PlaylistService struct {
	mu     sync.Mutex
	doc    playlist.Document
	store  driven.DocumentStore
	logger *logging.Logger
}

// NewPlaylistService loads the prior document from the store. A store
// with no document yields the empty one; a document that fails to parse
// is a fatal error, so a corrupt store is never silently overwritten by
// the next mutation.
func NewPlaylistService(ctx context.Context, store driven.DocumentStore, logger *logging.Logger) (*PlaylistService, error) {
	doc, err := store.LoadDocument(ctx)
	switch {
	case errors.Is(err, playlist.ErrNoDocument):
		logger.Info("no stored playlist, starting from empty document", nil)
		doc = playlist.EmptyDocument()
	case err != nil:
		return nil, fmt.Errorf("loading playlist document: %w", err)
	default:
		logger.Info("playlist loaded", map[string]interface{}{
			"channels":   len(doc.Channels),
			"categories": len(doc.Categories),
		})
	}

	return &PlaylistService{doc: doc, store: store, logger: logger}, nil
}

// Document returns a deep copy of the current document.
func (s *PlaylistService) Document() playlist.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// Categories returns a copy of the current category sequence.
func (s *PlaylistService) Categories() []playlist.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]playlist.Category, len(s.doc.Categories))
	copy(out, s.doc.Categories)
	return out
}

// Channels returns a deep copy of the current channel sequence.
func (s *PlaylistService) Channels() []playlist.Channel {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]playlist.Channel, len(s.doc.Channels))
	for i, ch := range s.doc.Channels {
		out[i] = ch.Clone()
	}
	return out
}

// AddCategory appends a category. Returns playlist.ErrCategoryExists when
// the ID is already taken, leaving the collection unchanged.
func (s *PlaylistService) AddCategory(ctx context.Context, c playlist.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.doc.Categories {
		if existing.ID == c.ID {
			return playlist.ErrCategoryExists
		}
	}

	next := s.doc.Clone()
	next.Categories = append(next.Categories, c)
	return s.commit(ctx, next)
}

// UpdateCategory replaces the category whose ID matches. The ID itself is
// immutable; a missing ID is a no-op.
func (s *PlaylistService) UpdateCategory(ctx context.Context, id string, c playlist.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.doc.Clone()
	for i, existing := range next.Categories {
		if existing.ID == id {
			c.ID = id
			next.Categories[i] = c
			return s.commit(ctx, next)
		}
	}
	return nil
}

// DeleteCategory removes the category with the given ID; a missing ID is
// a no-op. Channels referencing it keep their now-dangling reference.
func (s *PlaylistService) DeleteCategory(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.doc.Clone()
	kept := make([]playlist.Category, 0, len(next.Categories))
	for _, existing := range next.Categories {
		if existing.ID != id {
			kept = append(kept, existing)
		}
	}
	if len(kept) == len(next.Categories) {
		return nil
	}
	next.Categories = kept
	return s.commit(ctx, next)
}

// ReorderCategories replaces the category sequence wholesale. The caller
// is trusted to supply a permutation of the current elements.
func (s *PlaylistService) ReorderCategories(ctx context.Context, categories []playlist.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.doc.Clone()
	next.Categories = make([]playlist.Category, len(categories))
	copy(next.Categories, categories)
	return s.commit(ctx, next)
}

// AddChannel appends a channel. Returns playlist.ErrChannelExists when
// the ID is already taken, leaving the collection unchanged.
func (s *PlaylistService) AddChannel(ctx context.Context, ch playlist.Channel) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.doc.Channels {
		if existing.ID == ch.ID {
			return playlist.ErrChannelExists
		}
	}

	next := s.doc.Clone()
	next.Channels = append(next.Channels, ch.Clone())
	return s.commit(ctx, next)
}

// UpdateChannel replaces the channel whose ID matches. The ID itself is
// immutable; a missing ID is a no-op.
func (s *PlaylistService) UpdateChannel(ctx context.Context, id string, ch playlist.Channel) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.doc.Clone()
	for i, existing := range next.Channels {
		if existing.ID == id {
			ch.ID = id
			next.Channels[i] = ch.Clone()
			return s.commit(ctx, next)
		}
	}
	return nil
}

// DeleteChannel removes the channel with the given ID; a missing ID is a
// no-op.
func (s *PlaylistService) DeleteChannel(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.doc.Clone()
	kept := make([]playlist.Channel, 0, len(next.Channels))
	for _, existing := range next.Channels {
		if existing.ID != id {
			kept = append(kept, existing)
		}
	}
	if len(kept) == len(next.Channels) {
		return nil
	}
	next.Channels = kept
	return s.commit(ctx, next)
}

// ReorderChannels replaces the channel sequence wholesale. The caller is
// trusted to supply a permutation of the current elements.
func (s *PlaylistService) ReorderChannels(ctx context.Context, channels []playlist.Channel) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.doc.Clone()
	next.Channels = make([]playlist.Channel, len(channels))
	for i, ch := range channels {
		next.Channels[i] = ch.Clone()
	}
	return s.commit(ctx, next)
}

// Replace swaps in an entirely new document. Used by import only, after
// the import boundary has validated the shape.
func (s *PlaylistService) Replace(ctx context.Context, doc playlist.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(ctx, doc.Clone())
}

// commit persists next and, only on success, makes it the current
// document. Callers must hold s.mu.
func (s *PlaylistService) commit(ctx context.Context, next playlist.Document) error {
	if err := s.store.SaveDocument(ctx, next); err != nil {
		return fmt.Errorf("persisting playlist: %w", err)
	}
	s.doc = next
	return nil
}
