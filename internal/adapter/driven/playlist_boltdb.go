package driven

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/guiabox/playlist-manager/internal/playlist"
)

const (
	playlistBucket = "playlist"
	settingsBucket = "settings"

	documentKey      = "document"
	lastImportURLKey = "last_import_url"
)

// PlaylistBoltDBStore implements the DocumentStore and SettingsStore ports
// using BoltDB. The whole playlist document lives under a single key as
// JSON text, mirroring the single-key layout of the consuming player's
// local storage.
type PlaylistBoltDBStore struct {
	db *bbolt.DB
}

// NewPlaylistBoltDBStore creates a new BoltDB-backed store.
// It initializes the required buckets if they don't exist.
func NewPlaylistBoltDBStore(db *bbolt.DB) (*PlaylistBoltDBStore, error) {
	if db == nil {
		return nil, errors.New("db cannot be nil")
	}

	err := db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(playlistBucket)); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists([]byte(settingsBucket))
		return err
	})
	if err != nil {
		return nil, err
	}

	return &PlaylistBoltDBStore{db: db}, nil
}

// SaveDocument persists the full document as one JSON value. The write is
// synchronous: when it returns nil the mutation is on disk.
func (s *PlaylistBoltDBStore) SaveDocument(ctx context.Context, doc playlist.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(playlistBucket))
		if bucket == nil {
			return errors.New("playlist bucket not found")
		}
		return bucket.Put([]byte(documentKey), data)
	})
}

// LoadDocument reads the persisted document back. A missing key yields
// playlist.ErrNoDocument; a value that no longer parses is surfaced as an
// error so the caller can refuse to start instead of clobbering data.
func (s *PlaylistBoltDBStore) LoadDocument(ctx context.Context) (playlist.Document, error) {
	if err := ctx.Err(); err != nil {
		return playlist.Document{}, err
	}

	var doc playlist.Document

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(playlistBucket))
		if bucket == nil {
			return errors.New("playlist bucket not found")
		}

		data := bucket.Get([]byte(documentKey))
		if data == nil {
			return playlist.ErrNoDocument
		}

		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("stored playlist document is malformed: %w", err)
		}
		return nil
	})
	if err != nil {
		return playlist.Document{}, err
	}

	if doc.Channels == nil {
		doc.Channels = []playlist.Channel{}
	}
	if doc.Categories == nil {
		doc.Categories = []playlist.Category{}
	}
	return doc, nil
}

// SaveLastImportURL remembers the most recently used import URL.
func (s *PlaylistBoltDBStore) SaveLastImportURL(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(settingsBucket))
		if bucket == nil {
			return errors.New("settings bucket not found")
		}
		return bucket.Put([]byte(lastImportURLKey), []byte(url))
	})
}

// LastImportURL returns the remembered import URL, or "" when none has
// been saved yet.
func (s *PlaylistBoltDBStore) LastImportURL(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var url string
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(settingsBucket))
		if bucket == nil {
			return errors.New("settings bucket not found")
		}
		url = string(bucket.Get([]byte(lastImportURLKey)))
		return nil
	})
	return url, err
}
