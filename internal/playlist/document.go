package playlist

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Document is the full playlist document: the persisted value, the import
// payload and the export payload all share this exact shape. Both slices
// are order-significant. Field order here fixes the key order of the
// exported JSON: channels first, then categories.
type Document struct {
	Channels   []Channel  `json:"channels"`
	Categories []Category `json:"categories"`
}

// EmptyDocument is the state of a first run: both collections present and
// empty.
func EmptyDocument() Document {
	return Document{Channels: []Channel{}, Categories: []Category{}}
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	out := Document{
		Channels:   make([]Channel, len(d.Channels)),
		Categories: make([]Category, len(d.Categories)),
	}
	for i, ch := range d.Channels {
		out.Channels[i] = ch.Clone()
	}
	copy(out.Categories, d.Categories)
	return out
}

// OrphanedChannels counts channels whose category reference does not match
// any existing category ID. Advisory only: dangling references are legal.
func (d Document) OrphanedChannels() int {
	ids := make(map[string]struct{}, len(d.Categories))
	for _, c := range d.Categories {
		ids[c.ID] = struct{}{}
	}

	orphans := 0
	for _, ch := range d.Channels {
		if _, ok := ids[ch.Category]; !ok {
			orphans++
		}
	}
	return orphans
}

// DecodeDocument is the single gate between untrusted external JSON and
// the store. It checks that the payload is an object and that "channels"
// and "categories" are lists, each failure with its own error; element
// shapes are decoded as-is without deeper validation.
func DecodeDocument(data []byte) (Document, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return Document{}, ErrNotAnObject
		}
		return Document{}, fmt.Errorf("parsing JSON: %w", err)
	}
	if raw == nil {
		// "null" decodes into a nil map without error.
		return Document{}, ErrNotAnObject
	}

	channelsRaw, ok := raw["channels"]
	if !ok || !isJSONArray(channelsRaw) {
		return Document{}, ErrMissingChannels
	}
	categoriesRaw, ok := raw["categories"]
	if !ok || !isJSONArray(categoriesRaw) {
		return Document{}, ErrMissingCategories
	}

	doc := EmptyDocument()
	if err := json.Unmarshal(channelsRaw, &doc.Channels); err != nil {
		return Document{}, fmt.Errorf("decoding channels: %w", err)
	}
	if err := json.Unmarshal(categoriesRaw, &doc.Categories); err != nil {
		return Document{}, fmt.Errorf("decoding categories: %w", err)
	}
	if doc.Channels == nil {
		doc.Channels = []Channel{}
	}
	if doc.Categories == nil {
		doc.Categories = []Category{}
	}
	return doc, nil
}

// EncodeDocument serializes the document as the pretty-printed JSON text
// consumed by the playback application.
func EncodeDocument(doc Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "    ")
}

func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '['
}
