package application

import (
	"context"
	"strings"
	"testing"

	"github.com/guiabox/playlist-manager/internal/playlist"
)

func TestExportService_Export(t *testing.T) {
	ctx := context.Background()

	t.Run("renders pretty JSON with the fixed filename", func(t *testing.T) {
		playlistSvc := newTestService(t, &mockDocumentStore{})
		if err := playlistSvc.AddCategory(ctx, playlist.Category{ID: "sports", Name: "Sports"}); err != nil {
			t.Fatal(err)
		}
		ch := playlist.Channel{ID: "espn", Name: "ESPN", URL: []string{"http://a"}, Category: "sports"}
		if err := playlistSvc.AddChannel(ctx, ch); err != nil {
			t.Fatal(err)
		}
		svc := NewExportService(playlistSvc)

		export, err := svc.Export()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if export.Filename != "playlist_data.json" {
			t.Errorf("expected filename playlist_data.json, got %q", export.Filename)
		}
		text := string(export.JSON)
		if !strings.Contains(text, "\n    \"channels\"") {
			t.Errorf("expected four-space indented JSON, got:\n%s", text)
		}
		if len(export.Warnings) != 0 {
			t.Errorf("expected no warnings for a consistent document, got %v", export.Warnings)
		}

		decoded, err := playlist.DecodeDocument(export.JSON)
		if err != nil {
			t.Fatalf("export should decode back: %v", err)
		}
		if len(decoded.Channels) != 1 || len(decoded.Categories) != 1 {
			t.Errorf("unexpected round-tripped document: %+v", decoded)
		}
	})

	t.Run("warns on empty lists", func(t *testing.T) {
		svc := NewExportService(newTestService(t, &mockDocumentStore{}))

		export, err := svc.Export()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(export.Warnings) != 2 {
			t.Fatalf("expected two warnings, got %v", export.Warnings)
		}
		if export.Warnings[0] != "the channel list is empty" {
			t.Errorf("unexpected first warning: %q", export.Warnings[0])
		}
		if export.Warnings[1] != "the category list is empty" {
			t.Errorf("unexpected second warning: %q", export.Warnings[1])
		}
	})

	t.Run("counts channels with dangling category references", func(t *testing.T) {
		playlistSvc := newTestService(t, &mockDocumentStore{})
		if err := playlistSvc.AddCategory(ctx, playlist.Category{ID: "sports", Name: "Sports"}); err != nil {
			t.Fatal(err)
		}
		for _, ch := range []playlist.Channel{
			{ID: "a", Name: "A", URL: []string{"http://a"}, Category: "sports"},
			{ID: "b", Name: "B", URL: []string{"http://b"}, Category: "gone"},
			{ID: "c", Name: "C", URL: []string{"http://c"}, Category: "also-gone"},
		} {
			if err := playlistSvc.AddChannel(ctx, ch); err != nil {
				t.Fatal(err)
			}
		}
		svc := NewExportService(playlistSvc)

		export, err := svc.Export()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(export.Warnings) != 1 {
			t.Fatalf("expected one warning, got %v", export.Warnings)
		}
		want := "2 channel(s) reference a category id that does not exist"
		if export.Warnings[0] != want {
			t.Errorf("expected %q, got %q", want, export.Warnings[0])
		}
	})
}
