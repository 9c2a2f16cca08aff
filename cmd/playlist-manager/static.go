package main

import (
	"bytes"
	"compress/gzip"
	"embed"
	"io/fs"
	"log"
	"mime"
	"net/http"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
)

//go:embed static/*
var staticFS embed.FS

// asset holds a minified and gzipped version of a static file.
type asset struct {
	content     []byte
	gzipped     []byte
	contentType string
}

var (
	assetOnce  sync.Once
	assetCache = map[string]*asset{}
)

// initAssets processes all embedded static files at startup.
func initAssets() {
	assetOnce.Do(func() {
		m := minify.New()
		m.AddFunc("text/css", css.Minify)
		m.AddFunc("text/html", html.Minify)
		m.AddFunc("text/javascript", js.Minify)
		m.AddFunc("application/javascript", js.Minify)

		err := fs.WalkDir(staticFS, "static", func(filePath string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}

			data, err := staticFS.ReadFile(filePath)
			if err != nil {
				return err
			}

			contentType := mime.TypeByExtension(filepath.Ext(filePath))
			if contentType == "" {
				contentType = "application/octet-stream"
			}

			servePath := strings.TrimPrefix(filePath, "static/")

			minified := data
			mediaType := strings.Split(contentType, ";")[0]
			if _, _, fn := m.Match(mediaType); fn != nil {
				var buf bytes.Buffer
				if err := m.Minify(mediaType, &buf, bytes.NewReader(data)); err != nil {
					log.Printf("[static] failed to minify %s: %v (using original)", servePath, err)
				} else {
					minified = buf.Bytes()
				}
			}

			var gzBuf bytes.Buffer
			gz, _ := gzip.NewWriterLevel(&gzBuf, gzip.BestCompression)
			gz.Write(minified)
			gz.Close()

			assetCache[servePath] = &asset{
				content:     minified,
				gzipped:     gzBuf.Bytes(),
				contentType: contentType,
			}
			return nil
		})
		if err != nil {
			log.Printf("[static] warning: failed to process embedded assets: %v", err)
		}

		log.Printf("[static] initialized %d embedded assets", len(assetCache))
	})
}

// serveAsset serves embedded, minified and gzipped assets, falling back
// to index.html for unknown paths.
func serveAsset(w http.ResponseWriter, r *http.Request) {
	urlPath := path.Clean(r.URL.Path)
	if urlPath == "/" || urlPath == "" {
		urlPath = "index.html"
	} else {
		urlPath = strings.TrimPrefix(urlPath, "/")
	}

	a, ok := assetCache[urlPath]
	if !ok {
		a, ok = assetCache["index.html"]
		if !ok {
			http.NotFound(w, r)
			return
		}
	}

	w.Header().Set("Content-Type", a.contentType)
	w.Header().Set("Vary", "Accept-Encoding")

	if strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") && len(a.gzipped) > 0 {
		w.Header().Set("Content-Encoding", "gzip")
		w.Write(a.gzipped)
		return
	}

	w.Write(a.content)
}
