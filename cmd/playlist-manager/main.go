package main

import (
	"context"
	"encoding/json"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"go.etcd.io/bbolt"

	"github.com/guiabox/playlist-manager/config"
	"github.com/guiabox/playlist-manager/internal/adapter/driven"
	"github.com/guiabox/playlist-manager/internal/adapter/driver"
	"github.com/guiabox/playlist-manager/internal/application"
	"github.com/guiabox/playlist-manager/internal/epg"
	"github.com/guiabox/playlist-manager/internal/fetcher"
	"github.com/guiabox/playlist-manager/logging"
)

func main() {
	// Optional .env file for local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := logging.New(logging.ParseLogLevel(cfg.LogLevel), "[playlist-manager]")
	logger.Info("starting playlist-manager", map[string]interface{}{
		"address":     cfg.HTTP.Address,
		"port":        cfg.HTTP.Port,
		"storage":     cfg.Storage.Path,
		"preview_url": cfg.EPG.PreviewURL,
		"relay_url":   cfg.Fetch.RelayURL,
		"log_level":   cfg.LogLevel,
	})

	// Open BoltDB
	db, err := bbolt.Open(cfg.Storage.Path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("error closing database: %v", err)
		}
	}()

	// Driven adapters
	store, err := driven.NewPlaylistBoltDBStore(db)
	if err != nil {
		log.Fatalf("failed to create playlist store: %v", err)
	}

	fetchChain := fetcher.NewChain(cfg.Fetch.Timeout, cfg.Fetch.RelayURL, logger)
	previewClient := epg.NewClient(cfg.EPG.PreviewURL, fetchChain)

	// Application services
	playlistService, err := application.NewPlaylistService(context.Background(), store, logger)
	if err != nil {
		log.Fatalf("failed to initialize playlist: %v", err)
	}
	importService := application.NewImportService(playlistService, fetchChain, store, logger)
	exportService := application.NewExportService(playlistService)
	previewService := application.NewPreviewService(previewClient, cfg.EPG.Debounce)

	// HTTP handlers
	categoryHandler := driver.NewCategoryHTTPHandler(playlistService)
	channelHandler := driver.NewChannelHTTPHandler(playlistService)
	importHandler := driver.NewImportHTTPHandler(importService)
	exportHandler := driver.NewExportHTTPHandler(exportService)
	epgHandler := driver.NewEPGHTTPHandler(previewService)
	slugHandler := driver.NewSlugHTTPHandler()

	// Router: API under /api, static UI for everything else
	router := mux.NewRouter()
	api := router.PathPrefix("/api").Subrouter()
	api.Use(logging.Middleware(logger))
	categoryHandler.Register(api)
	channelHandler.Register(api)
	importHandler.Register(api)
	exportHandler.Register(api)
	epgHandler.Register(api)
	slugHandler.Register(api)
	api.HandleFunc("/status", handleStatus(playlistService)).Methods(http.MethodGet)

	initAssets()
	router.PathPrefix("/").Handler(http.HandlerFunc(serveAsset))

	server := &http.Server{
		Addr:         net.JoinHostPort(cfg.HTTP.Address, cfg.HTTP.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", map[string]interface{}{"addr": server.Addr})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown signal received, shutting down gracefully", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", map[string]interface{}{"error": err.Error()})
	}

	logger.Info("server stopped", nil)
}

// statusResponse feeds the shell sidebar counters.
type statusResponse struct {
	Channels   int `json:"channels"`
	Categories int `json:"categories"`
}

func handleStatus(playlistService *application.PlaylistService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc := playlistService.Document()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(statusResponse{
			Channels:   len(doc.Channels),
			Categories: len(doc.Categories),
		})
	}
}
