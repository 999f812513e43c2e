package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/devhardik21/RootStudy/internal/ai"
	"github.com/devhardik21/RootStudy/internal/assets"
	"github.com/devhardik21/RootStudy/internal/config"
	"github.com/devhardik21/RootStudy/internal/gcp"
	"github.com/devhardik21/RootStudy/internal/handlers"
	"github.com/devhardik21/RootStudy/internal/server"
	"github.com/devhardik21/RootStudy/internal/services"
	"github.com/devhardik21/RootStudy/internal/store"
)

func main() {
	// --- Set up structured logging ---
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(); err != nil {
		slog.Error("Fatal error.", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Long-lived clients, created once at startup and shared by all requests.
	// A database connection failure here deliberately terminates the process.
	firestoreClient, err := gcp.NewFirestoreClient(ctx, cfg.ProjectID)
	if err != nil {
		return err
	}
	defer firestoreClient.Close()

	storageClient, err := gcp.NewStorageClient(ctx)
	if err != nil {
		return err
	}
	defer storageClient.Close()

	assetStore := assets.NewGCSStore(storageClient, cfg.AssetsBucket)
	st := store.New(firestoreClient, store.Collections{
		Groups: cfg.GroupsCollection,
		Pages:  cfg.PagesCollection,
		Pdfs:   cfg.PdfCollection,
	})

	// AI providers are optional at startup: a missing key disables the
	// endpoint, which then reports a service error per request.
	vertexClient, err := gcp.NewVertexClient(ctx, cfg.ProjectID, cfg.VertexAIRegion)
	if err != nil {
		slog.Warn("Vertex AI client unavailable, /api/text disabled.", "error", err)
	} else {
		defer vertexClient.Close()
	}

	videoSuggester, err := ai.NewVideoSuggester(ctx, cfg.YouTubeAPIKey)
	if err != nil {
		slog.Warn("YouTube client unavailable, /api/youtube disabled.", "error", err)
	}

	publisher := services.NewPublisher(st, assetStore)
	pdfService := services.NewPdfService(st, assetStore, services.NewPdfcpuEngine(), cfg.MaxPdfFileSize, cfg.MaxPdfPages)
	imageGenerator := ai.NewImageGenerator(cfg.ImageAPIURL, cfg.ImageAPIKey, cfg.ImageModel, assetStore)

	router := server.NewRouter(server.RouterConfig{
		Groups: handlers.NewGroupHandler(st),
		Pages:  handlers.NewPageHandler(publisher),
		Pdf:    handlers.NewPdfHandler(pdfService),
		AI:     handlers.NewAIHandler(ai.NewTextGenerator(vertexClient), imageGenerator, videoSuggester),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	slog.Info("Server listening.", "port", cfg.Port)

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}

	slog.Info("Shutting down.")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
