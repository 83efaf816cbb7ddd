package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/doodlepad/doodlepad/internal/config"
	"github.com/doodlepad/doodlepad/internal/export"
	"github.com/doodlepad/doodlepad/internal/raster"
	"github.com/doodlepad/doodlepad/internal/session"
	"github.com/doodlepad/doodlepad/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))

	fonts := raster.DefaultFonts()
	if cfg.StickerFontPath != "" {
		fonts, err = raster.LoadFonts(cfg.StickerFontPath)
		if err != nil {
			slog.Error("load sticker font", "error", err, "path", cfg.StickerFontPath)
			os.Exit(1)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := session.NewHub()
	go hub.Run(ctx)

	exportHandler := export.NewHandler(export.HandlerConfig{
		DefaultScale: cfg.ExportScale,
		MaxScale:     cfg.MaxExportScale,
		Fonts:        fonts,
	})
	sessionHandler := session.NewHandler(hub, exportHandler, session.Config{
		Width:          cfg.CanvasWidth,
		Height:         cfg.CanvasHeight,
		ClearKeepsRedo: cfg.ClearKeepsRedo,
		Timing: session.Timing{
			WriteTimeout: cfg.WSWriteTimeout,
			PingInterval: cfg.WSPingInterval,
		},
	}, cfg.Origins())
	webHandler := web.NewHandler(cfg.StaticDir)

	r := mux.NewRouter()

	r.Use(web.Recovery)
	r.Use(web.Logger)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Stateless export of a drawing posted as JSON
	r.HandleFunc("/export/{format}", exportHandler.ExportDrawing).Methods("POST")

	// Live sessions
	r.HandleFunc("/ws/session", sessionHandler.ServeWS)
	r.HandleFunc("/sessions/{id}/drawing", sessionHandler.Drawing).Methods("GET")
	r.HandleFunc("/sessions/{id}/export.{format}", sessionHandler.Export).Methods("GET")

	r.PathPrefix("/").Handler(webHandler.Serve()).Methods("GET")

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr, "static", cfg.StaticDir)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
