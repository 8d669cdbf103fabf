package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/jobpost/internal/api"
	"github.com/dgallion1/jobpost/internal/cleaner"
	"github.com/dgallion1/jobpost/internal/config"
	"github.com/dgallion1/jobpost/internal/parser"
	"github.com/dgallion1/jobpost/internal/posting"
	"github.com/dgallion1/jobpost/internal/stats"
	"github.com/dgallion1/jobpost/internal/vocab"
)

func main() {
	cfg := config.Load()

	level, _ := config.ParseLevel(cfg.LogLevel)
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	v := vocab.Default()
	if cfg.VocabularyFile != "" {
		loaded, err := vocab.Load(cfg.VocabularyFile)
		if err != nil {
			log.Error("load vocabulary", "path", cfg.VocabularyFile, "error", err)
			os.Exit(1)
		}
		v = loaded
		log.Info("loaded vocabulary", "path", cfg.VocabularyFile, "entries", len(v.Entries()))
	}

	rec := stats.NewRecorder(cfg.StatsWindow)
	metrics := api.NewMetrics()
	p := posting.New(
		posting.WithVocabulary(v),
		posting.WithCleaner(cleaner.New(cleaner.Options{FoldWidth: cfg.FoldWidth})),
		posting.WithLogger(log.With("component", "posting")),
		posting.WithObserver(rec),
		posting.WithObserver(metrics),
		posting.WithReaderOptions(parser.Options{PDFFallbackPdftotext: cfg.PDFFallbackPdftotext}),
	)

	srv := api.NewServer(p, rec, metrics, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	if cfg.APIKey == "" {
		log.Warn("JOBPOST_API_KEY not set, api endpoints are unauthenticated")
	}
	log.Info("starting jobpost", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
