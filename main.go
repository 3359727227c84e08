package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "net/http/pprof"

	"github.com/obioma/drugscan-api/catalog"
	"github.com/obioma/drugscan-api/config"
	"github.com/obioma/drugscan-api/extractor"
	"github.com/obioma/drugscan-api/handlers"
	"github.com/obioma/drugscan-api/health"
	"github.com/obioma/drugscan-api/interfaces"
	"github.com/obioma/drugscan-api/logging"
	"github.com/obioma/drugscan-api/matcher"
	"github.com/obioma/drugscan-api/safety"
	"github.com/obioma/drugscan-api/scheduler"
	"github.com/obioma/drugscan-api/server"
	"github.com/obioma/drugscan-api/validation"
)

func main() {
	// Read the env variables from the working directory, falling back to
	// the executable directory for packaged deployments
	if err := godotenv.Load(); err != nil {
		ex, exErr := os.Executable()
		if exErr == nil {
			if chErr := os.Chdir(filepath.Dir(ex)); chErr == nil {
				godotenv.Load()
			}
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Configuration error:", err)
		os.Exit(1)
	}

	logging.InitLogger(cfg.LogDir)

	// Catalog sources: local snapshot first, remote service second, the
	// built-in seed as last resort
	container := catalog.NewContainer()

	var snapshot interfaces.SnapshotStore
	if cfg.CatalogDBPath != "" {
		store, err := catalog.NewSQLiteStore(cfg.CatalogDBPath)
		if err != nil {
			logging.Warn("Failed to open catalog snapshot store", "path", cfg.CatalogDBPath, "error", err)
		} else {
			snapshot = store
			defer store.Close()
		}
	}

	var remote interfaces.CatalogSource
	if cfg.CatalogRemoteURL != "" {
		remote = catalog.NewRemoteSource(cfg.CatalogRemoteURL)
	}

	cat := catalog.New(container, snapshot, remote)

	// Pipeline components
	fieldExtractor := extractor.NewFieldExtractor()
	fuzzyMatcher := matcher.NewFuzzyMatcher(container)
	classifier := safety.NewPregnancyClassifier(fuzzyMatcher)
	validator := validation.NewInputValidator()
	healthChecker := health.NewHealthChecker(container)

	handler := handlers.NewHTTPHandler(cat, fieldExtractor, fuzzyMatcher, classifier, validator, healthChecker)

	// Initial catalog load plus twice-daily refreshes
	sched := scheduler.NewScheduler(cat)
	if err := sched.Start(); err != nil {
		logging.Error("Failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	srv := server.NewServer(cfg, handler)

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Start the server in a goroutine
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Block until a signal is received
	<-quit

	// Create a context with timeout for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Shutdown error", "error", err)
	}
}
