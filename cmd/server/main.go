package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/orgdir/orgdir/internal/config"
	"github.com/orgdir/orgdir/internal/database"
	"github.com/orgdir/orgdir/internal/docs"
	"github.com/orgdir/orgdir/internal/handlers"
	"github.com/orgdir/orgdir/internal/models"
	"github.com/orgdir/orgdir/internal/query"
	"github.com/orgdir/orgdir/internal/services"
	"github.com/orgdir/orgdir/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	db, err := database.NewDB(cfg.Database)
	if err != nil {
		logger.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Search field registry
	registry := query.NewRegistry()
	models.RegisterSearchTables(registry)

	// Services
	userService := services.NewUserService(db.DB, registry)
	companyService := services.NewCompanyService(db.DB, registry)

	// Documentation sources are optional; the server runs without them.
	var slicer *docs.Slicer
	if s, err := docs.NewSlicer(cfg.DocsPath); err != nil {
		logger.Warn("api docs unavailable", "path", cfg.DocsPath, "error", err)
	} else {
		slicer = s
	}
	var examples *docs.Examples
	if e, err := docs.NewExamples(cfg.ExamplesPath); err != nil {
		logger.Warn("example payloads unavailable", "path", cfg.ExamplesPath, "error", err)
	} else {
		examples = e
	}

	// Handlers
	userHandler := handlers.NewUserHandler(userService)
	companyHandler := handlers.NewCompanyHandler(companyService)
	docsHandler := handlers.NewDocsHandler(slicer, examples)

	router := handlers.NewRouter(cfg, userHandler, companyHandler, docsHandler)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}
	logger.Info("server stopped")
}
