package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"recipebox/internal/cache"
	"recipebox/internal/config"
	"recipebox/internal/http"
	"recipebox/internal/remote"
	"recipebox/internal/service"
	"recipebox/internal/storage"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	// Create repository instances
	recipeRepo := storage.NewRecipeRepo(db)
	categoryRepo := storage.NewCategoryRepo(db)

	// Seed the category cache from disk. An empty table leaves the cache
	// minimal (sentinel only) until the first successful category sync.
	categories := cache.New()
	stored, err := categoryRepo.ListAll(context.Background())
	if err != nil {
		log.Fatalf("Failed to load categories from disk: %v", err)
	}
	if len(stored) > 0 {
		categories.BulkLoad(stored)
	}
	slog.Info("Category cache seeded", "count", len(stored))

	// Create the remote client and sync coordinators
	client := remote.New(cfg.RemoteBaseURL, cfg.HTTPTimeout)
	recipeSync := service.NewRecipeSync(client, recipeRepo, categories)
	categorySync := service.NewCategorySync(client, categoryRepo, categories)
	catalog := service.NewCatalogService(recipeRepo, categories)
	slog.Info("Sync services initialized", "remote", cfg.RemoteBaseURL)

	// Create router with dependencies
	deps := &http.Deps{
		Catalog:      catalog,
		RecipeSync:   recipeSync,
		CategorySync: categorySync,
		DB:           db,
	}
	router := http.NewRouter(deps)

	// Start API server
	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
