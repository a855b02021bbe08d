package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"explorer/internal/config"
	"explorer/internal/handler"
	"explorer/internal/middleware"
	"explorer/internal/repository/postgres"
	"explorer/internal/service"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create pgx connection pool - the single process-lifetime store handle
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected")

	// Create repositories
	tables := postgres.NewTableNames(cfg.TablePrefix)
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	folderRepo := postgres.NewFolderRepository(repoConfig)
	searchRepo := postgres.NewSearchRepository(repoConfig)

	// Create services
	folderService := service.NewFolderService(folderRepo, logger)
	searchService := service.NewSearchService(searchRepo, logger)

	// Create handlers
	folderHandler := handler.NewFolderHandler(folderService, logger)
	searchHandler := handler.NewSearchHandler(searchService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", handler.HealthCheck)
	mux.HandleFunc("GET /api/v1/health", handler.HealthCheck)

	// Folder routes
	mux.HandleFunc("GET /api/v1/folders/tree", folderHandler.GetTree)
	mux.HandleFunc("GET /api/v1/folders/root", folderHandler.GetRoots)
	mux.HandleFunc("GET /api/v1/folders/{id}/children", folderHandler.GetChildren)
	mux.HandleFunc("GET /api/v1/folders/{id}/path", folderHandler.GetPath)
	mux.HandleFunc("GET /api/v1/folders/{id}/items", folderHandler.GetItems)

	// Search route
	mux.HandleFunc("GET /api/v1/search", searchHandler.Search)

	// Keep the error envelope consistent for unknown routes
	mux.HandleFunc("/", handler.NotFound)

	// Build middleware chain - applied in reverse order (they wrap each other)
	var h http.Handler = mux
	h = middleware.Recovery(logger)(h)
	h = middleware.RequestLog(logger)(h)

	// CORS - outermost so pre-flight requests are answered directly
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
