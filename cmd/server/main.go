package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"tilboard/internal/auth"
	"tilboard/internal/config"
	"tilboard/internal/defaults"
	"tilboard/internal/handler"
	"tilboard/internal/middleware"
	"tilboard/internal/repository/postgres"
	"tilboard/internal/service"
	serviceauth "tilboard/internal/service/auth"

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

	// Token provider for signup/login and request authentication
	tokens, err := auth.NewJWTProvider(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatalf("Failed to create token provider: %v", err)
	}

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	// Create table names and schema
	tables := postgres.NewTableNames(cfg.TablePrefix)
	if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	userRepo := postgres.NewUserRepository(repoConfig)
	projectRepo := postgres.NewProjectRepository(repoConfig)
	boardRepo := postgres.NewBoardRepository(repoConfig)
	columnRepo := postgres.NewColumnRepository(repoConfig)
	cardRepo := postgres.NewCardRepository(repoConfig)
	tagRepo := postgres.NewTagRepository(repoConfig)
	cardTagRepo := postgres.NewCardTagRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Board defaults (default columns, tag color palette)
	registry, err := defaults.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load board defaults: %v", err)
	}

	// Ownership-based authorization
	authorizer := serviceauth.NewOwnerResolver(projectRepo, boardRepo, columnRepo, cardRepo, tagRepo)

	// Create services
	userService := service.NewUserService(userRepo, tokens, logger)
	projectService := service.NewProjectService(projectRepo, userRepo, boardRepo, columnRepo, cardRepo, tagRepo, cardTagRepo, authorizer, txManager, registry, logger)
	boardService := service.NewBoardService(boardRepo, columnRepo, cardRepo, cardTagRepo, authorizer, txManager, registry, logger)
	columnService := service.NewColumnService(columnRepo, cardRepo, cardTagRepo, authorizer, txManager, logger)
	cardService := service.NewCardService(cardRepo, columnRepo, cardTagRepo, tagRepo, authorizer, txManager, logger)
	tagService := service.NewTagService(tagRepo, cardTagRepo, authorizer, txManager, registry, logger)
	cardTagService := service.NewCardTagService(cardTagRepo, cardRepo, tagRepo, columnRepo, boardRepo, authorizer, logger)

	logger.Info("services initialized")

	// Create handlers
	healthHandler := handler.NewHealthHandler(pool)
	userHandler := handler.NewUserHandler(userService, logger)
	projectHandler := handler.NewProjectHandler(projectService, logger)
	boardHandler := handler.NewBoardHandler(boardService, logger)
	columnHandler := handler.NewColumnHandler(columnService, logger)
	cardHandler := handler.NewCardHandler(cardService, cardTagService, logger)
	tagHandler := handler.NewTagHandler(tagService, registry, logger)

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", healthHandler.Check)

	// Auth routes
	mux.HandleFunc("POST /api/auth/signup", userHandler.SignUp)
	mux.HandleFunc("POST /api/auth/login", userHandler.Login)
	mux.HandleFunc("GET /api/users/me", userHandler.Me)

	// Project routes
	mux.HandleFunc("GET /api/projects", projectHandler.ListProjects)
	mux.HandleFunc("POST /api/projects", projectHandler.CreateProject)
	mux.HandleFunc("GET /api/projects/{id}", projectHandler.GetProject)
	mux.HandleFunc("PATCH /api/projects/{id}", projectHandler.UpdateProject)
	mux.HandleFunc("DELETE /api/projects/{id}", projectHandler.DeleteProject)

	// Project-scoped board, card and tag routes
	mux.HandleFunc("POST /api/projects/{id}/board", boardHandler.CreateBoard)
	mux.HandleFunc("GET /api/projects/{id}/board", boardHandler.GetBoardByProject)
	mux.HandleFunc("GET /api/projects/{id}/cards", cardHandler.ListCards)
	mux.HandleFunc("POST /api/projects/{id}/tags", tagHandler.CreateTag)
	mux.HandleFunc("GET /api/projects/{id}/tags", tagHandler.ListTags)

	// Board routes
	mux.HandleFunc("GET /api/boards/{id}", boardHandler.GetBoard)
	mux.HandleFunc("PATCH /api/boards/{id}", boardHandler.UpdateBoard)
	mux.HandleFunc("DELETE /api/boards/{id}", boardHandler.DeleteBoard)
	mux.HandleFunc("GET /api/boards/{id}/columns", columnHandler.ListColumns)
	mux.HandleFunc("POST /api/boards/{id}/columns", columnHandler.CreateColumn)
	mux.HandleFunc("PUT /api/boards/{id}/columns/positions", columnHandler.ReorderColumns)

	// Column routes
	mux.HandleFunc("PATCH /api/columns/{id}", columnHandler.UpdateColumn)
	mux.HandleFunc("DELETE /api/columns/{id}", columnHandler.DeleteColumn)
	mux.HandleFunc("POST /api/columns/{id}/cards", cardHandler.CreateCard)

	// Card routes
	mux.HandleFunc("GET /api/cards/{id}", cardHandler.GetCard)
	mux.HandleFunc("PATCH /api/cards/{id}", cardHandler.UpdateCard)
	mux.HandleFunc("PUT /api/cards/{id}/move", cardHandler.MoveCard)
	mux.HandleFunc("DELETE /api/cards/{id}", cardHandler.DeleteCard)
	mux.HandleFunc("GET /api/cards/{id}/tags", cardHandler.ListTags)
	mux.HandleFunc("POST /api/cards/{id}/tags/{tagID}", cardHandler.AddTag)
	mux.HandleFunc("DELETE /api/cards/{id}/tags/{tagID}", cardHandler.RemoveTag)

	// Tag routes
	mux.HandleFunc("GET /api/tag-colors", tagHandler.ListColors)
	mux.HandleFunc("PATCH /api/tags/{id}", tagHandler.UpdateTag)
	mux.HandleFunc("DELETE /api/tags/{id}", tagHandler.DeleteTag)

	// Build middleware chain
	var httpHandler http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	httpHandler = middleware.Auth(tokens)(httpHandler)
	httpHandler = middleware.Recovery(logger)(httpHandler)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	httpHandler = corsHandler.Handler(httpHandler)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
