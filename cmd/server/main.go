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

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/AnshRaj112/devconnect-backend/internal/config"
	"github.com/AnshRaj112/devconnect-backend/internal/database"
	"github.com/AnshRaj112/devconnect-backend/internal/handlers"
	"github.com/AnshRaj112/devconnect-backend/internal/middleware"
	"github.com/AnshRaj112/devconnect-backend/internal/observability"
	"github.com/AnshRaj112/devconnect-backend/internal/routes"
	"github.com/AnshRaj112/devconnect-backend/internal/services"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found")
	}
	cfg := config.Load()

	logger := observability.NewLogger(os.Stdout, cfg.Environment, cfg.LogLevel)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.JWTSecret == config.DefaultJWTSecret {
		logger.Warn("⚠️  WARNING: JWT_SECRET not set. Using the development default.")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to MongoDB
	client, db, err := database.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Error("Failed to connect to MongoDB", "error", err)
		logger.Info("Troubleshooting: check that the URI is correct, the cluster is running and your IP is allowed")
		return err
	}
	defer func() {
		if err := database.Disconnect(client); err != nil {
			logger.Warn("⚠️  MongoDB disconnect failed", "error", err)
		}
	}()

	if err := database.EnsureIndexes(ctx, db); err != nil {
		logger.Warn("⚠️  WARNING: failed to ensure MongoDB indexes", "error", err)
	} else {
		logger.Info("✅ MongoDB indexes ensured")
	}

	tokens, err := services.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		return err
	}

	// Redis is optional: without it, tokens of deleted accounts stay valid until they expire.
	var (
		revoker     services.Revoker
		revocations middleware.RevocationChecker
	)
	if cfg.RedisURI != "" {
		rdb, err := database.ConnectRedis(ctx, cfg.RedisURI)
		if err != nil {
			logger.Warn("⚠️  Redis unavailable, token revocation disabled", "error", err)
		} else {
			defer func(rdb *redis.Client) { _ = database.DisconnectRedis(rdb) }(rdb)
			store := services.NewRevocationStore(rdb, tokens.TTL())
			revoker, revocations = store, store
		}
	} else {
		logger.Info("REDIS_URI not set, token revocation disabled")
	}

	users := database.NewMongoUsers(db)
	profiles := database.NewMongoProfiles(db)
	posts := database.NewMongoPosts(db)

	h := handlers.New(handlers.Deps{
		Auth:     services.NewAuthService(users, tokens),
		Profiles: services.NewProfileService(profiles, users, posts, revoker),
		Posts:    services.NewPostService(posts, users),
		GitHub: services.NewGitHubClient(services.GitHubConfig{
			BaseURL:      cfg.GitHubAPIURL,
			Token:        cfg.GitHubToken,
			ClientID:     cfg.GitHubClientID,
			ClientSecret: cfg.GitHubSecret,
		}),
		StoreTimeout: cfg.RequestTimeout,
	})

	router := routes.NewRouter(routes.Options{
		Handler:        h,
		Verifier:       tokens,
		Revocations:    revocations,
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         logger,
		Production:     cfg.IsProduction(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("🚀 DevConnect backend running", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
