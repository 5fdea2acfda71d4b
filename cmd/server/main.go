package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"

	"potatoapi/docs"
	"potatoapi/internal/auth"
	"potatoapi/internal/cache"
	"potatoapi/internal/config"
	"potatoapi/internal/db"
	"potatoapi/internal/handler"
	"potatoapi/internal/logger"
	"potatoapi/internal/repository"
	"potatoapi/internal/router"
	"potatoapi/internal/service"
)

// @title Potato API
// @version 1.0
// @description User accounts, credential login, API key validation and random photos.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	if err := run(); err != nil {
		slog.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(gormDB); err != nil {
			log.Error("close database", "error", err)
		}
	}()

	if cfg.AutoMigrate {
		if err := db.Migrate(gormDB); err != nil {
			return err
		}
		log.Info("database schema migrated")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cacheClient.Ping(ctx); err != nil {
		log.Warn("redis unreachable, logins will fail until it is back", "addr", cfg.RedisAddr, "error", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	apiKeyRepo := repository.NewAPIKeyRepository(gormDB)
	photoRepo := repository.NewPhotoRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	userService := service.NewUserService(userRepo)
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	apiKeyService := service.NewAPIKeyService(apiKeyRepo, userRepo)
	photoService := service.NewPhotoService(photoRepo)

	e := echo.New()
	router.Register(e, log, router.Handlers{
		User:  handler.NewUserHandler(userService),
		Auth:  handler.NewAuthHandler(authService, apiKeyService),
		Photo: handler.NewPhotoHandler(photoService),
		Health: handler.NewHealthHandler(func(ctx context.Context) error {
			return db.Ping(ctx, gormDB)
		}),
	})

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	addr := ":" + cfg.ServerPort
	serverErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", addr, "swagger", "http://"+docs.SwaggerInfo.Host+"/swagger/index.html")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("server stopped")
	return nil
}
