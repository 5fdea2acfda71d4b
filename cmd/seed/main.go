package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"potatoapi/internal/config"
	"potatoapi/internal/db"
	"potatoapi/internal/logger"
	"potatoapi/internal/photosource"
	"potatoapi/internal/repository"
	"potatoapi/internal/service"
)

// urlSource yields the photo URLs to import.
type urlSource interface {
	URLs(ctx context.Context) ([]string, error)
}

func main() {
	source := flag.String("source", "", `photo source: "s3" or an http(s) URL serving [{"url": ...}]`)
	apiKeyEmail := flag.String("api-key-email", "", "issue an API key for the user with this email")
	flag.Parse()

	if err := run(*source, *apiKeyEmail); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(source, apiKeyEmail string) error {
	if source == "" && apiKeyEmail == "" {
		flag.Usage()
		return errors.New("nothing to do: pass -source and/or -api-key-email")
	}

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
	defer closeWithLog(log, "close database", func() error { return db.Close(gormDB) })

	if cfg.AutoMigrate {
		if err := db.Migrate(gormDB); err != nil {
			return err
		}
	}

	ctx := context.Background()

	if source != "" {
		src, err := newSource(ctx, source, cfg.S3)
		if err != nil {
			return err
		}
		urls, err := src.URLs(ctx)
		if err != nil {
			return err
		}
		log.Info("fetched photo urls", "source", source, "count", len(urls))

		photoService := service.NewPhotoService(repository.NewPhotoRepository(gormDB))
		created, err := photoService.ImportPhotos(ctx, urls)
		if err != nil {
			return err
		}
		log.Info("photos imported", "created", created, "skipped", len(urls)-created)
	}

	if apiKeyEmail != "" {
		apiKeyService := service.NewAPIKeyService(
			repository.NewAPIKeyRepository(gormDB),
			repository.NewUserRepository(gormDB),
		)
		key, err := apiKeyService.IssueAPIKey(ctx, apiKeyEmail)
		if err != nil {
			return fmt.Errorf("issue api key for %s: %w", apiKeyEmail, err)
		}
		log.Info("api key issued", "email", apiKeyEmail)
		fmt.Println(key)
	}
	return nil
}

func newSource(ctx context.Context, source string, s3Cfg config.S3Config) (urlSource, error) {
	switch {
	case source == "s3":
		client, err := photosource.NewS3Client(ctx, s3Cfg)
		if err != nil {
			return nil, err
		}
		return photosource.NewS3Lister(client, s3Cfg.Bucket, s3Cfg.Prefix, s3Cfg.PhotoBaseURL), nil
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return photosource.NewFeed(nil, source), nil
	default:
		return nil, fmt.Errorf("unknown source %q", source)
	}
}

func closeWithLog(log *slog.Logger, msg string, closeFn func() error) {
	if err := closeFn(); err != nil {
		log.Error(msg, "error", err)
	}
}
