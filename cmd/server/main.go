package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "govsite/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"govsite/internal/auth"
	"govsite/internal/cache"
	"govsite/internal/config"
	"govsite/internal/db"
	"govsite/internal/handler"
	"govsite/internal/logging"
	"govsite/internal/metrics"
	"govsite/internal/repository"
	"govsite/internal/router"
	"govsite/internal/scheduler"
	"govsite/internal/seed"
	"govsite/internal/service"
	"govsite/internal/upload"
)

const shutdownTimeout = 10 * time.Second

// @title Government Agency Content API
// @version 1.0
// @description Public content API for a municipal agency: news, services, documents, pages, map layers and the contact inbox.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.Development())
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStorage(cfg, logger)
	if err != nil {
		return err
	}

	admin := seed.Admin{Username: cfg.AdminUsername, Password: cfg.AdminPassword, Email: cfg.AdminEmail}
	if _, err := seed.Apply(ctx, store, admin, logger); err != nil {
		return err
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer func() { _ = cacheClient.Close() }()
	if err := cacheClient.Ping(ctx); err != nil {
		logger.Warn("redis unreachable: cache reads miss and logins fail until it recovers", zap.String("addr", cfg.RedisAddr), zap.Error(err))
	}

	var uploader upload.Uploader
	if cfg.UploadsEnabled() {
		s3Client, err := upload.NewS3Client(ctx, cfg)
		if err != nil {
			return err
		}
		uploader = upload.NewS3Uploader(s3Client, cfg.S3Bucket, cfg.S3Endpoint, cfg.S3PublicURL, cfg.MaxUploadBytes)
		logger.Info("document uploads enabled", zap.String("bucket", cfg.S3Bucket))
	}

	// Auth
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Services
	newsService := service.NewNewsService(store.News(), cacheClient, cfg.CacheTTL)
	catalogService := service.NewCatalogService(store.Services(), cacheClient, cfg.CacheTTL)
	documentService := service.NewDocumentService(store.Documents(), uploader, cacheClient, cfg.CacheTTL)
	pageService := service.NewPageService(store.Pages(), cacheClient, cfg.CacheTTL)
	mapDataService := service.NewMapDataService(store.MapData(), cacheClient, cfg.CacheTTL)
	contactService := service.NewContactService(store.Contacts())
	userService := service.NewUserService(store.Users(), cacheClient)
	authService := service.NewAuthService(store.Users(), jwtService, tokenStore)

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadHeaderTimeout = 10 * time.Second

	router.Register(e, router.Handlers{
		News:      handler.NewNewsHandler(newsService, logger),
		Services:  handler.NewServiceHandler(catalogService, logger),
		Documents: handler.NewDocumentHandler(documentService, logger),
		Pages:     handler.NewPageHandler(pageService, logger),
		MapData:   handler.NewMapDataHandler(mapDataService, logger),
		Contacts:  handler.NewContactHandler(contactService, logger),
		Auth:      handler.NewAuthHandler(authService, userService, logger),
	}, router.Options{
		AdminAuth: cfg.AdminAuth,
		JWT:       jwtService,
		Logger:    logger,
	})

	jobs := scheduler.New(logger, contactService, metrics.ContactsUnread.Set)
	if err := jobs.Start(cfg.CronSchedule); err != nil {
		return err
	}
	defer jobs.Stop()

	logger.Info("swagger documentation available", zap.String("url", swaggerURL(cfg.SwaggerHost)))

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening",
			zap.String("port", cfg.ServerPort),
			zap.String("storage", cfg.StorageBackend),
			zap.Bool("admin_auth", cfg.AdminAuth),
		)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// openStorage picks the backend named by STORAGE_BACKEND.
func openStorage(cfg *config.Config, logger *zap.Logger) (repository.Storage, error) {
	if cfg.StorageBackend == config.BackendMemory {
		logger.Info("using in-memory storage")
		return repository.NewMemoryStorage(), nil
	}

	gormDB, err := db.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return nil, err
	}
	if cfg.ResetDB {
		logger.Warn("RESET_DB=true detected, dropping all tables")
	}
	if err := db.Migrate(gormDB, cfg.ResetDB, repository.Models()...); err != nil {
		return nil, err
	}
	logger.Info("using database storage", zap.String("driver", cfg.DBDriver))
	return repository.NewGormStorage(gormDB), nil
}

func swaggerURL(host string) string {
	switch {
	case host == "":
		return "http://localhost:5000/swagger/index.html"
	case strings.HasPrefix(host, "http://"), strings.HasPrefix(host, "https://"):
		return strings.TrimSuffix(host, "/") + "/swagger/index.html"
	default:
		return "http://" + host + "/swagger/index.html"
	}
}
