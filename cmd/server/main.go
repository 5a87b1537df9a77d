package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kpsunited/kps-admin-backend/config"
	"github.com/kpsunited/kps-admin-backend/internal/app/controller"
	"github.com/kpsunited/kps-admin-backend/internal/app/repository"
	"github.com/kpsunited/kps-admin-backend/internal/app/service"
	"github.com/kpsunited/kps-admin-backend/internal/db"
	"github.com/kpsunited/kps-admin-backend/internal/middleware"
	"github.com/kpsunited/kps-admin-backend/internal/router"
	"github.com/kpsunited/kps-admin-backend/internal/scheduler"
	"github.com/kpsunited/kps-admin-backend/internal/storage"
	"github.com/kpsunited/kps-admin-backend/internal/websocket"
	"github.com/kpsunited/kps-admin-backend/pkg/logger"
	"github.com/kpsunited/kps-admin-backend/pkg/redis"
	"github.com/kpsunited/kps-admin-backend/pkg/util"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting KPS Admin Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"backend":     cfg.Storage.Backend,
		"log_level":   logLevel,
	})

	// Select the storage backend
	backend, cleanup, err := buildBackend(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize storage backend", err)
	}
	defer cleanup()

	// Initialize repositories
	storeRepo := repository.NewStoreRepository(backend)
	vendorRepo := repository.NewVendorRepository(backend)
	commRepo := repository.NewCommunicationRepository(backend)
	queryRepo := repository.NewQueryRepository(backend)
	docRepo := repository.NewDocumentRepository(backend)
	promoRepo := repository.NewPromotionRepository(backend)
	termsRepo := repository.NewTermsRepository(backend)
	sessionRepo := repository.NewSessionRepository(backend)

	// Change events stream to open consoles over WebSocket
	hub := websocket.NewHub()
	go hub.Run()

	ids := util.NewIDGenerator()

	// Initialize services
	authService := service.NewAuthService(
		sessionRepo,
		cfg.Session.JWTSecret,
		cfg.Session.Duration,
		cfg.Session.AdminPasswordHash,
	)
	storeService := service.NewStoreService(storeRepo, hub)
	vendorService := service.NewVendorService(vendorRepo, ids, hub)
	commService := service.NewCommunicationService(commRepo, vendorRepo, ids, hub)
	queryService := service.NewQueryService(queryRepo, hub)
	docService := service.NewDocumentService(docRepo, ids, hub)
	promoService := service.NewPromotionService(promoRepo, ids, hub)
	termsService := service.NewTermsService(termsRepo, hub)

	var archive *storage.ReportArchive
	if cfg.S3.Bucket != "" {
		archive = storage.NewReportArchive(
			cfg.S3.Region,
			cfg.S3.Bucket,
			cfg.S3.AccessKeyID,
			cfg.S3.SecretAccessKey,
			cfg.S3.BaseURL,
		)
	}
	exportService := service.NewExportService(storeService, archive)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	storeController := controller.NewStoreController(storeService)
	vendorController := controller.NewVendorController(vendorService, commService)
	queryController := controller.NewQueryController(queryService)
	documentController := controller.NewDocumentController(docService)
	promotionController := controller.NewPromotionController(promoService)
	termsController := controller.NewTermsController(termsService)
	exportController := controller.NewExportController(exportService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(authService)

	// Background sweep for expired sessions
	sessionScheduler := scheduler.NewSessionScheduler(authService, cfg.Session.SweepSchedule)
	if err := sessionScheduler.Start(); err != nil {
		logger.Fatal("Failed to start session scheduler", err)
	}
	defer sessionScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		authController,
		storeController,
		vendorController,
		queryController,
		documentController,
		promotionController,
		termsController,
		exportController,
		authMiddleware,
		hub,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}

// buildBackend wires the configured persistence substrate. The returned
// cleanup must run at shutdown.
func buildBackend(cfg *config.Config) (storage.Backend, func(), error) {
	noop := func() {}

	switch cfg.Storage.Backend {
	case "memory":
		return storage.NewMemoryBackend(cfg.Storage.QuotaBytes), noop, nil

	case "file":
		backend, err := storage.NewFileBackend(cfg.Storage.FilePath, cfg.Storage.QuotaBytes)
		if err != nil {
			return nil, noop, err
		}
		return backend, noop, nil

	case "redis":
		if err := redis.Init(&cfg.Storage.Redis); err != nil {
			return nil, noop, err
		}
		backend := storage.NewRedisBackend(redis.GetClient(), cfg.Storage.Redis.KeyPrefix)
		return backend, func() {
			if err := redis.Close(); err != nil {
				logger.Error("Failed to close Redis connection", err)
			}
		}, nil

	case "postgres":
		if err := db.Initialize(&cfg.Storage.Postgres); err != nil {
			return nil, noop, err
		}
		backend, err := storage.NewGormBackend(db.GetDB())
		if err != nil {
			return nil, noop, err
		}
		return backend, func() {
			if err := db.Close(); err != nil {
				logger.Error("Failed to close database connection", err)
			}
		}, nil

	default:
		return nil, noop, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
