package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/arteliving/arteliving-backend/config"
	"github.com/arteliving/arteliving-backend/internal/app/controller"
	"github.com/arteliving/arteliving-backend/internal/app/repository"
	"github.com/arteliving/arteliving-backend/internal/app/service"
	"github.com/arteliving/arteliving-backend/internal/db"
	"github.com/arteliving/arteliving-backend/internal/middleware"
	"github.com/arteliving/arteliving-backend/internal/router"
	"github.com/arteliving/arteliving-backend/internal/scheduler"
	"github.com/arteliving/arteliving-backend/internal/storage"
	"github.com/arteliving/arteliving-backend/internal/websocket"
	"github.com/arteliving/arteliving-backend/pkg/logger"
	"github.com/arteliving/arteliving-backend/pkg/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logLevel := "info"
	logFormat := "json"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
		logFormat = "console"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      logFormat,
		EnableColor: cfg.Server.Environment == "development",
	})

	logger.Info("Starting ARTE LIVING Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Redis is required for token revocation and the settings cache.
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Fatal("Failed to initialize Redis", err)
	}
	defer func() {
		if err := redis.Close(); err != nil {
			logger.Error("Failed to close Redis connection", err)
		}
	}()

	// Repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	attributeRepo := repository.NewAttributeRepository(db.GetDB())
	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	bannerRepo := repository.NewBannerRepository(db.GetDB())
	cartRepo := repository.NewCartRepository(db.GetDB())
	wishlistRepo := repository.NewWishlistRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())
	settingRepo := repository.NewSettingRepository(db.GetDB())

	// Live order feed for the back-office
	hub := websocket.NewHub()
	go hub.Run()

	// Services
	authService := service.NewAuthService(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	productService := service.NewProductService(productRepo, attributeRepo)
	attributeService := service.NewAttributeService(attributeRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	bannerService := service.NewBannerService(bannerRepo)
	cartService := service.NewCartService(cartRepo, productRepo)
	wishlistService := service.NewWishlistService(wishlistRepo, productRepo)
	orderService := service.NewOrderService(orderRepo, cartRepo, productRepo, hub)
	reportService := service.NewReportService(orderRepo, productRepo)
	settingService := service.NewSettingService(settingRepo)

	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Controllers
	authController := controller.NewAuthController(authService, cfg.JWT.RefreshTokenExpiry)
	productController := controller.NewProductController(productService)
	attributeController := controller.NewAttributeController(attributeService)
	categoryController := controller.NewCategoryController(categoryService)
	bannerController := controller.NewBannerController(bannerService)
	cartController := controller.NewCartController(cartService)
	wishlistController := controller.NewWishlistController(wishlistService)
	orderController := controller.NewOrderController(orderService)
	reportController := controller.NewReportController(reportService)
	settingController := controller.NewSettingController(settingService)
	uploadController := controller.NewUploadController(s3Storage)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Nightly revenue snapshots and best-seller recompute
	reportScheduler := scheduler.NewReportScheduler(reportService)
	if err := reportScheduler.Start(); err != nil {
		logger.Fatal("Failed to start report scheduler", err)
	}
	defer reportScheduler.Stop()

	r := router.NewRouter(
		authController,
		productController,
		attributeController,
		categoryController,
		bannerController,
		cartController,
		wishlistController,
		orderController,
		reportController,
		settingController,
		uploadController,
		authMiddleware,
		hub,
		cfg,
	)
	engine := r.Setup()

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
