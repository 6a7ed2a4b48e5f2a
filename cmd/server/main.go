package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/makeey/notsofluffy.pl-sub000/config"
	"github.com/makeey/notsofluffy.pl-sub000/internal/app/controller"
	"github.com/makeey/notsofluffy.pl-sub000/internal/app/repository"
	"github.com/makeey/notsofluffy.pl-sub000/internal/app/service"
	"github.com/makeey/notsofluffy.pl-sub000/internal/db"
	"github.com/makeey/notsofluffy.pl-sub000/internal/middleware"
	"github.com/makeey/notsofluffy.pl-sub000/internal/router"
	"github.com/makeey/notsofluffy.pl-sub000/internal/scheduler"
	"github.com/makeey/notsofluffy.pl-sub000/internal/storage"
	"github.com/makeey/notsofluffy.pl-sub000/pkg/logger"
	"github.com/makeey/notsofluffy.pl-sub000/pkg/redis"
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

	logger.Info("Starting notsofluffy API server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Initialize Redis (refresh token store)
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Fatal("Failed to initialize Redis", err)
	}
	defer func() {
		if err := redis.Close(); err != nil {
			logger.Error("Failed to close Redis connection", err)
		}
	}()

	// Initialize repositories
	gdb := db.GetDB()
	userRepo := repository.NewUserRepository(gdb)
	addressRepo := repository.NewAddressRepository(gdb)
	categoryRepo := repository.NewCategoryRepository(gdb)
	materialRepo := repository.NewMaterialRepository(gdb)
	colorRepo := repository.NewColorRepository(gdb)
	sizeRepo := repository.NewSizeRepository(gdb)
	serviceRepo := repository.NewAdditionalServiceRepository(gdb)
	imageRepo := repository.NewImageRepository(gdb)
	productRepo := repository.NewProductRepository(gdb)
	variantRepo := repository.NewVariantRepository(gdb)
	discountRepo := repository.NewDiscountRepository(gdb)
	cartRepo := repository.NewCartRepository(gdb)
	orderRepo := repository.NewOrderRepository(gdb)
	reviewRepo := repository.NewReviewRepository(gdb)

	// Initialize services
	authService := service.NewAuthService(userRepo, redis.NewRefreshStore(), cfg.JWT)
	addressService := service.NewAddressService(addressRepo)
	userService := service.NewUserService(userRepo)
	catalogService := service.NewCatalogService(categoryRepo, materialRepo, colorRepo, sizeRepo, serviceRepo)
	productService := service.NewProductService(productRepo, variantRepo, categoryRepo, imageRepo, serviceRepo)
	discountService := service.NewDiscountService(discountRepo)
	cartService := service.NewCartService(cartRepo, productRepo, sizeRepo, serviceRepo, discountRepo)
	orderService := service.NewOrderService(orderRepo, cartRepo, discountRepo)
	reviewService := service.NewReviewService(reviewRepo)

	// Initialize storage
	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Initialize controllers
	authController := controller.NewAuthController(authService, cartService)
	addressController := controller.NewAddressController(addressService)
	productController := controller.NewProductController(productService, catalogService)
	reviewController := controller.NewReviewController(reviewService)
	cartController := controller.NewCartController(cartService)
	orderController := controller.NewOrderController(orderService)
	adminCatalogController := controller.NewAdminCatalogController(catalogService)
	adminProductController := controller.NewAdminProductController(productService)
	adminDiscountController := controller.NewAdminDiscountController(discountService)
	adminUserController := controller.NewAdminUserController(userService)
	adminOrderController := controller.NewAdminOrderController(orderService)
	adminReviewController := controller.NewAdminReviewController(reviewService)
	uploadController := controller.NewUploadController(s3Storage, imageRepo, cfg.Upload.MaxImageSize)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Start the discount expiry scheduler
	discountScheduler := scheduler.NewDiscountScheduler(discountService)
	if err := discountScheduler.Start(); err != nil {
		logger.Error("Failed to start discount scheduler", err)
	}
	defer discountScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		authController,
		addressController,
		productController,
		reviewController,
		cartController,
		orderController,
		adminCatalogController,
		adminProductController,
		adminDiscountController,
		adminUserController,
		adminOrderController,
		adminReviewController,
		uploadController,
		authMiddleware,
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
