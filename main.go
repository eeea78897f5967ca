package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/shopswift/storefront/controllers"
	"github.com/shopswift/storefront/database"
	"github.com/shopswift/storefront/logger"
	"github.com/shopswift/storefront/repository"
	"github.com/shopswift/storefront/routes"
	"github.com/shopswift/storefront/sender"
	"github.com/shopswift/storefront/services"
)

func main() {
	// Load .env file (optional, falls back to system env)
	_ = godotenv.Load()

	cfg, err := LoadConfig()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.Initialize(cfg.Env)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	// --- 1. Initialization ---

	mongoClient, db, err := database.Connect(cfg.MongoURL, cfg.MongoDB)
	if err != nil {
		zap.L().Fatal("Failed to connect to MongoDB", zap.Error(err))
	}

	indexCtx, indexCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.EnsureIndexes(indexCtx, db); err != nil {
		zap.L().Warn("Failed to ensure indexes", zap.Error(err))
	}
	indexCancel()

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		zap.L().Warn("Failed to parse REDIS_URL, falling back to default", zap.Error(err))
		redisOpts = &redis.Options{Addr: "localhost:6379"}
	}
	redisClient := redis.NewClient(redisOpts)

	var emailSender sender.EmailSender
	if cfg.SMTPConfigured() {
		emailSender, err = sender.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
		if err != nil {
			zap.L().Fatal("Failed to initialize SMTP sender", zap.Error(err))
		}
	} else {
		zap.L().Warn("SMTP not configured, using mock email sender")
		emailSender = sender.NewLogSender()
	}

	imageService, err := services.NewImageService(cfg.CloudinaryURL, "ecommerce/products")
	if err != nil {
		zap.L().Fatal("Failed to initialize image service", zap.Error(err))
	}
	if !imageService.Enabled() {
		zap.L().Warn("Cloudinary not configured, image uploads disabled")
	}

	// --- 2. Dependency injection ---

	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	userRepo := repository.NewUserRepository(db)

	productService := services.NewProductService(productRepo, imageService)
	orderService := services.NewOrderService(orderRepo, productRepo, userRepo, emailSender)
	reviewService := services.NewReviewService(reviewRepo, productRepo, userRepo)
	adminService := services.NewAdminService(orderRepo, productRepo, userRepo)
	authService := services.NewAuthService(userRepo, cfg.JWTSecret)

	cache := controllers.NewCacheManager(redisClient)

	productController := controllers.NewProductController(productService, cache)
	orderController := controllers.NewOrderController(orderService, cache)
	reviewController := controllers.NewReviewController(reviewService, cache)
	adminController := controllers.NewAdminController(adminService)
	authController := controllers.NewAuthController(authService)

	// --- 3. HTTP server & middleware ---

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())

	r.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	routes.RegisterRoutes(r, cfg.JWTSecret,
		authController, productController, orderController, reviewController, adminController)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	// --- 4. Graceful shutdown ---

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		zap.L().Info("Storefront API starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Fatal("Server forced to shutdown", zap.Error(err))
	}

	if err := redisClient.Close(); err != nil {
		zap.L().Error("Failed to close Redis", zap.Error(err))
	}
	if err := database.Close(mongoClient); err != nil {
		zap.L().Error("Failed to close MongoDB", zap.Error(err))
	}

	zap.L().Info("Storefront API stopped gracefully")
}
