package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"aquabio-be/internal/cache"
	"aquabio-be/internal/config"
	"aquabio-be/internal/controllers"
	"aquabio-be/internal/database"
	"aquabio-be/internal/jwt"
	"aquabio-be/internal/middleware"
	"aquabio-be/internal/repository"
	"aquabio-be/internal/service"
	"aquabio-be/internal/storage"
	"aquabio-be/pkg/logging"
)

func main() {
	logging.Setup()

	// Load configuration
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET is required")
		os.Exit(1)
	}

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run database migrations
	if err := database.RunMigrations(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database ready")

	// Initialize Redis cache (optional - continue if Redis is unavailable)
	var cacheClient cache.Cache
	if cfg.RedisURL != "" {
		cacheClient, err = cache.NewRedisCache(cfg.RedisURL)
		if err != nil {
			slog.Warn("failed to connect to Redis, continuing without cache", "error", err)
			cacheClient = nil
		} else {
			slog.Info("connected to Redis cache")
		}
	}

	// Image storage: local disk, or explicit rejection on an ephemeral
	// filesystem target so uploads are never silently dropped.
	var imageStore storage.ImageStore
	var diskStore *storage.DiskStore
	if cfg.EphemeralFS {
		imageStore = storage.NewEphemeralStore()
		slog.Warn("ephemeral filesystem: file uploads disabled, image URLs only")
	} else {
		diskStore, err = storage.NewDiskStore(cfg.UploadDir)
		if err != nil {
			slog.Error("failed to prepare upload directory", "error", err)
			os.Exit(1)
		}
		imageStore = diskStore
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	biotaRepo := repository.NewBiotaRepository(db)

	// Initialize JWT service
	jwtService := jwt.NewJWTService(
		cfg.JWTSecret,
		time.Duration(cfg.JWTTTLHours)*time.Hour,
	)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService)
	biotaService := service.NewBiotaService(biotaRepo, userRepo, imageStore, cacheClient, cfg.MaxUploadBytes)

	// Initialize controllers
	authController := controllers.NewAuthController(authService)
	biotaController := controllers.NewBiotaController(biotaService)
	qrcodeController := controllers.NewQRCodeController(biotaService, cfg.FrontendURL)

	// Initialize rate limiters
	generalRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	authRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitAuthRPS), cfg.RateLimitAuthBurst)
	uploadRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitUploadRPS), cfg.RateLimitUploadBurst)

	// Create a Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Metrics())

	// Root API index
	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "AquaBiodiversa API",
			"version": "1.0.0",
			"endpoints": gin.H{
				"health": "/api/health",
				"auth": gin.H{
					"register": "POST /api/auth/register",
					"login":    "POST /api/auth/login",
					"me":       "GET /api/auth/me",
				},
				"biota": gin.H{
					"getAll":  "GET /api/biota",
					"getById": "GET /api/biota/:id",
					"create":  "POST /api/biota",
					"update":  "PUT /api/biota/:id",
					"delete":  "DELETE /api/biota/:id",
				},
			},
		})
	})

	// Health check endpoint (no rate limiting)
	router.GET("/api/health", func(c *gin.Context) {
		environment := "local"
		if cfg.EphemeralFS {
			environment = "ephemeral"
		}
		if err := db.Ping(); err != nil {
			c.JSON(500, gin.H{
				"status":      "ERROR",
				"database":    "disconnected",
				"environment": environment,
				"timestamp":   time.Now().UTC().Format(time.RFC3339),
			})
			return
		}
		c.JSON(200, gin.H{
			"status":      "OK",
			"database":    "connected",
			"environment": environment,
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
		})
	})

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Uploaded images (disk deployments only)
	if diskStore != nil {
		router.Static("/uploads", diskStore.Dir())
	}

	// API routes with general rate limiting
	api := router.Group("/api")
	api.Use(generalRateLimiter.LimitMiddleware())
	{
		// Auth routes with stricter rate limiting
		auth := api.Group("/auth")
		auth.Use(authRateLimiter.LimitMiddleware())
		{
			auth.POST("/register", authController.Register)
			auth.POST("/login", authController.Login)
			auth.GET("/me", middleware.AuthMiddleware(jwtService), authController.Me)
			auth.GET("/users", middleware.AuthMiddleware(jwtService), authController.ListUsers)
		}

		// Public catalog reads
		api.GET("/biota", biotaController.List)
		api.GET("/biota/:id", biotaController.Get)
		api.GET("/biota/:id/qrcode", qrcodeController.GenerateEntryQRCode)

		// Mutations require a valid token; uploads get a stricter limit
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(jwtService))
		{
			protected.POST("/biota", uploadRateLimiter.LimitMiddleware(), biotaController.Create)
			protected.PUT("/biota/:id", uploadRateLimiter.LimitMiddleware(), biotaController.Update)
			protected.DELETE("/biota/:id", biotaController.Delete)
		}
	}

	slog.Info("server starting", "port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}
