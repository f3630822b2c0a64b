package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	_ "cineview-backend/docs"
	"cineview-backend/internal/config"
	"cineview-backend/internal/database"
	"cineview-backend/internal/handlers"
	"cineview-backend/internal/middleware"
	"cineview-backend/internal/repository"
	"cineview-backend/internal/routes"
	"cineview-backend/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	fiberSwagger "github.com/swaggo/fiber-swagger"
)

// @title CineView API
// @version 1.0
// @description Social film review backend: catalog with OMDb import, reviews with voting and moderation, follow feed, watchlists, and editorial articles
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://github.com/yourusername/cineview-backend
// @contact.email support@example.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8010
// @BasePath /api/v1
// @schemes http https

func main() {
	// Load environment variables
	loadEnvFile()

	// Load configuration
	cfg := config.Load()

	// Setup logger
	log := setupLogger()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Warnf("Configuration validation warning: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Errorf("Error closing database connection: %v", err)
		}
	}()

	userRepo := repository.NewUserRepository(db)
	filmRepo := repository.NewFilmRepository(db)
	genreRepo := repository.NewGenreRepository(db)
	langRepo := repository.NewLanguageRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	reportRepo := repository.NewReportRepository(db)
	followRepo := repository.NewFollowRepository(db)
	watchlistRepo := repository.NewWatchlistRepository(db)
	articleRepo := repository.NewArticleRepository(db)

	authService := services.NewAuthService(userRepo, reviewRepo, followRepo, log)
	filmService := services.NewFilmService(filmRepo, genreRepo, langRepo, reviewRepo, cfg, log)
	reviewService := services.NewReviewService(reviewRepo, filmRepo, reportRepo, log)
	moderationService := services.NewModerationService(reportRepo, reviewRepo, filmRepo, userRepo, articleRepo, log)
	socialService := services.NewSocialService(followRepo, userRepo, filmRepo, reviewRepo, watchlistRepo, articleRepo, log)
	watchlistService := services.NewWatchlistService(watchlistRepo, filmRepo, log)
	articleService := services.NewArticleService(articleRepo, log)

	minioService, err := services.NewMinIOService(&cfg.MinIO, log)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO service: %v", err)
	}

	auth := middleware.NewAuth(cfg.Session, userRepo, log)

	authHandler := handlers.NewAuthHandler(authService, auth, log)
	filmHandler := handlers.NewFilmHandler(filmService, log)
	reviewHandler := handlers.NewReviewHandler(reviewService, log)
	socialHandler := handlers.NewSocialHandler(socialService, log)
	watchlistHandler := handlers.NewWatchlistHandler(watchlistService, log)
	articleHandler := handlers.NewArticleHandler(articleService, log)
	adminHandler := handlers.NewAdminHandler(moderationService, log)
	uploadHandler := handlers.NewUploadHandler(minioService, log)

	app := fiber.New(fiber.Config{
		AppName:               "CineView API",
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		IdleTimeout:           120 * time.Second,
		DisableStartupMessage: false,
		ErrorHandler:          customErrorHandler(log),
	})

	setupMiddleware(app)
	app.Use(auth.LoadPrincipal())

	app.Get("/health", healthCheckHandler(db))

	// Swagger documentation
	app.Get("/swagger/*", fiberSwagger.WrapHandler)

	// Setup API routes
	routes.Setup(app, auth, authHandler, filmHandler, reviewHandler, socialHandler, watchlistHandler, articleHandler, adminHandler, uploadHandler)

	// Graceful shutdown
	go gracefulShutdown(app, log)

	log.Infof("CineView API starting on port %s", cfg.Server.Port)
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start HTTP server: %v", err)
	}
}

func setupLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
	})
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)

	if os.Getenv("GO_ENV") == "dev" || os.Getenv("GO_ENV") == "development" {
		log.SetLevel(logrus.DebugLevel)
	}

	return log
}

func setupMiddleware(app *fiber.App) {
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))

	// Logger middleware
	app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${error}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))

	// CORS middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS, PATCH",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))
}

func healthCheckHandler(db *database.Database) fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbStatus := "healthy"
		if err := db.HealthCheck(); err != nil {
			dbStatus = "unhealthy"
		}

		return c.JSON(fiber.Map{
			"status":    "ok",
			"service":   "cineview-backend",
			"version":   "1.0.0",
			"database":  dbStatus,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func customErrorHandler(log *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		log.WithError(err).WithFields(logrus.Fields{
			"method": c.Method(),
			"path":   c.Path(),
			"status": code,
		}).Error("Request error")

		return c.Status(code).JSON(fiber.Map{
			"status":  "error",
			"code":    code,
			"message": err.Error(),
		})
	}
}

func gracefulShutdown(app *fiber.App, log *logrus.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
		log.Errorf("Error during shutdown: %v", err)
	}

	log.Info("Server shutdown complete")
}

func loadEnvFile() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{})
	log.SetOutput(os.Stdout)

	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "dev"
	}

	execDir, err := os.Getwd()
	if err != nil {
		log.Warnf("Could not get working directory: %v", err)
		return
	}

	envFile := filepath.Join(execDir, "envs", ".env."+env)
	if err := godotenv.Load(envFile); err != nil {
		log.Warnf("Could not load environment file %s: %v", envFile, err)

		defaultEnvFile := filepath.Join(execDir, "envs", ".env")
		if err := godotenv.Load(defaultEnvFile); err != nil {
			log.Warnf("Could not load default environment file: %v", err)
		} else {
			log.Infof("Environment loaded from default file %s", defaultEnvFile)
		}
	} else {
		log.Infof("Environment loaded from file %s", envFile)
	}
}
