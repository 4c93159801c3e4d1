package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/quadworks/flowdeck/pkg/validator"

	"github.com/quadworks/flowdeck/internal/adapter/handler"
	"github.com/quadworks/flowdeck/internal/adapter/repository"
	"github.com/quadworks/flowdeck/internal/infrastructure/cache"
	"github.com/quadworks/flowdeck/internal/infrastructure/database"
	httpmw "github.com/quadworks/flowdeck/internal/infrastructure/http/middleware"
	"github.com/quadworks/flowdeck/internal/infrastructure/storage"
	"github.com/quadworks/flowdeck/internal/usecase/assignment"
	flowuse "github.com/quadworks/flowdeck/internal/usecase/flow"
	"github.com/quadworks/flowdeck/internal/usecase/followup"
	meetinguse "github.com/quadworks/flowdeck/internal/usecase/meeting"
	"github.com/quadworks/flowdeck/internal/usecase/review"
	"github.com/quadworks/flowdeck/pkg/config"
	"github.com/quadworks/flowdeck/pkg/jwt"
)

// @title           Flowdeck API
// @version         1.0
// @description     Work-intake pipeline: meeting minutes review, follow-up proposals, and QUAD flow tracking

// @host      localhost:8080
// @BasePath  /v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "Set-Cookie", "Cookie"},
		AllowCredentials: true,
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Run migrations only when explicitly enabled in config.
	// Production deployments should manage schema via sql-migrate in CI/CD.
	if cfg.Database.AutoMigrate {
		log.Println("🔄 Applying SQL migrations...")
		if err := database.Migrate(db); err != nil {
			log.Fatalf("Failed to apply migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping migrations; use sql-migrate for schema migrations in CI/CD/production")
	}

	// Initialize Redis
	log.Println("📦 Connecting to Redis...")
	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	tokenCache := cache.NewRedisStore(redisClient)

	// Initialize object storage for minutes export
	log.Println("📦 Connecting to object storage...")
	minutesStore, err := storage.NewMinIOClient(&cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to connect to object storage: %v", err)
	}

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	userRepo := repository.NewUserRepository(db)
	meetingRepo := repository.NewMeetingRepository(db)
	itemRepo := repository.NewActionItemRepository(db)
	followRepo := repository.NewFollowUpRepository(db)
	flowRepo := repository.NewFlowRepository(db)

	// Initialize JWT manager
	log.Println("🔑 Initializing JWT manager...")
	jwtManager := jwt.NewManager(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiry)

	// Initialize services
	log.Println("✨ Initializing services...")
	scorer := assignment.NewScorer(repository.NewCandidateSource(userRepo), logger)
	reviewService := review.NewService(meetingRepo, itemRepo, followRepo, logger)
	generator := followup.NewGenerator(meetingRepo, itemRepo, followRepo, scorer, logger)
	meetingService := meetinguse.NewService(reviewService, generator, meetingRepo, itemRepo, minutesStore, logger)
	flowService := flowuse.NewService(flowRepo, logger)

	// Initialize handlers
	log.Println("🚀 Initializing handlers...")
	meetingHandler := handler.NewMeeting(meetingService, logger)
	flowHandler := handler.NewFlow(flowService, logger)
	webhookHandler := handler.NewMinutesWebhook(meetingService, cfg.Webhook.MinutesSecret, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	authMW := httpmw.NewAuthMiddleware(jwtManager, tokenCache, cfg.JWT.IdentityCacheTTL, logger)
	router := handler.NewRouter(cfg, authMW, meetingHandler, flowHandler, webhookHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
