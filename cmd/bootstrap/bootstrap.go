package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"doctor-directory/config"
	deliveryHttp "doctor-directory/internal/delivery/http"
	"doctor-directory/internal/delivery/http/handler"
	"doctor-directory/internal/delivery/http/middleware"
	domainRepo "doctor-directory/internal/domain/repository"
	"doctor-directory/internal/infrastructure/cache"
	"doctor-directory/internal/repository"
	"doctor-directory/internal/service"
	"doctor-directory/internal/usecase"
	"doctor-directory/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// App holds all dependencies for the application
type App struct {
	Config         *config.Config
	Log            *logrus.Logger
	RedisClient    *redis.Client
	SessionLocks   *service.SessionLockService
	ListingUsecase usecase.DoctorListingUsecase
	Server         *http.Server
}

// New creates a new App instance with all dependencies initialized
func New(configPath string) (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Setup logger
	app.Log = setupLogger(cfg.App)
	app.Log.Info("Configuration loaded successfully")

	// Initialize session storage
	sessionRepo, err := app.initializeSessionRepository(cfg)
	if err != nil {
		return nil, err
	}

	// Initialize all layers
	app.Server = app.initializeServer(cfg, sessionRepo)

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(cfg config.AppConfig) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	return log
}

func (app *App) initializeSessionRepository(cfg *config.Config) (domainRepo.ListingSessionRepository, error) {
	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		redisClient, err := cache.NewRedisClient(cfg.Redis, app.Log)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		app.RedisClient = redisClient
		app.Log.Info("Listing sessions stored in Redis")
		return repository.NewListingSessionRedisRepository(redisClient, cfg.Session.TTL), nil
	case config.SessionStoreMemory, "":
		app.Log.Info("Listing sessions stored in memory")
		return repository.NewListingSessionRepository(cfg.Session.TTL), nil
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.Session.Store)
	}
}

// initializeServer creates and configures the HTTP server
func (app *App) initializeServer(cfg *config.Config, sessionRepo domainRepo.ListingSessionRepository) *http.Server {
	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	doctorRepo := repository.NewDoctorFeedRepository(cfg.DoctorSource.URL, cfg.DoctorSource.Timeout)

	// Initialize services
	app.SessionLocks = service.NewSessionLockService(app.Log)

	// Initialize usecases
	app.ListingUsecase = usecase.NewDoctorListingUsecase(app.Log, doctorRepo, sessionRepo, app.SessionLocks, cfg.DoctorSource.Timeout)

	// Initialize handlers
	listingHandler := handler.NewDoctorListingHandler(app.ListingUsecase, customValidator)

	// Initialize middleware
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSOrigin)
	loggingMiddleware := middleware.NewLoggingMiddleware(app.Log)

	// Initialize router
	router := deliveryHttp.NewRouter(listingHandler, corsMiddleware, loggingMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Log.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close stops background work and closes connections.
func (app *App) Close() {
	// Cancel in-flight doctor loads before the session store goes away
	if app.ListingUsecase != nil {
		app.ListingUsecase.Stop()
	}

	if app.SessionLocks != nil {
		app.SessionLocks.Stop()
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
