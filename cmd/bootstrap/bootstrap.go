package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinic-scheduling-service/config"
	deliveryHttp "clinic-scheduling-service/internal/delivery/http"
	"clinic-scheduling-service/internal/delivery/http/handler"
	"clinic-scheduling-service/internal/delivery/http/middleware"
	"clinic-scheduling-service/internal/infrastructure/cache"
	"clinic-scheduling-service/internal/infrastructure/database"
	"clinic-scheduling-service/internal/repository"
	"clinic-scheduling-service/internal/service"
	"clinic-scheduling-service/internal/usecase"
	"clinic-scheduling-service/internal/worker"
	"clinic-scheduling-service/pkg/jwt"
	"clinic-scheduling-service/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
	Worker      *worker.SlotGenerationWorker
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Apply schema migrations
	if err := database.RunMigrations(cfg.DB); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
	server, generationWorker := initializeServer(cfg, db, redisClient)
	app.Server = server
	app.Worker = generationWorker

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates the HTTP server and the background worker
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*http.Server, *worker.SlotGenerationWorker) {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize repositories
	slotRepo := repository.NewSlotRepository()
	bookingRepo := repository.NewBookingRepository()
	exceptionRepo := repository.NewAvailabilityExceptionRepository()
	doctorRepo := repository.NewDoctorRepository()
	patientRepo := repository.NewPatientRepository()
	auditRepo := repository.NewAuditLogRepository()
	transactor := repository.NewTransactor(db)

	// Initialize services
	slotCache := service.NewSlotCacheService(redisClient, log)
	auditService := service.NewAuditService(log, auditRepo)

	// Initialize usecases
	bookingUsecase := usecase.NewBookingUsecase(db, log, transactor, bookingRepo, slotRepo, slotCache)
	slotUsecase := usecase.NewSlotUsecase(db, log, transactor, slotRepo, bookingRepo, slotCache, auditService)
	generationUsecase := usecase.NewSlotGenerationUsecase(db, log, doctorRepo, exceptionRepo, slotRepo)
	exceptionUsecase := usecase.NewAvailabilityExceptionUsecase(db, log, transactor, exceptionRepo, doctorRepo, auditService)
	doctorUsecase := usecase.NewDoctorUsecase(db, log, doctorRepo, auditService)
	patientUsecase := usecase.NewPatientUsecase(db, log, patientRepo, auditService)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditRepo)

	// Initialize handlers
	bookingHandler := handler.NewBookingHandler(bookingUsecase, customValidator)
	slotHandler := handler.NewSlotHandler(slotUsecase)
	generationHandler := handler.NewSlotGenerationHandler(generationUsecase)
	availabilityHandler := handler.NewAvailabilityHandler(exceptionUsecase, customValidator)
	doctorHandler := handler.NewDoctorHandler(doctorUsecase, customValidator)
	patientHandler := handler.NewPatientHandler(patientUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(
		bookingHandler,
		slotHandler,
		generationHandler,
		availabilityHandler,
		doctorHandler,
		patientHandler,
		auditLogHandler,
		authMiddleware,
		corsMiddleware,
	)
	httpRouter := router.Setup()

	// Initialize background worker
	generationWorker := worker.NewSlotGenerationWorker(log, generationUsecase, cfg.Generator.Interval, cfg.Generator.StartupDelay)

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}

	return server, generationWorker
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start background worker
	app.Worker.Start(context.Background())

	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
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

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Stop the background worker before dropping connections
	app.Worker.Stop()

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
