package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"loyaltyjo.backend/internal/config"
	"loyaltyjo.backend/internal/infrastructure/jobs"
	"loyaltyjo.backend/internal/infrastructure/models"
	"loyaltyjo.backend/internal/infrastructure/repositories"
	"loyaltyjo.backend/internal/interfaces/http/handlers"
	"loyaltyjo.backend/internal/interfaces/http/middleware"
	"loyaltyjo.backend/internal/usecases"
	"loyaltyjo.backend/pkg/jwt"
	"loyaltyjo.backend/pkg/logger"
	"loyaltyjo.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt:    false,
			TranslateError: true,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// An empty REDIS_URL runs without idempotency replay.
	if cfg.Redis.URL != "" {
		if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
			logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
			return fmt.Errorf("failed to initialize redis: %w", err)
		}
		defer redis.Close()
		logger.Info(context.Background(), "Redis initialized")
	} else {
		logger.Warn(context.Background(), "Redis disabled, idempotency keys will not be replayed")
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if cfg.Database.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	}
	if cfg.Database.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	}

	if err := sqlDB.Ping(); err != nil {
		logger.Warn(context.Background(), "Database not available, endpoints will return errors", zap.Error(err))
	} else {
		logger.Info(context.Background(), "Connected to PostgreSQL via GORM")
	}

	if cfg.Database.AutoMigrate {
		if err := db.AutoMigrate(models.All()...); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiry)

	businessRepo := repositories.NewBusinessRepository(db)
	staffRepo := repositories.NewStaffRepository(db)
	adminRepo := repositories.NewAdminRepository(db)
	cardRepo := repositories.NewCardRepository(db)
	customerRepo := repositories.NewCustomerRepository(db)
	membershipRepo := repositories.NewMembershipRepository(db)
	txRepo := repositories.NewStampTransactionRepository(db)
	subscriptionRepo := repositories.NewSubscriptionRepository(db)
	uow := repositories.NewUnitOfWork(db)

	authUsecase := usecases.NewAuthUsecase(businessRepo, staffRepo, adminRepo, jwtService, cfg.Loyalty.TrialDuration)
	cardUsecase := usecases.NewCardUsecase(cardRepo, cfg.Loyalty.DefaultStampsNeeded)
	ledgerUsecase := usecases.NewLedgerUsecase(cardRepo, customerRepo, membershipRepo, txRepo, uow)
	analyticsUsecase := usecases.NewAnalyticsUsecase(membershipRepo, cardRepo, txRepo)
	adminUsecase := usecases.NewAdminUsecase(businessRepo, customerRepo, subscriptionRepo, uow)

	publicLimiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	trialJob := jobs.NewTrialExpiryJob(businessRepo, cfg.Loyalty.TrialCheckInterval)
	go trialJob.Start(ctx)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r, cfg.Server.AllowedOrigins...)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:      handlers.NewAuthHandler(authUsecase),
		cardHandler:      handlers.NewCardHandler(cardUsecase),
		ledgerHandler:    handlers.NewLedgerHandler(ledgerUsecase),
		analyticsHandler: handlers.NewAnalyticsHandler(analyticsUsecase),
		adminHandler:     handlers.NewAdminHandler(adminUsecase),
		authMiddleware:   middleware.AuthMiddleware(jwtService),
		publicLimiter:    publicLimiter.Middleware(),
		idempotency:      middleware.IdempotencyMiddleware(cfg.Loyalty.IdempotencyKeyExpiry),
	})

	logger.Debug(context.Background(), "Routes registered", zap.Int("count", len(r.Routes())))

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info(context.Background(), "Shutting down server")
		trialJob.Stop()
		cancel()
	}()

	logger.Info(context.Background(), "LoyaltyJO backend starting",
		zap.String("port", cfg.Server.Port),
		zap.String("api", "/api/v1"),
	)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
