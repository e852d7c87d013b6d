package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	ledgerapp "github.com/rentfolio/backend/internal/application/ledger"
	portfolioapp "github.com/rentfolio/backend/internal/application/portfolio"
	reportapp "github.com/rentfolio/backend/internal/application/report"
	"github.com/rentfolio/backend/internal/domain/shared"
	"github.com/rentfolio/backend/internal/infrastructure/cache"
	"github.com/rentfolio/backend/internal/infrastructure/config"
	"github.com/rentfolio/backend/internal/infrastructure/event"
	"github.com/rentfolio/backend/internal/infrastructure/gateway"
	"github.com/rentfolio/backend/internal/infrastructure/logger"
	"github.com/rentfolio/backend/internal/infrastructure/persistence"
	"github.com/rentfolio/backend/internal/infrastructure/scheduler"
	"github.com/rentfolio/backend/internal/interfaces/http/handler"
	"github.com/rentfolio/backend/internal/interfaces/http/middleware"
	"github.com/rentfolio/backend/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Rentfolio Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	leaseRepo := persistence.NewGormLeaseRepository(db.DB)
	chargeRepo := persistence.NewGormLeaseChargeRepository(db.DB)
	paymentRepo := persistence.NewGormRentPaymentRepository(db.DB)
	propertyRepo := persistence.NewGormPropertyRepository(db.DB)
	unitRepo := persistence.NewGormUnitRepository(db.DB)
	assignmentRepo := persistence.NewGormAssignmentRepository(db.DB)
	rentRollRepo := persistence.NewGormRentRollRepository(db.DB)
	revenueRepo := persistence.NewGormRevenueReportRepository(db.DB)

	// Idempotency store for webhook replay suppression. Redis when
	// configured, otherwise a process-local store.
	var idempotencyStore shared.IdempotencyStore
	if cfg.Redis.Enabled {
		redisStore, err := cache.NewRedisIdempotencyStore(cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisStore.Close(); err != nil {
				log.Error("Error closing Redis connection", zap.Error(err))
			}
		}()
		idempotencyStore = redisStore
		log.Info("Redis idempotency store connected",
			zap.String("host", cfg.Redis.Host),
			zap.Int("port", cfg.Redis.Port),
		)
	} else {
		idempotencyStore = cache.NewInMemoryIdempotencyStore()
		log.Info("Using in-memory idempotency store")
	}

	// Initialize event bus with activity logging
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewActivityLogHandler(log))

	// Initialize payment gateway
	stripeConfig := gateway.NewStripeConfig(cfg.Gateway)
	if err := stripeConfig.Validate(); err != nil {
		log.Warn("Stripe gateway not fully configured, webhook processing disabled", zap.Error(err))
	} else {
		stripeConfig.Apply()
	}

	// Initialize application services
	idempotencyConfig := shared.DefaultIdempotencyConfig()
	if cfg.Ledger.IdempotencyTTL > 0 {
		idempotencyConfig.TTL = cfg.Ledger.IdempotencyTTL
	}

	scheduleService := ledgerapp.NewScheduleService(ledgerapp.ScheduleServiceConfig{
		LeaseRepo:      leaseRepo,
		PaymentRepo:    paymentRepo,
		EventPublisher: eventBus,
		Logger:         log,
	})
	paymentEventService := ledgerapp.NewPaymentEventService(ledgerapp.PaymentEventServiceConfig{
		PaymentRepo:      paymentRepo,
		IdempotencyStore: idempotencyStore,
		Idempotency:      &idempotencyConfig,
		EventPublisher:   eventBus,
		Logger:           log,
	})
	webhookService := ledgerapp.NewStripeWebhookService(ledgerapp.StripeWebhookServiceConfig{
		Config:        stripeConfig,
		PaymentEvents: paymentEventService,
		Logger:        log,
	})
	rentRollService := reportapp.NewRentRollService(reportapp.RentRollServiceConfig{
		RentRollRepo: rentRollRepo,
		ChargeRepo:   chargeRepo,
		PaymentRepo:  paymentRepo,
		Logger:       log,
	})
	revenueService := reportapp.NewRevenueSplitService(reportapp.RevenueSplitServiceConfig{
		AssignmentRepo: assignmentRepo,
		RevenueRepo:    revenueRepo,
		Logger:         log,
	})
	portfolioService := portfolioapp.NewPortfolioService(portfolioapp.PortfolioServiceConfig{
		PropertyRepo: propertyRepo,
		UnitRepo:     unitRepo,
		Logger:       log,
	})

	// Daily sweeps run in-process; the HTTP sweep endpoints remain for
	// ad-hoc runs.
	sweepScheduler := scheduler.NewSweepScheduler(
		scheduler.DefaultSweepSchedulerConfig(),
		scheduleService,
		persistence.NewGormTenantProvider(db.DB),
		log,
	)
	if err := sweepScheduler.Start(context.Background()); err != nil {
		log.Fatal("Failed to start sweep scheduler", zap.Error(err))
	}

	// Initialize HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Failed to set trusted proxies", zap.Error(err))
	}

	middleware.SetupValidator()

	// Middleware stack, outermost first:
	// 1. RequestID - correlates log lines across the request
	// 2. Recovery  - panic to 500 with stack logging
	// 3. Access log
	// 4. CORS
	// 5. Tenant extraction
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.HTTP.CORSAllowOrigins,
		AllowMethods: cfg.HTTP.CORSAllowMethods,
		AllowHeaders: cfg.HTTP.CORSAllowHeaders,
	}))
	engine.Use(middleware.TenantMiddlewareWithConfig(middleware.TenantMiddlewareConfig{
		SkipPaths: middleware.DefaultTenantConfig().SkipPaths,
		Required:  true,
		Logger:    log,
	}))

	// Liveness probe outside the versioned API
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Register routes
	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(handler.NewSystemHandler(db, cfg.App.Name, version)).
		Register(handler.NewScheduleHandler(scheduleService)).
		Register(handler.NewPaymentWebhookHandler(webhookService)).
		Register(handler.NewRentRollHandler(rentRollService)).
		Register(handler.NewRevenueHandler(revenueService)).
		Register(handler.NewPortfolioHandler(portfolioService)).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := sweepScheduler.Stop(ctx); err != nil {
		log.Error("Sweep scheduler did not stop cleanly", zap.Error(err))
	}
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited gracefully")
}
