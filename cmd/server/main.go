package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	identityapp "github.com/agrilink/backend/internal/application/identity"
	marketplaceapp "github.com/agrilink/backend/internal/application/marketplace"
	notificationapp "github.com/agrilink/backend/internal/application/notification"
	"github.com/agrilink/backend/internal/infrastructure/auth"
	"github.com/agrilink/backend/internal/infrastructure/config"
	"github.com/agrilink/backend/internal/infrastructure/event"
	"github.com/agrilink/backend/internal/infrastructure/logger"
	"github.com/agrilink/backend/internal/infrastructure/persistence"
	"github.com/agrilink/backend/internal/infrastructure/scheduler"
	"github.com/agrilink/backend/internal/interfaces/http/handler"
	"github.com/agrilink/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting AgriLink backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database connection with zap-backed GORM logging
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Token blacklist backed by Redis. A dev environment without Redis
	// falls back to the in-memory implementation; production does not.
	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	switch {
	case err == nil:
		blacklist = redisBlacklist
		defer func() {
			if err := redisBlacklist.Close(); err != nil {
				log.Error("Error closing Redis blacklist", zap.Error(err))
			}
		}()
		log.Info("Redis token blacklist connected",
			zap.String("host", cfg.Redis.Host),
			zap.Int("port", cfg.Redis.Port))
	case cfg.App.Env == "production":
		log.Fatal("Failed to connect to Redis token blacklist", zap.Error(err))
	default:
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	}

	// Repositories
	jobRepo := persistence.NewGormJobRepository(db.DB)
	offerRepo := persistence.NewGormOfferRepository(db.DB)
	serviceConfigRepo := persistence.NewGormServiceConfigurationRepository(db.DB)
	orgRepo := persistence.NewGormOrganizationRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	notificationRepo := persistence.NewGormNotificationRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, orgRepo, jwtService, blacklist, log)
	orgService := identityapp.NewOrganizationService(orgRepo, userRepo, log)

	jobService := marketplaceapp.NewJobService(jobRepo, offerRepo, serviceConfigRepo, txScope)
	offerService := marketplaceapp.NewOfferService(offerRepo, jobRepo, serviceConfigRepo, txScope)
	serviceConfigService := marketplaceapp.NewServiceConfigService(serviceConfigRepo)
	offerExpiryService := marketplaceapp.NewOfferExpiryService(
		offerRepo, cfg.OfferExpiry.PendingTTL, cfg.OfferExpiry.BatchSize, log)

	notificationService := notificationapp.NewService(notificationRepo, log)

	// In-process event bus: marketplace lifecycle events fan out to the
	// notification writer.
	eventBus := event.NewInMemoryEventBus(log)
	notificationHandler := notificationapp.NewEventHandler(notificationRepo, jobRepo, log)
	eventBus.Subscribe(notificationHandler)
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()
	log.Info("Event handlers registered",
		zap.Strings("notification_events", notificationHandler.EventTypes()))

	jobService.SetEventPublisher(eventBus)
	offerService.SetEventPublisher(eventBus)
	offerExpiryService.SetEventPublisher(eventBus)

	// Pending-offer expiry sweep
	expiryScheduler := scheduler.NewOfferExpiryScheduler(offerExpiryService, cfg.OfferExpiry, log)
	if err := expiryScheduler.Start(); err != nil {
		log.Fatal("Failed to start offer expiry scheduler", zap.Error(err))
	}
	defer expiryScheduler.Stop()

	// HTTP layer
	authHandler := handler.NewAuthHandler(authService, log)
	authHandler.SetCookieConfig(cfg.Cookie)

	engine := router.New(
		router.Dependencies{
			Config:     cfg,
			Logger:     log,
			JWTService: jwtService,
			Blacklist:  blacklist,
		},
		router.Handlers{
			System:        handler.NewSystemHandler(db, cfg.App.Name, cfg.App.Env, log),
			Auth:          authHandler,
			Organization:  handler.NewOrganizationHandler(orgService, log),
			ServiceConfig: handler.NewServiceConfigHandler(serviceConfigService, log),
			Job:           handler.NewJobHandler(jobService, offerService, log),
			Offer:         handler.NewOfferHandler(offerService, log),
			Notification:  handler.NewNotificationHandler(notificationService, log),
		},
	)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
