package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/agrilink/backend/internal/infrastructure/auth"
	"github.com/agrilink/backend/internal/infrastructure/config"
	"github.com/agrilink/backend/internal/infrastructure/logger"
	"github.com/agrilink/backend/internal/interfaces/http/handler"
	"github.com/agrilink/backend/internal/interfaces/http/middleware"
)

// Handlers bundles every HTTP handler the router mounts
type Handlers struct {
	System        *handler.SystemHandler
	Auth          *handler.AuthHandler
	Organization  *handler.OrganizationHandler
	ServiceConfig *handler.ServiceConfigHandler
	Job           *handler.JobHandler
	Offer         *handler.OfferHandler
	Notification  *handler.NotificationHandler
}

// Dependencies carries the infrastructure the middleware stack needs
type Dependencies struct {
	Config     *config.Config
	Logger     *zap.Logger
	JWTService *auth.JWTService
	Blacklist  auth.TokenBlacklist
}

// publicPaths bypass JWT authentication. Signup is public for POST only;
// listing organizations requires a token.
var publicPaths = []string{
	"/health",
	"/api/v1/system/ping",
	"/api/v1/auth/login",
	"/api/v1/auth/refresh",
	"POST /api/v1/organizations",
}

// New builds the gin engine with the full middleware stack and all routes
// mounted under /api/v1.
func New(deps Dependencies, handlers Handlers) *gin.Engine {
	cfg := deps.Config

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	}

	engine.Use(middleware.RequestIDMiddleware())
	engine.Use(logger.GinMiddleware(deps.Logger))
	engine.Use(logger.Recovery(deps.Logger))
	engine.Use(middleware.SecureMiddleware())
	engine.Use(middleware.CORSMiddleware(middleware.CORSConfig{
		AllowOrigins: cfg.HTTP.CORSAllowOrigins,
		AllowMethods: cfg.HTTP.CORSAllowMethods,
		AllowHeaders: cfg.HTTP.CORSAllowHeaders,
	}))
	if cfg.HTTP.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimitMiddleware(cfg.HTTP.MaxBodySize))
	}
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Requests: cfg.HTTP.RateLimitRequests,
			Window:   cfg.HTTP.RateLimitWindow,
			KeyFunc:  middleware.OrgKeyFunc,
		})
		engine.Use(limiter.Middleware())
	}
	engine.Use(middleware.JWTAuthMiddleware(middleware.JWTAuthConfig{
		JWTService: deps.JWTService,
		Blacklist:  deps.Blacklist,
		Logger:     deps.Logger,
		SkipPaths:  publicPaths,
	}))

	engine.GET("/health", handlers.System.Health)

	v1 := engine.Group("/api/v1")

	system := v1.Group("/system")
	{
		system.GET("/ping", handlers.System.Ping)
	}

	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/login", withAuthRateLimit(cfg, handlers.Auth.Login))
		authGroup.POST("/refresh", withAuthRateLimit(cfg, handlers.Auth.RefreshToken))
		authGroup.POST("/logout", handlers.Auth.Logout)
		authGroup.GET("/me", handlers.Auth.Me)
		authGroup.POST("/change-password", handlers.Auth.ChangePassword)
	}

	orgs := v1.Group("/organizations")
	{
		orgs.POST("", withAuthRateLimit(cfg, handlers.Organization.Register))
		orgs.GET("", handlers.Organization.List)
		orgs.GET("/:id", handlers.Organization.Get)
		orgs.PUT("/:id", handlers.Organization.Update)
	}

	serviceConfig := v1.Group("/service-configuration")
	{
		serviceConfig.GET("", handlers.ServiceConfig.Get)
		serviceConfig.PUT("", handlers.ServiceConfig.Update)
	}

	jobs := v1.Group("/jobs")
	{
		jobs.POST("", handlers.Job.Create)
		jobs.GET("/mine", handlers.Job.ListMine)
		jobs.GET("/assigned", handlers.Job.ListAssigned)
		jobs.GET("/feed", handlers.Job.Feed)
		jobs.GET("/:id", handlers.Job.Get)
		jobs.POST("/:id/start", handlers.Job.Start)
		jobs.POST("/:id/complete", handlers.Job.Complete)
		jobs.POST("/:id/cancel", handlers.Job.Cancel)
		jobs.POST("/:id/offers", handlers.Job.SubmitOffer)
		jobs.GET("/:id/offers", handlers.Job.ListOffers)
	}

	offers := v1.Group("/offers")
	{
		offers.GET("/mine", handlers.Offer.ListMine)
		offers.GET("/:id", handlers.Offer.Get)
		offers.POST("/:id/accept", handlers.Offer.Accept)
		offers.POST("/:id/reject", handlers.Offer.Reject)
		offers.POST("/:id/withdraw", handlers.Offer.Withdraw)
	}

	notifications := v1.Group("/notifications")
	{
		notifications.GET("", handlers.Notification.List)
		notifications.POST("/:id/read", handlers.Notification.MarkRead)
	}

	return engine
}

// withAuthRateLimit wraps credential-bearing endpoints in a stricter limiter
// keyed by client IP, so password guessing is throttled independently of the
// general request limit.
func withAuthRateLimit(cfg *config.Config, h gin.HandlerFunc) gin.HandlerFunc {
	if !cfg.HTTP.AuthRateLimitEnabled {
		return h
	}
	limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Requests: cfg.HTTP.AuthRateLimitRequests,
		Window:   cfg.HTTP.AuthRateLimitWindow,
	})
	mw := limiter.Middleware()
	return func(c *gin.Context) {
		mw(c)
		if !c.IsAborted() {
			h(c)
		}
	}
}
