package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/jobboard/job-portal/docs"
	"github.com/jobboard/job-portal/internal/api/handler"
	"github.com/jobboard/job-portal/internal/api/middleware"
	"github.com/jobboard/job-portal/internal/core/domain"
	"github.com/jobboard/job-portal/internal/core/ports"
	"github.com/jobboard/job-portal/web"
)

const (
	metricsSubsystem = "http"
	bodyLimit        = "1M"
)

// Options carries the dependencies of the HTTP layer.
type Options struct {
	AuthService ports.AuthService
	JobService  ports.JobService
	Denylist    ports.TokenDenylist
	// Readiness backs /health/ready; the route is omitted when nil.
	Readiness *handler.HealthDependenciesHandler

	JWTSecret        string
	ExposeResetToken bool
	CORSAllowOrigins []string

	// MetricsRegistry receives the HTTP metrics and backs /metrics.
	// Defaults to the Prometheus default registry.
	MetricsRegistry *prometheus.Registry

	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if opts.MetricsRegistry != nil {
		registerer, gatherer = opts.MetricsRegistry, opts.MetricsRegistry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(opts.Logger))
	e.Use(echomiddleware.Secure())
	e.Use(echomiddleware.BodyLimit(bodyLimit))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: opts.CORSAllowOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  metricsSubsystem,
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(opts.AuthService, opts.ExposeResetToken)
	jobHandler := handler.NewJobHandler(opts.JobService)
	requireAuth := middleware.Auth(opts.JWTSecret, opts.Denylist, opts.Logger)

	api := e.Group("/api")

	// --- Auth routes ---
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", authHandler.Me, requireAuth)
	auth.POST("/logout", authHandler.Logout, requireAuth)
	auth.POST("/forgot-password", authHandler.ForgotPassword)
	auth.PUT("/reset-password/:token", authHandler.ResetPassword)

	// --- Job routes ---
	jobs := api.Group("/jobs")
	jobs.GET("", jobHandler.List)
	jobs.GET("/stats", jobHandler.Stats)
	jobs.GET("/:id", jobHandler.Get)
	jobs.POST("", jobHandler.Create, requireAuth, middleware.RBAC(domain.RoleEmployer, domain.RoleAdmin))
	jobs.PUT("/:id", jobHandler.Update, requireAuth)
	jobs.DELETE("/:id", jobHandler.Delete, requireAuth)

	// --- Health probes (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	if opts.Readiness != nil {
		e.GET("/health/ready", opts.Readiness.Readiness)
	}

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Frontend ---
	e.StaticFS("/", web.Assets())

	return e
}
