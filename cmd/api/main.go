package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/csdept/deptsite-api/config"
	"github.com/csdept/deptsite-api/internal/cache"
	"github.com/csdept/deptsite-api/internal/database/postgres"
	"github.com/csdept/deptsite-api/internal/handlers"
	"github.com/csdept/deptsite-api/internal/middleware"
	"github.com/csdept/deptsite-api/internal/repository"
	"github.com/csdept/deptsite-api/internal/services"
	"github.com/csdept/deptsite-api/internal/validation"
	"github.com/csdept/deptsite-api/pkg/db"
	"github.com/csdept/deptsite-api/pkg/logger"
	"github.com/csdept/deptsite-api/pkg/metrics"
	"github.com/csdept/deptsite-api/pkg/objectstore"
	"github.com/csdept/deptsite-api/pkg/tracing"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// routeHandlers groups the handlers registered on the router
type routeHandlers struct {
	health  *handlers.HealthHandler
	faculty *handlers.FacultyHandler
	contact *handlers.ContactHandler
	page    *handlers.PageHandler
	live    *handlers.LiveHandler
}

// registerAPIRoutes registers the versioned site API
func registerAPIRoutes(group *gin.RouterGroup, h routeHandlers, generalRateLimiter, contactRateLimiter *middleware.RateLimiter) {
	group.Use(generalRateLimiter.Middleware())

	group.GET("/faculty", h.faculty.Search)
	group.GET("/faculty/categories", h.faculty.Categories)
	group.GET("/faculty/:id", h.faculty.Get)

	group.POST("/contact/validate", middleware.BodySizeLimitMiddleware(middleware.DefaultMaxBodySize), h.contact.ValidateField)
	group.POST("/contact", contactRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(middleware.DefaultMaxBodySize), h.contact.Submit)

	group.GET("/nav/active", h.page.ActiveNav)
	group.GET("/stats/frames", h.page.StatFrames)

	group.GET("/live", h.live.Serve)
}

// newRosterSource picks where the faculty roster is loaded from
func newRosterSource(cfg *config.Config, pgClient *postgres.Client) (cache.FacultySource, error) {
	switch cfg.Roster.Source {
	case config.RosterSourcePostgres:
		if pgClient == nil {
			return nil, errors.New("postgres roster source requires a database connection")
		}
		return repository.NewPostgresFacultySource(pgClient), nil
	case config.RosterSourceS3:
		s3 := cfg.Roster.S3
		client, err := objectstore.NewClient(objectstore.Config{
			AccessKeyID:     s3.AccessKeyID,
			SecretAccessKey: s3.SecretAccessKey,
			Bucket:          s3.Bucket,
			Endpoint:        s3.Endpoint,
			Region:          s3.Region,
		})
		if err != nil {
			return nil, fmt.Errorf("object storage client: %w", err)
		}
		return repository.NewS3RosterSource(client, s3.Key), nil
	default:
		return repository.NewFileRosterSource(cfg.Roster.Path), nil
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: cfg.Observability.ServiceName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting department site API",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
		zap.String("roster_source", cfg.Roster.Source),
	)

	tracerShutdown, err := tracing.InitTracer(tracing.Resource{
		ServiceName:       cfg.Observability.ServiceName,
		ServiceNamespace:  cfg.Observability.ServiceNamespace,
		ServiceVersion:    cfg.Observability.ServiceVersion,
		ServiceInstanceID: cfg.Observability.ServiceInstanceID,
		Environment:       cfg.Server.AppEnv,
	}, cfg.Observability.OTLPEndpoint)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	// Background work (cache refresh, rate limiter cleanup, runtime metrics)
	// stops when the server shuts down
	appCtx, stopApp := context.WithCancel(context.Background())
	defer stopApp()

	metrics.RecordInfrastructureMetrics(15*time.Second, appCtx.Done())

	// Database is optional unless the roster lives there
	var pool *pgxpool.Pool
	var pgClient *postgres.Client
	if cfg.HasDatabase() {
		pool, err = db.NewPool(appCtx, db.PoolConfig{
			URL:        cfg.Database.URL,
			CACertPath: cfg.Database.CACertPath,
			MaxConns:   cfg.Database.MaxConns,
			MinConns:   cfg.Database.MinConns,
		})
		if err != nil {
			logger.Fatal("Failed to initialize database connection pool", zap.Error(err))
		}
		defer db.Close(pool)
		pgClient = postgres.NewClient(pool)
	} else {
		logger.Warn("Database disabled: contact submissions are logged only")
	}

	rosterSource, err := newRosterSource(cfg, pgClient)
	if err != nil {
		logger.Fatal("Failed to configure roster source", zap.Error(err))
	}

	// Load the roster before accepting requests so the health check only
	// passes once the directory can be served
	facultyCache := cache.NewFacultyCache(rosterSource, cfg.Cache.RosterTTLSeconds)
	if err := facultyCache.Initialize(appCtx); err != nil {
		logger.Fatal("Failed to initialize faculty cache", zap.Error(err))
	}

	var contactRecorder repository.ContactMessageRecorder = repository.NewLogContactRecorder()
	var dbPing func(ctx context.Context) error
	if pgClient != nil {
		contactRecorder = repository.NewPostgresContactRecorder(pgClient)
		dbPing = pgClient.Ping
	}

	// Query and body binding share the contact form rules with live sessions
	validate := validation.NewValidator()
	if engine, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := validation.RegisterValidators(engine); err != nil {
			logger.Fatal("Failed to register validators", zap.Error(err))
		}
	}

	directoryService := services.NewDirectoryService(facultyCache)
	contactService := services.NewContactService(contactRecorder)
	pageService := services.NewPageService(cfg.Server.NavPages)

	h := routeHandlers{
		health:  handlers.NewHealthHandler(facultyCache, dbPing),
		faculty: handlers.NewFacultyHandler(directoryService),
		contact: handlers.NewContactHandler(contactService),
		page:    handlers.NewPageHandler(pageService),
		live: handlers.NewLiveHandler(directoryService, contactService, validate, handlers.LiveConfig{
			AllowedOrigins: cfg.Server.AllowedOrigins,
			ResetDelay:     cfg.Form.ResetDelay,
			Debounce:       cfg.Directory.SearchDebounce,
		}),
	}

	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName))
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	allowedOrigins := cfg.Server.AllowedOrigins
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000", "http://127.0.0.1:3000")
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:  allowedOrigins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "traceparent", "tracestate"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	generalRateLimiter := middleware.NewRateLimiter(appCtx, "general", rate.Limit(cfg.RateLimit.GeneralRPS), cfg.RateLimit.GeneralBurst)
	contactRateLimiter := middleware.NewRateLimiter(appCtx, "contact", rate.Limit(cfg.RateLimit.ContactRPS), cfg.RateLimit.ContactBurst)

	// Operational endpoints (not versioned)
	api := router.Group("/api")
	api.GET("/healthcheck", h.health.Healthcheck)
	api.GET("/metrics", gin.WrapH(promhttp.Handler()))

	registerAPIRoutes(router.Group("/api/v1"), h, generalRateLimiter, contactRateLimiter)

	// No WriteTimeout: live sessions are long-lived and set their own
	// per-message write deadlines
	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	stopApp()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown does not wait for hijacked WebSocket connections; they end
	// when the process exits
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
