package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	activityapp "github.com/crm/backend/internal/application/activity"
	dashboardapp "github.com/crm/backend/internal/application/dashboard"
	searchapp "github.com/crm/backend/internal/application/search"
	"github.com/crm/backend/internal/domain/billing"
	"github.com/crm/backend/internal/domain/catalog"
	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/notification"
	"github.com/crm/backend/internal/infrastructure/auth"
	"github.com/crm/backend/internal/infrastructure/cache"
	"github.com/crm/backend/internal/infrastructure/config"
	"github.com/crm/backend/internal/infrastructure/datasource"
	"github.com/crm/backend/internal/infrastructure/logger"
	"github.com/crm/backend/internal/infrastructure/persistence"
	"github.com/crm/backend/internal/interfaces/http/handler"
	"github.com/crm/backend/internal/interfaces/http/middleware"
	"github.com/crm/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

// gormLogLevel maps the application log level onto gorm's SQL logger.
// Production stays silent; debug surfaces full statements.
func gormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "debug":
		return gormlogger.Info
	case "warn", "error":
		return gormlogger.Silent
	default:
		return gormlogger.Warn
	}
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting CRM Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database connection; SQL logging follows the app log level
	db, err := persistence.NewDatabase(&cfg.Database, gormLogLevel(cfg.Log.Level))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Schema is owned by the external backend in production; local
	// environments migrate on boot for convenience
	if cfg.App.Env == "development" {
		if err := db.Migrate(
			&crm.Lead{},
			&crm.Client{},
			&crm.Region{},
			&billing.Quote{},
			&billing.Invoice{},
			&catalog.InventoryItem{},
			&notification.Notification{},
		); err != nil {
			log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	// Initialize the dashboard cache. A missing Redis degrades to
	// uncached aggregation rather than failing boot.
	var redisClient *redis.Client
	var dashboardCache dashboardapp.Cache
	var cacheFlusher handler.CacheFlusher
	if client, err := cache.NewRedisClient(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB); err != nil {
		log.Warn("Redis unavailable, dashboard caching disabled", zap.Error(err))
	} else {
		redisClient = client
		dc := cache.NewDashboardCache(client, cfg.Dashboard.CacheTTL)
		dashboardCache = dc
		cacheFlusher = dc
		defer func() {
			if err := client.Close(); err != nil {
				log.Error("Error closing redis client", zap.Error(err))
			}
		}()
		log.Info("Redis connected successfully")
	}

	// Repository source: live rows by default, fixtures for demo sessions
	source := datasource.NewProvider(datasource.NewLiveRepositories(db.DB, log), cfg.Demo.Enabled, log, nil)

	// Application services
	dashboardService := dashboardapp.NewService(source, dashboardCache, cfg.Dashboard, log, nil)
	searchService := searchapp.NewService(source, cfg.Search.MinQueryLength, cfg.Search.PerCategoryLimit, log)
	activityService := activityapp.NewService(source, 0, cfg.Dashboard.ActivityFeed, log, nil)

	// Token verification; tokens are issued by the external auth backend
	verifier := auth.NewVerifier(cfg.JWT)

	// HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORS(cfg.HTTP))

	// Routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.Identity(middleware.AuthConfig{
		Verifier: verifier,
		SkipPaths: []string{
			"/api/v1/system/ping",
			"/api/v1/system/health",
		},
	}))

	r.Register(handler.NewDashboardHandler(dashboardService)).
		Register(handler.NewSearchHandler(searchService)).
		Register(handler.NewActivityHandler(activityService)).
		Register(handler.NewLeadHandler(source)).
		Register(handler.NewClientHandler(source)).
		Register(handler.NewQuoteHandler(source)).
		Register(handler.NewInvoiceHandler(source)).
		Register(handler.NewInventoryHandler(source)).
		Register(handler.NewNotificationHandler(source)).
		Register(handler.NewSystemHandler(db, redisClient, cacheFlusher, log))
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
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
