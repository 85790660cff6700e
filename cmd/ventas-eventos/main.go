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

	"github.com/gin-gonic/gin"
	"github.com/malenagianoglio/ventas-eventos/internal/di"
	"github.com/malenagianoglio/ventas-eventos/internal/handler"
	"github.com/malenagianoglio/ventas-eventos/internal/metrics"
	"github.com/malenagianoglio/ventas-eventos/internal/printer"
	"github.com/malenagianoglio/ventas-eventos/internal/service"
	"github.com/malenagianoglio/ventas-eventos/pkg/config"
	"github.com/malenagianoglio/ventas-eventos/pkg/database"
	"github.com/malenagianoglio/ventas-eventos/pkg/logger"
	"github.com/malenagianoglio/ventas-eventos/pkg/middleware"
	"github.com/malenagianoglio/ventas-eventos/pkg/redis"
	"github.com/malenagianoglio/ventas-eventos/pkg/telemetry"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logCfg := &logger.Config{
		Level:       cfg.Log.Level,
		ServiceName: cfg.App.Name,
		Development: cfg.IsDevelopment(),
	}
	if err := logger.Init(logCfg); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	appLog := logger.Get()
	appLog.Info("Starting point-of-sale service...", zap.String("version", cfg.App.Version))

	ctx := context.Background()

	// Initialize OpenTelemetry
	telemetryCfg := &telemetry.Config{
		Enabled:        cfg.OTel.Enabled,
		ServiceName:    cfg.OTel.ServiceName,
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
		CollectorAddr:  cfg.OTel.CollectorAddr,
		SampleRatio:    cfg.OTel.SampleRatio,
	}
	if _, err := telemetry.Init(ctx, telemetryCfg); err != nil {
		appLog.Warn("Failed to initialize telemetry", zap.Error(err))
	} else if telemetryCfg.Enabled {
		appLog.Info("Telemetry initialized", zap.String("collector", telemetryCfg.CollectorAddr))
	}
	defer telemetry.Shutdown(ctx)

	// Open the store and bring the schema up to date
	dbCfg := &database.Config{
		Driver:          cfg.Database.Driver,
		Path:            cfg.Database.Path,
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		MaxRetries:      cfg.Database.MaxRetries,
		RetryInterval:   cfg.Database.RetryInterval,
	}
	db, err := database.Open(ctx, dbCfg)
	if err != nil {
		appLog.Fatal("Database connection failed", zap.Error(err))
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		appLog.Fatal("Database migration failed", zap.Error(err))
	}
	appLog.Info("Database ready", zap.String("driver", db.Driver()))

	// Initialize Redis connection (optional - report cache is disabled without it)
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisCfg := &redis.Config{
			Host:          cfg.Redis.Host,
			Port:          cfg.Redis.Port,
			Password:      cfg.Redis.Password,
			DB:            cfg.Redis.DB,
			PoolSize:      cfg.Redis.PoolSize,
			DialTimeout:   cfg.Redis.DialTimeout,
			ReadTimeout:   cfg.Redis.ReadTimeout,
			WriteTimeout:  cfg.Redis.WriteTimeout,
			MaxRetries:    1,
			RetryInterval: time.Second,
		}
		redisClient, err = redis.NewClient(ctx, redisCfg)
		if err != nil {
			appLog.Warn("Redis connection failed (report cache disabled)", zap.Error(err))
			redisClient = nil
		} else {
			defer redisClient.Close()
			appLog.Info("Redis connected", zap.String("addr", redisCfg.Addr()))
		}
	}

	// Initialize the ticket printer
	ticketPrinter, err := printer.NewPrinter(cfg.Printer.Driver, &printer.Config{
		Addr:    cfg.Printer.Addr,
		Timeout: cfg.Printer.Timeout,
	})
	if err != nil {
		appLog.Fatal("Printer initialization failed", zap.Error(err))
	}
	defer ticketPrinter.Close()
	appLog.Info("Printer ready", zap.String("driver", ticketPrinter.Name()))

	// Build dependency injection container
	container := di.NewContainer(&di.ContainerConfig{
		DB:             db,
		Redis:          redisClient,
		Printer:        ticketPrinter,
		ReportCacheTTL: cfg.Report.CacheTTL,
		PrintConfig: &service.PrintServiceConfig{
			MaxRetries:    cfg.Printer.MaxRetries,
			RetryInterval: cfg.Printer.RetryInterval,
		},
	})

	// Setup Gin
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(appLog, "/health", "/ready", "/metrics"))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	router.Use(metrics.GinMiddleware())
	if cfg.OTel.Enabled {
		router.Use(telemetry.TracingMiddleware())
	}

	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	handler.RegisterRoutes(router, container.Handlers)

	// Create HTTP server
	addr := cfg.Server.Addr()
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 2 * time.Second,
	}

	// Start server in goroutine
	go func() {
		appLog.Info(fmt.Sprintf("Point-of-sale service listening on %s", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("Shutting down server...")

	shutdownTimeout := cfg.Server.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 30 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Error("Server forced to shutdown", zap.Error(err))
	}

	appLog.Info("Server exited gracefully")
}
