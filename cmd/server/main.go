package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/birchwood/ethnograph/internal/cache"
	"github.com/birchwood/ethnograph/internal/config"
	"github.com/birchwood/ethnograph/internal/database"
	"github.com/birchwood/ethnograph/internal/enrich"
	"github.com/birchwood/ethnograph/internal/handlers"
	"github.com/birchwood/ethnograph/internal/logger"
	"github.com/birchwood/ethnograph/internal/metrics"
	"github.com/birchwood/ethnograph/internal/middleware"
	"github.com/birchwood/ethnograph/internal/nlp"
	"github.com/birchwood/ethnograph/internal/storage"
	"github.com/birchwood/ethnograph/internal/telemetry"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	cfg := config.Load()

	if err := logger.Initialize(cfg.LogLevel, cfg.LogFile); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	logger.Log.Info("=== Ethnograph server starting ===")

	metrics.Initialize()

	// Tracing is optional; requests run untraced when no OTLP endpoint is
	// configured.
	tp, err := telemetry.InitTracer(telemetry.Config{
		ServiceName:  "ethnograph-backend",
		Environment:  cfg.Environment,
		OTLPEndpoint: cfg.OTLPEndpoint,
		Enabled:      cfg.TracingEnabled,
		SamplingRate: cfg.TraceSampleRate,
	})
	if err != nil {
		logger.Log.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	if tp != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = tp.Shutdown(ctx)
		}()
	}

	taxonomy, err := cfg.LoadTaxonomy()
	if err != nil {
		logger.Log.Fatal("Failed to load topic taxonomy", zap.Error(err))
	}

	// NLP sidecar client for embeddings and emotion classification.
	nlpClient := nlp.NewClient(cfg.NLPServiceURL)
	registry := enrich.NewRegistry(nlpClient, nlpClient)

	// Redis caches taxonomy embeddings across restarts. Optional.
	if cfg.RedisHost != "" {
		redisClient, err := cache.NewRedisClient(cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword)
		if err != nil {
			logger.Log.Warn("Redis unavailable, taxonomy embeddings will not be cached", zap.Error(err))
		} else {
			registry.SetCache(redisClient)
			defer redisClient.Close()
		}
	}

	h := handlers.NewHandlers(registry, taxonomy, cfg.ConfidenceThreshold)

	// Dataset persistence is optional; without a database the API still
	// serves uploads and in-memory analysis.
	if err := database.Initialize(); err != nil {
		logger.Log.Warn("Database unavailable, dataset persistence disabled", zap.Error(err))
	} else {
		if err := database.Migrate(); err != nil {
			logger.Log.Fatal("Failed to run migrations", zap.Error(err))
		}
		h.SetStore(storage.NewStore(database.DB))
		defer database.Close()
	}

	// Setup Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	if tp != nil {
		r.Use(otelgin.Middleware("ethnograph-backend"))
	}
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.GinLoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type"}
	r.Use(cors.New(corsConfig))

	r.GET("/health", func(c *gin.Context) {
		status := gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC(),
			"service":   "ethnograph-backend",
			"nlp":       nlpClient.IsAvailable(c.Request.Context()),
		}
		if database.DB != nil {
			status["database"] = database.Health() == nil
		}
		c.JSON(http.StatusOK, status)
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	{
		ds := api.Group("/dataset")
		{
			ds.POST("", h.UploadDataset)
			ds.GET("/summary", h.GetSummary)
			ds.POST("/search", h.Search)
			ds.POST("/time-range", h.SetTimeRange)
			ds.POST("/sources", h.FilterSources)
			ds.POST("/reset", h.ResetDataset)
		}

		stats := api.Group("/stats")
		{
			stats.GET("/time", h.GetTimeAnalysis)
			stats.GET("/content", h.GetContentAnalysis)
			stats.GET("/users", h.GetUserAnalysis)
		}

		saved := api.Group("/datasets")
		{
			saved.POST("", h.SaveDataset)
			saved.GET("", h.ListDatasets)
			saved.POST("/:id/load", h.LoadDataset)
			saved.DELETE("/:id", h.DeleteDataset)
		}
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Log.Info("Ethnograph backend listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Log.Info("Server exited")
}
