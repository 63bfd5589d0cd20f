package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jihyeonseong/9oormthon-3-backend/internal/config"
	"github.com/jihyeonseong/9oormthon-3-backend/internal/event"
	"github.com/jihyeonseong/9oormthon-3-backend/internal/handler"
	"github.com/jihyeonseong/9oormthon-3-backend/internal/repository"
	"github.com/jihyeonseong/9oormthon-3-backend/internal/service"
	"github.com/jihyeonseong/9oormthon-3-backend/internal/storage"
	"github.com/jihyeonseong/9oormthon-3-backend/pkg/db"
	"github.com/jihyeonseong/9oormthon-3-backend/pkg/logger"
	"github.com/jihyeonseong/9oormthon-3-backend/pkg/metrics"
)

func main() {
	// Initialize logger
	log := logger.NewLogger("quest-service")
	log.Info("Starting Quest Service...")

	// Load env
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, using system env")
	}

	cfg := config.Load()

	// Initialize database connection
	conn, err := db.NewConnection(db.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		Database: cfg.DBDatabase,
	})
	if err != nil {
		log.Fatal("Failed to connect to database", "error", err)
	}
	defer conn.Close()

	// Validate schema
	schemaGuard := db.NewSchemaGuard(conn.DB)
	if err := schemaGuard.ValidateTables(db.QuestTables()); err != nil {
		log.Warn("Schema validation warning", "error", err)
	}

	log.Info("Database connected and schema validated")

	// Initialize object storage
	store, err := storage.NewClient(storage.Options{
		Endpoint:  cfg.StorageEndpoint,
		AccessKey: cfg.StorageAccessKey,
		SecretKey: cfg.StorageSecretKey,
		UseSSL:    cfg.StorageUseSSL,
		Region:    cfg.StorageRegion,
		Bucket:    cfg.StorageBucket,
	}, log)
	if err != nil {
		log.Fatal("Failed to connect to object storage", "error", err)
	}

	defaults := storage.NewDefaultImageDirectory(store, cfg.DefaultImagePrefix, cfg.DefaultImageTTL, log)

	// RabbitMQ event publisher. The API works without it.
	var publisher *event.EventPublisher
	if cfg.AMQPURL != "" && cfg.AMQPExchange != "" {
		publisher, err = event.NewEventPublisher(cfg.AMQPURL, cfg.AMQPExchange, log)
		if err != nil {
			log.Warn("Failed to connect to RabbitMQ - quest events disabled", "error", err)
			publisher = nil
		} else {
			defer publisher.Close()
		}
	} else {
		log.Info("RabbitMQ not configured, quest events will not be published")
	}

	// Initialize repositories
	questRepo := repository.NewQuestRepository(conn.DB)
	scoreRepo := repository.NewScoreRepository(conn.DB)
	uploadRepo := repository.NewUploadRepository(conn.DB)

	// Initialize services
	questService := service.NewQuestService(questRepo, log)
	scoreService := service.NewScoreService(questRepo, scoreRepo, publisher, log)
	historyService := service.NewHistoryService(scoreRepo, uploadRepo, store, defaults, cfg.PresignTTL, log)
	uploadService := service.NewUploadService(uploadRepo, store, scoreService, publisher, cfg.PresignTTL, log)
	reconcileService := service.NewReconcileService(uploadRepo, scoreService, log)

	// Initialize HTTP handlers
	questHandler := handler.NewQuestHandler(questService, scoreService, cfg.RequestTimeout, log)
	historyHandler := handler.NewHistoryHandler(historyService, cfg.RequestTimeout, log)
	uploadHandler := handler.NewUploadHandler(uploadService, cfg.RequestTimeout, log)

	serviceMetrics := metrics.NewMetrics("quest")

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type", "Content-Length", "Accept-Encoding", "Accept-Language", "accept", "origin", "Cache-Control", "X-Requested-With"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))
	r.Use(logger.RequestLogger(log))
	r.Use(metrics.HTTPMiddleware(serviceMetrics))
	r.MaxMultipartMemory = 10 << 20

	handler.RegisterRoutes(r, questHandler, historyHandler, uploadHandler)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go reconcileService.Run(ctx)
	go serviceMetrics.CollectDBPoolStats(conn.DB, 15*time.Second, ctx.Done())

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: r,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		log.Info("Shutting down gracefully...")
		cancel() // Stop background jobs

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Forced shutdown", "error", err)
		}
	}()

	log.Info("Quest Service started", "port", cfg.HTTPPort)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("Failed to serve", "error", err)
	}

	log.Info("Shutdown complete")
}
