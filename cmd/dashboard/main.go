package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fekuna/omnipos-inventory-dashboard/config"
	"github.com/fekuna/omnipos-inventory-dashboard/internal/broker"
	"github.com/fekuna/omnipos-inventory-dashboard/internal/cache"
	"github.com/fekuna/omnipos-inventory-dashboard/internal/health"
	"github.com/fekuna/omnipos-inventory-dashboard/internal/logger"
	"github.com/fekuna/omnipos-inventory-dashboard/internal/product"
	prodH "github.com/fekuna/omnipos-inventory-dashboard/internal/product/handler"
	prodListenerPkg "github.com/fekuna/omnipos-inventory-dashboard/internal/product/listener"
	prodRepoPkg "github.com/fekuna/omnipos-inventory-dashboard/internal/product/repository"
	prodUCPkg "github.com/fekuna/omnipos-inventory-dashboard/internal/product/usecase"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
		Filename:          cfg.Logger.Filename,
		MaxSizeMB:         cfg.Logger.MaxSizeMB,
		MaxBackups:        cfg.Logger.MaxBackups,
		MaxAgeDays:        cfg.Logger.MaxAgeDays,
	}

	if cfg.Server.AppEnv == "development" || cfg.Server.AppEnv == "dev" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = cfg.Logger.Encoding
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Initialize Repository
	var prodRepo product.Repository
	switch cfg.Inventory.Mode {
	case config.ModeLocal:
		prodRepo = prodRepoPkg.NewMemoryRepository(prodRepoPkg.SampleProducts(time.Now())...)
		appLogger.Info("Using in-process inventory with sample data")
	default:
		prodRepo = prodRepoPkg.NewHTTPRepository(cfg.Inventory.BaseURL, cfg.Inventory.Timeout, appLogger)
		appLogger.Info("Using remote inventory service", zap.String("base_url", cfg.Inventory.BaseURL))
	}

	// 4. Initialize Redis
	var invalidator prodListenerPkg.Invalidator
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(&cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			appLogger.Fatal("Could not connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))

		cached := prodRepoPkg.NewCachedRepository(prodRepo, redisClient, cfg.Redis.TTL, appLogger)
		prodRepo = cached
		invalidator = cached
	}

	// 5. Initialize gRPC health server
	healthServer := health.NewServer(appLogger)

	// 6. Initialize Store
	store := prodUCPkg.NewProductStore(prodRepo, appLogger, &prodUCPkg.Config{
		PageSize:  cfg.Inventory.PageSize,
		FetchSize: cfg.Inventory.FetchSize,
		Retry: prodUCPkg.RetryPolicy{
			MaxAttempts:     uint(max(cfg.Retry.MaxAttempts, 1)),
			InitialInterval: cfg.Retry.InitialInterval,
			MaxInterval:     cfg.Retry.MaxInterval,
			MaxElapsed:      cfg.Retry.MaxElapsed,
		},
	}, prodUCPkg.WithSyncObserver(healthServer.ObserveSync))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := store.Refresh(ctx); err != nil {
		appLogger.Warn("Initial inventory load failed, serving empty dashboard", zap.Error(err))
	}

	// 7. Initialize Kafka Listener
	if cfg.Kafka.Enabled {
		kafkaConsumer := broker.NewConsumer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
			GroupID: cfg.Kafka.GroupID,
		})
		defer kafkaConsumer.Close()
		appLogger.Info("Connected to Kafka Consumer", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))

		changeListener := prodListenerPkg.NewChangeListener(kafkaConsumer, store, invalidator, appLogger)
		go changeListener.Start(ctx)
	}

	// 8. Start gRPC Server
	grpcPort := withColon(cfg.Server.GRPCPort)
	lis, err := net.Listen("tcp", grpcPort)
	if err != nil {
		appLogger.Fatal("failed to listen", zap.String("port", grpcPort), zap.Error(err))
	}
	go func() {
		appLogger.Info("Starting gRPC health server", zap.String("port", grpcPort))
		if err := healthServer.Serve(lis); err != nil {
			appLogger.Fatal("failed to serve grpc", zap.Error(err))
		}
	}()

	// 9. Start HTTP Server
	handler := prodH.NewInventoryHandler(store, appLogger)
	httpServer := &http.Server{
		Addr:              withColon(cfg.Server.HTTPPort),
		Handler:           prodH.NewRouter(handler, cfg.Server.CORSOrigins, appLogger),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		appLogger.Info("Starting HTTP server", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve http", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("http shutdown", zap.Error(err))
	}
	healthServer.GracefulStop()
	appLogger.Info("Server stopped")
}

func withColon(port string) string {
	if !strings.HasPrefix(port, ":") && !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}
