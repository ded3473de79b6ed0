package main

import (
    "context"
    "net/http"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/gin-gonic/gin"
    "github.com/sirupsen/logrus"

    "offerconsole/internal/cache"
    "offerconsole/internal/catalog"
    "offerconsole/internal/client"
    "offerconsole/internal/config"
    "offerconsole/internal/handlers"
    "offerconsole/internal/storage"
    "offerconsole/internal/syncctl"
)

func main() {
    // Load configuration
    cfg := config.Load()

    // Setup logger
    logger := logrus.New()
    level, err := logrus.ParseLevel(cfg.LogLevel)
    if err != nil {
        level = logrus.InfoLevel
    }
    logger.SetLevel(level)
    logger.SetFormatter(&logrus.JSONFormatter{})

    logger.Info("Starting Offer Console sync engine")

    // Snapshot cache: Redis when configured, in-memory otherwise
    var snapshotCache cache.Cache
    if cfg.RedisAddr != "" {
        redisCache, err := cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
        if err != nil {
            logger.WithError(err).Fatal("Failed to connect to Redis")
        }
        defer redisCache.Close()
        snapshotCache = redisCache
        logger.WithField("addr", cfg.RedisAddr).Info("Using Redis snapshot cache")
    } else {
        snapshotCache = cache.NewInMemoryCache()
    }

    // Initialize components
    providerClient := client.NewProviderClient(cfg, logger)
    backendClient := client.NewBackendClient(cfg, logger)
    store := storage.NewSessionStore()
    coordinator := catalog.NewCoordinator(providerClient, store, logger)
    snapshot := syncctl.NewSnapshotStore(backendClient, snapshotCache, cfg.SnapshotTTL, logger)
    controller := syncctl.NewController(backendClient, snapshot, logger)

    // Initialize handlers
    handler := handlers.New(coordinator, store, snapshot, controller, logger)

    // Setup Gin router
    if cfg.LogLevel != "debug" {
        gin.SetMode(gin.ReleaseMode)
    }
    router := gin.New()
    router.Use(gin.Logger(), gin.Recovery())

    // Health endpoints
    router.GET("/healthz", handler.HealthCheck)
    router.GET("/readyz", handler.ReadinessCheck)

    // Catalog endpoints
    router.GET("/catalog", handler.GetCatalog)
    router.GET("/catalog/summary", handler.GetSummary)

    // Sync endpoints
    router.POST("/offers/:id/sync", handler.BeginSync)
    router.DELETE("/offers/:id/sync", handler.Unsync)
    router.POST("/sync/bulk", handler.BeginBulkSync)
    router.POST("/sync/confirm", handler.ConfirmSync)
    router.POST("/sync/cancel", handler.CancelSync)

    // Reward editing
    router.PATCH("/configured/:configuredId/reward", handler.UpdateReward)

    // Start server
    srv := &http.Server{
        Addr:    ":" + cfg.Port,
        Handler: router,
    }

    go func() {
        logger.WithField("port", cfg.Port).Info("Server started")
        if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
            logger.WithError(err).Fatal("Failed to start server")
        }
    }()

    // Graceful shutdown
    quit := make(chan os.Signal, 1)
    signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
    <-quit

    logger.Info("Shutting down server...")
    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()

    if err := srv.Shutdown(ctx); err != nil {
        logger.WithError(err).Fatal("Server forced to shutdown")
    }

    logger.Info("Server exited")
}
