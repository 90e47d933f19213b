package app

import (
	"context"

	"go-ess/internal/document"
	"go-ess/internal/messaging/kafka"
	"go-ess/internal/middleware"
	"go-ess/internal/shared/config"
	"go-ess/internal/shared/connection"
	"go-ess/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp connects infrastructure and mounts every module on router. The
// returned cleanup stops background work and closes connections.
func BuildApp(router *gin.Engine, cfg config.Config) (func(context.Context), error) {
	logger := zap.L().Named("app.api")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.DB, cfg.MaxRetries)
	if err != nil {
		return nil, err
	}
	if err := gormDB.AutoMigrate(&document.Document{}, &counter.Counter{}, &kafka.OutboxRecord{}); err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	logger.Info("database connection established")

	redisClient, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.MaxRetries)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}
	logger.Info("redis connection established")

	router.Use(
		middleware.RequestID(),
		middleware.ContextLogger(zap.L()),
	)

	ctx, cancel := context.WithCancel(context.Background())
	modules, err := registerModules(ctx, router, cfg, sqlDB, gormDB, redisClient)
	if err != nil {
		cancel()
		redisClient.Close()
		sqlDB.Close()
		return nil, err
	}

	cleanup := func(context.Context) {
		cancel()
		modules.resolvers.Close()
		if err := redisClient.Close(); err != nil {
			logger.Warn("close redis failed", zap.Error(err))
		}
		if err := sqlDB.Close(); err != nil {
			logger.Warn("close database failed", zap.Error(err))
		}
	}
	return cleanup, nil
}
