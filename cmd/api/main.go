package main

import (
	"time"
	_ "time/tzdata"

	"go-ess/internal/app"
	"go-ess/internal/bootstrap"
	"go-ess/internal/shared/apperror"
	"go-ess/internal/shared/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if cfg.JWTSecret == "" {
		logger.Fatal("JWT_SECRET is required")
	}

	apperror.Init()
	r := gin.New()
	r.Use(gin.Recovery())

	cleanup, err := app.BuildApp(r, cfg)
	if err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}

	bootstrap.StartHTTPServer(
		r,
		bootstrap.ServerConfig{
			Port:         cfg.Port,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 20 * time.Second,
			IdleTimeout:  60 * time.Second,
			OnShutdown:   cleanup,
		},
		bootstrap.NewStdoutAuditLogger(logger),
	)
}
