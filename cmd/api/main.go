package main

import (
	"context"
	"os"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"clinic-appointments/internal/app"
	"clinic-appointments/internal/core/config"
	"clinic-appointments/internal/core/logger"
	"clinic-appointments/internal/core/server"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.FromConfig(cfg.Log.Level, cfg.Log.JSON, cfg.Log.Rotate)
	defer cleanup()
	undo := logger.RedirectStdLog(log, zap.InfoLevel)
	defer undo()

	gin.SetMode(server.ModeFor(cfg.App.Env))
	gin.DefaultWriter = logger.ToWriter(log.Named("gin"), zap.DebugLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	a, closeAll, err := app.Bootstrap(ctx, cfg, log)
	cancel()
	if err != nil {
		log.Fatal("bootstrap failed", zap.Error(err))
	}
	defer closeAll()

	// 路由（用户端）
	r := a.APIEngine()

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
		log,
	)
	app.Serve("user api", srv, log, cfg.App.HTTP.Host, cfg.App.HTTP.Port, "/api/v1")
}
