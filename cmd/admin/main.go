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
	log = log.Named("admin")

	gin.SetMode(server.ModeFor(cfg.App.Env))

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	a, closeAll, err := app.Bootstrap(ctx, cfg, log)
	cancel()
	if err != nil {
		log.Fatal("bootstrap failed", zap.Error(err))
	}
	defer closeAll()

	// 路由（后台端）
	r := a.AdminEngine()

	addr := server.Addr(cfg.App.Admin.Host, cfg.App.Admin.Port)
	srv := server.BuildServer(addr, r, 5*time.Second, 10*time.Second, 60*time.Second, log)
	app.Serve("admin api", srv, log, cfg.App.Admin.Host, cfg.App.Admin.Port, "/admin/v1")
}
