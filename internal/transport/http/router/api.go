package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"clinic-appointments/internal/core/auth"
	"clinic-appointments/internal/core/config"
	"clinic-appointments/internal/core/server"
	mdw "clinic-appointments/internal/transport/http/middleware"
)

// Mounter 直接挂在 /api 下、不走信封的接口
type Mounter interface{ Mount(*gin.RouterGroup) }

type Deps struct {
	Log     *zap.Logger
	JWT     *auth.JWTer
	Limits  config.Limits
	Raw     Mounter // 仅用户端
	Modules []any
}

func NewAPIEngine(d Deps) *gin.Engine {
	r := baseEngine(d, "api")

	// /api：{"message"} / {"error"} 形态
	if d.Raw != nil {
		d.Raw.Mount(r.Group("/api"))
	}

	// /api/v1 信封接口
	api := r.Group("/api/v1")
	authUser := api.Group("")
	authUser.Use(mdw.AuthJWT(d.JWT, ""))

	new(Registry).Register(d.Modules...).MountAllAPI(Routes{Public: api, Auth: authUser})
	return r
}

func baseEngine(d Deps, name string) *gin.Engine {
	lim := withDefaults(d.Limits)
	r := server.NewRouter(d.Log)
	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(rate.Limit(lim.RPS), lim.Burst),
		mdw.RateLimitPerIP(rate.Limit(lim.PerIPRPS), lim.PerIPBurst),
		mdw.ConcurrencyLimit(lim.Concurrency),
		mdw.MaxBodyBytes(lim.MaxBodyMB<<20),
		mdw.Timeout(time.Duration(lim.TimeoutSec)*time.Second),
		mdw.SimpleRecovery(d.Log),
		mdw.Metrics(name),
		mdw.AccessLog(d.Log),
	)

	// 健康检查
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}

func withDefaults(l config.Limits) config.Limits {
	if l.RPS <= 0 {
		l.RPS = 200
	}
	if l.Burst <= 0 {
		l.Burst = 400
	}
	if l.PerIPRPS <= 0 {
		l.PerIPRPS = 20
	}
	if l.PerIPBurst <= 0 {
		l.PerIPBurst = 40
	}
	if l.Concurrency <= 0 {
		l.Concurrency = 300
	}
	if l.MaxBodyMB <= 0 {
		l.MaxBodyMB = 16
	}
	if l.TimeoutSec <= 0 {
		l.TimeoutSec = 10
	}
	return l
}
