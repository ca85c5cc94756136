package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clinic-appointments/internal/core/auth"
	"clinic-appointments/internal/core/cache"
	"clinic-appointments/internal/core/config"
	"clinic-appointments/internal/repo"
	"clinic-appointments/internal/service"
	"clinic-appointments/internal/transport/http/handler"
	"clinic-appointments/internal/transport/http/router"
)

type Services struct {
	Appointments *service.AppointmentService
	Analytics    *service.AnalyticsService
	List         *service.ListViewService
	Settings     *service.SettingsService
	Users        *service.UserService
	Auth         *service.AuthService
	Dashboard    *service.DashboardService
}

// NewServices c 为 nil 时不走缓存；j 的账号状态校验挂到 UserService
func NewServices(st *repo.Stores, c *cache.Cache, j *auth.JWTer, isAdmin func(string) bool, l *zap.Logger) Services {
	appts := service.NewAppointmentService(st.Appointments, l.Named("appointment"))
	analytics := service.NewAnalyticsService(st.Appointments, l.Named("analytics"))
	list := service.NewListViewService(appts, st.Appointments, st.Users, l.Named("listview"))
	settings := service.NewSettingsService(st.Settings)
	users := service.NewUserService(st.Users, c, l.Named("user"))
	if j.Subjects == nil {
		j.Subjects = users
	}
	return Services{
		Appointments: appts,
		Analytics:    analytics,
		List:         list,
		Settings:     settings,
		Users:        users,
		Auth:         service.NewAuthService(st.Users, j, isAdmin, l.Named("auth")),
		Dashboard:    service.NewDashboardService(users, settings, analytics, list, l.Named("dashboard")),
	}
}

type App struct {
	Cfg    *config.Config
	Log    *zap.Logger
	JWT    *auth.JWTer
	Stores *repo.Stores
	Cache  *cache.Cache
	Svc    Services
}

// Bootstrap 打开存储/缓存并组装 service；返回的 cleanup 负责关闭连接
func Bootstrap(ctx context.Context, cfg *config.Config, l *zap.Logger) (*App, func(), error) {
	st, err := repo.Open(ctx, cfg.DB, l.Named("db"))
	if err != nil {
		return nil, nil, err
	}
	l.Info("database connected", zap.String("driver", cfg.DB.Driver))

	c := openCache(ctx, cfg.Redis, l)
	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
	}
	if c != nil {
		jwter.Denylist = c.Denylist()
	}

	a := &App{
		Cfg:    cfg,
		Log:    l,
		JWT:    jwter,
		Stores: st,
		Cache:  c,
		Svc:    NewServices(st, c, jwter, cfg.IsAdminEmail, l),
	}
	cleanup := func() {
		if c != nil {
			_ = c.Close()
		}
		st.Close()
	}
	return a, cleanup, nil
}

// redis 可选：未配置或连不上则不缓存，登出只在客户端生效
func openCache(ctx context.Context, rc config.Redis, l *zap.Logger) *cache.Cache {
	if rc.Addr == "" {
		return nil
	}
	c := cache.New(rc.Addr, rc.Password, rc.DB)
	pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := c.Ping(pctx); err != nil {
		l.Warn("redis unavailable, cache disabled", zap.String("addr", rc.Addr), zap.Error(err))
		_ = c.Close()
		return nil
	}
	l.Info("redis connected", zap.String("addr", rc.Addr))
	return c
}

func (a *App) deps(raw router.Mounter, mods ...any) router.Deps {
	return router.Deps{Log: a.Log, JWT: a.JWT, Limits: a.Cfg.Limits, Raw: raw, Modules: mods}
}

func (a *App) APIEngine() *gin.Engine {
	return router.NewAPIEngine(a.deps(
		handler.NewProfileHandler(a.Svc.Users, a.Log.Named("profile")),
		handler.NewAuthHandler(a.Svc.Auth, a.Svc.Users),
		handler.NewAppointmentHandler(a.Svc.Appointments, a.Svc.List, a.Svc.Analytics),
		handler.NewSettingsHandler(a.Svc.Settings),
		handler.NewDashboardHandler(a.Svc.Dashboard),
	))
}

func (a *App) AdminEngine() *gin.Engine {
	return router.NewAdminEngine(a.deps(
		nil,
		handler.NewAdminHandler(a.Svc.Users),
		handler.NewAppointmentHandler(a.Svc.Appointments, a.Svc.List, a.Svc.Analytics),
		handler.NewDashboardHandler(a.Svc.Dashboard),
	))
}

// Serve 异步启动，收到 SIGINT/SIGTERM 后优雅关闭
func Serve(name string, srv *http.Server, l *zap.Logger, host string, port int, prefix string) {
	host4human := host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := fmt.Sprintf("http://%s:%d", host4human, port)
	l.Info(name+" starting",
		zap.String("addr", srv.Addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("prefix", baseURL+prefix),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Fatal(name+" start FAILED", zap.Error(err))
		}
	}()
	l.Info(name + " started SUCCESS")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		l.Warn(name+" shutdown", zap.Error(err))
	}
	l.Info(name + " stopped gracefully")
}
