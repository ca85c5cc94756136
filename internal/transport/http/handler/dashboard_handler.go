package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"clinic-appointments/internal/domain"
	"clinic-appointments/internal/service"
	"clinic-appointments/internal/transport/http/ez"
	"clinic-appointments/internal/transport/http/router"
)

type DashboardHandler struct{ dash *service.DashboardService }

func NewDashboardHandler(d *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dash: d}
}

func (h *DashboardHandler) Priority() int { return 200 }

func (h *DashboardHandler) MountAPI(r router.Routes) {
	ez.RegisterAction(r.Auth, ez.Action[struct{}, service.UserDashboard]{
		Method: http.MethodGet,
		Path:   "/dashboard",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (service.UserDashboard, error) {
			return h.dash.UserDashboard(c.Request.Context(), viewerOf(c)), nil
		},
	})
}

func (h *DashboardHandler) MountAdmin(admin *gin.RouterGroup) {
	ez.RegisterAction(admin, ez.Action[struct{}, service.AdminDashboard]{
		Method: http.MethodGet,
		Path:   "/dashboard",
		Binder: ez.BindNone,
		Auth:   true,
		Roles:  []string{domain.RoleAdmin},
		Handler: func(c *gin.Context, _ *struct{}) (service.AdminDashboard, error) {
			return h.dash.AdminDashboard(c.Request.Context(), viewerOf(c)), nil
		},
	})
}
