package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"clinic-appointments/internal/domain"
	"clinic-appointments/internal/service"
	"clinic-appointments/internal/transport/http/ez"
	"clinic-appointments/internal/transport/http/router"
)

// AppointmentHandler 用户端只看自己的，管理端看全部并可改状态
type AppointmentHandler struct {
	appts     *service.AppointmentService
	list      *service.ListViewService
	analytics *service.AnalyticsService
}

func NewAppointmentHandler(a *service.AppointmentService, l *service.ListViewService, an *service.AnalyticsService) *AppointmentHandler {
	return &AppointmentHandler{appts: a, list: l, analytics: an}
}

type statusIn struct {
	Status string `json:"status" binding:"required"`
}

func (h *AppointmentHandler) MountAPI(r router.Routes) {
	ez.RegisterAction(r.Auth, ez.Action[service.AppointmentForm, *domain.Appointment]{
		Method: http.MethodPost,
		Path:   "/appointments",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *service.AppointmentForm) (*domain.Appointment, error) {
			return h.appts.SubmitForm(c.Request.Context(), c.GetString(ez.KeyUserID), *in)
		},
	})

	ez.RegisterAction(r.Auth, ez.Action[struct{}, []service.ListItem]{
		Method: http.MethodGet,
		Path:   "/appointments",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) ([]service.ListItem, error) {
			return h.list.List(c.Request.Context(), service.Owner(c.GetString(ez.KeyUserID)))
		},
	})

	ez.RegisterAction(r.Auth, ez.Action[struct{}, service.AnalyticsView]{
		Method: http.MethodGet,
		Path:   "/analytics",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (service.AnalyticsView, error) {
			return h.analytics.View(c.Request.Context(), c.GetString(ez.KeyUserID), false)
		},
	})
}

func (h *AppointmentHandler) MountAdmin(admin *gin.RouterGroup) {
	ez.RegisterAction(admin, ez.Action[struct{}, []service.ListItem]{
		Method: http.MethodGet,
		Path:   "/appointments",
		Binder: ez.BindNone,
		Auth:   true,
		Roles:  []string{domain.RoleAdmin},
		Handler: func(c *gin.Context, _ *struct{}) ([]service.ListItem, error) {
			return h.list.List(c.Request.Context(), service.AllAppointments)
		},
	})

	ez.RegisterAction(admin, ez.Action[struct{}, service.ListItem]{
		Method: http.MethodPost,
		Path:   "/appointments/:id/toggle",
		Binder: ez.BindNone,
		Auth:   true,
		Roles:  []string{domain.RoleAdmin},
		Handler: func(c *gin.Context, _ *struct{}) (service.ListItem, error) {
			return h.list.Toggle(c.Request.Context(), c.Param("id"))
		},
	})

	ez.RegisterAction(admin, ez.Action[statusIn, service.ListItem]{
		Method: http.MethodPut,
		Path:   "/appointments/:id/status",
		Binder: ez.BindJSON,
		Auth:   true,
		Roles:  []string{domain.RoleAdmin},
		Handler: func(c *gin.Context, in *statusIn) (service.ListItem, error) {
			return h.list.SetStatus(c.Request.Context(), c.Param("id"), in.Status)
		},
	})

	ez.RegisterAction(admin, ez.Action[struct{}, service.AnalyticsView]{
		Method: http.MethodGet,
		Path:   "/analytics",
		Binder: ez.BindNone,
		Auth:   true,
		Roles:  []string{domain.RoleAdmin},
		Handler: func(c *gin.Context, _ *struct{}) (service.AnalyticsView, error) {
			return h.analytics.View(c.Request.Context(), c.GetString(ez.KeyUserID), true)
		},
	})
}
