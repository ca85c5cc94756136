package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"clinic-appointments/internal/domain"
	"clinic-appointments/internal/service"
	"clinic-appointments/internal/transport/http/ez"
	"clinic-appointments/internal/transport/http/router"
)

type SettingsHandler struct{ settings *service.SettingsService }

func NewSettingsHandler(s *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: s}
}

type themeIn struct {
	Theme string `json:"theme" binding:"required"`
}

func (h *SettingsHandler) MountAPI(r router.Routes) {
	ez.RegisterAction(r.Auth, ez.Action[struct{}, domain.Settings]{
		Method: http.MethodGet,
		Path:   "/settings",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (domain.Settings, error) {
			return h.settings.Get(c.Request.Context(), c.GetString(ez.KeyUserID))
		},
	})

	ez.RegisterAction(r.Auth, ez.Action[themeIn, domain.Settings]{
		Method: http.MethodPut,
		Path:   "/settings",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *themeIn) (domain.Settings, error) {
			return h.settings.SetTheme(c.Request.Context(), c.GetString(ez.KeyUserID), in.Theme)
		},
	})

	ez.RegisterAction(r.Auth, ez.Action[struct{}, domain.Settings]{
		Method: http.MethodPost,
		Path:   "/settings/theme/toggle",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (domain.Settings, error) {
			return h.settings.Toggle(c.Request.Context(), c.GetString(ez.KeyUserID))
		},
	})
}
