package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"clinic-appointments/internal/domain"
	"clinic-appointments/internal/service"
	"clinic-appointments/internal/transport/http/ez"
	"clinic-appointments/internal/transport/http/router"
)

type AuthHandler struct {
	auth  *service.AuthService
	users *service.UserService
}

func NewAuthHandler(a *service.AuthService, u *service.UserService) *AuthHandler {
	return &AuthHandler{auth: a, users: u}
}

func (h *AuthHandler) Priority() int { return 10 }

type loginIn struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"     binding:"omitempty,max=64"` // 首次注册可用
}

type meOut struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func (h *AuthHandler) MountAPI(r router.Routes) {
	// /auth/login：查不到就自动注册 + 发 JWT
	ez.RegisterAction(r.Public, ez.Action[loginIn, service.LoginResult]{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *loginIn) (service.LoginResult, error) {
			out, err := h.auth.Login(c.Request.Context(), in.Email, in.Password, in.Name)
			switch {
			case errors.Is(err, service.ErrInvalidCredentials):
				return out, ez.Unauthorized("invalid credentials")
			case errors.Is(err, service.ErrAccountDisabled):
				return out, ez.Forbidden("account disabled")
			}
			return out, err
		},
	})

	ez.RegisterAction(r.Auth, ez.Action[struct{}, gin.H]{
		Method: http.MethodPost,
		Path:   "/auth/logout",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			if err := h.auth.Logout(c.Request.Context(), claimsOf(c)); err != nil {
				return nil, ez.Internal("logout failed", err)
			}
			return gin.H{"loggedOut": true}, nil
		},
	})

	ez.RegisterAction(r.Auth, ez.Action[struct{}, meOut]{
		Method: http.MethodGet,
		Path:   "/me",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (meOut, error) {
			u, err := h.users.GetUser(c.Request.Context(), c.GetString(ez.KeyUserID))
			if errors.Is(err, domain.ErrNotFound) {
				return meOut{}, ez.NotFound("user not found")
			}
			if err != nil {
				return meOut{}, err
			}
			return meOut{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}, nil
		},
	})
}
