package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"clinic-appointments/internal/domain"
	"clinic-appointments/internal/service"
	"clinic-appointments/internal/transport/http/ez"
	resp "clinic-appointments/internal/transport/http/response"
)

// AdminHandler 管理端用户列表/封禁
type AdminHandler struct{ users *service.UserService }

func NewAdminHandler(u *service.UserService) *AdminHandler { return &AdminHandler{users: u} }

type listQ struct {
	Offset      int    `form:"offset,default=0"`
	Limit       int    `form:"limit,default=20"`
	Q           string `form:"q"`            // 按 email/name 模糊搜
	WithDeleted bool   `form:"with_deleted"` // 是否包含软删
}

type userRow struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	Banned    bool      `json:"banned"`
}

func (h *AdminHandler) MountAdmin(admin *gin.RouterGroup) {
	ez.RegisterAction(admin, ez.Action[listQ, resp.Page[userRow]]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: ez.BindQuery,
		Auth:   true,
		Roles:  []string{domain.RoleAdmin},
		Handler: func(c *gin.Context, in *listQ) (resp.Page[userRow], error) {
			us, total, err := h.users.List(c.Request.Context(), domain.UserListQuery{
				Offset: in.Offset, Limit: in.Limit, Q: in.Q, WithDeleted: in.WithDeleted,
			})
			if err != nil {
				return resp.Page[userRow]{}, ez.Internal("list users failed", err)
			}
			rows := make([]userRow, 0, len(us))
			for _, u := range us {
				rows = append(rows, userRow{
					ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role,
					CreatedAt: u.CreatedAt, Banned: u.DeletedAt != nil,
				})
			}
			return resp.NewPage(total, rows), nil
		},
	})

	// 封禁（软删）
	ez.RegisterAction(admin, ez.Action[struct{}, gin.H]{
		Method: http.MethodPost,
		Path:   "/users/:id/ban",
		Binder: ez.BindNone,
		Auth:   true,
		Roles:  []string{domain.RoleAdmin},
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			id := c.Param("id")
			if err := h.users.Ban(c.Request.Context(), id); err != nil {
				return nil, err
			}
			return gin.H{"id": id}, nil
		},
	})
}
