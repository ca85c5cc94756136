package domain

import (
	"context"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User 用户文档；Extra 承载 POST /api/users/:uid 合并写入的其它字段
type User struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	Name         string         `json:"name"`
	PasswordHash string         `json:"-"`
	Role         string         `json:"role"` // "user"/"admin"
	Extra        map[string]any `json:"extra,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    *time.Time     `json:"-"`
}

func (u *User) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }

func (u *User) Banned() bool { return u != nil && u.DeletedAt != nil }

// Document 按文档形态输出：id + 类型字段 + Extra 平铺
func (u *User) Document() map[string]any {
	doc := make(map[string]any, len(u.Extra)+4)
	for k, v := range u.Extra {
		doc[k] = v
	}
	doc["id"] = u.ID
	doc["name"] = u.Name
	doc["email"] = u.Email
	doc["role"] = u.Role
	return doc
}

type UserListQuery struct {
	Offset      int
	Limit       int
	Q           string // email/name 模糊搜
	WithDeleted bool
}

// UserRepository email 全局唯一（含已封禁），空 email 不参与唯一约束；冲突返回 ErrConflict
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByIDs(ctx context.Context, ids []string) ([]User, error)
	// FindByEmail 包含已封禁用户，调用方看 Banned()
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, q UserListQuery) ([]User, int64, error)
	// Upsert 不存在则创建；存在则整体覆盖（合并逻辑在 service 层）
	Upsert(ctx context.Context, u *User) error
	SoftDelete(ctx context.Context, id string) error
}
