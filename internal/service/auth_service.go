package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"clinic-appointments/internal/core/auth"
	"clinic-appointments/internal/domain"
	"clinic-appointments/pkg/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")
)

type LoginResult struct {
	Token string       `json:"token"`
	IsNew bool         `json:"isNew"`
	User  *domain.User `json:"user"`
}

type AuthService struct {
	users   domain.UserRepository
	jwt     *auth.JWTer
	isAdmin func(email string) bool
	log     *zap.Logger
	now     func() time.Time
}

// NewAuthService isAdmin 决定首次注册的角色，nil 时一律 user
func NewAuthService(users domain.UserRepository, j *auth.JWTer, isAdmin func(string) bool, log *zap.Logger) *AuthService {
	if isAdmin == nil {
		isAdmin = func(string) bool { return false }
	}
	return &AuthService{users: users, jwt: j, isAdmin: isAdmin, log: log, now: time.Now}
}

// Login 查不到就自动注册 + 发 JWT；已封禁的账号密码对也拒绝
func (s *AuthService) Login(ctx context.Context, email, password, name string) (LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return LoginResult{}, &domain.ValidationError{Msg: "email and password are required"}
	}
	u, err := s.users.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return s.register(ctx, email, password, strings.TrimSpace(name))
	case err != nil:
		return LoginResult{}, err
	}
	return s.verify(u, password)
}

func (s *AuthService) verify(u *domain.User, password string) (LoginResult, error) {
	if !utils.CheckPassword(password, u.PasswordHash) {
		return LoginResult{}, ErrInvalidCredentials
	}
	if u.Banned() {
		return LoginResult{}, ErrAccountDisabled
	}
	return s.issue(u, false)
}

func (s *AuthService) register(ctx context.Context, email, password, name string) (LoginResult, error) {
	if name == "" {
		if at := strings.IndexByte(email, '@'); at > 0 {
			name = email[:at]
		} else {
			name = "user"
		}
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return LoginResult{}, err
	}
	role := domain.RoleUser
	if s.isAdmin(email) {
		role = domain.RoleAdmin
	}
	now := s.now()
	u := &domain.User{
		ID:           utils.NewID(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if !errors.Is(err, domain.ErrConflict) {
			return LoginResult{}, err
		}
		// 并发首登：email 唯一冲突 → 再查一次
		existing, e2 := s.users.FindByEmail(ctx, email)
		if e2 != nil {
			return LoginResult{}, e2
		}
		return s.verify(existing, password)
	}
	s.log.Info("user registered", zap.String("uid", u.ID), zap.String("role", role))
	return s.issue(u, true)
}

func (s *AuthService) issue(u *domain.User, isNew bool) (LoginResult, error) {
	tok, err := s.jwt.Issue(u.ID, u.Email, u.Role)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{Token: tok, IsNew: isNew, User: u}, nil
}

// Logout 有黑名单时 jti 拉黑到过期
func (s *AuthService) Logout(ctx context.Context, c *auth.Claims) error {
	return s.jwt.Revoke(ctx, c)
}
