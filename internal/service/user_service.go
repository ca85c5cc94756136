package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"clinic-appointments/internal/core/cache"
	"clinic-appointments/internal/domain"
)

const profileTTL = 60 * time.Second

func profileKey(uid string) string { return cache.Key("user", "profile", uid) }

type UserService struct {
	repo  domain.UserRepository
	cache *cache.Cache // 可为 nil
	log   *zap.Logger
	now   func() time.Time
}

func NewUserService(repo domain.UserRepository, c *cache.Cache, log *zap.Logger) *UserService {
	return &UserService{repo: repo, cache: c, log: log, now: time.Now}
}

func (s *UserService) GetUser(ctx context.Context, uid string) (*domain.User, error) {
	u, err := cache.GetOrLoadJSON(s.cache, ctx, profileKey(uid), profileTTL, func(ctx context.Context) (*domain.User, error) {
		return s.repo.FindByID(ctx, uid)
	})
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.NotFound("user", uid)
	}
	return u, nil
}

// UpsertUser 合并写：name/email 落到字段，其余 key 并入 Extra；id/role 不允许客户端改
func (s *UserService) UpsertUser(ctx context.Context, uid string, fields map[string]any) error {
	if strings.TrimSpace(uid) == "" {
		return &domain.ValidationError{Field: "uid", Msg: "required"}
	}
	now := s.now()
	u, err := s.repo.FindByID(ctx, uid)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		u = &domain.User{ID: uid, Role: domain.RoleUser, CreatedAt: now}
	case err != nil:
		return err
	}
	if u.Extra == nil {
		u.Extra = map[string]any{}
	}
	for k, v := range fields {
		switch k {
		case "id", "role", "password", "passwordHash":
			continue
		case "name":
			if n, ok := v.(string); ok {
				u.Name = strings.TrimSpace(n)
				continue
			}
		case "email":
			// email 是登录凭据，只能由注册写入；这里只接受与现值相同
			if e, ok := v.(string); !ok || !strings.EqualFold(strings.TrimSpace(e), u.Email) {
				return &domain.ValidationError{Field: "email", Msg: "cannot be changed through the profile"}
			}
			continue
		}
		u.Extra[k] = v
	}
	u.UpdatedAt = now
	if err := s.repo.Upsert(ctx, u); err != nil {
		storageFailures.WithLabelValues("upsert_user").Inc()
		return err
	}
	s.invalidate(ctx, uid)
	return nil
}

func (s *UserService) List(ctx context.Context, q domain.UserListQuery) ([]domain.User, int64, error) {
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 20
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	q.Q = strings.TrimSpace(q.Q)
	return s.repo.List(ctx, q)
}

// Ban 软删
func (s *UserService) Ban(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return &domain.ValidationError{Field: "id", Msg: "required"}
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

// Active 实现 auth.SubjectChecker：封禁或不存在即失效
func (s *UserService) Active(ctx context.Context, uid string) (bool, error) {
	_, err := s.GetUser(ctx, uid)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// DisplayName 没有 name 用 email
func (s *UserService) DisplayName(ctx context.Context, uid, email string) (name, mail string, err error) {
	u, err := s.GetUser(ctx, uid)
	if err != nil {
		return email, email, err
	}
	mail = u.Email
	if mail == "" {
		mail = email
	}
	name = u.Name
	if name == "" {
		name = mail
	}
	return name, mail, nil
}

func (s *UserService) invalidate(ctx context.Context, uid string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, profileKey(uid)); err != nil {
		s.log.Warn("profile cache del", zap.String("uid", uid), zap.Error(err))
	}
}
