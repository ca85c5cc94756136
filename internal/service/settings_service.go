package service

import (
	"context"
	"errors"
	"time"

	"clinic-appointments/internal/domain"
)

type SettingsService struct {
	repo domain.SettingsRepository
	now  func() time.Time
}

func NewSettingsService(repo domain.SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo, now: time.Now}
}

// Get 无记录时默认 light
func (s *SettingsService) Get(ctx context.Context, userID string) (domain.Settings, error) {
	st, err := s.repo.Get(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Settings{UserID: userID, Theme: domain.ThemeLight}, nil
	}
	if err != nil {
		return domain.Settings{}, err
	}
	return *st, nil
}

func (s *SettingsService) SetTheme(ctx context.Context, userID, theme string) (domain.Settings, error) {
	t, err := domain.ParseTheme(theme)
	if err != nil {
		return domain.Settings{}, err
	}
	st := domain.Settings{UserID: userID, Theme: t, UpdatedAt: s.now()}
	if err := s.repo.Save(ctx, &st); err != nil {
		return domain.Settings{}, err
	}
	return st, nil
}

func (s *SettingsService) Toggle(ctx context.Context, userID string) (domain.Settings, error) {
	cur, err := s.Get(ctx, userID)
	if err != nil {
		return domain.Settings{}, err
	}
	next := domain.ThemeDark
	if cur.Theme == domain.ThemeDark {
		next = domain.ThemeLight
	}
	return s.SetTheme(ctx, userID, string(next))
}
