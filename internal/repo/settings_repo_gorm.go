package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"clinic-appointments/internal/domain"
	"clinic-appointments/internal/feature/settings"
)

type SettingsRepo struct{ db *gorm.DB }

func NewSettingsRepo(db *gorm.DB) *SettingsRepo { return &SettingsRepo{db: db} }

func (r *SettingsRepo) Get(ctx context.Context, userID string) (*domain.Settings, error) {
	var m settings.SettingsModel
	err := r.db.WithContext(ctx).First(&m, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFound("settings", userID)
	}
	if err != nil {
		return nil, domain.Storage("get settings", err)
	}
	s := m.ToDomain()
	return &s, nil
}

func (r *SettingsRepo) Save(ctx context.Context, s *domain.Settings) error {
	m := settings.SettingsModel{UserID: s.UserID, Theme: string(s.Theme), UpdatedAt: s.UpdatedAt}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"theme", "updated_at"}),
	}).Create(&m).Error
	return domain.Storage("save settings", err)
}
