package settings

import (
	"time"

	"clinic-appointments/internal/domain"
)

type SettingsModel struct {
	UserID    string `gorm:"primaryKey;type:varchar(36)"`
	Theme     string `gorm:"size:8;not null;default:light"`
	UpdatedAt time.Time
}

func (SettingsModel) TableName() string { return "user_settings" }

func (m SettingsModel) ToDomain() domain.Settings {
	return domain.Settings{UserID: m.UserID, Theme: domain.Theme(m.Theme), UpdatedAt: m.UpdatedAt}
}
