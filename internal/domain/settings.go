package domain

import (
	"context"
	"time"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func ParseTheme(s string) (Theme, error) {
	switch t := Theme(s); t {
	case ThemeLight, ThemeDark:
		return t, nil
	}
	return "", &ValidationError{Field: "theme", Msg: "theme must be light or dark"}
}

type Settings struct {
	UserID    string    `json:"userId"`
	Theme     Theme     `json:"theme"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type SettingsRepository interface {
	// Get 无记录返回 ErrNotFound
	Get(ctx context.Context, userID string) (*Settings, error)
	Save(ctx context.Context, s *Settings) error
}
