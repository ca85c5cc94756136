package user

import (
	"time"

	"gorm.io/gorm"

	"clinic-appointments/internal/domain"
)

type UserModel struct {
	ID           string         `gorm:"primaryKey;type:varchar(36)"`
	Email        *string        `gorm:"uniqueIndex;size:255"` // NULL 不参与唯一约束，允许无 email 的资料文档
	Name         string         `gorm:"size:64;not null"`
	PasswordHash string         `gorm:"size:100;not null;default:''"`
	Role         string         `gorm:"size:16;not null;default:user"`
	Extra        map[string]any `gorm:"serializer:json;type:text"`

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (UserModel) TableName() string { return "users" }

func FromDomain(u *domain.User) UserModel {
	m := UserModel{
		ID:           u.ID,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		Extra:        u.Extra,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
	if u.Email != "" {
		e := u.Email
		m.Email = &e
	}
	if u.DeletedAt != nil {
		m.DeletedAt = gorm.DeletedAt{Time: *u.DeletedAt, Valid: true}
	}
	return m
}

func (m UserModel) ToDomain() domain.User {
	u := domain.User{
		ID:           m.ID,
		Name:         m.Name,
		PasswordHash: m.PasswordHash,
		Role:         m.Role,
		Extra:        m.Extra,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.Email != nil {
		u.Email = *m.Email
	}
	if m.DeletedAt.Valid {
		t := m.DeletedAt.Time
		u.DeletedAt = &t
	}
	return u
}
