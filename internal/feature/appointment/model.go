package appointment

import (
	"time"

	"clinic-appointments/internal/domain"
)

type AppointmentModel struct {
	ID            string    `gorm:"primaryKey;type:varchar(36)"`
	UserID        string    `gorm:"index;size:36;not null"`
	Title         string    `gorm:"size:255;not null"`
	Description   string    `gorm:"type:text"`
	Date          time.Time `gorm:"not null"`
	Status        string    `gorm:"size:16;not null;default:pending;index"`
	CreatedAt     time.Time `gorm:"index"`
	UpdatedAt     time.Time
	CompletedDate *time.Time
}

func (AppointmentModel) TableName() string { return "appointments" }

func FromDomain(a *domain.Appointment) AppointmentModel {
	return AppointmentModel{
		ID:            a.ID,
		UserID:        a.UserID,
		Title:         a.Title,
		Description:   a.Description,
		Date:          a.Date,
		Status:        string(a.Status),
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
		CompletedDate: a.CompletedDate,
	}
}

func (m AppointmentModel) ToDomain() domain.Appointment {
	return domain.Appointment{
		ID:            m.ID,
		UserID:        m.UserID,
		Title:         m.Title,
		Description:   m.Description,
		Date:          m.Date,
		Status:        domain.AppointmentStatus(m.Status),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
		CompletedDate: m.CompletedDate,
	}
}
