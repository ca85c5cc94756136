package repo

import (
	"time"

	"clinic-appointments/internal/domain"
)

const (
	collUsers        = "users"
	collAppointments = "appointments"
	collSettings     = "user_settings"
)

type userDoc struct {
	ID           string         `bson:"_id"`
	Email        string         `bson:"email,omitempty"`
	Name         string         `bson:"name"`
	PasswordHash string         `bson:"passwordHash,omitempty"`
	Role         string         `bson:"role"`
	Extra        map[string]any `bson:"extra,omitempty"`
	CreatedAt    time.Time      `bson:"createdAt"`
	UpdatedAt    time.Time      `bson:"updatedAt"`
	DeletedAt    *time.Time     `bson:"deletedAt,omitempty"`
}

func (d userDoc) toDomain() domain.User {
	return domain.User{
		ID:           d.ID,
		Email:        d.Email,
		Name:         d.Name,
		PasswordHash: d.PasswordHash,
		Role:         d.Role,
		Extra:        d.Extra,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
		DeletedAt:    d.DeletedAt,
	}
}

type appointmentDoc struct {
	ID            string     `bson:"_id"`
	UserID        string     `bson:"userId"`
	Title         string     `bson:"title"`
	Description   string     `bson:"description"`
	Date          time.Time  `bson:"date"`
	Status        string     `bson:"status"`
	CreatedAt     time.Time  `bson:"createdAt"`
	UpdatedAt     time.Time  `bson:"updatedAt"`
	CompletedDate *time.Time `bson:"completedDate,omitempty"`
}

func appointmentToDoc(a *domain.Appointment) appointmentDoc {
	return appointmentDoc{
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

func (d appointmentDoc) toDomain() domain.Appointment {
	a := domain.Appointment{
		ID:          d.ID,
		UserID:      d.UserID,
		Title:       d.Title,
		Description: d.Description,
		Date:        d.Date.Local(),
		Status:      domain.AppointmentStatus(d.Status),
		CreatedAt:   d.CreatedAt.Local(),
		UpdatedAt:   d.UpdatedAt.Local(),
	}
	if d.CompletedDate != nil {
		t := d.CompletedDate.Local()
		a.CompletedDate = &t
	}
	return a
}

type settingsDoc struct {
	UserID    string    `bson:"_id"`
	Theme     string    `bson:"theme"`
	UpdatedAt time.Time `bson:"updatedAt"`
}
