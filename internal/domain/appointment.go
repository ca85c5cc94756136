package domain

import (
	"context"
	"time"
)

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusCompleted AppointmentStatus = "completed"
)

const DefaultAppointmentTitle = "Appointment"

// ParseStatus 只接受 pending/completed
func ParseStatus(s string) (AppointmentStatus, error) {
	switch st := AppointmentStatus(s); st {
	case StatusPending, StatusCompleted:
		return st, nil
	}
	return "", &ValidationError{Field: "status", Msg: "unknown status " + s}
}

func (s AppointmentStatus) Valid() bool {
	return s == StatusPending || s == StatusCompleted
}

// Label 状态徽章文案
func (s AppointmentStatus) Label() string {
	if s == StatusPending {
		return "Pending"
	}
	return "Completed"
}

// Toggled pending <-> completed
func (s AppointmentStatus) Toggled() AppointmentStatus {
	if s == StatusPending {
		return StatusCompleted
	}
	return StatusPending
}

type Appointment struct {
	ID            string            `json:"id"`
	UserID        string            `json:"userId"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Date          time.Time         `json:"date"`
	Status        AppointmentStatus `json:"status"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
	CompletedDate *time.Time        `json:"completedDate,omitempty"`
}

// StatusChange 一次写入 status/updatedAt/completedDate；CompletedDate 为 nil 表示清空
type StatusChange struct {
	Status        AppointmentStatus
	UpdatedAt     time.Time
	CompletedDate *time.Time
}

// Validate 未知状态不落库
func (c StatusChange) Validate() error {
	if !c.Status.Valid() {
		return &ValidationError{Field: "status", Msg: "unknown status " + string(c.Status)}
	}
	return nil
}

// AppointmentFilter UserID 为空表示全部
type AppointmentFilter struct {
	UserID string
}

type AppointmentRepository interface {
	Create(ctx context.Context, a *Appointment) error
	FindByID(ctx context.Context, id string) (*Appointment, error)
	// List 按 createdAt 倒序
	List(ctx context.Context, f AppointmentFilter) ([]Appointment, error)
	UpdateStatus(ctx context.Context, id string, ch StatusChange) error
}
