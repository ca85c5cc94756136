package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"clinic-appointments/internal/domain"
	"clinic-appointments/internal/feature/appointment"
)

type AppointmentRepo struct{ db *gorm.DB }

func NewAppointmentRepo(db *gorm.DB) *AppointmentRepo { return &AppointmentRepo{db: db} }

func (r *AppointmentRepo) Create(ctx context.Context, a *domain.Appointment) error {
	if err := (domain.StatusChange{Status: a.Status}).Validate(); err != nil {
		return err
	}
	m := appointment.FromDomain(a)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.Storage("create appointment", err)
	}
	return nil
}

func (r *AppointmentRepo) FindByID(ctx context.Context, id string) (*domain.Appointment, error) {
	var m appointment.AppointmentModel
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFound("appointment", id)
	}
	if err != nil {
		return nil, domain.Storage("find appointment", err)
	}
	a := m.ToDomain()
	return &a, nil
}

func (r *AppointmentRepo) List(ctx context.Context, f domain.AppointmentFilter) ([]domain.Appointment, error) {
	q := r.db.WithContext(ctx).Model(&appointment.AppointmentModel{})
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	var ms []appointment.AppointmentModel
	if err := q.Order("created_at DESC").Find(&ms).Error; err != nil {
		return nil, domain.Storage("list appointments", err)
	}
	out := make([]domain.Appointment, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.ToDomain())
	}
	return out, nil
}

// UpdateStatus 单条 UPDATE 同时写 status 与 completed_date
func (r *AppointmentRepo) UpdateStatus(ctx context.Context, id string, ch domain.StatusChange) error {
	if err := ch.Validate(); err != nil {
		return err
	}
	res := updateStatus(r.db.WithContext(ctx), id, ch)
	if res.Error != nil {
		return domain.Storage("update appointment status", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("appointment", id)
	}
	return nil
}

// updateStatus completed_date 为 nil 时写 NULL（重新打开清掉完成时间）
func updateStatus(tx *gorm.DB, id string, ch domain.StatusChange) *gorm.DB {
	return tx.Model(&appointment.AppointmentModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":         string(ch.Status),
			"updated_at":     ch.UpdatedAt,
			"completed_date": ch.CompletedDate,
		})
}
