package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"clinic-appointments/internal/domain"
	"clinic-appointments/pkg/utils"
)

// NewAppointment 创建入参；Date 为 nil 时取当前时间
type NewAppointment struct {
	Title       string
	Description string
	Date        *time.Time
}

// AppointmentForm 预约弹窗表单；date=YYYY-MM-DD, time=HH:MM
type AppointmentForm struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time"`
}

const msgRequiredFields = "Please fill in all required fields"

type AppointmentService struct {
	repo domain.AppointmentRepository
	log  *zap.Logger
	now  func() time.Time
	loc  *time.Location
}

func NewAppointmentService(repo domain.AppointmentRepository, log *zap.Logger) *AppointmentService {
	return &AppointmentService{repo: repo, log: log, now: time.Now, loc: time.Local}
}

func (s *AppointmentService) CreateAppointment(ctx context.Context, userID string, in NewAppointment) (*domain.Appointment, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, &domain.ValidationError{Field: "userId", Msg: "required"}
	}
	now := s.now()
	a := &domain.Appointment{
		ID:          utils.NewID(),
		UserID:      userID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Date:        now,
		Status:      domain.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if a.Title == "" {
		a.Title = domain.DefaultAppointmentTitle
	}
	if in.Date != nil {
		a.Date = *in.Date
	}
	if err := s.repo.Create(ctx, a); err != nil {
		storageFailures.WithLabelValues("create_appointment").Inc()
		s.log.Error("create appointment", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	appointmentsCreated.Inc()
	return a, nil
}

// UpdateAppointmentStatus status 只接受 pending/completed；
// completed 盖 completedDate，pending 清空 completedDate
func (s *AppointmentService) UpdateAppointmentStatus(ctx context.Context, appointmentID, status string) (bool, error) {
	st, err := domain.ParseStatus(status)
	if err != nil {
		return false, err
	}
	if strings.TrimSpace(appointmentID) == "" {
		return false, &domain.ValidationError{Field: "id", Msg: "required"}
	}
	now := s.now()
	ch := domain.StatusChange{Status: st, UpdatedAt: now}
	if st == domain.StatusCompleted {
		ch.CompletedDate = &now
	}
	if err := s.repo.UpdateStatus(ctx, appointmentID, ch); err != nil {
		if domain.IsStorage(err) {
			storageFailures.WithLabelValues("update_status").Inc()
			s.log.Error("update appointment status", zap.String("id", appointmentID), zap.Error(err))
		}
		return false, err
	}
	appointmentStatusChanges.WithLabelValues(string(st)).Inc()
	return true, nil
}

func (s *AppointmentService) Get(ctx context.Context, id string) (*domain.Appointment, error) {
	return s.repo.FindByID(ctx, id)
}

// SubmitForm 必填项缺失时直接返回，不触达存储
func (s *AppointmentService) SubmitForm(ctx context.Context, userID string, f AppointmentForm) (*domain.Appointment, error) {
	in, err := ParseForm(f, s.loc)
	if err != nil {
		return nil, err
	}
	return s.CreateAppointment(ctx, userID, in)
}

func ParseForm(f AppointmentForm, loc *time.Location) (NewAppointment, error) {
	title := strings.TrimSpace(f.Title)
	date := strings.TrimSpace(f.Date)
	clock := strings.TrimSpace(f.Time)
	if title == "" || date == "" || clock == "" {
		return NewAppointment{}, &domain.ValidationError{Msg: msgRequiredFields}
	}
	at, err := time.ParseInLocation("2006-01-02T15:04", date+"T"+clock, loc)
	if err != nil {
		return NewAppointment{}, &domain.ValidationError{Field: "date", Msg: "invalid date or time"}
	}
	return NewAppointment{Title: title, Description: f.Description, Date: &at}, nil
}
