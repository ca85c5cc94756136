package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"clinic-appointments/internal/domain"
	"clinic-appointments/internal/repo"
)

var errBoom = errors.New("boom")

type countingAppts struct {
	*repo.MemoryAppointmentRepo
	creates int
	updates int
	listErr error
}

func newCountingAppts() *countingAppts {
	return &countingAppts{MemoryAppointmentRepo: repo.NewMemoryAppointmentRepo()}
}

func (r *countingAppts) Create(ctx context.Context, a *domain.Appointment) error {
	r.creates++
	return r.MemoryAppointmentRepo.Create(ctx, a)
}

func (r *countingAppts) UpdateStatus(ctx context.Context, id string, ch domain.StatusChange) error {
	r.updates++
	return r.MemoryAppointmentRepo.UpdateStatus(ctx, id, ch)
}

func (r *countingAppts) List(ctx context.Context, f domain.AppointmentFilter) ([]domain.Appointment, error) {
	if r.listErr != nil {
		return nil, domain.Storage("list appointments", r.listErr)
	}
	return r.MemoryAppointmentRepo.List(ctx, f)
}

// put 直接写入，绕过 service 的默认值
func (r *countingAppts) put(t testingT, a domain.Appointment) {
	if err := r.MemoryAppointmentRepo.Create(context.Background(), &a); err != nil {
		t.Fatalf("seed appointment: %v", err)
	}
}

type countingUsers struct {
	*repo.MemoryUserRepo
	batchCalls int
	lastIDs    []string
	batchErr   error
}

func newCountingUsers() *countingUsers {
	return &countingUsers{MemoryUserRepo: repo.NewMemoryUserRepo()}
}

func (r *countingUsers) FindByIDs(ctx context.Context, ids []string) ([]domain.User, error) {
	r.batchCalls++
	r.lastIDs = append([]string(nil), ids...)
	if r.batchErr != nil {
		return nil, domain.Storage("find users", r.batchErr)
	}
	return r.MemoryUserRepo.FindByIDs(ctx, ids)
}

func (r *countingUsers) seed(t testingT, id, name string) {
	if err := r.Create(context.Background(), &domain.User{ID: id, Name: name, Email: id + "@clinic.test", Role: domain.RoleUser}); err != nil {
		t.Fatalf("seed user: %v", err)
	}
}

type testingT interface {
	Fatalf(format string, args ...any)
}

func fixedClock(t time.Time) func() time.Time { return func() time.Time { return t } }

func newTestAppointments(r domain.AppointmentRepository, now time.Time) *AppointmentService {
	s := NewAppointmentService(r, zap.NewNop())
	s.now = fixedClock(now)
	return s
}
