package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"clinic-appointments/internal/domain"
)

func TestCreateAppointmentDefaults(t *testing.T) {
	now := time.Date(2026, 2, 10, 8, 0, 0, 0, time.Local)
	r := newCountingAppts()
	s := newTestAppointments(r, now)

	a, err := s.CreateAppointment(context.Background(), "u1", NewAppointment{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if a.Title != domain.DefaultAppointmentTitle {
		t.Fatalf("title = %q, want %q", a.Title, domain.DefaultAppointmentTitle)
	}
	if a.Status != domain.StatusPending {
		t.Fatalf("status = %q, want pending", a.Status)
	}
	if a.Description != "" || a.CompletedDate != nil {
		t.Fatalf("unexpected description/completedDate: %+v", a)
	}
	if !a.Date.Equal(now) || !a.CreatedAt.Equal(now) {
		t.Fatalf("date/createdAt should default to now, got %v / %v", a.Date, a.CreatedAt)
	}
	if a.ID == "" {
		t.Fatal("expected generated id")
	}

	stored, err := r.FindByID(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if stored.UserID != "u1" {
		t.Fatalf("userId = %q", stored.UserID)
	}
}

func TestCreateAppointmentKeepsTitleAndDate(t *testing.T) {
	r := newCountingAppts()
	s := newTestAppointments(r, time.Now())
	when := time.Date(2026, 3, 1, 14, 30, 0, 0, time.Local)

	a, err := s.CreateAppointment(context.Background(), "u1", NewAppointment{Title: "  Dental  ", Date: &when})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if a.Title != "Dental" || !a.Date.Equal(when) {
		t.Fatalf("got %q %v", a.Title, a.Date)
	}
}

func TestCreateAppointmentRequiresUser(t *testing.T) {
	r := newCountingAppts()
	s := newTestAppointments(r, time.Now())
	if _, err := s.CreateAppointment(context.Background(), " ", NewAppointment{}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if r.creates != 0 {
		t.Fatalf("store called %d times", r.creates)
	}
}

func TestUpdateStatusCompletedThenReopen(t *testing.T) {
	t0 := time.Date(2026, 2, 10, 9, 0, 0, 0, time.Local)
	r := newCountingAppts()
	s := newTestAppointments(r, t0)
	a, err := s.CreateAppointment(context.Background(), "u1", NewAppointment{Title: "Checkup"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	done := t0.Add(time.Hour)
	s.now = fixedClock(done)
	ok, err := s.UpdateAppointmentStatus(context.Background(), a.ID, "completed")
	if err != nil || !ok {
		t.Fatalf("complete: ok=%v err=%v", ok, err)
	}
	got, _ := r.FindByID(context.Background(), a.ID)
	if got.Status != domain.StatusCompleted {
		t.Fatalf("status = %q", got.Status)
	}
	if got.CompletedDate == nil || got.CompletedDate.Before(t0) || got.CompletedDate.After(done) {
		t.Fatalf("completedDate = %v, want within [%v, %v]", got.CompletedDate, t0, done)
	}
	if !got.UpdatedAt.Equal(done) {
		t.Fatalf("updatedAt = %v", got.UpdatedAt)
	}

	if _, err := s.UpdateAppointmentStatus(context.Background(), a.ID, "pending"); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, _ = r.FindByID(context.Background(), a.ID)
	if got.Status != domain.StatusPending || got.CompletedDate != nil {
		t.Fatalf("reopen should clear completedDate: %+v", got)
	}
	if got.Title != "Checkup" || got.UserID != "u1" {
		t.Fatalf("other fields changed: %+v", got)
	}
}

func TestUpdateStatusRejectsUnknownWithoutWrite(t *testing.T) {
	r := newCountingAppts()
	s := newTestAppointments(r, time.Now())
	a, _ := s.CreateAppointment(context.Background(), "u1", NewAppointment{})

	for _, st := range []string{"archived", "", "Completed"} {
		ok, err := s.UpdateAppointmentStatus(context.Background(), a.ID, st)
		if ok || !domain.IsValidation(err) {
			t.Fatalf("status %q: ok=%v err=%v", st, ok, err)
		}
	}
	if r.updates != 0 {
		t.Fatalf("store written %d times", r.updates)
	}
}

func TestUpdateStatusMissingRecord(t *testing.T) {
	s := newTestAppointments(newCountingAppts(), time.Now())
	ok, err := s.UpdateAppointmentStatus(context.Background(), "nope", "completed")
	if ok || !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
}

func TestSubmitFormMissingFields(t *testing.T) {
	cases := []struct {
		name string
		form AppointmentForm
	}{
		{"no title", AppointmentForm{Date: "2026-02-10", Time: "09:00"}},
		{"no date", AppointmentForm{Title: "Checkup", Time: "09:00"}},
		{"no time", AppointmentForm{Title: "Checkup", Date: "2026-02-10"}},
		{"blank title", AppointmentForm{Title: "   ", Date: "2026-02-10", Time: "09:00"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newCountingAppts()
			s := newTestAppointments(r, time.Now())
			_, err := s.SubmitForm(context.Background(), "u1", tc.form)
			if err == nil || err.Error() != "Please fill in all required fields" {
				t.Fatalf("err = %v", err)
			}
			if r.creates != 0 {
				t.Fatalf("store called %d times", r.creates)
			}
		})
	}
}

func TestSubmitFormCombinesDateAndTime(t *testing.T) {
	r := newCountingAppts()
	s := newTestAppointments(r, time.Now())
	a, err := s.SubmitForm(context.Background(), "u1", AppointmentForm{
		Title: "Checkup", Description: "annual", Date: "2026-02-10", Time: "09:00",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	want := time.Date(2026, 2, 10, 9, 0, 0, 0, time.Local)
	if !a.Date.Equal(want) {
		t.Fatalf("date = %v, want %v", a.Date, want)
	}
	if a.Description != "annual" || a.Status != domain.StatusPending {
		t.Fatalf("got %+v", a)
	}
}

func TestSubmitFormBadDate(t *testing.T) {
	r := newCountingAppts()
	s := newTestAppointments(r, time.Now())
	_, err := s.SubmitForm(context.Background(), "u1", AppointmentForm{Title: "x", Date: "10/02/2026", Time: "9am"})
	if !domain.IsValidation(err) {
		t.Fatalf("err = %v", err)
	}
	if r.creates != 0 {
		t.Fatal("store should not be called")
	}
}
