package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"go.uber.org/zap"

	"clinic-appointments/internal/domain"
)

func newTestList(appts *countingAppts, users *countingUsers, now time.Time) *ListViewService {
	s := NewListViewService(newTestAppointments(appts, now), appts, users, zap.NewNop())
	s.now = fixedClock(now)
	return s
}

func TestListBatchesOwnerLookup(t *testing.T) {
	now := time.Date(2026, 2, 10, 12, 0, 0, 0, time.Local)
	appts, users := newCountingAppts(), newCountingUsers()
	users.seed(t, "u1", "Alice")
	users.seed(t, "u2", "Bob")
	appts.put(t, domain.Appointment{ID: "a1", UserID: "u1", Status: domain.StatusPending, CreatedAt: now.Add(-3 * time.Hour)})
	appts.put(t, domain.Appointment{ID: "a2", UserID: "u2", Status: domain.StatusPending, CreatedAt: now.Add(-2 * time.Hour)})
	appts.put(t, domain.Appointment{ID: "a3", UserID: "u1", Status: domain.StatusCompleted, CreatedAt: now.Add(-time.Hour)})
	appts.put(t, domain.Appointment{ID: "a4", Status: domain.StatusPending, CreatedAt: now.Add(-30 * time.Second)})

	items, err := newTestList(appts, users, now).List(context.Background(), AllAppointments)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if users.batchCalls != 1 {
		t.Fatalf("owner lookup issued %d times, want 1", users.batchCalls)
	}
	ids := append([]string(nil), users.lastIDs...)
	sort.Strings(ids)
	if len(ids) != 2 || ids[0] != "u1" || ids[1] != "u2" {
		t.Fatalf("looked up %v", users.lastIDs)
	}

	wantOrder := []string{"a4", "a3", "a2", "a1"}
	for i, id := range wantOrder {
		if items[i].ID != id {
			t.Fatalf("items[%d] = %s, want %s", i, items[i].ID, id)
		}
	}
	if items[0].UserName != "Unknown User" || items[0].CreatedAgo != "just now" {
		t.Fatalf("items[0] = %+v", items[0])
	}
	if items[1].UserName != "Alice" || items[1].StatusLabel != "Completed" || items[1].NextStatus != domain.StatusPending {
		t.Fatalf("items[1] = %+v", items[1])
	}
	if items[2].UserName != "Bob" || items[2].CreatedAgo != "2 hours ago" {
		t.Fatalf("items[2] = %+v", items[2])
	}
}

func TestListUnknownUserFallbacks(t *testing.T) {
	now := time.Now()
	appts, users := newCountingAppts(), newCountingUsers()
	users.seed(t, "blank", "")
	appts.put(t, domain.Appointment{ID: "a1", UserID: "ghost", Status: domain.StatusPending, CreatedAt: now})
	appts.put(t, domain.Appointment{ID: "a2", UserID: "blank", Status: domain.StatusPending, CreatedAt: now.Add(-time.Minute)})

	items, err := newTestList(appts, users, now).List(context.Background(), AllAppointments)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, it := range items {
		if it.UserName != "Unknown User" {
			t.Fatalf("%s: userName = %q", it.ID, it.UserName)
		}
	}
}

func TestListLookupFailureIsNotFatal(t *testing.T) {
	now := time.Now()
	appts, users := newCountingAppts(), newCountingUsers()
	users.seed(t, "u1", "Alice")
	users.batchErr = errBoom
	appts.put(t, domain.Appointment{ID: "a1", UserID: "u1", Status: domain.StatusPending, CreatedAt: now})

	items, err := newTestList(appts, users, now).List(context.Background(), AllAppointments)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 || items[0].UserName != "Unknown User" {
		t.Fatalf("items = %+v", items)
	}
}

func TestListOwnerScope(t *testing.T) {
	now := time.Now()
	appts, users := newCountingAppts(), newCountingUsers()
	appts.put(t, domain.Appointment{ID: "a1", UserID: "u1", Status: domain.StatusPending, CreatedAt: now})
	appts.put(t, domain.Appointment{ID: "a2", UserID: "u2", Status: domain.StatusPending, CreatedAt: now})

	items, err := newTestList(appts, users, now).List(context.Background(), Owner("u2"))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 || items[0].ID != "a2" {
		t.Fatalf("items = %+v", items)
	}
}

func TestCheckupCreateToggleFlow(t *testing.T) {
	now := time.Date(2026, 2, 10, 9, 30, 0, 0, time.Local)
	appts, users := newCountingAppts(), newCountingUsers()
	users.seed(t, "u1", "Alice")
	list := newTestList(appts, users, now)
	analytics := NewAnalyticsService(appts, zap.NewNop())
	analytics.now = fixedClock(now)

	created, err := list.appts.SubmitForm(context.Background(), "u1", AppointmentForm{Title: "Checkup", Date: "2026-02-10", Time: "09:00"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	items, err := list.List(context.Background(), AllAppointments)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if items[0].ID != created.ID || items[0].Title != "Checkup" || items[0].StatusLabel != "Pending" {
		t.Fatalf("first item = %+v", items[0])
	}
	if items[0].DateLabel != "Feb 10, 2026, 09:00 AM" {
		t.Fatalf("dateLabel = %q", items[0].DateLabel)
	}

	before, _ := analytics.Snapshot(context.Background(), "", true)
	toggled, err := list.Toggle(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if toggled.Status != domain.StatusCompleted || toggled.CompletedDate == nil || toggled.UserName != "Alice" {
		t.Fatalf("toggled = %+v", toggled)
	}
	after, _ := analytics.Snapshot(context.Background(), "", true)
	if after.Completed != before.Completed+1 || after.TodayCompleted != before.TodayCompleted+1 {
		t.Fatalf("before %+v after %+v", before, after)
	}

	back, err := list.Toggle(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	if back.Status != domain.StatusPending || back.CompletedDate != nil || back.CompletedLabel != "" {
		t.Fatalf("back = %+v", back)
	}
}

func TestSetStatusInvalidLeavesRecord(t *testing.T) {
	now := time.Now()
	appts, users := newCountingAppts(), newCountingUsers()
	appts.put(t, domain.Appointment{ID: "a1", UserID: "u1", Status: domain.StatusPending, CreatedAt: now})

	_, err := newTestList(appts, users, now).SetStatus(context.Background(), "a1", "archived")
	if !domain.IsValidation(err) {
		t.Fatalf("err = %v", err)
	}
	if appts.updates != 0 {
		t.Fatalf("store written %d times", appts.updates)
	}
}

func TestToggleMissing(t *testing.T) {
	_, err := newTestList(newCountingAppts(), newCountingUsers(), time.Now()).Toggle(context.Background(), "nope")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
}
