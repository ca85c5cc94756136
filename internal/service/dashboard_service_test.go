package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"clinic-appointments/internal/domain"
	"clinic-appointments/internal/repo"
)

func TestSlideshowWraps(t *testing.T) {
	s := NewSlideshow()
	if len(s.Photos) != 4 || s.IntervalMs != 5000 {
		t.Fatalf("slideshow = %+v", s)
	}
	if got := s.Prev().Current; got != 3 {
		t.Fatalf("prev from 0 = %d", got)
	}
	if got := s.Goto(3).Next().Current; got != 0 {
		t.Fatalf("next from 3 = %d", got)
	}
	if got := s.Goto(-5).Current; got != 3 {
		t.Fatalf("goto -5 = %d", got)
	}
	if got := (Slideshow{}).Next().Current; got != 0 {
		t.Fatalf("empty slideshow = %d", got)
	}
}

func TestAnnouncementsNewestFirst(t *testing.T) {
	a := Announcements()
	if len(a) != 4 {
		t.Fatalf("len = %d", len(a))
	}
	for i := 1; i < len(a); i++ {
		if a[i-1].Date < a[i].Date {
			t.Fatalf("not sorted: %s before %s", a[i-1].Date, a[i].Date)
		}
	}
}

func newTestDashboard(appts *countingAppts) (*DashboardService, *UserService) {
	log := zap.NewNop()
	users := newCountingUsers()
	us := NewUserService(users, nil, log)
	list := NewListViewService(NewAppointmentService(appts, log), appts, users, log)
	return NewDashboardService(us, NewSettingsService(repo.NewMemorySettingsRepo()), NewAnalyticsService(appts, log), list, log), us
}

func TestUserDashboardProfileAndAnalytics(t *testing.T) {
	appts := newCountingAppts()
	appts.put(t, domain.Appointment{ID: "a1", UserID: "u1", Status: domain.StatusPending, CreatedAt: time.Now()})
	d, us := newTestDashboard(appts)
	_ = us.UpsertUser(context.Background(), "u1", map[string]any{"name": "Alice"})

	got := d.UserDashboard(context.Background(), Viewer{UserID: "u1", Email: "alice@clinic.test"})
	if got.Profile.Name != "Alice" || got.Theme != domain.ThemeLight {
		t.Fatalf("profile = %+v theme = %q", got.Profile, got.Theme)
	}
	if got.Analytics == nil || got.Analytics.Snapshot.Total != 1 || len(got.Errors) != 0 {
		t.Fatalf("analytics = %+v errors = %v", got.Analytics, got.Errors)
	}
	if len(got.Nav) != 5 || len(got.Slideshow.Photos) != 4 {
		t.Fatalf("chrome missing: %+v", got)
	}
}

func TestUserDashboardUnknownProfileUsesEmail(t *testing.T) {
	d, _ := newTestDashboard(newCountingAppts())
	got := d.UserDashboard(context.Background(), Viewer{UserID: "ghost", Email: "ghost@clinic.test"})
	if got.Profile.Name != "ghost@clinic.test" {
		t.Fatalf("name = %q", got.Profile.Name)
	}
}

func TestAdminDashboardSurfacesErrors(t *testing.T) {
	appts := newCountingAppts()
	appts.listErr = errBoom
	d, _ := newTestDashboard(appts)

	got := d.AdminDashboard(context.Background(), Viewer{UserID: "admin", Email: "admin@clinic.test", Admin: true})
	if len(got.Errors) != 2 {
		t.Fatalf("errors = %v", got.Errors)
	}
	if got.Analytics != nil || len(got.Appointments) != 0 || len(got.Announcements) != 4 {
		t.Fatalf("shell = %+v", got)
	}
	if got.Profile.Role != domain.RoleAdmin {
		t.Fatalf("role = %q", got.Profile.Role)
	}
}

func TestAdminDashboardLists(t *testing.T) {
	appts := newCountingAppts()
	appts.put(t, domain.Appointment{ID: "a1", UserID: "u1", Status: domain.StatusPending, CreatedAt: time.Now()})
	appts.put(t, domain.Appointment{ID: "a2", UserID: "u2", Status: domain.StatusCompleted, CreatedAt: time.Now()})
	d, _ := newTestDashboard(appts)

	got := d.AdminDashboard(context.Background(), Viewer{UserID: "admin", Admin: true})
	if len(got.Errors) != 0 || len(got.Appointments) != 2 || got.Analytics.Title != "System Analytics" {
		t.Fatalf("shell = %+v", got)
	}
}
