package service

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"clinic-appointments/internal/domain"
)

// Viewer 当前登录人（来自 JWT）
type Viewer struct {
	UserID string
	Email  string
	Admin  bool
}

type Profile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type UserDashboard struct {
	Profile       Profile        `json:"profile"`
	Theme         domain.Theme   `json:"theme"`
	Analytics     *AnalyticsView `json:"analytics,omitempty"`
	Slideshow     Slideshow      `json:"slideshow"`
	Announcements []Announcement `json:"announcements"`
	Nav           []NavItem      `json:"nav"`
	Errors        []string       `json:"errors"`
}

type AdminDashboard struct {
	Profile       Profile        `json:"profile"`
	Theme         domain.Theme   `json:"theme"`
	Analytics     *AnalyticsView `json:"analytics,omitempty"`
	Appointments  []ListItem     `json:"appointments"`
	Announcements []Announcement `json:"announcements"`
	Errors        []string       `json:"errors"`
}

type DashboardService struct {
	users     *UserService
	settings  *SettingsService
	analytics *AnalyticsService
	list      *ListViewService
	log       *zap.Logger
}

func NewDashboardService(users *UserService, settings *SettingsService, analytics *AnalyticsService, list *ListViewService, log *zap.Logger) *DashboardService {
	return &DashboardService{users: users, settings: settings, analytics: analytics, list: list, log: log}
}

// UserDashboard 子模块失败写进 Errors，不让整页失败
func (s *DashboardService) UserDashboard(ctx context.Context, v Viewer) UserDashboard {
	d := UserDashboard{
		Profile:       s.profile(ctx, v),
		Theme:         s.theme(ctx, v.UserID),
		Slideshow:     NewSlideshow(),
		Announcements: Announcements(),
		Nav:           append([]NavItem(nil), userNav...),
		Errors:        []string{},
	}
	view, err := s.analytics.View(ctx, v.UserID, false)
	if err != nil {
		d.Errors = append(d.Errors, "Failed to load analytics")
	} else {
		d.Analytics = &view
	}
	return d
}

// AdminDashboard 统计与列表并发拉取
func (s *DashboardService) AdminDashboard(ctx context.Context, v Viewer) AdminDashboard {
	d := AdminDashboard{
		Profile:       s.profile(ctx, v),
		Theme:         s.theme(ctx, v.UserID),
		Announcements: Announcements(),
		Appointments:  []ListItem{},
		Errors:        []string{},
	}
	var (
		view              AnalyticsView
		items             []ListItem
		viewErr, itemsErr error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		view, viewErr = s.analytics.View(gctx, v.UserID, true)
		return nil
	})
	g.Go(func() error {
		items, itemsErr = s.list.List(gctx, AllAppointments)
		return nil
	})
	_ = g.Wait()

	if viewErr != nil {
		d.Errors = append(d.Errors, "Failed to load analytics")
	} else {
		d.Analytics = &view
	}
	if itemsErr != nil {
		s.log.Error("admin dashboard list", zap.Error(itemsErr))
		d.Errors = append(d.Errors, "Failed to load appointments")
	} else {
		d.Appointments = items
	}
	return d
}

func (s *DashboardService) profile(ctx context.Context, v Viewer) Profile {
	p := Profile{ID: v.UserID, Email: v.Email, Name: v.Email, Role: domain.RoleUser}
	if v.Admin {
		p.Role = domain.RoleAdmin
	}
	name, mail, err := s.users.DisplayName(ctx, v.UserID, v.Email)
	if err != nil {
		s.log.Debug("dashboard profile", zap.String("uid", v.UserID), zap.Error(err))
		return p
	}
	p.Name, p.Email = name, mail
	return p
}

func (s *DashboardService) theme(ctx context.Context, uid string) domain.Theme {
	st, err := s.settings.Get(ctx, uid)
	if err != nil {
		s.log.Warn("dashboard theme", zap.String("uid", uid), zap.Error(err))
		return domain.ThemeLight
	}
	return st.Theme
}
