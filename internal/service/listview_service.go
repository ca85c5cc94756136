package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"clinic-appointments/internal/domain"
	"clinic-appointments/pkg/utils"
)

const unknownUser = "Unknown User"

// ListItem 列表行：预约 + 展示字段
type ListItem struct {
	domain.Appointment
	UserName       string                   `json:"userName"`
	StatusLabel    string                   `json:"statusLabel"`
	NextStatus     domain.AppointmentStatus `json:"nextStatus"`
	DateLabel      string                   `json:"dateLabel"`
	CreatedAgo     string                   `json:"createdAgo"`
	CompletedLabel string                   `json:"completedLabel,omitempty"`
}

// Scope UserID 为空表示全部
type Scope struct{ UserID string }

var AllAppointments = Scope{}

func Owner(userID string) Scope { return Scope{UserID: userID} }

type ListViewService struct {
	appts *AppointmentService
	repo  domain.AppointmentRepository
	users domain.UserRepository
	log   *zap.Logger
	now   func() time.Time
}

func NewListViewService(appts *AppointmentService, repo domain.AppointmentRepository, users domain.UserRepository, log *zap.Logger) *ListViewService {
	return &ListViewService{appts: appts, repo: repo, users: users, log: log, now: time.Now}
}

// List created_at 倒序；用户名一次批量查询
func (s *ListViewService) List(ctx context.Context, scope Scope) ([]ListItem, error) {
	list, err := s.repo.List(ctx, domain.AppointmentFilter{UserID: scope.UserID})
	if err != nil {
		return nil, err
	}
	names := s.resolveNames(ctx, list)
	now := s.now()
	out := make([]ListItem, 0, len(list))
	for _, a := range list {
		out = append(out, s.item(a, names, now))
	}
	return out, nil
}

// Toggle pending <-> completed；写入后回读，不在本地拼状态
func (s *ListViewService) Toggle(ctx context.Context, id string) (ListItem, error) {
	cur, err := s.appts.Get(ctx, id)
	if err != nil {
		return ListItem{}, err
	}
	return s.SetStatus(ctx, id, string(cur.Status.Toggled()))
}

func (s *ListViewService) SetStatus(ctx context.Context, id, status string) (ListItem, error) {
	if _, err := s.appts.UpdateAppointmentStatus(ctx, id, status); err != nil {
		return ListItem{}, err
	}
	a, err := s.appts.Get(ctx, id)
	if err != nil {
		return ListItem{}, err
	}
	names := s.resolveNames(ctx, []domain.Appointment{*a})
	return s.item(*a, names, s.now()), nil
}

func (s *ListViewService) item(a domain.Appointment, names map[string]string, now time.Time) ListItem {
	it := ListItem{
		Appointment: a,
		UserName:    unknownUser,
		StatusLabel: a.Status.Label(),
		NextStatus:  a.Status.Toggled(),
		DateLabel:   utils.FormatDate(a.Date),
		CreatedAgo:  utils.TimeAgo(a.CreatedAt, now),
	}
	if n := names[a.UserID]; n != "" {
		it.UserName = n
	}
	if a.CompletedDate != nil {
		it.CompletedLabel = utils.FormatDate(*a.CompletedDate)
	}
	return it
}

// resolveNames 查询失败只记日志，名字回落 Unknown User
func (s *ListViewService) resolveNames(ctx context.Context, list []domain.Appointment) map[string]string {
	seen := make(map[string]struct{}, len(list))
	ids := make([]string, 0, len(list))
	for _, a := range list {
		if a.UserID == "" {
			continue
		}
		if _, ok := seen[a.UserID]; ok {
			continue
		}
		seen[a.UserID] = struct{}{}
		ids = append(ids, a.UserID)
	}
	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names
	}
	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		s.log.Warn("resolve owner names", zap.Int("ids", len(ids)), zap.Error(err))
		return names
	}
	for _, u := range users {
		names[u.ID] = u.Name
	}
	return names
}
