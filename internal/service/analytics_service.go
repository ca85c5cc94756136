package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"clinic-appointments/internal/domain"
	"clinic-appointments/pkg/utils"
)

const msgNoAnalytics = "No appointments data yet. Create your first appointment to see analytics!"

type AnalyticsService struct {
	repo domain.AppointmentRepository
	log  *zap.Logger
	now  func() time.Time
}

func NewAnalyticsService(repo domain.AppointmentRepository, log *zap.Logger) *AnalyticsService {
	return &AnalyticsService{repo: repo, log: log, now: time.Now}
}

// AnalyticsView 看板卡片：标题 + 计数 + 空态提示
type AnalyticsView struct {
	Title    string                   `json:"title"`
	Snapshot domain.AnalyticsSnapshot `json:"snapshot"`
	Empty    bool                     `json:"empty"`
	Message  string                   `json:"message,omitempty"`
}

func AnalyticsTitle(isAdmin bool) string {
	if isAdmin {
		return "System Analytics"
	}
	return "Your Appointments Overview"
}

// Snapshot isAdmin 统计全部，否则只统计 userID 名下
func (s *AnalyticsService) Snapshot(ctx context.Context, userID string, isAdmin bool) (domain.AnalyticsSnapshot, error) {
	f := domain.AppointmentFilter{}
	if !isAdmin {
		if userID == "" {
			return domain.AnalyticsSnapshot{}, &domain.ValidationError{Field: "userId", Msg: "required"}
		}
		f.UserID = userID
	}
	list, err := s.repo.List(ctx, f)
	if err != nil {
		storageFailures.WithLabelValues("analytics").Inc()
		s.log.Error("analytics fetch", zap.String("user_id", userID), zap.Bool("admin", isAdmin), zap.Error(err))
		return domain.AnalyticsSnapshot{}, err
	}
	return Aggregate(list, s.now()), nil
}

func (s *AnalyticsService) View(ctx context.Context, userID string, isAdmin bool) (AnalyticsView, error) {
	snap, err := s.Snapshot(ctx, userID, isAdmin)
	if err != nil {
		return AnalyticsView{}, err
	}
	v := AnalyticsView{Title: AnalyticsTitle(isAdmin), Snapshot: snap}
	if snap.Total == 0 {
		v.Empty, v.Message = true, msgNoAnalytics
	}
	return v, nil
}

// Aggregate 未知状态只计入 total；completed 无 completedDate 不计入今日
func Aggregate(list []domain.Appointment, now time.Time) domain.AnalyticsSnapshot {
	midnight := utils.StartOfDay(now)
	var snap domain.AnalyticsSnapshot
	for _, a := range list {
		snap.Total++
		switch a.Status {
		case domain.StatusPending:
			snap.Pending++
		case domain.StatusCompleted:
			snap.Completed++
			if a.CompletedDate != nil && !a.CompletedDate.Before(midnight) {
				snap.TodayCompleted++
			}
		}
	}
	return snap
}
