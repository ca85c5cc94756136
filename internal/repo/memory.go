package repo

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"clinic-appointments/internal/domain"
)

// NewMemoryStores db.driver=memory：进程内存储，重启即丢，用于本地联调和测试
func NewMemoryStores() *Stores {
	return &Stores{
		Users:        NewMemoryUserRepo(),
		Appointments: NewMemoryAppointmentRepo(),
		Settings:     NewMemorySettingsRepo(),
		Close:        func() {},
	}
}

type MemoryUserRepo struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{users: map[string]domain.User{}}
}

func cloneUser(u domain.User) domain.User {
	if u.Extra != nil {
		extra := make(map[string]any, len(u.Extra))
		for k, v := range u.Extra {
			extra[k] = v
		}
		u.Extra = extra
	}
	return u
}

// emailTaken 与 SQL 唯一索引一致：已封禁的也算占用，空 email 不算
func (r *MemoryUserRepo) emailTaken(id, email string) bool {
	if email == "" {
		return false
	}
	for _, x := range r.users {
		if x.ID != id && x.Email == email {
			return true
		}
	}
	return false
}

func (r *MemoryUserRepo) Create(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; ok {
		return domain.Conflict("user", u.ID)
	}
	if r.emailTaken(u.ID, u.Email) {
		return domain.Conflict("user", u.Email)
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	u.UpdatedAt = u.CreatedAt
	r.users[u.ID] = cloneUser(*u)
	return nil
}

func (r *MemoryUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok || u.DeletedAt != nil {
		return nil, domain.NotFound("user", id)
	}
	u = cloneUser(u)
	return &u, nil
}

func (r *MemoryUserRepo) FindByIDs(_ context.Context, ids []string) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok && u.DeletedAt == nil {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r *MemoryUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			u = cloneUser(u)
			return &u, nil
		}
	}
	return nil, domain.NotFound("user", email)
}

func (r *MemoryUserRepo) List(_ context.Context, q domain.UserListQuery) ([]domain.User, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	needle := strings.ToLower(strings.TrimSpace(q.Q))
	all := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		if u.DeletedAt != nil && !q.WithDeleted {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(u.Email), needle) && !strings.Contains(strings.ToLower(u.Name), needle) {
			continue
		}
		all = append(all, cloneUser(u))
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	total := int64(len(all))
	if q.Offset >= len(all) {
		return []domain.User{}, total, nil
	}
	all = all[q.Offset:]
	if q.Limit > 0 && q.Limit < len(all) {
		all = all[:q.Limit]
	}
	return all, total, nil
}

func (r *MemoryUserRepo) Upsert(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.emailTaken(u.ID, u.Email) {
		return domain.Conflict("user", u.Email)
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	if prev, ok := r.users[u.ID]; ok {
		u.CreatedAt = prev.CreatedAt
		if u.PasswordHash == "" {
			u.PasswordHash = prev.PasswordHash
		}
		u.DeletedAt = prev.DeletedAt
	}
	r.users[u.ID] = cloneUser(*u)
	return nil
}

func (r *MemoryUserRepo) SoftDelete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || u.DeletedAt != nil {
		return domain.NotFound("user", id)
	}
	now := time.Now()
	u.DeletedAt = &now
	r.users[id] = u
	return nil
}

type MemoryAppointmentRepo struct {
	mu    sync.RWMutex
	items map[string]domain.Appointment
}

func NewMemoryAppointmentRepo() *MemoryAppointmentRepo {
	return &MemoryAppointmentRepo{items: map[string]domain.Appointment{}}
}

func (r *MemoryAppointmentRepo) Create(_ context.Context, a *domain.Appointment) error {
	if err := (domain.StatusChange{Status: a.Status}).Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[a.ID]; ok {
		return domain.Conflict("appointment", a.ID)
	}
	r.items[a.ID] = *a
	return nil
}

func (r *MemoryAppointmentRepo) FindByID(_ context.Context, id string) (*domain.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.items[id]
	if !ok {
		return nil, domain.NotFound("appointment", id)
	}
	return &a, nil
}

func (r *MemoryAppointmentRepo) List(_ context.Context, f domain.AppointmentFilter) ([]domain.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Appointment, 0, len(r.items))
	for _, a := range r.items {
		if f.UserID != "" && a.UserID != f.UserID {
			continue
		}
		out = append(out, a)
	}
	// created_at 倒序，同值按 id（uuid v7）倒序
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryAppointmentRepo) UpdateStatus(_ context.Context, id string, ch domain.StatusChange) error {
	if err := ch.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.items[id]
	if !ok {
		return domain.NotFound("appointment", id)
	}
	a.Status = ch.Status
	a.UpdatedAt = ch.UpdatedAt
	a.CompletedDate = nil
	if ch.CompletedDate != nil {
		t := *ch.CompletedDate
		a.CompletedDate = &t
	}
	r.items[id] = a
	return nil
}

type MemorySettingsRepo struct {
	mu   sync.RWMutex
	rows map[string]domain.Settings
}

func NewMemorySettingsRepo() *MemorySettingsRepo {
	return &MemorySettingsRepo{rows: map[string]domain.Settings{}}
}

func (r *MemorySettingsRepo) Get(_ context.Context, userID string) (*domain.Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.rows[userID]
	if !ok {
		return nil, domain.NotFound("settings", userID)
	}
	return &s, nil
}

func (r *MemorySettingsRepo) Save(_ context.Context, s *domain.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[s.UserID] = *s
	return nil
}
