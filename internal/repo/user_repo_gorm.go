package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"clinic-appointments/internal/domain"
	"clinic-appointments/internal/feature/user"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	m := user.FromDomain(u)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.Conflict("user", u.Email)
		}
		return domain.Storage("create user", err)
	}
	u.CreatedAt, u.UpdatedAt = m.CreatedAt, m.UpdatedAt
	return nil
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var m user.UserModel
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFound("user", id)
	}
	if err != nil {
		return nil, domain.Storage("find user", err)
	}
	u := m.ToDomain()
	return &u, nil
}

// FindByIDs 批量查；缺失的 id 直接不出现在结果里
func (r *UserRepo) FindByIDs(ctx context.Context, ids []string) ([]domain.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var ms []user.UserModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&ms).Error; err != nil {
		return nil, domain.Storage("find users", err)
	}
	out := make([]domain.User, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.ToDomain())
	}
	return out, nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m user.UserModel
	err := r.db.WithContext(ctx).Unscoped().First(&m, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFound("user", email)
	}
	if err != nil {
		return nil, domain.Storage("find user", err)
	}
	u := m.ToDomain()
	return &u, nil
}

func (r *UserRepo) List(ctx context.Context, q domain.UserListQuery) ([]domain.User, int64, error) {
	tx := r.db.WithContext(ctx).Model(&user.UserModel{})
	if q.WithDeleted {
		tx = tx.Unscoped()
	}
	if s := strings.TrimSpace(q.Q); s != "" {
		like := "%" + s + "%"
		tx = tx.Where("email LIKE ? OR name LIKE ?", like, like)
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, domain.Storage("count users", err)
	}
	var ms []user.UserModel
	if err := tx.Offset(q.Offset).Limit(q.Limit).Order("created_at desc").Find(&ms).Error; err != nil {
		return nil, 0, domain.Storage("list users", err)
	}
	users := make([]domain.User, 0, len(ms))
	for _, m := range ms {
		users = append(users, m.ToDomain())
	}
	return users, total, nil
}

func (r *UserRepo) Upsert(ctx context.Context, u *domain.User) error {
	m := user.FromDomain(u)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "name", "role", "extra", "updated_at"}),
	}).Create(&m).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.Conflict("user", u.Email)
	}
	if err != nil {
		return domain.Storage("upsert user", err)
	}
	u.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *UserRepo) SoftDelete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&user.UserModel{})
	if res.Error != nil {
		return domain.Storage("delete user", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("user", id)
	}
	return nil
}
