package repository

import (
	"context"
	"time"

	"tobacco/internal/model"
	"tobacco/pkg/pagination"

	"gorm.io/gorm"
)

// UserListFilter holds the independently-optional filter fields for user
// listings. Omitted fields impose no constraint.
type UserListFilter struct {
	DisplayName   *string
	Authority     *model.Authority
	GroupID       *int64
	Deleted       *bool
	CreatedBefore *time.Time
	CreatedAfter  *time.Time
	UpdatedBefore *time.Time
	UpdatedAfter  *time.Time
}

// UserRepository defines the interface for data access of User entities
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	List(ctx context.Context, filter UserListFilter, page pagination.Params) ([]model.User, int64, error)
	Update(ctx context.Context, user *model.User) error
	SetAuthorities(ctx context.Context, userID int64, authorities []model.Authority) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new instance of UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return GetDB(ctx, r.db).Create(user).Error
}

// GetByID loads a user with authorities and groups; soft-deleted users are
// still readable by id.
func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	if err := GetDB(ctx, r.db).Preload("Authorities").Preload("Groups").First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := GetDB(ctx, r.db).Preload("Authorities").Preload("Groups").First(&user, "username = ?", username).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

func (r *userRepository) List(ctx context.Context, filter UserListFilter, page pagination.Params) ([]model.User, int64, error) {
	clauses := []Clause{
		TextContains("display_name", filter.DisplayName),
		HoldsAuthority(filter.Authority),
		MemberOfGroup(filter.GroupID),
		DeletedFlag(filter.Deleted),
		Before("created_at", filter.CreatedBefore),
		After("created_at", filter.CreatedAfter),
		Before("updated_at", filter.UpdatedBefore),
		After("updated_at", filter.UpdatedAfter),
	}

	var total int64
	if err := ApplyClauses(GetDB(ctx, r.db).Model(&model.User{}), clauses...).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []model.User
	query := ApplyClauses(GetDB(ctx, r.db).Preload("Authorities"), clauses...)
	if err := query.Order("id").Offset(page.Offset).Limit(page.PageSize).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return GetDB(ctx, r.db).Omit("Authorities", "Groups").Save(user).Error
}

// SetAuthorities replaces the user's authority tags wholesale.
func (r *userRepository) SetAuthorities(ctx context.Context, userID int64, authorities []model.Authority) error {
	db := GetDB(ctx, r.db)
	if err := db.Where("user_id = ?", userID).Delete(&model.UserAuthority{}).Error; err != nil {
		return err
	}
	if len(authorities) == 0 {
		return nil
	}
	rows := make([]model.UserAuthority, 0, len(authorities))
	for _, a := range authorities {
		rows = append(rows, model.UserAuthority{UserID: userID, Authority: a})
	}
	return db.Create(&rows).Error
}
