package repository

import (
	"context"
	"time"

	"tobacco/internal/model"
	"tobacco/pkg/pagination"

	"gorm.io/gorm"
)

// GroupListFilter holds the independently-optional filter fields for group
// listings.
type GroupListFilter struct {
	DisplayName   *string
	UserID        *int64
	Deleted       *bool
	CreatedBefore *time.Time
	CreatedAfter  *time.Time
	UpdatedBefore *time.Time
	UpdatedAfter  *time.Time
}

type GroupRepository interface {
	Create(ctx context.Context, group *model.Group) error
	GetByID(ctx context.Context, id int64) (*model.Group, error)
	GetDetail(ctx context.Context, id int64) (*model.Group, error)
	List(ctx context.Context, filter GroupListFilter, page pagination.Params) ([]model.Group, int64, error)
	Update(ctx context.Context, group *model.Group) error
	SetMembers(ctx context.Context, group *model.Group, users []*model.User) error
}

type groupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) Create(ctx context.Context, group *model.Group) error {
	return GetDB(ctx, r.db).Create(group).Error
}

func (r *groupRepository) GetByID(ctx context.Context, id int64) (*model.Group, error) {
	var group model.Group
	if err := GetDB(ctx, r.db).First(&group, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// GetDetail loads a group with its member users and their authorities.
func (r *groupRepository) GetDetail(ctx context.Context, id int64) (*model.Group, error) {
	var group model.Group
	if err := GetDB(ctx, r.db).Preload("Users").Preload("Users.Authorities").First(&group, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *groupRepository) List(ctx context.Context, filter GroupListFilter, page pagination.Params) ([]model.Group, int64, error) {
	clauses := []Clause{
		TextContains("display_name", filter.DisplayName),
		HasMember(filter.UserID),
		DeletedFlag(filter.Deleted),
		Before("created_at", filter.CreatedBefore),
		After("created_at", filter.CreatedAfter),
		Before("updated_at", filter.UpdatedBefore),
		After("updated_at", filter.UpdatedAfter),
	}

	var total int64
	if err := ApplyClauses(GetDB(ctx, r.db).Model(&model.Group{}), clauses...).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var groups []model.Group
	if err := ApplyClauses(GetDB(ctx, r.db), clauses...).Order("id").Offset(page.Offset).Limit(page.PageSize).Find(&groups).Error; err != nil {
		return nil, 0, err
	}

	return groups, total, nil
}

func (r *groupRepository) Update(ctx context.Context, group *model.Group) error {
	return GetDB(ctx, r.db).Omit("Users").Save(group).Error
}

// SetMembers replaces the group's membership wholesale.
func (r *groupRepository) SetMembers(ctx context.Context, group *model.Group, users []*model.User) error {
	return GetDB(ctx, r.db).Model(group).Association("Users").Replace(users)
}
