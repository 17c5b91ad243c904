package repository

import (
	"context"
	"time"

	"tobacco/internal/model"
	"tobacco/pkg/pagination"

	"gorm.io/gorm"
)

// ProductListFilter holds the independently-optional filter fields for
// product listings.
type ProductListFilter struct {
	DisplayName        *string
	DisplayDescription *string
	DisplayUnit        *string
	MinimumPrice       *int64
	MaximumPrice       *int64
	Deleted            *bool
	CreatedBefore      *time.Time
	CreatedAfter       *time.Time
	UpdatedBefore      *time.Time
	UpdatedAfter       *time.Time
}

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	List(ctx context.Context, filter ProductListFilter, page pagination.Params) ([]model.Product, int64, error)
	Update(ctx context.Context, product *model.Product) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	return GetDB(ctx, r.db).Create(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	var product model.Product
	if err := GetDB(ctx, r.db).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) List(ctx context.Context, filter ProductListFilter, page pagination.Params) ([]model.Product, int64, error) {
	clauses := []Clause{
		TextContains("display_name", filter.DisplayName),
		TextContains("display_description", filter.DisplayDescription),
		TextContains("display_unit", filter.DisplayUnit),
		MinValue("current_price", filter.MinimumPrice),
		MaxValue("current_price", filter.MaximumPrice),
		DeletedFlag(filter.Deleted),
		Before("created_at", filter.CreatedBefore),
		After("created_at", filter.CreatedAfter),
		Before("updated_at", filter.UpdatedBefore),
		After("updated_at", filter.UpdatedAfter),
	}

	var total int64
	if err := ApplyClauses(GetDB(ctx, r.db).Model(&model.Product{}), clauses...).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []model.Product
	if err := ApplyClauses(GetDB(ctx, r.db), clauses...).Order("id").Offset(page.Offset).Limit(page.PageSize).Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	return GetDB(ctx, r.db).Save(product).Error
}
