package repository

import (
	"context"
	"time"

	"tobacco/internal/model"
	"tobacco/pkg/pagination"

	"gorm.io/gorm"
)

// InvoiceListFilter holds the independently-optional filter fields for
// invoice listings. The actor's authorization scope is applied separately,
// before these.
type InvoiceListFilter struct {
	DisplayDescription *string
	Status             *string
	Deleted            *bool
	CreatedBefore      *time.Time
	CreatedAfter       *time.Time
	UpdatedBefore      *time.Time
	UpdatedAfter       *time.Time
}

type InvoiceRepository interface {
	Create(ctx context.Context, invoice *model.Invoice) error
	// GetByID loads the invoice with its author (and the author's groups),
	// which the authorization policy needs.
	GetByID(ctx context.Context, id int64) (*model.Invoice, error)
	// GetDetail additionally hydrates items with products and comments with
	// their authors, for the detail view.
	GetDetail(ctx context.Context, id int64) (*model.Invoice, error)
	List(ctx context.Context, actor *model.User, filter InvoiceListFilter, page pagination.Params) ([]model.Invoice, int64, error)
	Update(ctx context.Context, invoice *model.Invoice) error
	UpdateStatus(ctx context.Context, invoiceID int64, status model.InvoiceStatus) error

	CreateItem(ctx context.Context, item *model.InvoiceItem) error
	ListItems(ctx context.Context, invoiceID int64, page pagination.Params) ([]model.InvoiceItem, int64, error)

	CreateComment(ctx context.Context, comment *model.InvoiceComment) error
	ListComments(ctx context.Context, invoiceID int64, page pagination.Params) ([]model.InvoiceComment, int64, error)

	// ListDoneBetween returns non-deleted DONE invoices (items included)
	// whose last update falls in the inclusive range. Feeds the revenue
	// statistics.
	ListDoneBetween(ctx context.Context, from, to time.Time) ([]model.Invoice, error)
}

type invoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *model.Invoice) error {
	return GetDB(ctx, r.db).Create(invoice).Error
}

func (r *invoiceRepository) GetByID(ctx context.Context, id int64) (*model.Invoice, error) {
	var invoice model.Invoice
	err := GetDB(ctx, r.db).
		Preload("Author").
		Preload("Author.Groups").
		First(&invoice, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) GetDetail(ctx context.Context, id int64) (*model.Invoice, error) {
	var invoice model.Invoice
	err := GetDB(ctx, r.db).
		Preload("Author").
		Preload("Author.Groups").
		Preload("Items", "deleted = ?", false).
		Preload("Items.Product").
		Preload("Comments", "deleted = ?", false).
		Preload("Comments.User").
		First(&invoice, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) List(ctx context.Context, actor *model.User, filter InvoiceListFilter, page pagination.Params) ([]model.Invoice, int64, error) {
	clauses := []Clause{
		InvoiceScope(actor),
		TextContains("display_description", filter.DisplayDescription),
		EqualsString("status", filter.Status),
		DeletedFlag(filter.Deleted),
		Before("created_at", filter.CreatedBefore),
		After("created_at", filter.CreatedAfter),
		Before("updated_at", filter.UpdatedBefore),
		After("updated_at", filter.UpdatedAfter),
	}

	var total int64
	if err := ApplyClauses(GetDB(ctx, r.db).Model(&model.Invoice{}), clauses...).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var invoices []model.Invoice
	if err := ApplyClauses(GetDB(ctx, r.db), clauses...).Order("id").Offset(page.Offset).Limit(page.PageSize).Find(&invoices).Error; err != nil {
		return nil, 0, err
	}

	return invoices, total, nil
}

func (r *invoiceRepository) Update(ctx context.Context, invoice *model.Invoice) error {
	return GetDB(ctx, r.db).Omit("Author", "Items", "Comments").Save(invoice).Error
}

func (r *invoiceRepository) UpdateStatus(ctx context.Context, invoiceID int64, status model.InvoiceStatus) error {
	return GetDB(ctx, r.db).Model(&model.Invoice{}).Where("id = ?", invoiceID).Update("status", status).Error
}

func (r *invoiceRepository) CreateItem(ctx context.Context, item *model.InvoiceItem) error {
	return GetDB(ctx, r.db).Create(item).Error
}

func (r *invoiceRepository) ListItems(ctx context.Context, invoiceID int64, page pagination.Params) ([]model.InvoiceItem, int64, error) {
	query := GetDB(ctx, r.db).Model(&model.InvoiceItem{}).Where("invoice_id = ? AND deleted = ?", invoiceID, false)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []model.InvoiceItem
	err := GetDB(ctx, r.db).
		Where("invoice_id = ? AND deleted = ?", invoiceID, false).
		Order("id").Offset(page.Offset).Limit(page.PageSize).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *invoiceRepository) CreateComment(ctx context.Context, comment *model.InvoiceComment) error {
	return GetDB(ctx, r.db).Create(comment).Error
}

func (r *invoiceRepository) ListComments(ctx context.Context, invoiceID int64, page pagination.Params) ([]model.InvoiceComment, int64, error) {
	query := GetDB(ctx, r.db).Model(&model.InvoiceComment{}).Where("invoice_id = ? AND deleted = ?", invoiceID, false)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []model.InvoiceComment
	err := GetDB(ctx, r.db).
		Where("invoice_id = ? AND deleted = ?", invoiceID, false).
		Order("id").Offset(page.Offset).Limit(page.PageSize).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}

func (r *invoiceRepository) ListDoneBetween(ctx context.Context, from, to time.Time) ([]model.Invoice, error) {
	var invoices []model.Invoice
	err := GetDB(ctx, r.db).
		Preload("Items", "deleted = ?", false).
		Where("status = ? AND deleted = ? AND updated_at >= ? AND updated_at <= ?", model.StatusDone, false, from, to).
		Order("id").
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}
