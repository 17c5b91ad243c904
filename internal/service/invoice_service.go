package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tobacco/internal/model"
	"tobacco/internal/policy"
	"tobacco/internal/repository"
	"tobacco/internal/websocket"
	"tobacco/pkg/apperror"
	"tobacco/pkg/pagination"

	"gorm.io/gorm"
)

// --- DTOs ---

type CreateInvoiceRequest struct {
	DisplayDescription string `json:"display_description" binding:"required"`
}

type UpdateInvoiceRequest struct {
	DisplayDescription *string `json:"display_description"`
}

type AddCommentRequest struct {
	Comment     string `json:"comment" binding:"required"`
	StatusAfter string `json:"status_after" binding:"required"`
}

type AddItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int64 `json:"quantity" binding:"min=0"`
}

type InvoiceResponse struct {
	ID                 int64                    `json:"id"`
	AuthorID           int64                    `json:"author_id"`
	DisplayDescription string                   `json:"display_description"`
	Status             string                   `json:"status"`
	Deleted            bool                     `json:"deleted"`
	CreatedAt          string                   `json:"created_at"`
	UpdatedAt          string                   `json:"updated_at"`
	Author             *UserResponse            `json:"author,omitempty"`
	Items              []InvoiceItemResponse    `json:"items,omitempty"`
	Comments           []InvoiceCommentResponse `json:"comments,omitempty"`
}

type InvoiceItemResponse struct {
	ID        int64            `json:"id"`
	InvoiceID int64            `json:"invoice_id"`
	ProductID int64            `json:"product_id"`
	UnitPrice int64            `json:"unit_price"`
	Quantity  int64            `json:"quantity"`
	CreatedAt string           `json:"created_at"`
	Product   *ProductResponse `json:"product,omitempty"`
}

type InvoiceCommentResponse struct {
	ID           int64         `json:"id"`
	InvoiceID    int64         `json:"invoice_id"`
	UserID       int64         `json:"user_id"`
	Comment      string        `json:"comment"`
	StatusBefore string        `json:"status_before"`
	StatusAfter  string        `json:"status_after"`
	CreatedAt    string        `json:"created_at"`
	User         *UserResponse `json:"user,omitempty"`
}

// --- Interface ---

// InvoiceService is the status-workflow engine. Every operation resolves
// its referenced entities eagerly and checks the authorization policy
// before touching anything.
type InvoiceService interface {
	Create(ctx context.Context, actor *model.User, req CreateInvoiceRequest) (*InvoiceResponse, error)
	Get(ctx context.Context, actor *model.User, id int64) (*InvoiceResponse, error)
	List(ctx context.Context, actor *model.User, filter repository.InvoiceListFilter, page pagination.Params) (pagination.Page[InvoiceResponse], error)
	UpdateDescription(ctx context.Context, actor *model.User, id int64, req UpdateInvoiceRequest) (*InvoiceResponse, error)
	Delete(ctx context.Context, id int64) error

	AddComment(ctx context.Context, actor *model.User, id int64, req AddCommentRequest) (*InvoiceCommentResponse, error)
	ListComments(ctx context.Context, actor *model.User, id int64, page pagination.Params) (pagination.Page[InvoiceCommentResponse], error)

	AddItem(ctx context.Context, actor *model.User, id int64, req AddItemRequest) (*InvoiceItemResponse, error)
	ListItems(ctx context.Context, actor *model.User, id int64, page pagination.Params) (pagination.Page[InvoiceItemResponse], error)
}

type invoiceService struct {
	invoiceRepo repository.InvoiceRepository
	productRepo repository.ProductRepository
	txManager   repository.TransactionManager
	hub         *websocket.Hub
}

func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	productRepo repository.ProductRepository,
	txManager repository.TransactionManager,
	hub *websocket.Hub,
) InvoiceService {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		productRepo: productRepo,
		txManager:   txManager,
		hub:         hub,
	}
}

// --- Implementation ---

func (s *invoiceService) Create(ctx context.Context, actor *model.User, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	if !policy.CanCreateInvoice(actor) {
		return nil, apperror.Forbidden("only a salesman can create invoices")
	}
	if strings.TrimSpace(req.DisplayDescription) == "" {
		return nil, apperror.Validation("display_description must not be blank")
	}

	invoice := &model.Invoice{
		AuthorID:           actor.ID,
		DisplayDescription: req.DisplayDescription,
		Status:             model.StatusCreated,
	}
	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	return toInvoiceResponse(invoice), nil
}

func (s *invoiceService) Get(ctx context.Context, actor *model.User, id int64) (*InvoiceResponse, error) {
	invoice, err := s.mustExistDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.IsAuthorizedFor(actor, invoice) {
		return nil, apperror.Forbidden("not authorized for invoice %d", id)
	}
	return toInvoiceDetailResponse(invoice), nil
}

func (s *invoiceService) List(ctx context.Context, actor *model.User, filter repository.InvoiceListFilter, page pagination.Params) (pagination.Page[InvoiceResponse], error) {
	if filter.Status != nil {
		if _, ok := model.ParseInvoiceStatus(*filter.Status); !ok {
			return pagination.Page[InvoiceResponse]{}, apperror.Validation("unknown invoice status %q", *filter.Status)
		}
	}

	invoices, total, err := s.invoiceRepo.List(ctx, actor, filter, page)
	if err != nil {
		return pagination.Page[InvoiceResponse]{}, fmt.Errorf("failed to fetch invoices: %w", err)
	}

	result := make([]InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		result = append(result, *toInvoiceResponse(&invoices[i]))
	}
	return pagination.NewPage(result, total, page), nil
}

func (s *invoiceService) UpdateDescription(ctx context.Context, actor *model.User, id int64, req UpdateInvoiceRequest) (*InvoiceResponse, error) {
	invoice, err := s.mustExist(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.IsAuthorOf(actor, invoice) {
		return nil, apperror.Forbidden("only the authoring salesman can edit invoice %d", id)
	}
	if invoice.Status.IsTerminal() {
		return nil, apperror.InvalidState("invoice %d is %s and can no longer be edited", id, invoice.Status)
	}

	if req.DisplayDescription != nil {
		if strings.TrimSpace(*req.DisplayDescription) == "" {
			return nil, apperror.Validation("display_description must not be blank")
		}
		invoice.DisplayDescription = *req.DisplayDescription
	}

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}
	return toInvoiceResponse(invoice), nil
}

// Delete soft-deletes an invoice. The admin-only guard sits on the route.
func (s *invoiceService) Delete(ctx context.Context, id int64) error {
	invoice, err := s.mustExist(ctx, id)
	if err != nil {
		return err
	}
	invoice.Deleted = true
	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	return nil
}

// AddComment records a status transition. The comment insert and the status
// update commit in one transaction: a comment must never disagree with the
// persisted status. The target status is deliberately not validated against
// a transition table.
func (s *invoiceService) AddComment(ctx context.Context, actor *model.User, id int64, req AddCommentRequest) (*InvoiceCommentResponse, error) {
	statusAfter, ok := model.ParseInvoiceStatus(req.StatusAfter)
	if !ok {
		return nil, apperror.Validation("unknown invoice status %q", req.StatusAfter)
	}
	if strings.TrimSpace(req.Comment) == "" {
		return nil, apperror.Validation("comment must not be blank")
	}

	invoice, err := s.mustExist(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.IsAuthorizedFor(actor, invoice) {
		return nil, apperror.Forbidden("not authorized for invoice %d", id)
	}

	var comment *model.InvoiceComment
	var statusBefore model.InvoiceStatus
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		// Re-read inside the transaction: the status recorded as "before"
		// must be the one the update is based on.
		current, findErr := s.invoiceRepo.GetByID(txCtx, id)
		if findErr != nil {
			return fmt.Errorf("invoice vanished: %w", findErr)
		}
		statusBefore = current.Status

		comment = &model.InvoiceComment{
			InvoiceID:    current.ID,
			UserID:       actor.ID,
			Comment:      req.Comment,
			StatusBefore: statusBefore,
			StatusAfter:  statusAfter,
		}
		if createErr := s.invoiceRepo.CreateComment(txCtx, comment); createErr != nil {
			return fmt.Errorf("failed to create comment: %w", createErr)
		}
		if updateErr := s.invoiceRepo.UpdateStatus(txCtx, current.ID, statusAfter); updateErr != nil {
			return fmt.Errorf("failed to update status: %w", updateErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.NotifyTransition(websocket.TransitionEvent{
			InvoiceID:    id,
			CommentID:    comment.ID,
			ActorID:      actor.ID,
			StatusBefore: string(statusBefore),
			StatusAfter:  string(statusAfter),
		})
	}

	return toInvoiceCommentResponse(comment), nil
}

func (s *invoiceService) ListComments(ctx context.Context, actor *model.User, id int64, page pagination.Params) (pagination.Page[InvoiceCommentResponse], error) {
	invoice, err := s.mustExist(ctx, id)
	if err != nil {
		return pagination.Page[InvoiceCommentResponse]{}, err
	}
	if !policy.IsAuthorizedFor(actor, invoice) {
		return pagination.Page[InvoiceCommentResponse]{}, apperror.Forbidden("not authorized for invoice %d", id)
	}

	comments, total, err := s.invoiceRepo.ListComments(ctx, id, page)
	if err != nil {
		return pagination.Page[InvoiceCommentResponse]{}, fmt.Errorf("failed to fetch comments: %w", err)
	}

	result := make([]InvoiceCommentResponse, 0, len(comments))
	for i := range comments {
		result = append(result, *toInvoiceCommentResponse(&comments[i]))
	}
	return pagination.NewPage(result, total, page), nil
}

func (s *invoiceService) AddItem(ctx context.Context, actor *model.User, id int64, req AddItemRequest) (*InvoiceItemResponse, error) {
	if req.Quantity < 0 {
		return nil, apperror.Validation("quantity must not be negative")
	}

	invoice, err := s.mustExist(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.IsAuthorOf(actor, invoice) {
		return nil, apperror.Forbidden("only the authoring salesman can add items to invoice %d", id)
	}
	if invoice.Status != model.StatusCreated {
		return nil, apperror.InvalidState("invoice %d is not modifiable in status %s", id, invoice.Status)
	}

	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("product %d not found", req.ProductID)
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	if product.Deleted {
		return nil, apperror.InvalidState("product %d is unavailable", product.ID)
	}

	// Snapshot the price now. Later product price changes must not leak
	// into this item.
	item := &model.InvoiceItem{
		InvoiceID: invoice.ID,
		ProductID: product.ID,
		UnitPrice: product.CurrentPrice,
		Quantity:  req.Quantity,
	}
	if err := s.invoiceRepo.CreateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	return toInvoiceItemResponse(item), nil
}

func (s *invoiceService) ListItems(ctx context.Context, actor *model.User, id int64, page pagination.Params) (pagination.Page[InvoiceItemResponse], error) {
	invoice, err := s.mustExist(ctx, id)
	if err != nil {
		return pagination.Page[InvoiceItemResponse]{}, err
	}
	if !policy.IsAuthorizedFor(actor, invoice) {
		return pagination.Page[InvoiceItemResponse]{}, apperror.Forbidden("not authorized for invoice %d", id)
	}

	items, total, err := s.invoiceRepo.ListItems(ctx, id, page)
	if err != nil {
		return pagination.Page[InvoiceItemResponse]{}, fmt.Errorf("failed to fetch items: %w", err)
	}

	result := make([]InvoiceItemResponse, 0, len(items))
	for i := range items {
		result = append(result, *toInvoiceItemResponse(&items[i]))
	}
	return pagination.NewPage(result, total, page), nil
}

// --- Helpers ---

func (s *invoiceService) mustExist(ctx context.Context, id int64) (*model.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("invoice %d not found", id)
		}
		return nil, fmt.Errorf("failed to load invoice: %w", err)
	}
	return invoice, nil
}

func (s *invoiceService) mustExistDetail(ctx context.Context, id int64) (*model.Invoice, error) {
	invoice, err := s.invoiceRepo.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("invoice %d not found", id)
		}
		return nil, fmt.Errorf("failed to load invoice: %w", err)
	}
	return invoice, nil
}

// --- Mapping ---

func toInvoiceResponse(invoice *model.Invoice) *InvoiceResponse {
	return &InvoiceResponse{
		ID:                 invoice.ID,
		AuthorID:           invoice.AuthorID,
		DisplayDescription: invoice.DisplayDescription,
		Status:             string(invoice.Status),
		Deleted:            invoice.Deleted,
		CreatedAt:          invoice.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          invoice.UpdatedAt.Format(time.RFC3339),
	}
}

// toInvoiceDetailResponse hydrates the nested author, item and comment
// DTOs. Only the detail endpoint pays this cost; listings stay flat.
func toInvoiceDetailResponse(invoice *model.Invoice) *InvoiceResponse {
	resp := toInvoiceResponse(invoice)
	if invoice.Author != nil {
		resp.Author = toUserResponse(invoice.Author)
	}
	resp.Items = make([]InvoiceItemResponse, 0, len(invoice.Items))
	for i := range invoice.Items {
		item := toInvoiceItemResponse(&invoice.Items[i])
		if invoice.Items[i].Product != nil {
			item.Product = toProductResponse(invoice.Items[i].Product)
		}
		resp.Items = append(resp.Items, *item)
	}
	resp.Comments = make([]InvoiceCommentResponse, 0, len(invoice.Comments))
	for i := range invoice.Comments {
		comment := toInvoiceCommentResponse(&invoice.Comments[i])
		if invoice.Comments[i].User != nil {
			comment.User = toUserResponse(invoice.Comments[i].User)
		}
		resp.Comments = append(resp.Comments, *comment)
	}
	return resp
}

func toInvoiceItemResponse(item *model.InvoiceItem) *InvoiceItemResponse {
	return &InvoiceItemResponse{
		ID:        item.ID,
		InvoiceID: item.InvoiceID,
		ProductID: item.ProductID,
		UnitPrice: item.UnitPrice,
		Quantity:  item.Quantity,
		CreatedAt: item.CreatedAt.Format(time.RFC3339),
	}
}

func toInvoiceCommentResponse(comment *model.InvoiceComment) *InvoiceCommentResponse {
	return &InvoiceCommentResponse{
		ID:           comment.ID,
		InvoiceID:    comment.InvoiceID,
		UserID:       comment.UserID,
		Comment:      comment.Comment,
		StatusBefore: string(comment.StatusBefore),
		StatusAfter:  string(comment.StatusAfter),
		CreatedAt:    comment.CreatedAt.Format(time.RFC3339),
	}
}
