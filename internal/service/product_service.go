package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tobacco/internal/model"
	"tobacco/internal/repository"
	"tobacco/pkg/apperror"
	"tobacco/pkg/pagination"

	"gorm.io/gorm"
)

// --- DTOs ---

type CreateProductRequest struct {
	DisplayName        string `json:"display_name" binding:"required"`
	DisplayDescription string `json:"display_description" binding:"required"`
	DisplayUnit        string `json:"display_unit" binding:"required"`
	CurrentPrice       int64  `json:"current_price" binding:"min=0"`
}

type UpdateProductRequest struct {
	DisplayName        *string `json:"display_name"`
	DisplayDescription *string `json:"display_description"`
	DisplayUnit        *string `json:"display_unit"`
	CurrentPrice       *int64  `json:"current_price"`
}

type ProductResponse struct {
	ID                 int64  `json:"id"`
	DisplayName        string `json:"display_name"`
	DisplayDescription string `json:"display_description"`
	DisplayUnit        string `json:"display_unit"`
	CurrentPrice       int64  `json:"current_price"`
	Deleted            bool   `json:"deleted"`
	CreatedAt          string `json:"created_at"`
	UpdatedAt          string `json:"updated_at"`
}

// --- Interface ---

type ProductService interface {
	Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error)
	GetByID(ctx context.Context, id int64) (*ProductResponse, error)
	List(ctx context.Context, filter repository.ProductListFilter, page pagination.Params) (pagination.Page[ProductResponse], error)
	Update(ctx context.Context, id int64, req UpdateProductRequest) (*ProductResponse, error)
	Delete(ctx context.Context, id int64) error
}

type productService struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) ProductService {
	return &productService{repo: repo}
}

// --- Implementation ---

func (s *productService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	for field, value := range map[string]string{
		"display_name":        req.DisplayName,
		"display_description": req.DisplayDescription,
		"display_unit":        req.DisplayUnit,
	} {
		if strings.TrimSpace(value) == "" {
			return nil, apperror.Validation("%s must not be blank", field)
		}
	}
	if req.CurrentPrice < 0 {
		return nil, apperror.Validation("current_price must not be negative")
	}

	product := &model.Product{
		DisplayName:        req.DisplayName,
		DisplayDescription: req.DisplayDescription,
		DisplayUnit:        req.DisplayUnit,
		CurrentPrice:       req.CurrentPrice,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return toProductResponse(product), nil
}

func (s *productService) GetByID(ctx context.Context, id int64) (*ProductResponse, error) {
	product, err := s.mustExist(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

func (s *productService) List(ctx context.Context, filter repository.ProductListFilter, page pagination.Params) (pagination.Page[ProductResponse], error) {
	products, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return pagination.Page[ProductResponse]{}, fmt.Errorf("failed to fetch products: %w", err)
	}

	result := make([]ProductResponse, 0, len(products))
	for i := range products {
		result = append(result, *toProductResponse(&products[i]))
	}
	return pagination.NewPage(result, total, page), nil
}

// Update changes the live product row only; unit prices already snapshotted
// onto invoice items are untouched.
func (s *productService) Update(ctx context.Context, id int64, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.mustExist(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		if strings.TrimSpace(*req.DisplayName) == "" {
			return nil, apperror.Validation("display_name must not be blank")
		}
		product.DisplayName = *req.DisplayName
	}
	if req.DisplayDescription != nil {
		product.DisplayDescription = *req.DisplayDescription
	}
	if req.DisplayUnit != nil {
		product.DisplayUnit = *req.DisplayUnit
	}
	if req.CurrentPrice != nil {
		if *req.CurrentPrice < 0 {
			return nil, apperror.Validation("current_price must not be negative")
		}
		product.CurrentPrice = *req.CurrentPrice
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return toProductResponse(product), nil
}

func (s *productService) Delete(ctx context.Context, id int64) error {
	product, err := s.mustExist(ctx, id)
	if err != nil {
		return err
	}
	product.Deleted = true
	if err := s.repo.Update(ctx, product); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

// --- Helpers ---

func (s *productService) mustExist(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("product %d not found", id)
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	return product, nil
}

// --- Mapping ---

func toProductResponse(product *model.Product) *ProductResponse {
	return &ProductResponse{
		ID:                 product.ID,
		DisplayName:        product.DisplayName,
		DisplayDescription: product.DisplayDescription,
		DisplayUnit:        product.DisplayUnit,
		CurrentPrice:       product.CurrentPrice,
		Deleted:            product.Deleted,
		CreatedAt:          product.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          product.UpdatedAt.Format(time.RFC3339),
	}
}
