package service

import (
	"context"
	"fmt"
	"strings"

	"tobacco/internal/model"
	"tobacco/internal/repository"
	"tobacco/pkg/apperror"

	"golang.org/x/crypto/bcrypt"
)

// --- DTOs ---

type UpdateAccountRequest struct {
	DisplayName *string `json:"display_name"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

type ConfirmPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

// --- Interface ---

// AccountService operates on the caller identified by the authenticated
// principal, not on an arbitrary user id.
type AccountService interface {
	Get(actor *model.User) *UserResponse
	Update(ctx context.Context, actor *model.User, req UpdateAccountRequest) (*UserResponse, error)
	ChangePassword(ctx context.Context, actor *model.User, req ChangePasswordRequest) error
	Delete(ctx context.Context, actor *model.User, req ConfirmPasswordRequest) error
}

type accountService struct {
	repo repository.UserRepository
}

func NewAccountService(repo repository.UserRepository) AccountService {
	return &accountService{repo: repo}
}

// --- Implementation ---

func (s *accountService) Get(actor *model.User) *UserResponse {
	return toUserResponse(actor)
}

func (s *accountService) Update(ctx context.Context, actor *model.User, req UpdateAccountRequest) (*UserResponse, error) {
	if req.DisplayName != nil {
		if strings.TrimSpace(*req.DisplayName) == "" {
			return nil, apperror.Validation("display_name must not be blank")
		}
		actor.DisplayName = *req.DisplayName
	}
	if err := s.repo.Update(ctx, actor); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	return toUserResponse(actor), nil
}

func (s *accountService) ChangePassword(ctx context.Context, actor *model.User, req ChangePasswordRequest) error {
	if err := bcrypt.CompareHashAndPassword([]byte(actor.Password), []byte(req.CurrentPassword)); err != nil {
		return apperror.Unauthorized("invalid current password")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	actor.Password = string(hashed)
	if err := s.repo.Update(ctx, actor); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// Delete disables the caller's own account after confirming their password.
func (s *accountService) Delete(ctx context.Context, actor *model.User, req ConfirmPasswordRequest) error {
	if err := bcrypt.CompareHashAndPassword([]byte(actor.Password), []byte(req.Password)); err != nil {
		return apperror.Unauthorized("invalid current password")
	}
	actor.Deleted = true
	if err := s.repo.Update(ctx, actor); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return nil
}
