package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"tobacco/internal/middleware"
	"tobacco/internal/model"
	"tobacco/internal/repository"
	"tobacco/pkg/apperror"
	"tobacco/pkg/pagination"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateUserRequest struct {
	Username    string   `json:"username" binding:"required"`
	DisplayName string   `json:"display_name" binding:"required"`
	Authorities []string `json:"authorities"`
}

type UpdateUserRequest struct {
	DisplayName *string   `json:"display_name"`
	Authorities *[]string `json:"authorities"`
	Deleted     *bool     `json:"deleted"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// UserResponse never carries the password or its hash.
type UserResponse struct {
	ID          int64    `json:"id"`
	Username    string   `json:"username"`
	DisplayName string   `json:"display_name"`
	Authorities []string `json:"authorities"`
	Deleted     bool     `json:"deleted"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

// --- Interface ---

type UserService interface {
	Create(ctx context.Context, req CreateUserRequest) (*UserResponse, error)
	Login(ctx context.Context, req LoginRequest) (*TokenResponse, error)
	GetByID(ctx context.Context, id int64) (*UserResponse, error)
	List(ctx context.Context, filter repository.UserListFilter, page pagination.Params) (pagination.Page[UserResponse], error)
	Update(ctx context.Context, id int64, req UpdateUserRequest) (*UserResponse, error)
	Delete(ctx context.Context, id int64) error
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService returns a new instance of UserService
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

// --- Implementation ---

func (s *userService) Create(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	if strings.TrimSpace(req.DisplayName) == "" {
		return nil, apperror.Validation("display_name must not be blank")
	}
	authorities, err := parseAuthorities(req.Authorities)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return nil, apperror.Conflict("username already exists")
	}

	// The initial password is machine-generated; the user is expected to
	// change it. It is never returned in any response.
	password, err := generateNumericPassword()
	if err != nil {
		return nil, fmt.Errorf("failed to generate password: %w", err)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:    req.Username,
		Password:    string(hashed),
		DisplayName: req.DisplayName,
	}
	for _, a := range authorities {
		user.Authorities = append(user.Authorities, model.UserAuthority{Authority: a})
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return toUserResponse(user), nil
}

func (s *userService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	user, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, apperror.Unauthorized("invalid username or password")
	}
	if user.Deleted {
		return nil, apperror.Unauthorized("invalid username or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperror.Unauthorized("invalid username or password")
	}

	token, err := middleware.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &TokenResponse{Token: token}, nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*UserResponse, error) {
	user, err := s.mustExist(ctx, id)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func (s *userService) List(ctx context.Context, filter repository.UserListFilter, page pagination.Params) (pagination.Page[UserResponse], error) {
	users, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return pagination.Page[UserResponse]{}, fmt.Errorf("failed to fetch users: %w", err)
	}

	result := make([]UserResponse, 0, len(users))
	for i := range users {
		result = append(result, *toUserResponse(&users[i]))
	}
	return pagination.NewPage(result, total, page), nil
}

func (s *userService) Update(ctx context.Context, id int64, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.mustExist(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		if strings.TrimSpace(*req.DisplayName) == "" {
			return nil, apperror.Validation("display_name must not be blank")
		}
		user.DisplayName = *req.DisplayName
	}
	if req.Deleted != nil {
		user.Deleted = *req.Deleted
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	if req.Authorities != nil {
		authorities, err := parseAuthorities(*req.Authorities)
		if err != nil {
			return nil, err
		}
		if err := s.repo.SetAuthorities(ctx, user.ID, authorities); err != nil {
			return nil, fmt.Errorf("failed to update authorities: %w", err)
		}
	}

	reloaded, err := s.repo.GetByID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload user: %w", err)
	}
	return toUserResponse(reloaded), nil
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	user, err := s.mustExist(ctx, id)
	if err != nil {
		return err
	}
	user.Deleted = true
	if err := s.repo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// --- Helpers ---

func (s *userService) mustExist(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user %d not found", id)
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

func parseAuthorities(raw []string) ([]model.Authority, error) {
	authorities := make([]model.Authority, 0, len(raw))
	for _, s := range raw {
		a, ok := model.ParseAuthority(s)
		if !ok {
			return nil, apperror.Validation("unknown authority %q", s)
		}
		authorities = append(authorities, a)
	}
	return authorities, nil
}

// generateNumericPassword produces a random 9-digit numeric password.
func generateNumericPassword() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%09d", n), nil
}

// --- Mapping ---

func toUserResponse(user *model.User) *UserResponse {
	return &UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Authorities: user.AuthorityList(),
		Deleted:     user.Deleted,
		CreatedAt:   user.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   user.UpdatedAt.Format(time.RFC3339),
	}
}
