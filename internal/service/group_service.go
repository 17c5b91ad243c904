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

type CreateGroupRequest struct {
	DisplayName string `json:"display_name" binding:"required"`
}

type UpdateGroupRequest struct {
	DisplayName *string  `json:"display_name"`
	Deleted     *bool    `json:"deleted"`
	UserIDs     *[]int64 `json:"user_ids"`
}

type GroupResponse struct {
	ID          int64          `json:"id"`
	DisplayName string         `json:"display_name"`
	Deleted     bool           `json:"deleted"`
	Users       []UserResponse `json:"users,omitempty"`
	CreatedAt   string         `json:"created_at"`
	UpdatedAt   string         `json:"updated_at"`
}

// --- Interface ---

type GroupService interface {
	Create(ctx context.Context, req CreateGroupRequest) (*GroupResponse, error)
	// Get hydrates the member list; List does not.
	Get(ctx context.Context, id int64) (*GroupResponse, error)
	List(ctx context.Context, filter repository.GroupListFilter, page pagination.Params) (pagination.Page[GroupResponse], error)
	Update(ctx context.Context, id int64, req UpdateGroupRequest) (*GroupResponse, error)
	Delete(ctx context.Context, id int64) error
}

type groupService struct {
	groupRepo repository.GroupRepository
	userRepo  repository.UserRepository
}

func NewGroupService(groupRepo repository.GroupRepository, userRepo repository.UserRepository) GroupService {
	return &groupService{groupRepo: groupRepo, userRepo: userRepo}
}

// --- Implementation ---

func (s *groupService) Create(ctx context.Context, req CreateGroupRequest) (*GroupResponse, error) {
	if strings.TrimSpace(req.DisplayName) == "" {
		return nil, apperror.Validation("display_name must not be blank")
	}
	group := &model.Group{DisplayName: req.DisplayName}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}
	return toGroupResponse(group, false), nil
}

func (s *groupService) Get(ctx context.Context, id int64) (*GroupResponse, error) {
	group, err := s.groupRepo.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("group %d not found", id)
		}
		return nil, fmt.Errorf("failed to load group: %w", err)
	}
	return toGroupResponse(group, true), nil
}

func (s *groupService) List(ctx context.Context, filter repository.GroupListFilter, page pagination.Params) (pagination.Page[GroupResponse], error) {
	groups, total, err := s.groupRepo.List(ctx, filter, page)
	if err != nil {
		return pagination.Page[GroupResponse]{}, fmt.Errorf("failed to fetch groups: %w", err)
	}

	result := make([]GroupResponse, 0, len(groups))
	for i := range groups {
		result = append(result, *toGroupResponse(&groups[i], false))
	}
	return pagination.NewPage(result, total, page), nil
}

func (s *groupService) Update(ctx context.Context, id int64, req UpdateGroupRequest) (*GroupResponse, error) {
	group, err := s.mustExist(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		if strings.TrimSpace(*req.DisplayName) == "" {
			return nil, apperror.Validation("display_name must not be blank")
		}
		group.DisplayName = *req.DisplayName
	}
	if req.Deleted != nil {
		group.Deleted = *req.Deleted
	}
	if err := s.groupRepo.Update(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to update group: %w", err)
	}

	if req.UserIDs != nil {
		users := make([]*model.User, 0, len(*req.UserIDs))
		for _, userID := range *req.UserIDs {
			user, err := s.userRepo.GetByID(ctx, userID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, apperror.NotFound("user %d not found", userID)
				}
				return nil, fmt.Errorf("failed to load user: %w", err)
			}
			users = append(users, user)
		}
		if err := s.groupRepo.SetMembers(ctx, group, users); err != nil {
			return nil, fmt.Errorf("failed to update group members: %w", err)
		}
	}

	reloaded, err := s.groupRepo.GetDetail(ctx, group.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload group: %w", err)
	}
	return toGroupResponse(reloaded, true), nil
}

func (s *groupService) Delete(ctx context.Context, id int64) error {
	group, err := s.mustExist(ctx, id)
	if err != nil {
		return err
	}
	group.Deleted = true
	if err := s.groupRepo.Update(ctx, group); err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	return nil
}

// --- Helpers ---

func (s *groupService) mustExist(ctx context.Context, id int64) (*model.Group, error) {
	group, err := s.groupRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("group %d not found", id)
		}
		return nil, fmt.Errorf("failed to load group: %w", err)
	}
	return group, nil
}

// --- Mapping ---

func toGroupResponse(group *model.Group, withUsers bool) *GroupResponse {
	resp := &GroupResponse{
		ID:          group.ID,
		DisplayName: group.DisplayName,
		Deleted:     group.Deleted,
		CreatedAt:   group.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   group.UpdatedAt.Format(time.RFC3339),
	}
	if withUsers {
		resp.Users = make([]UserResponse, 0, len(group.Users))
		for _, user := range group.Users {
			resp.Users = append(resp.Users, *toUserResponse(user))
		}
	}
	return resp
}
