package handler

import (
	"net/http"

	"tobacco/internal/middleware"
	"tobacco/internal/model"
	"tobacco/internal/repository"
	"tobacco/internal/service"
	"tobacco/pkg/apperror"
	"tobacco/pkg/pagination"
	"tobacco/pkg/response"

	"github.com/gin-gonic/gin"
)

type GroupHandler struct {
	groupService service.GroupService
}

func NewGroupHandler(groupService service.GroupService) *GroupHandler {
	return &GroupHandler{groupService: groupService}
}

func (h *GroupHandler) RegisterRoutes(authed *gin.RouterGroup) {
	groups := authed.Group("/api/groups")
	{
		groups.GET("", h.List)
		groups.GET("/:id", h.Get)

		admin := middleware.RequireAuthority(model.AuthoritySuperAdmin)
		groups.POST("", admin, h.Create)
		groups.PUT("/:id", admin, h.Update)
		groups.DELETE("/:id", admin, h.Delete)
	}
}

// List returns a paginated, filtered list of groups
// @Summary      List groups
// @Tags         groups
// @Security     BasicAuth
// @Produce      json
// @Param        displayName    query     string  false  "Substring match on display name"
// @Param        userId         query     int     false  "Groups containing this user"
// @Param        deleted        query     bool    false  "Soft-delete flag (default false)"
// @Param        createdBefore  query     string  false  "RFC3339 inclusive upper bound"
// @Param        createdAfter   query     string  false  "RFC3339 inclusive lower bound"
// @Param        updatedBefore  query     string  false  "RFC3339 inclusive upper bound"
// @Param        updatedAfter   query     string  false  "RFC3339 inclusive lower bound"
// @Param        pageNumber     query     int     false  "Page number (0-based, default 0)"
// @Param        pageSize       query     int     false  "Page size (1-100, default 20)"
// @Success      200            {object}  response.Response
// @Router       /api/groups [get]
func (h *GroupHandler) List(c *gin.Context) {
	filter, err := parseGroupFilter(c)
	if err != nil {
		status := apperror.Status(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	page, err := h.groupService.List(c.Request.Context(), filter, pagination.Parse(c))
	if err != nil {
		status := apperror.Status(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, page))
}

// Get returns a group with its member list
// @Summary      Get group
// @Tags         groups
// @Security     BasicAuth
// @Produce      json
// @Param        id   path      int  true  "Group ID"
// @Success      200  {object}  response.Response{data=service.GroupResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/groups/{id} [get]
func (h *GroupHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		status := apperror.Status(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	group, err := h.groupService.Get(c.Request.Context(), id)
	if err != nil {
		status := apperror.Status(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, group))
}

// Create registers a new group
// @Summary      Create group
// @Tags         groups
// @Security     BasicAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateGroupRequest  true  "Create Group Payload"
// @Success      201      {object}  response.Response{data=service.GroupResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/groups [post]
func (h *GroupHandler) Create(c *gin.Context) {
	var req service.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	group, err := h.groupService.Create(c.Request.Context(), req)
	if err != nil {
		status := apperror.Status(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, group))
}

// Update patches a group's display name, deleted flag or membership
// @Summary      Update group
// @Tags         groups
// @Security     BasicAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                         true  "Group ID"
// @Param        payload  body      service.UpdateGroupRequest  true  "Update Group Payload"
// @Success      200      {object}  response.Response{data=service.GroupResponse}
// @Failure      404      {object}  response.Response
// @Router       /api/groups/{id} [put]
func (h *GroupHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		status := apperror.Status(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	var req service.UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	group, err := h.groupService.Update(c.Request.Context(), id, req)
	if err != nil {
		status := apperror.Status(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, group))
}

// Delete soft-deletes a group
// @Summary      Delete group
// @Tags         groups
// @Security     BasicAuth
// @Param        id   path  int  true  "Group ID"
// @Success      204  "group disabled"
// @Failure      404  {object}  response.Response
// @Router       /api/groups/{id} [delete]
func (h *GroupHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		status := apperror.Status(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	if err := h.groupService.Delete(c.Request.Context(), id); err != nil {
		status := apperror.Status(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.Status(http.StatusNoContent)
}

func parseGroupFilter(c *gin.Context) (repository.GroupListFilter, error) {
	var filter repository.GroupListFilter
	var err error

	filter.DisplayName = queryString(c, "displayName")
	if filter.UserID, err = queryInt64(c, "userId"); err != nil {
		return filter, err
	}
	if filter.Deleted, err = queryBool(c, "deleted"); err != nil {
		return filter, err
	}
	if filter.CreatedBefore, err = queryTime(c, "createdBefore"); err != nil {
		return filter, err
	}
	if filter.CreatedAfter, err = queryTime(c, "createdAfter"); err != nil {
		return filter, err
	}
	if filter.UpdatedBefore, err = queryTime(c, "updatedBefore"); err != nil {
		return filter, err
	}
	if filter.UpdatedAfter, err = queryTime(c, "updatedAfter"); err != nil {
		return filter, err
	}
	return filter, nil
}
