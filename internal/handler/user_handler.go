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

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRoutes mounts login on the public group and the admin-only user
// CRUD on the authenticated group.
func (h *UserHandler) RegisterRoutes(public, authed *gin.RouterGroup) {
	public.POST("/api/auth/login", h.Login)

	users := authed.Group("/api/users")
	users.Use(middleware.RequireAuthority(model.AuthoritySuperAdmin))
	{
		users.GET("", h.List)
		users.POST("", h.Create)
		users.GET("/:id", h.Get)
		users.PUT("/:id", h.Update)
		users.DELETE("/:id", h.Delete)
	}
}

// Login exchanges username+password for a bearer token
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.LoginRequest  true  "Credentials"
// @Success      200      {object}  response.Response{data=service.TokenResponse}
// @Failure      401      {object}  response.Response
// @Router       /api/auth/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	token, err := h.userService.Login(c.Request.Context(), req)
	if err != nil {
		status := apperror.Status(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, token))
}

// List returns a paginated, filtered list of users
// @Summary      List users
// @Tags         users
// @Security     BasicAuth
// @Produce      json
// @Param        displayName    query     string  false  "Substring match on display name"
// @Param        authority      query     string  false  "Authority tag equality"
// @Param        groupId        query     int     false  "Membership in group"
// @Param        deleted        query     bool    false  "Soft-delete flag (default false)"
// @Param        createdBefore  query     string  false  "RFC3339 inclusive upper bound"
// @Param        createdAfter   query     string  false  "RFC3339 inclusive lower bound"
// @Param        updatedBefore  query     string  false  "RFC3339 inclusive upper bound"
// @Param        updatedAfter   query     string  false  "RFC3339 inclusive lower bound"
// @Param        pageNumber     query     int     false  "Page number (0-based, default 0)"
// @Param        pageSize       query     int     false  "Page size (1-100, default 20)"
// @Success      200            {object}  response.Response
// @Router       /api/users [get]
func (h *UserHandler) List(c *gin.Context) {
	filter, err := parseUserFilter(c)
	if err != nil {
		status := apperror.Status(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	page, err := h.userService.List(c.Request.Context(), filter, pagination.Parse(c))
	if err != nil {
		status := apperror.Status(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, page))
}

// Create registers a new user with a generated password
// @Summary      Create user
// @Description  The server generates a random numeric password and stores only its hash; the response never includes it.
// @Tags         users
// @Security     BasicAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateUserRequest  true  "Create User Payload"
// @Success      201      {object}  response.Response{data=service.UserResponse}
// @Failure      409      {object}  response.Response
// @Router       /api/users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req service.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	user, err := h.userService.Create(c.Request.Context(), req)
	if err != nil {
		status := apperror.Status(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, user))
}

// Get returns one user by id
// @Summary      Get user
// @Tags         users
// @Security     BasicAuth
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  response.Response{data=service.UserResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		status := apperror.Status(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		status := apperror.Status(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, user))
}

// Update patches a user's display name, authorities or deleted flag
// @Summary      Update user
// @Tags         users
// @Security     BasicAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                        true  "User ID"
// @Param        payload  body      service.UpdateUserRequest  true  "Update User Payload"
// @Success      200      {object}  response.Response{data=service.UserResponse}
// @Failure      404      {object}  response.Response
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		status := apperror.Status(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	var req service.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	user, err := h.userService.Update(c.Request.Context(), id, req)
	if err != nil {
		status := apperror.Status(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, user))
}

// Delete soft-deletes a user
// @Summary      Delete user
// @Tags         users
// @Security     BasicAuth
// @Param        id   path  int  true  "User ID"
// @Success      204  "user disabled"
// @Failure      404  {object}  response.Response
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		status := apperror.Status(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	if err := h.userService.Delete(c.Request.Context(), id); err != nil {
		status := apperror.Status(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.Status(http.StatusNoContent)
}

func parseUserFilter(c *gin.Context) (repository.UserListFilter, error) {
	var filter repository.UserListFilter
	var err error

	filter.DisplayName = queryString(c, "displayName")
	if filter.Authority, err = queryAuthority(c, "authority"); err != nil {
		return filter, err
	}
	if filter.GroupID, err = queryInt64(c, "groupId"); err != nil {
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
