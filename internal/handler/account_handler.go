package handler

import (
	"net/http"

	"tobacco/internal/middleware"
	"tobacco/internal/service"
	"tobacco/pkg/apperror"
	"tobacco/pkg/response"

	"github.com/gin-gonic/gin"
)

type AccountHandler struct {
	accountService service.AccountService
}

func NewAccountHandler(accountService service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

func (h *AccountHandler) RegisterRoutes(router *gin.RouterGroup) {
	account := router.Group("/api/account")
	{
		account.GET("", h.Get)
		account.PUT("", h.Update)
		account.PUT("/password", h.ChangePassword)
		account.DELETE("", h.Delete)
	}
}

// Get returns the caller's account info
// @Summary      Get own account
// @Tags         account
// @Security     BasicAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=service.UserResponse}
// @Router       /api/account [get]
func (h *AccountHandler) Get(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, response.Success(http.StatusOK, h.accountService.Get(actor)))
}

// Update changes the caller's display name
// @Summary      Update own account
// @Tags         account
// @Security     BasicAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.UpdateAccountRequest  true  "Account Update Payload"
// @Success      200      {object}  response.Response{data=service.UserResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/account [put]
func (h *AccountHandler) Update(c *gin.Context) {
	var req service.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	actor := middleware.CurrentUser(c)
	account, err := h.accountService.Update(c.Request.Context(), actor, req)
	if err != nil {
		status := apperror.Status(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, account))
}

// ChangePassword replaces the caller's password after confirming the
// current one
// @Summary      Change own password
// @Tags         account
// @Security     BasicAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.ChangePasswordRequest  true  "Change Password Payload"
// @Success      204      "password changed"
// @Failure      401      {object}  response.Response
// @Router       /api/account/password [put]
func (h *AccountHandler) ChangePassword(c *gin.Context) {
	var req service.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	actor := middleware.CurrentUser(c)
	if err := h.accountService.ChangePassword(c.Request.Context(), actor, req); err != nil {
		status := apperror.Status(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.Status(http.StatusNoContent)
}

// Delete disables the caller's own account after confirming the password
// @Summary      Delete own account
// @Tags         account
// @Security     BasicAuth
// @Accept       json
// @Param        payload  body  service.ConfirmPasswordRequest  true  "Password Confirmation"
// @Success      204      "account disabled"
// @Failure      401      {object}  response.Response
// @Router       /api/account [delete]
func (h *AccountHandler) Delete(c *gin.Context) {
	var req service.ConfirmPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	actor := middleware.CurrentUser(c)
	if err := h.accountService.Delete(c.Request.Context(), actor, req); err != nil {
		status := apperror.Status(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.Status(http.StatusNoContent)
}
