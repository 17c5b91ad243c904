package handler

import (
	"net/http"
	"time"

	"tobacco/internal/middleware"
	"tobacco/internal/model"
	"tobacco/internal/repository"
	"tobacco/internal/service"
	"tobacco/pkg/apperror"
	"tobacco/pkg/pagination"
	"tobacco/pkg/response"

	"github.com/gin-gonic/gin"
)

type InvoiceHandler struct {
	invoiceService    service.InvoiceService
	statisticsService service.StatisticsService
}

func NewInvoiceHandler(invoiceService service.InvoiceService, statisticsService service.StatisticsService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService:    invoiceService,
		statisticsService: statisticsService,
	}
}

func (h *InvoiceHandler) RegisterRoutes(authed *gin.RouterGroup) {
	invoices := authed.Group("/api/invoices")
	{
		invoices.GET("", h.List)
		invoices.POST("", h.Create)
		invoices.GET("/:id", h.Get)
		invoices.PUT("/:id", h.Update)
		invoices.DELETE("/:id", middleware.RequireAuthority(model.AuthoritySuperAdmin), h.Delete)

		invoices.GET("/:id/comments", h.ListComments)
		invoices.POST("/:id/comments", h.AddComment)
		invoices.GET("/:id/items", h.ListItems)
		invoices.POST("/:id/items", h.AddItem)
	}

	statistics := authed.Group("/api/statistics")
	statistics.Use(middleware.RequireAuthority(
		model.AuthorityAccountant,
		model.AuthorityMarketDirector,
		model.AuthoritySuperAdmin,
	))
	{
		statistics.GET("/revenue", h.Revenue)
	}
}

// List returns the invoices the caller is allowed to see
// @Summary      List invoices
// @Tags         invoices
// @Security     BasicAuth
// @Produce      json
// @Param        displayDescription  query     string  false  "Substring match on description"
// @Param        status              query     string  false  "Exact status match"
// @Param        deleted             query     bool    false  "Soft-delete flag (default false)"
// @Param        createdBefore       query     string  false  "RFC3339 inclusive upper bound"
// @Param        createdAfter        query     string  false  "RFC3339 inclusive lower bound"
// @Param        updatedBefore       query     string  false  "RFC3339 inclusive upper bound"
// @Param        updatedAfter        query     string  false  "RFC3339 inclusive lower bound"
// @Param        pageNumber          query     int     false  "Page number (0-based, default 0)"
// @Param        pageSize            query     int     false  "Page size (1-100, default 20)"
// @Success      200                 {object}  response.Response
// @Router       /api/invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	filter, err := parseInvoiceFilter(c)
	if err != nil {
		status := apperror.Status(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	page, err := h.invoiceService.List(c.Request.Context(), middleware.CurrentUser(c), filter, pagination.Parse(c))
	if err != nil {
		status := apperror.Status(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, page))
}

// Create opens a new invoice owned by the caller
// @Summary      Create invoice
// @Tags         invoices
// @Security     BasicAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateInvoiceRequest  true  "Create Invoice Payload"
// @Success      201      {object}  response.Response{data=service.InvoiceResponse}
// @Failure      403      {object}  response.Response
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req service.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	invoice, err := h.invoiceService.Create(c.Request.Context(), middleware.CurrentUser(c), req)
	if err != nil {
		status := apperror.Status(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, invoice))
}

// Get returns an invoice with its items and comment trail
// @Summary      Get invoice
// @Tags         invoices
// @Security     BasicAuth
// @Produce      json
// @Param        id   path      int  true  "Invoice ID"
// @Success      200  {object}  response.Response{data=service.InvoiceResponse}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		status := apperror.Status(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	invoice, err := h.invoiceService.Get(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		status := apperror.Status(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, invoice))
}

// Update changes the description of an invoice the caller authored
// @Summary      Update invoice
// @Tags         invoices
// @Security     BasicAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                           true  "Invoice ID"
// @Param        payload  body      service.UpdateInvoiceRequest  true  "Update Invoice Payload"
// @Success      200      {object}  response.Response{data=service.InvoiceResponse}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /api/invoices/{id} [put]
func (h *InvoiceHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		status := apperror.Status(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	var req service.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	invoice, err := h.invoiceService.UpdateDescription(c.Request.Context(), middleware.CurrentUser(c), id, req)
	if err != nil {
		status := apperror.Status(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, invoice))
}

// Delete soft-deletes an invoice
// @Summary      Delete invoice
// @Tags         invoices
// @Security     BasicAuth
// @Param        id   path  int  true  "Invoice ID"
// @Success      204  "invoice removed"
// @Failure      404  {object}  response.Response
// @Router       /api/invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		status := apperror.Status(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	if err := h.invoiceService.Delete(c.Request.Context(), id); err != nil {
		status := apperror.Status(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.Status(http.StatusNoContent)
}

// ListComments returns the comment trail of an invoice, oldest first
// @Summary      List invoice comments
// @Tags         invoices
// @Security     BasicAuth
// @Produce      json
// @Param        id          path      int  true   "Invoice ID"
// @Param        pageNumber  query     int  false  "Page number (0-based, default 0)"
// @Param        pageSize    query     int  false  "Page size (1-100, default 20)"
// @Success      200         {object}  response.Response
// @Failure      403         {object}  response.Response
// @Router       /api/invoices/{id}/comments [get]
func (h *InvoiceHandler) ListComments(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		status := apperror.Status(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	page, err := h.invoiceService.ListComments(c.Request.Context(), middleware.CurrentUser(c), id, pagination.Parse(c))
	if err != nil {
		status := apperror.Status(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, page))
}

// AddComment appends a comment and moves the invoice to the requested status
// @Summary      Comment on invoice
// @Tags         invoices
// @Security     BasicAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                        true  "Invoice ID"
// @Param        payload  body      service.AddCommentRequest  true  "Comment Payload"
// @Success      201      {object}  response.Response{data=service.InvoiceCommentResponse}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /api/invoices/{id}/comments [post]
func (h *InvoiceHandler) AddComment(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		status := apperror.Status(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	var req service.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	comment, err := h.invoiceService.AddComment(c.Request.Context(), middleware.CurrentUser(c), id, req)
	if err != nil {
		status := apperror.Status(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, comment))
}

// ListItems returns the line items of an invoice
// @Summary      List invoice items
// @Tags         invoices
// @Security     BasicAuth
// @Produce      json
// @Param        id          path      int  true   "Invoice ID"
// @Param        pageNumber  query     int  false  "Page number (0-based, default 0)"
// @Param        pageSize    query     int  false  "Page size (1-100, default 20)"
// @Success      200         {object}  response.Response
// @Failure      403         {object}  response.Response
// @Router       /api/invoices/{id}/items [get]
func (h *InvoiceHandler) ListItems(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		status := apperror.Status(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	page, err := h.invoiceService.ListItems(c.Request.Context(), middleware.CurrentUser(c), id, pagination.Parse(c))
	if err != nil {
		status := apperror.Status(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, page))
}

// AddItem adds a line item, snapshotting the product's current price
// @Summary      Add invoice item
// @Tags         invoices
// @Security     BasicAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                     true  "Invoice ID"
// @Param        payload  body      service.AddItemRequest  true  "Item Payload"
// @Success      201      {object}  response.Response{data=service.InvoiceItemResponse}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /api/invoices/{id}/items [post]
func (h *InvoiceHandler) AddItem(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		status := apperror.Status(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	var req service.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	item, err := h.invoiceService.AddItem(c.Request.Context(), middleware.CurrentUser(c), id, req)
	if err != nil {
		status := apperror.Status(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, item))
}

// Revenue sums the revenue of DONE invoices in a time window
// @Summary      Revenue statistics
// @Tags         statistics
// @Security     BasicAuth
// @Produce      json
// @Param        from  query     string  false  "RFC3339 window start (default 30 days ago)"
// @Param        to    query     string  false  "RFC3339 window end (default now)"
// @Success      200   {object}  response.Response{data=service.RevenueResponse}
// @Failure      400   {object}  response.Response
// @Router       /api/statistics/revenue [get]
func (h *InvoiceHandler) Revenue(c *gin.Context) {
	var filter service.RevenueFilter

	from, err := queryTime(c, "from")
	if err != nil {
		status := apperror.Status(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}
	to, err := queryTime(c, "to")
	if err != nil {
		status := apperror.Status(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	now := time.Now()
	filter.From = now.AddDate(0, 0, -30)
	filter.To = now
	if from != nil {
		filter.From = *from
	}
	if to != nil {
		filter.To = *to
	}

	revenue, err := h.statisticsService.Revenue(c.Request.Context(), filter)
	if err != nil {
		status := apperror.Status(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, revenue))
}

func parseInvoiceFilter(c *gin.Context) (repository.InvoiceListFilter, error) {
	var filter repository.InvoiceListFilter
	var err error

	filter.DisplayDescription = queryString(c, "displayDescription")
	filter.Status = queryString(c, "status")
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
