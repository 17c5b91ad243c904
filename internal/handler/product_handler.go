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

type ProductHandler struct {
	productService service.ProductService
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

func (h *ProductHandler) RegisterRoutes(authed *gin.RouterGroup) {
	products := authed.Group("/api/products")
	{
		products.GET("", h.List)
		products.GET("/:id", h.Get)

		admin := middleware.RequireAuthority(model.AuthoritySuperAdmin)
		products.POST("", admin, h.Create)
		products.PUT("/:id", admin, h.Update)
		products.DELETE("/:id", admin, h.Delete)
	}
}

// List returns a paginated, filtered product catalog
// @Summary      List products
// @Tags         products
// @Security     BasicAuth
// @Produce      json
// @Param        displayName         query     string  false  "Substring match on display name"
// @Param        displayDescription  query     string  false  "Substring match on description"
// @Param        displayUnit         query     string  false  "Exact unit match"
// @Param        minimumPrice        query     int     false  "Inclusive lower price bound"
// @Param        maximumPrice        query     int     false  "Inclusive upper price bound"
// @Param        deleted             query     bool    false  "Soft-delete flag (default false)"
// @Param        createdBefore       query     string  false  "RFC3339 inclusive upper bound"
// @Param        createdAfter        query     string  false  "RFC3339 inclusive lower bound"
// @Param        updatedBefore       query     string  false  "RFC3339 inclusive upper bound"
// @Param        updatedAfter        query     string  false  "RFC3339 inclusive lower bound"
// @Param        pageNumber          query     int     false  "Page number (0-based, default 0)"
// @Param        pageSize            query     int     false  "Page size (1-100, default 20)"
// @Success      200                 {object}  response.Response
// @Router       /api/products [get]
func (h *ProductHandler) List(c *gin.Context) {
	filter, err := parseProductFilter(c)
	if err != nil {
		status := apperror.Status(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	page, err := h.productService.List(c.Request.Context(), filter, pagination.Parse(c))
	if err != nil {
		status := apperror.Status(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, page))
}

// Get returns a single product
// @Summary      Get product
// @Tags         products
// @Security     BasicAuth
// @Produce      json
// @Param        id   path      int  true  "Product ID"
// @Success      200  {object}  response.Response{data=service.ProductResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		status := apperror.Status(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		status := apperror.Status(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, product))
}

// Create registers a new product
// @Summary      Create product
// @Tags         products
// @Security     BasicAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateProductRequest  true  "Create Product Payload"
// @Success      201      {object}  response.Response{data=service.ProductResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req service.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	product, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		status := apperror.Status(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, product))
}

// Update patches a product. Price changes never touch existing invoice items.
// @Summary      Update product
// @Tags         products
// @Security     BasicAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                           true  "Product ID"
// @Param        payload  body      service.UpdateProductRequest  true  "Update Product Payload"
// @Success      200      {object}  response.Response{data=service.ProductResponse}
// @Failure      404      {object}  response.Response
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		status := apperror.Status(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	var req service.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	product, err := h.productService.Update(c.Request.Context(), id, req)
	if err != nil {
		status := apperror.Status(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, product))
}

// Delete soft-deletes a product, hiding it from new invoices
// @Summary      Delete product
// @Tags         products
// @Security     BasicAuth
// @Param        id   path  int  true  "Product ID"
// @Success      204  "product disabled"
// @Failure      404  {object}  response.Response
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		status := apperror.Status(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		status := apperror.Status(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.Status(http.StatusNoContent)
}

func parseProductFilter(c *gin.Context) (repository.ProductListFilter, error) {
	var filter repository.ProductListFilter
	var err error

	filter.DisplayName = queryString(c, "displayName")
	filter.DisplayDescription = queryString(c, "displayDescription")
	filter.DisplayUnit = queryString(c, "displayUnit")
	if filter.MinimumPrice, err = queryInt64(c, "minimumPrice"); err != nil {
		return filter, err
	}
	if filter.MaximumPrice, err = queryInt64(c, "maximumPrice"); err != nil {
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
