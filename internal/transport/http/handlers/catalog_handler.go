package handlers

import (
	"net/http"
	"strconv"

	"store-service/internal/service"
	"store-service/internal/transport/http/dto"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	catalog service.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(catalog service.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, log: log}
}

func pageQuery(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return page, limit
}

func totalPages(total int64, limit int) int64 {
	return (total + int64(limit) - 1) / int64(limit)
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	page, limit := pageQuery(c)

	result, err := h.catalog.ListCategories(c.Request.Context(), page, limit)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	resp := dto.CategoryListResponse{
		Categories: make([]dto.CategoryResponse, 0, len(result.Categories)),
		Total:      result.Total,
	}
	for _, cat := range result.Categories {
		resp.Categories = append(resp.Categories, dto.CategoryResponse{
			Category:      cat.Category,
			ProductsCount: cat.ProductsCount,
		})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid create category request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body", nil))
		return
	}

	cat, err := h.catalog.CreateCategory(c.Request.Context(), req.Name)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid category id", nil))
		return
	}
	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body", nil))
		return
	}

	cat, err := h.catalog.UpdateCategory(c.Request.Context(), id, req.Name)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid category id", nil))
		return
	}

	if err := h.catalog.DeleteCategory(c.Request.Context(), id); err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (h *CatalogHandler) ListProducts(c *gin.Context) {
	page, limit := pageQuery(c)

	var categoryID *uuid.UUID
	if raw := c.Query("categoryId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid categoryId", nil))
			return
		}
		categoryID = &id
	}

	products, total, err := h.catalog.ListProducts(c.Request.Context(), page, limit, categoryID)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ProductListResponse{
		Products:   products,
		Total:      total,
		Page:       page,
		TotalPages: totalPages(total, limit),
	})
}

func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid product id", nil))
		return
	}

	product, err := h.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid create product request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body", nil))
		return
	}
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid categoryId", nil))
		return
	}

	product, err := h.catalog.CreateProduct(c.Request.Context(), service.ProductInput{
		Name:          req.Name,
		Description:   req.Description,
		PriceCents:    req.Price,
		OldPriceCents: req.OldPrice,
		Stock:         req.Stock,
		CategoryID:    categoryID,
		Images:        req.Images,
	})
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid product id", nil))
		return
	}
	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body", nil))
		return
	}

	patch := service.ProductPatch{
		Name:          req.Name,
		Description:   req.Description,
		PriceCents:    req.Price,
		OldPriceCents: req.OldPrice,
		Stock:         req.Stock,
		Images:        req.Images,
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid categoryId", nil))
			return
		}
		patch.CategoryID = &categoryID
	}

	product, err := h.catalog.UpdateProduct(c.Request.Context(), id, patch)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *CatalogHandler) DeactivateProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid product id", nil))
		return
	}

	product, err := h.catalog.DeactivateProduct(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, product)
}
