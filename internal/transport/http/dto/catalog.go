package dto

import "store-service/internal/models"

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

type UpdateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

type CategoryResponse struct {
	models.Category
	ProductsCount int64 `json:"productsCount"`
}

type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
	Total      int64              `json:"total"`
}

type CreateProductRequest struct {
	Name        string   `json:"name" binding:"required,min=1,max=200"`
	Description string   `json:"description"`
	Price       int64    `json:"price" binding:"required,gt=0"`
	OldPrice    *int64   `json:"oldPrice"`
	Stock       int32    `json:"stock" binding:"gte=0"`
	CategoryID  string   `json:"categoryId" binding:"required,uuid"`
	Images      []string `json:"images"`
}

type UpdateProductRequest struct {
	Name        *string   `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string   `json:"description"`
	Price       *int64    `json:"price" binding:"omitempty,gt=0"`
	OldPrice    *int64    `json:"oldPrice"`
	Stock       *int32    `json:"stock" binding:"omitempty,gte=0"`
	CategoryID  *string   `json:"categoryId" binding:"omitempty,uuid"`
	Images      *[]string `json:"images"`
}

type ProductListResponse struct {
	Products   []models.Product `json:"products"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	TotalPages int64            `json:"totalPages"`
}
