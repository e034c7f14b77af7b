package service

import (
	"context"

	"store-service/internal/models"

	"github.com/google/uuid"
)

type ProductInput struct {
	Name          string
	Description   string
	PriceCents    int64
	OldPriceCents *int64
	Stock         int32
	CategoryID    uuid.UUID
	Images        []string // base64 data URI, первое — главное
}

type ProductPatch struct {
	Name          *string
	Description   *string
	PriceCents    *int64
	OldPriceCents *int64
	Stock         *int32
	CategoryID    *uuid.UUID
	Images        *[]string // nil — не трогать, пустой срез — удалить все
}

type CategoryPage struct {
	Categories []CategoryWithCount
	Total      int64
}

type CategoryWithCount struct {
	models.Category
	ProductsCount int64
}

type CatalogService interface {
	ListCategories(ctx context.Context, page, limit int) (*CategoryPage, error)
	CreateCategory(ctx context.Context, name string) (*models.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, name string) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	ListProducts(ctx context.Context, page, limit int, categoryID *uuid.UUID) ([]models.Product, int64, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, patch ProductPatch) (*models.Product, error)
	DeactivateProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
}
