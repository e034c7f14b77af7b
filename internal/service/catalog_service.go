package service

import (
	"context"
	"strings"
	"time"

	"store-service/internal/models"
	"store-service/internal/repository"

	"github.com/google/uuid"
)

type catalogService struct {
	repo *repository.Repository
	now  func() time.Time
}

func NewCatalogService(repo *repository.Repository) CatalogService {
	return &catalogService{
		repo: repo,
		now:  time.Now,
	}
}

func pageToOffset(page, limit int) (int, int) {
	if limit <= 0 {
		limit = 10
	}
	if page <= 0 {
		page = 1
	}
	return limit, (page - 1) * limit
}

func (s *catalogService) ListCategories(ctx context.Context, page, limit int) (*CategoryPage, error) {
	limit, offset := pageToOffset(page, limit)

	list, total, err := s.repo.Categories.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	out := &CategoryPage{
		Categories: make([]CategoryWithCount, 0, len(list)),
		Total:      total,
	}
	for i := range list {
		cnt, err := s.repo.Categories.CountProducts(ctx, list[i].ID)
		if err != nil {
			return nil, err
		}
		out.Categories = append(out.Categories, CategoryWithCount{Category: list[i], ProductsCount: cnt})
	}
	return out, nil
}

func (s *catalogService) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)

	if existing, err := s.repo.Categories.GetByName(ctx, name); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrCategoryExists
	}

	c := &models.Category{Name: name, CreatedAt: s.now()}
	if err := s.repo.Categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *catalogService) UpdateCategory(ctx context.Context, id uuid.UUID, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)

	if existing, err := s.repo.Categories.GetByName(ctx, name); err != nil {
		return nil, err
	} else if existing != nil && existing.ID != id {
		return nil, ErrCategoryExists
	}

	ok, err := s.repo.Categories.UpdateName(ctx, id, name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCategoryNotFound
	}
	return s.repo.Categories.GetByID(ctx, id)
}

func (s *catalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	c, err := s.repo.Categories.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return ErrCategoryNotFound
	}

	// Удаление допустимо только без ссылающихся товаров
	cnt, err := s.repo.Categories.CountProducts(ctx, id)
	if err != nil {
		return err
	}
	if cnt > 0 {
		return ErrCategoryInUse
	}

	_, err = s.repo.Categories.Delete(ctx, id)
	return err
}

func (s *catalogService) ListProducts(ctx context.Context, page, limit int, categoryID *uuid.UUID) ([]models.Product, int64, error) {
	lim, offset := pageToOffset(page, limit)
	return s.repo.Products.List(ctx, repository.ProductListFilter{
		CategoryID: categoryID,
		OnlyActive: true,
		Limit:      lim,
		Offset:     offset,
	})
}

func (s *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	p, err := s.repo.Products.GetActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func buildImages(productID uuid.UUID, images []string, now time.Time) []models.ProductImage {
	out := make([]models.ProductImage, 0, len(images))
	for i, data := range images {
		out = append(out, models.ProductImage{
			ProductID: productID,
			ImageData: data,
			IsMain:    i == 0, // первое загруженное — главное
			Position:  i,
			CreatedAt: now,
		})
	}
	return out
}

func (s *catalogService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	if in.PriceCents <= 0 {
		return nil, ErrPriceInvalid
	}
	if in.Stock < 0 {
		return nil, ErrStockInvalid
	}

	cat, err := s.repo.Categories.GetByID(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, ErrCategoryNotFound
	}

	now := s.now()
	p := &models.Product{
		Name:          strings.TrimSpace(in.Name),
		Description:   strings.TrimSpace(in.Description),
		PriceCents:    in.PriceCents,
		OldPriceCents: in.OldPriceCents,
		Stock:         in.Stock,
		IsActive:      true,
		CategoryID:    in.CategoryID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		if err := tx.Products.Create(ctx, p); err != nil {
			return err
		}
		if len(in.Images) > 0 {
			return tx.Products.ReplaceImages(ctx, p.ID, buildImages(p.ID, in.Images, now))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.repo.Products.GetByID(ctx, p.ID)
}

func (s *catalogService) UpdateProduct(ctx context.Context, id uuid.UUID, patch ProductPatch) (*models.Product, error) {
	p, err := s.repo.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}

	fields := map[string]any{}

	if patch.Name != nil {
		fields["name"] = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		fields["description"] = strings.TrimSpace(*patch.Description)
	}
	if patch.PriceCents != nil {
		if *patch.PriceCents <= 0 {
			return nil, ErrPriceInvalid
		}
		fields["price_cents"] = *patch.PriceCents
	}
	if patch.OldPriceCents != nil {
		fields["old_price_cents"] = *patch.OldPriceCents
	}
	if patch.Stock != nil {
		if *patch.Stock < 0 {
			return nil, ErrStockInvalid
		}
		fields["stock"] = *patch.Stock
	}
	if patch.CategoryID != nil {
		cat, err := s.repo.Categories.GetByID(ctx, *patch.CategoryID)
		if err != nil {
			return nil, err
		}
		if cat == nil {
			return nil, ErrCategoryNotFound
		}
		fields["category_id"] = *patch.CategoryID
	}

	now := s.now()
	if len(fields) > 0 {
		fields["updated_at"] = now
	}

	err = s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		if err := tx.Products.UpdateFields(ctx, id, fields); err != nil {
			return err
		}
		// Замена изображений — всё или ничего: удалить все строки, вставить новый набор
		if patch.Images != nil {
			return tx.Products.ReplaceImages(ctx, id, buildImages(id, *patch.Images, now))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.repo.Products.GetByID(ctx, id)
}

func (s *catalogService) DeactivateProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	// мягкое удаление: строка остаётся, исторические заказы продолжают ссылаться
	ok, err := s.repo.Products.Deactivate(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrProductNotFound
	}
	return s.repo.Products.GetByID(ctx, id)
}
