package repository

import (
	"context"
	"errors"

	"store-service/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductListFilter struct {
	CategoryID *uuid.UUID
	OnlyActive bool
	Limit      int
	Offset     int
}

type ProductRepo interface {
	Create(ctx context.Context, p *models.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetActiveByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error
	List(ctx context.Context, f ProductListFilter) ([]models.Product, int64, error)
	BatchGetActiveByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
	Deactivate(ctx context.Context, id uuid.UUID) (bool, error)
	ReplaceImages(ctx context.Context, productID uuid.UUID, images []models.ProductImage) error

	// DecrementStock: if stock >= qty then stock -= qty (атомарно, без lost update)
	DecrementStock(ctx context.Context, id uuid.UUID, qty int32) (bool, error)

	ListLowStock(ctx context.Context, threshold int32) ([]models.Product, error)
}

type productRepo struct{ db *gorm.DB }

func NewProductRepo(db *gorm.DB) ProductRepo { return &productRepo{db: db} }

func imagesMainFirst(db *gorm.DB) *gorm.DB {
	return db.Order("is_main DESC, position ASC")
}

func (r *productRepo) Create(ctx context.Context, p *models.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var p models.Product
	err := r.db.WithContext(ctx).
		Preload("Images", imagesMainFirst).
		Preload("Category").
		First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

func (r *productRepo) GetActiveByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var p models.Product
	err := r.db.WithContext(ctx).
		Preload("Images", imagesMainFirst).
		Preload("Category").
		First(&p, "id = ? AND is_active = true", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

func (r *productRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Updates(fields).Error
}

func (r *productRepo) List(ctx context.Context, f ProductListFilter) ([]models.Product, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Product{})

	if f.OnlyActive {
		q = q.Where("is_active = true")
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	var list []models.Product
	err := q.Order("created_at DESC").
		Limit(f.Limit).Offset(f.Offset).
		Preload("Images", imagesMainFirst).
		Preload("Category").
		Find(&list).Error
	return list, total, err
}

func (r *productRepo) BatchGetActiveByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}
	var list []models.Product
	err := r.db.WithContext(ctx).Where("id IN ? AND is_active = true", ids).Find(&list).Error
	return list, err
}

func (r *productRepo) Deactivate(ctx context.Context, id uuid.UUID) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Update("is_active", false)
	return tx.RowsAffected > 0, tx.Error
}

// ReplaceImages удаляет все изображения товара и вставляет новый набор; вызывать внутри WithTx
func (r *productRepo) ReplaceImages(ctx context.Context, productID uuid.UUID, images []models.ProductImage) error {
	if err := r.db.WithContext(ctx).Where("product_id = ?", productID).Delete(&models.ProductImage{}).Error; err != nil {
		return err
	}
	if len(images) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&images).Error
}

func (r *productRepo) DecrementStock(ctx context.Context, id uuid.UUID, qty int32) (bool, error) {
	// атомарно: stock -= qty, если хватает
	tx := r.db.WithContext(ctx).Exec(`
UPDATE products
SET stock = stock - @q,
    updated_at = now()
WHERE id = @pid
  AND stock >= @q
`, map[string]any{
		"pid": id,
		"q":   qty,
	})
	return tx.RowsAffected > 0, tx.Error
}

func (r *productRepo) ListLowStock(ctx context.Context, threshold int32) ([]models.Product, error) {
	var list []models.Product
	err := r.db.WithContext(ctx).
		Where("is_active = true AND stock < ?", threshold).
		Order("stock ASC").
		Find(&list).Error
	return list, err
}
