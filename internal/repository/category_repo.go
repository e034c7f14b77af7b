package repository

import (
	"context"
	"errors"

	"store-service/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryRepo interface {
	Create(ctx context.Context, c *models.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	GetByName(ctx context.Context, name string) (*models.Category, error)
	UpdateName(ctx context.Context, id uuid.UUID, name string) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, limit, offset int) ([]models.Category, int64, error)
	CountProducts(ctx context.Context, id uuid.UUID) (int64, error)
}

type categoryRepo struct{ db *gorm.DB }

func NewCategoryRepo(db *gorm.DB) CategoryRepo { return &categoryRepo{db: db} }

func (r *categoryRepo) Create(ctx context.Context, c *models.Category) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *categoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var c models.Category
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &c, err
}

func (r *categoryRepo) GetByName(ctx context.Context, name string) (*models.Category, error) {
	var c models.Category
	err := r.db.WithContext(ctx).Where("lower(name) = lower(?)", name).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &c, err
}

func (r *categoryRepo) UpdateName(ctx context.Context, id uuid.UUID, name string) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&models.Category{}).Where("id = ?", id).Update("name", name)
	return tx.RowsAffected > 0, tx.Error
}

func (r *categoryRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", id)
	return tx.RowsAffected > 0, tx.Error
}

func (r *categoryRepo) List(ctx context.Context, limit, offset int) ([]models.Category, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Category{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var list []models.Category
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, total, err
}

func (r *categoryRepo) CountProducts(ctx context.Context, id uuid.UUID) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).Where("category_id = ?", id).Count(&cnt).Error
	return cnt, err
}
