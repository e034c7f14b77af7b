package repository

import (
	"context"
	"errors"

	"store-service/internal/models"

	"gorm.io/gorm"
)

type ShippingCostRepo interface {
	Create(ctx context.Context, c *models.ShippingCost) error
	// GetLatest: история append-only, действует последняя строка
	GetLatest(ctx context.Context) (*models.ShippingCost, error)
}

type shippingCostRepo struct{ db *gorm.DB }

func NewShippingCostRepo(db *gorm.DB) ShippingCostRepo { return &shippingCostRepo{db: db} }

func (r *shippingCostRepo) Create(ctx context.Context, c *models.ShippingCost) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *shippingCostRepo) GetLatest(ctx context.Context) (*models.ShippingCost, error) {
	var c models.ShippingCost
	err := r.db.WithContext(ctx).Order("created_at DESC").First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &c, err
}
