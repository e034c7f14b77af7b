package repository

import (
	"context"
	"errors"

	"store-service/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentRepo interface {
	Create(ctx context.Context, p *models.Payment) error
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]models.Payment, error)
	GetCompletedByOrderID(ctx context.Context, orderID uuid.UUID) (*models.Payment, error)
}

type paymentRepo struct{ db *gorm.DB }

func NewPaymentRepo(db *gorm.DB) PaymentRepo { return &paymentRepo{db: db} }

func (r *paymentRepo) Create(ctx context.Context, p *models.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *paymentRepo) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]models.Payment, error) {
	var list []models.Payment
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Order("created_at ASC").Find(&list).Error
	return list, err
}

func (r *paymentRepo) GetCompletedByOrderID(ctx context.Context, orderID uuid.UUID) (*models.Payment, error) {
	var p models.Payment
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND status = ?", orderID, models.PaymentStatusCompleted).
		Order("created_at ASC").
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}
