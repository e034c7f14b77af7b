package repository

import (
	"context"
	"errors"

	"store-service/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderListFilter struct {
	Status *models.OrderStatus
	Limit  int
	Offset int
}

type OrderRepo interface {
	Create(ctx context.Context, o *models.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	// UpdateStatusIfCurrent: статус меняется только из ожидаемого текущего
	// (атомарно, параллельные захваты сериализуются на строке заказа)
	UpdateStatusIfCurrent(ctx context.Context, id uuid.UUID, from, to models.OrderStatus) (bool, error)
	List(ctx context.Context, f OrderListFilter) ([]models.Order, int64, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	CountByStatus(ctx context.Context, status *models.OrderStatus) (int64, error)
	SumTotalByStatus(ctx context.Context, status models.OrderStatus) (int64, error)
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepo(db *gorm.DB) OrderRepo { return &orderRepo{db: db} }

func (r *orderRepo) Create(ctx context.Context, o *models.Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *orderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var ord models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Preload("Payments").
		First(&ord, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ord, err
}

func (r *orderRepo) UpdateStatusIfCurrent(ctx context.Context, id uuid.UUID, from, to models.OrderStatus) (bool, error) {
	tx := r.db.WithContext(ctx).Exec(`
UPDATE orders
SET status = @to,
    updated_at = now()
WHERE id = @id
  AND status = @from
`, map[string]any{
		"id":   id,
		"from": from,
		"to":   to,
	})
	return tx.RowsAffected > 0, tx.Error
}

func (r *orderRepo) List(ctx context.Context, f OrderListFilter) ([]models.Order, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Order{})

	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
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

	var list []models.Order
	err := q.Order("created_at DESC").
		Limit(f.Limit).Offset(f.Offset).
		Preload("Items").
		Preload("Items.Product").
		Preload("Payments").
		Find(&list).Error
	return list, total, err
}

func (r *orderRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Count(&cnt).Error
	return cnt > 0, err
}

func (r *orderRepo) CountByStatus(ctx context.Context, status *models.OrderStatus) (int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Order{})
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	var cnt int64
	err := q.Count(&cnt).Error
	return cnt, err
}

func (r *orderRepo) SumTotalByStatus(ctx context.Context, status models.OrderStatus) (int64, error) {
	var sum *int64
	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("status = ?", status).
		Select("SUM(total_price_cents)").
		Scan(&sum).Error
	if err != nil || sum == nil {
		return 0, err
	}
	return *sum, nil
}
