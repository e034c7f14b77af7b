package repository

import (
	"context"

	"gorm.io/gorm"
)

type Repository struct {
	DB         *gorm.DB
	Categories CategoryRepo
	Products   ProductRepo
	Orders     OrderRepo
	OrderItems OrderItemRepo
	Payments   PaymentRepo
	Shipping   ShippingCostRepo
	Admins     AdminRepo
}

func buildRepository(db *gorm.DB) *Repository {
	return &Repository{
		DB:         db,
		Categories: NewCategoryRepo(db),
		Products:   NewProductRepo(db),
		Orders:     NewOrderRepo(db),
		OrderItems: NewOrderItemRepo(db),
		Payments:   NewPaymentRepo(db),
		Shipping:   NewShippingCostRepo(db),
		Admins:     NewAdminRepo(db),
	}
}

func New(db *gorm.DB) *Repository { return buildRepository(db) }

// Глобальная транзакция на весь набор репо
func (r *Repository) WithTx(ctx context.Context, fn func(tx *Repository) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(buildRepository(tx))
	})
}
