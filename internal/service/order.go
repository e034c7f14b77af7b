package service

import (
	"context"

	"store-service/internal/models"

	"github.com/google/uuid"
)

type CreateOrderItem struct {
	ProductID      uuid.UUID
	Quantity       uint32
	UnitPriceCents int64
	Size           *string
	Color          *string
}

type CreateOrderInput struct {
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	Address         string
	TotalPriceCents int64
	Items           []CreateOrderItem
}

type CapturePaymentInput struct {
	OrderID         uuid.UUID
	ProviderOrderID string
	ProviderPayerID *string
	Status          models.PaymentStatus
	AmountCents     int64
	CurrencyCode    string
}

type OrderListFilter struct {
	Status *models.OrderStatus
	Page   int
	Limit  int
}

type DashboardStats struct {
	TotalOrders  int64            `json:"totalOrders"`
	RevenueCents int64            `json:"totalRevenue"`
	UnpaidOrders int64            `json:"unpaidOrders"`
	LowStock     []models.Product `json:"lowStock"`
}

type OrderService interface {
	CreateOrder(ctx context.Context, in CreateOrderInput) (*models.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, f OrderListFilter) ([]models.Order, int64, error)
	CapturePayment(ctx context.Context, in CapturePaymentInput) (*models.Payment, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error)
	DashboardStats(ctx context.Context) (*DashboardStats, error)
}
