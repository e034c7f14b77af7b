package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type OrderItemEvent struct {
	ProductID  uuid.UUID `json:"product_id"`
	Quantity   uint32    `json:"quantity"`
	PriceCents int64     `json:"price_cents"`
}

type OrderCreatedEvent struct {
	OrderID    uuid.UUID        `json:"order_id"`
	Email      string           `json:"email"`
	Items      []OrderItemEvent `json:"items"`
	TotalCents int64            `json:"total_cents"`
	CreatedAt  time.Time        `json:"created_at"`
}

type OrderPaidEvent struct {
	OrderID    uuid.UUID `json:"order_id"`
	PaymentID  uuid.UUID `json:"payment_id"`
	TotalCents int64     `json:"total_cents"`
	PaidAt     time.Time `json:"paid_at"`
}

type OrderStatusChangedEvent struct {
	OrderID   uuid.UUID `json:"order_id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	ChangedAt time.Time `json:"changed_at"`
}

type EventBus interface {
	PublishOrderCreated(ctx context.Context, e OrderCreatedEvent) error
	PublishOrderPaid(ctx context.Context, e OrderPaidEvent) error
	PublishOrderStatusChanged(ctx context.Context, e OrderStatusChangedEvent) error
}
