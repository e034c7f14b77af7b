package service

import (
	"context"
	"time"

	"store-service/internal/models"

	"github.com/google/uuid"
)

// Notifier отправляет транзакционные письма. Доставка — забота провайдера:
// одна попытка, ошибка возвращается вызывающему и там только логируется.
type Notifier interface {
	SendOrderConfirmation(ctx context.Context, order *models.Order) error
	SendPaymentConfirmation(ctx context.Context, order *models.Order, payment *models.Payment) error
	SendShippingUpdate(ctx context.Context, order *models.Order) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

type Claims struct {
	AdminID uuid.UUID
	Email   string
	Exp     time.Time
}

type TokenProvider interface {
	SignAccess(ctx context.Context, sub uuid.UUID, email string, ttl time.Duration) (token string, exp time.Time, err error)
	ParseAndValidateAccess(ctx context.Context, token string) (*Claims, error)
}
