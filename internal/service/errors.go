package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrUnauthorized = errors.New("unauthorized")

	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryInUse    = errors.New("category has products and cannot be deleted")
	ErrCategoryExists   = errors.New("category with this name already exists")

	ErrProductNotFound = errors.New("product not found")
	ErrPriceInvalid    = errors.New("price must be > 0")
	ErrStockInvalid    = errors.New("stock must be >= 0")

	ErrOrderNotFound    = errors.New("order not found")
	ErrEmptyItems       = errors.New("empty items")
	ErrQuantityInvalid  = errors.New("quantity must be > 0")
	ErrPriceMismatch    = errors.New("submitted price does not match catalog price")
	ErrTotalMismatch    = errors.New("submitted total does not match items plus shipping")
	ErrAmountMismatch   = errors.New("payment amount does not match order total")
	ErrOrderAlreadyPaid = errors.New("order already paid")
	ErrOrderCancelled   = errors.New("order is cancelled")

	ErrShippingCostInvalid = errors.New("shipping cost must be >= 0")
)

// ProductsNotFoundError перечисляет отсутствующие или неактивные товары из заказа
type ProductsNotFoundError struct {
	IDs []uuid.UUID
}

func (e *ProductsNotFoundError) Error() string {
	ids := make([]string, 0, len(e.IDs))
	for _, id := range e.IDs {
		ids = append(ids, id.String())
	}
	return fmt.Sprintf("product(s) not found: %s", strings.Join(ids, ", "))
}

type InsufficientStockError struct {
	ProductID uuid.UUID
	Requested uint32
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s (requested %d)", e.ProductID, e.Requested)
}

// InvalidTransitionError — нарушение прямого порядка статусов
type InvalidTransitionError struct {
	From, To string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition %s -> %s", e.From, e.To)
}
