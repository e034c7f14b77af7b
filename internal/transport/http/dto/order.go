package dto

import "store-service/internal/models"

type OrderItemRequest struct {
	ProductID string  `json:"productId" binding:"required,uuid"`
	Quantity  uint32  `json:"quantity" binding:"required,gt=0"`
	Price     int64   `json:"price" binding:"required,gt=0"`
	Size      *string `json:"size"`
	Color     *string `json:"color"`
}

type CreateOrderRequest struct {
	CustomerName  string             `json:"customerName" binding:"required,min=1,max=200"`
	CustomerEmail string             `json:"customerEmail" binding:"required,email"`
	CustomerPhone string             `json:"customerPhone"`
	Address       string             `json:"address" binding:"required,min=1"`
	TotalPrice    int64              `json:"totalPrice" binding:"required,gt=0"`
	Items         []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

type CapturePaymentRequest struct {
	OrderID            string  `json:"orderId" binding:"required,uuid"`
	ExternalPaymentRef string  `json:"externalPaymentRef" binding:"required"`
	PayerID            *string `json:"payerId"`
	Status             string  `json:"status" binding:"required,oneof=COMPLETED FAILED PENDING"`
	Amount             int64   `json:"amount" binding:"required,gt=0"`
	Currency           string  `json:"currency" binding:"required,len=3"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING PAID SHIPPED DELIVERED CANCELLED"`
}

type OrderListResponse struct {
	Orders     []models.Order `json:"orders"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	TotalPages int64          `json:"totalPages"`
}

type ShippingCostResponse struct {
	FixedCost int64 `json:"fixedCost"`
}

type SetShippingCostRequest struct {
	Cost int64 `json:"cost" binding:"gte=0"`
}
