package handlers

import (
	"net/http"

	"store-service/internal/models"
	"store-service/internal/service"
	"store-service/internal/transport/http/dto"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrderHandler struct {
	orders service.OrderService
	log    *zap.Logger
}

func NewOrderHandler(orders service.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, log: log}
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid create order request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body", nil))
		return
	}

	in := service.CreateOrderInput{
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		Address:         req.Address,
		TotalPriceCents: req.TotalPrice,
		Items:           make([]service.CreateOrderItem, 0, len(req.Items)),
	}
	for _, it := range req.Items {
		productID, err := uuid.Parse(it.ProductID)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid productId: "+it.ProductID, nil))
			return
		}
		in.Items = append(in.Items, service.CreateOrderItem{
			ProductID:      productID,
			Quantity:       it.Quantity,
			UnitPriceCents: it.Price,
			Size:           it.Size,
			Color:          it.Color,
		})
	}

	order, err := h.orders.CreateOrder(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid order id", nil))
		return
	}

	order, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	page, limit := pageQuery(c)

	filter := service.OrderListFilter{Page: page, Limit: limit}
	if raw := c.Query("status"); raw != "" {
		status := models.OrderStatus(raw)
		switch status {
		case models.OrderStatusPending, models.OrderStatusPaid, models.OrderStatusShipped,
			models.OrderStatusDelivered, models.OrderStatusCancelled:
			filter.Status = &status
		default:
			c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid status filter", nil))
			return
		}
	}

	orders, total, err := h.orders.ListOrders(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.OrderListResponse{
		Orders:     orders,
		Total:      total,
		Page:       page,
		TotalPages: totalPages(total, limit),
	})
}

func (h *OrderHandler) CapturePayment(c *gin.Context) {
	var req dto.CapturePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid capture payment request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body", nil))
		return
	}
	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid orderId", nil))
		return
	}

	payment, err := h.orders.CapturePayment(c.Request.Context(), service.CapturePaymentInput{
		OrderID:         orderID,
		ProviderOrderID: req.ExternalPaymentRef,
		ProviderPayerID: req.PayerID,
		Status:          models.PaymentStatus(req.Status),
		AmountCents:     req.Amount,
		CurrencyCode:    req.Currency,
	})
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid order id", nil))
		return
	}
	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body", nil))
		return
	}

	order, err := h.orders.UpdateOrderStatus(c.Request.Context(), id, models.OrderStatus(req.Status))
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) DashboardStats(c *gin.Context) {
	stats, err := h.orders.DashboardStats(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
