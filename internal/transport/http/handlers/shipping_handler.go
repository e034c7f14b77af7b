package handlers

import (
	"net/http"

	"store-service/internal/service"
	"store-service/internal/transport/http/dto"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ShippingHandler struct {
	shipping service.ShippingService
	log      *zap.Logger
}

func NewShippingHandler(shipping service.ShippingService, log *zap.Logger) *ShippingHandler {
	return &ShippingHandler{shipping: shipping, log: log}
}

func (h *ShippingHandler) GetCost(c *gin.Context) {
	cost, err := h.shipping.CurrentCost(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ShippingCostResponse{FixedCost: cost})
}

func (h *ShippingHandler) SetCost(c *gin.Context) {
	var req dto.SetShippingCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body", nil))
		return
	}

	sc, err := h.shipping.SetCost(c.Request.Context(), req.Cost)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ShippingCostResponse{FixedCost: sc.CostCents})
}
