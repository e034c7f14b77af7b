package handlers

import (
	"errors"
	"net/http"

	"store-service/internal/service"
	"store-service/internal/transport/http/dto"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondServiceError переводит доменные ошибки в HTTP-статусы.
// Неопознанные ошибки считаются внутренними и логируются.
func respondServiceError(c *gin.Context, log *zap.Logger, err error) {
	var notFound *service.ProductsNotFoundError
	var stock *service.InsufficientStockError
	var transition *service.InvalidTransitionError

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusBadRequest, dto.NewValidationError(notFound.Error(), nil))
	case errors.As(err, &stock):
		c.JSON(http.StatusConflict, dto.NewConflictError(stock.Error()))
	case errors.As(err, &transition):
		c.JSON(http.StatusConflict, dto.NewConflictError(transition.Error()))
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, dto.NewUnauthorizedError("invalid credentials"))
	case errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, dto.NewNotFoundError(err.Error()))
	case errors.Is(err, service.ErrCategoryInUse),
		errors.Is(err, service.ErrCategoryExists),
		errors.Is(err, service.ErrOrderAlreadyPaid),
		errors.Is(err, service.ErrOrderCancelled):
		c.JSON(http.StatusConflict, dto.NewConflictError(err.Error()))
	case errors.Is(err, service.ErrEmptyItems),
		errors.Is(err, service.ErrQuantityInvalid),
		errors.Is(err, service.ErrPriceInvalid),
		errors.Is(err, service.ErrStockInvalid),
		errors.Is(err, service.ErrPriceMismatch),
		errors.Is(err, service.ErrTotalMismatch),
		errors.Is(err, service.ErrAmountMismatch),
		errors.Is(err, service.ErrShippingCostInvalid):
		c.JSON(http.StatusBadRequest, dto.NewValidationError(err.Error(), nil))
	default:
		log.Error("unexpected service error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.NewInternalError())
	}
}
