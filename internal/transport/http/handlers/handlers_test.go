package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"store-service/internal/models"
	"store-service/internal/service"
	"store-service/internal/transport/http/dto"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockShippingService
type MockShippingService struct {
	CurrentCostFunc func(ctx context.Context) (int64, error)
	SetCostFunc     func(ctx context.Context, costCents int64) (*models.ShippingCost, error)
}

func (m *MockShippingService) CurrentCost(ctx context.Context) (int64, error) {
	if m.CurrentCostFunc != nil {
		return m.CurrentCostFunc(ctx)
	}
	return 0, nil
}

func (m *MockShippingService) SetCost(ctx context.Context, costCents int64) (*models.ShippingCost, error) {
	if m.SetCostFunc != nil {
		return m.SetCostFunc(ctx, costCents)
	}
	return &models.ShippingCost{CostCents: costCents}, nil
}

var _ service.ShippingService = (*MockShippingService)(nil)

func TestShippingHandler_GetCost(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewShippingHandler(&MockShippingService{
		CurrentCostFunc: func(ctx context.Context) (int64, error) { return 750, nil },
	}, zap.NewNop())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/shipping", nil)

	h.GetCost(c)

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.ShippingCostResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(750), resp.FixedCost)
}

func TestShippingHandler_SetCostValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewShippingHandler(&MockShippingService{}, zap.NewNop())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/shipping", strings.NewReader(`{"cost": -5}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.SetCost(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp dto.BaseError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "validation_error", resp.Code)
	assert.NotEmpty(t, resp.Error)
}

func TestRespondServiceError_Mapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		code int
		body string
	}{
		{"order not found", service.ErrOrderNotFound, http.StatusNotFound, "not_found"},
		{"already paid", service.ErrOrderAlreadyPaid, http.StatusConflict, "conflict"},
		{"cancelled order", service.ErrOrderCancelled, http.StatusConflict, "conflict"},
		{"amount mismatch", service.ErrAmountMismatch, http.StatusBadRequest, "validation_error"},
		{"unauthorized", service.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{"category in use", service.ErrCategoryInUse, http.StatusConflict, "conflict"},
		{"missing products", &service.ProductsNotFoundError{IDs: []uuid.UUID{uuid.New()}}, http.StatusBadRequest, "validation_error"},
		{"insufficient stock", &service.InsufficientStockError{ProductID: uuid.New(), Requested: 3}, http.StatusConflict, "conflict"},
		{"invalid transition", &service.InvalidTransitionError{From: "DELIVERED", To: "PENDING"}, http.StatusConflict, "conflict"},
		{"unknown error", assert.AnError, http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondServiceError(c, zap.NewNop(), tc.err)

			require.Equal(t, tc.code, w.Code)
			var resp dto.BaseError
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tc.body, resp.Code)
		})
	}
}

func TestPageQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/products?page=3&limit=25", nil)
	page, limit := pageQuery(c)
	assert.Equal(t, 3, page)
	assert.Equal(t, 25, limit)

	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/products?page=-1&limit=0", nil)
	page, limit = pageQuery(c)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, limit)

	assert.Equal(t, int64(3), totalPages(25, 10))
	assert.Equal(t, int64(0), totalPages(0, 10))
}
