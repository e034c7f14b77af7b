package handlers

import (
	"net/http"

	"store-service/internal/service"
	"store-service/internal/transport/http/dto"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AdminHandler struct {
	auth service.AdminAuthService
	log  *zap.Logger
}

func NewAdminHandler(auth service.AdminAuthService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{auth: auth, log: log}
}

func (h *AdminHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid login request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body", nil))
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		AccessToken: result.Token,
		ExpiresAt:   result.ExpiresAt,
		Email:       result.Email,
	})
}
