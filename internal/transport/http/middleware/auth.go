package middleware

import (
	"net/http"
	"strings"

	"store-service/internal/service"
	"store-service/internal/transport/http/dto"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	CtxAdminID    = "admin_id"
	CtxAdminEmail = "admin_email"
)

// AuthRequired проверяет Bearer токен и кладёт данные админа в контекст запроса.
func AuthRequired(auth service.AdminAuthService, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authz := c.GetHeader("Authorization")
		if authz == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewUnauthorizedError("missing Authorization header"))
			return
		}
		token, ok := ExtractBearerToken(authz)
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewUnauthorizedError("invalid Authorization header"))
			return
		}

		claims, err := auth.Validate(c.Request.Context(), token)
		if err != nil {
			log.Warn("token validation failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewUnauthorizedError("invalid token"))
			return
		}

		c.Set(CtxAdminID, claims.AdminID)
		c.Set(CtxAdminEmail, claims.Email)
		c.Next()
	}
}

// ExtractBearerToken извлекает токен из заголовка Authorization, устойчиво к лишним символам
func ExtractBearerToken(authz string) (string, bool) {
	if authz == "" {
		return "", false
	}
	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	t := strings.Trim(strings.TrimSpace(parts[1]), " \"'")
	if i := strings.IndexRune(t, ','); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	if i := strings.IndexByte(t, ' '); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	t = strings.Trim(t, " \"'")
	return t, true
}
