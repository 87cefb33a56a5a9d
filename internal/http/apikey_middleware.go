package http

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// APIKeyMiddleware valida el header x-api-key contra la clave estatica del
// evaluador. La autenticacion real queda fuera del alcance del motor; esto es
// solo la comparacion que el colaborador de autenticacion espera. Sin clave
// configurada el chequeo se desactiva (modo desarrollo).
func APIKeyMiddleware(logger *zap.Logger, expected string) gin.HandlerFunc {
	expected = strings.TrimSpace(expected)
	return func(c *gin.Context) {
		if expected == "" {
			c.Next()
			return
		}

		provided := strings.TrimSpace(c.GetHeader("x-api-key"))
		if provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
			if logger != nil {
				logger.Warn("invalid api key", zap.String("client_ip", c.ClientIP()))
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid api key"})
			c.Abort()
			return
		}

		c.Next()
	}
}
