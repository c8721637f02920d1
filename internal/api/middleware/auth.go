package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/hidramais/vtex-alerts/pkg/errors"
)

const tokenHeader = "X-API-Token"

// APITokenAuth guards internal routes with a shared token. tokenHash is the
// bcrypt hash produced by cmd/hash-token; when it is empty every request is
// refused, since the route would otherwise be public.
func APITokenAuth(tokenHash string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenHash == "" {
			logger.Warn("API route token not configured, refusing request",
				zap.String("path", c.Request.URL.Path),
			)
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"ok":      false,
				"message": "API route token not configured",
			})
			return
		}

		if err := authenticate(tokenHash, extractToken(c.Request)); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"ok":      false,
				"message": err.Error(),
			})
			return
		}

		c.Next()
	}
}

func authenticate(tokenHash, token string) error {
	if token == "" {
		return &errors.ErrUnauthorized{Message: "missing API token"}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(tokenHash), []byte(token)); err != nil {
		return &errors.ErrUnauthorized{Message: "invalid API token"}
	}
	return nil
}

// extractToken accepts "Authorization: Bearer <token>" or the X-API-Token header
func extractToken(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	return strings.TrimSpace(r.Header.Get(tokenHeader))
}
