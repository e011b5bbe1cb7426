package auth

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/userbooks/internal/config"
	"github.com/mrlokans/userbooks/internal/logging"
)

// UnauthorizedMessage is the body message of every rejected request.
const UnauthorizedMessage = "Unauthorized"

// APIKeyMiddleware rejects requests whose api-key header does not match the
// configured secret.
type APIKeyMiddleware struct {
	secret []byte
}

// NewAPIKeyMiddleware creates the middleware for the secret in cfg.
func NewAPIKeyMiddleware(cfg config.Auth) *APIKeyMiddleware {
	return &APIKeyMiddleware{secret: []byte(cfg.APIKey)}
}

// Enabled reports whether a secret is configured. Without one the middleware
// rejects everything.
func (m *APIKeyMiddleware) Enabled() bool {
	return len(m.secret) > 0
}

// Handler returns the gin handler enforcing the key.
func (m *APIKeyMiddleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.Valid(c.GetHeader(config.APIKeyHeader)) {
			logging.FromGin(c).WithField("path", c.Request.URL.Path).Warn("rejected request with missing or invalid api key")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": UnauthorizedMessage})
			return
		}
		c.Next()
	}
}

// Valid reports whether key matches the configured secret.
func (m *APIKeyMiddleware) Valid(key string) bool {
	if !m.Enabled() || key == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(key), m.secret) == 1
}
