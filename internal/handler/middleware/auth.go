package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"staybook/internal/pkg/tenanttoken"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ctxHotelIDKey       = "hotel_id"
	webhookSecretHeader = "X-Webhook-Secret"
)

// AuthMiddleware scopes every authenticated request to exactly one hotel.
// Role and permission checks live in the dashboard's auth service upstream.
type AuthMiddleware struct {
	tokens        *tenanttoken.Service
	webhookSecret string
}

func NewAuthMiddleware(tokens *tenanttoken.Service, webhookSecret string) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:        tokens,
		webhookSecret: webhookSecret,
	}
}

func (m *AuthMiddleware) RequireTenant() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimSpace(authHeader[len("Bearer "):])
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}

		hotelID, err := m.tokens.Verify(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(ctxHotelIDKey, hotelID)
		c.Next()
	}
}

// RequireWebhookSecret authenticates provider-initiated calls. The payment
// provider cannot carry a tenant bearer token, so it presents a shared
// secret instead; tenant scoping comes from the payload.
func (m *AuthMiddleware) RequireWebhookSecret() gin.HandlerFunc {
	return func(c *gin.Context) {
		secret := c.GetHeader(webhookSecretHeader)
		if subtle.ConstantTimeCompare([]byte(secret), []byte(m.webhookSecret)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid webhook secret",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

func GetHotelID(c *gin.Context) (uuid.UUID, bool) {
	hotelID, exists := c.Get(ctxHotelIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := hotelID.(uuid.UUID)
	return id, ok
}
