package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yukikurage/pastry-manager-api/internal/constants"
	apierrors "github.com/yukikurage/pastry-manager-api/internal/errors"
)

// RequireUserID reads the acting user from the X-User-Id header
func RequireUserID() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(constants.HeaderUserID))
		if raw == "" {
			apierrors.BadRequest(c, constants.HeaderUserID+" header is required")
			return
		}

		userID, err := uuid.Parse(raw)
		if err != nil || userID == uuid.Nil {
			apierrors.InvalidFormat(c, "Invalid "+constants.HeaderUserID+" header")
			return
		}

		// Store user ID in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// GetUserID retrieves the acting user ID from context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	return userID, ok
}
