package middleware

import (
	"context"
	"errors"
	"net/http"

	"sns/internal/core/errs"
	sessionPort "sns/internal/ports/session"
	userPort "sns/internal/ports/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserIDKey is the gin context key holding the authenticated account id.
const UserIDKey = "userID"

// AccountLookup resolves the account a session points at.
type AccountLookup interface {
	GetUser(ctx context.Context, id string) (*userPort.UserDTO, error)
}

// SessionAuth rejects requests without a valid session, or whose account no
// longer exists, and stores the account id in the context.
func SessionAuth(store sessionPort.Store, accounts AccountLookup, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := store.UserID(c.Request)
		if err != nil {
			if !errors.Is(err, sessionPort.ErrNoSession) {
				logger.Error("session lookup failed", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		if _, err := accounts.GetUser(c.Request.Context(), userID); err != nil {
			if !errors.Is(err, errs.ErrNotFound) {
				logger.Error("account lookup failed", zap.String("userID", userID), zap.Error(err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
				return
			}
			logger.Info("session for deleted account", zap.String("userID", userID))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// CurrentUserID returns the account id set by SessionAuth.
func CurrentUserID(c *gin.Context) (string, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
