package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CallerKey is the gin context key holding the authenticated account ID
const CallerKey = "caller_account_id"

// RequireAuth rejects requests without a valid bearer token. The 401 body
// is distinguishable from validation failures by its code field.
func RequireAuth(tokens *TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID, ok := bearerAccountID(tokens, c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":  "authentication_required",
				"error": "authentication required",
			})
			return
		}
		c.Set(CallerKey, accountID)
		c.Next()
	}
}

// OptionalAuth resolves caller identity when a valid token is present but
// lets anonymous requests through. Read paths use it for viewer-relative
// annotations.
func OptionalAuth(tokens *TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if accountID, ok := bearerAccountID(tokens, c); ok {
			c.Set(CallerKey, accountID)
		}
		c.Next()
	}
}

// Caller returns the authenticated account ID from the gin context, or
// (0, false) for anonymous requests.
func Caller(c *gin.Context) (int64, bool) {
	v, exists := c.Get(CallerKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

func bearerAccountID(tokens *TokenService, c *gin.Context) (int64, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return 0, false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return 0, false
	}
	accountID, err := tokens.Validate(parts[1])
	if err != nil {
		return 0, false
	}
	return accountID, true
}
