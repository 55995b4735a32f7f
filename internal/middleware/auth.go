package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/coachtrack/internal/auth"
	"github.com/BruksfildServices01/coachtrack/internal/httperr"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

func AuthMiddleware(issuer *auth.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing_authorization_header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "invalid_authorization_header")
			return
		}

		claims, err := issuer.ParseValidate(strings.TrimSpace(parts[1]))
		if err != nil {
			abortUnauthorized(c, "invalid_token")
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			abortUnauthorized(c, "invalid_token_payload")
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextUserRole, claims.Role)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, code string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, httperr.HTTPError{
		Code:    code,
		Message: "Authentication required.",
	})
}

// UserID returns the authenticated user id set by AuthMiddleware.
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

func UserRole(c *gin.Context) string {
	return c.GetString(ContextUserRole)
}
