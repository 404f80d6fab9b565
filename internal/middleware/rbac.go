package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/pem-portal-api/internal/models"
	appErrors "github.com/noah-isme/pem-portal-api/pkg/errors"
	"github.com/noah-isme/pem-portal-api/pkg/response"
)

// RequireRoles admits requests whose token carries one of the given roles.
// It must run after JWT.
func RequireRoles(allowed ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		claimsValue, exists := c.Get(ContextUserKey)
		if !exists {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		claims, ok := claimsValue.(*models.JWTClaims)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		for _, role := range allowed {
			if claims.Role == role {
				c.Next()
				return
			}
		}

		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "role "+string(claims.Role)+" may not access this resource"))
		c.Abort()
	}
}
