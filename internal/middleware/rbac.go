package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/student-report-api/internal/models"
	appErrors "github.com/noah-isme/student-report-api/pkg/errors"
	"github.com/noah-isme/student-report-api/pkg/response"
)

// RequireRoles lets through only callers holding one of the given roles.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		claims, ok := CurrentClaims(c)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if _, ok := allowed[claims.Role]; !ok {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "you're not permitted to do this operation"))
			c.Abort()
			return
		}
		c.Next()
	}
}
