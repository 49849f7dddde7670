package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	jwtsvc "studiocatalog/internal/pkg/jwt"
	"studiocatalog/internal/pkg/response"
)

// Middleware guards the admin routes. It runs before any request body
// is read, so an unauthenticated upload is rejected without touching
// the file.
func Middleware(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid Authorization header")
			c.Abort()
			return
		}

		claims, err := jwt.ValidateToken(token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token")
			c.Abort()
			return
		}

		c.Set("admin_id", claims.AdminID)
		c.Set("admin_email", claims.Email)

		c.Next()
	}
}
