package middleware

import (
	"strings"

	"vidyamitra_backend/internal/config"
	"vidyamitra_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the bearer token and stores the claims on the
// request context for util.GetUserFromContext. Refresh tokens are rejected
// here: only access tokens may call protected routes.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret)
		if err != nil || claims.TokenType != "access" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set("user", claims)
		c.Next()
	}
}
