// Package auth resolves the authenticated caller from the hosted auth
// provider's bearer token. Handlers below this middleware can rely on a
// non-empty userId in the request context.
package auth

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/abdhfz93/sipdesk/pkg/middleware/render"
)

// Gin context keys set by Middleware.
const (
	ContextUserID = "userId"
	ContextEmail  = "email"
)

const bearerPrefix = "Bearer "

// Middleware validates the Authorization bearer JWT (HS256, shared secret
// with the auth provider) and stores the caller identity in the gin context.
func Middleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			render.Unauthorized(c, "missing bearer token")
			c.Abort()
			return
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(strings.TrimPrefix(header, bearerPrefix), claims,
			func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}
				return []byte(secret), nil
			})
		if err != nil || !token.Valid {
			render.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}

		if sub, ok := claims["sub"].(string); ok && sub != "" {
			c.Set(ContextUserID, sub)
		}
		if email, ok := claims["email"].(string); ok {
			c.Set(ContextEmail, email)
		}
		c.Next()
	}
}
