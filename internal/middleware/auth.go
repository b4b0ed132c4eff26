package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/kundan-thakur61/mobilecoverdesign/internal/httpx"
)

// AdminAuth guards the admin route group with a bearer JWT. The token
// must carry role "admin". With no secret configured every request is
// rejected rather than silently allowed.
func AdminAuth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if secret == "" {
			return httpx.Unauthorized(c, "admin auth not configured")
		}

		header := c.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			return httpx.Unauthorized(c, "missing bearer token")
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return httpx.Unauthorized(c, "invalid token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || claims["role"] != "admin" {
			return httpx.Unauthorized(c, "admin access required")
		}

		c.Locals("admin_subject", claims["sub"])
		return c.Next()
	}
}
