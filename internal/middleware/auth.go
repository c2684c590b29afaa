package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/zemlex/estate-catalog/internal/utils"
)

// AuthAdmin validates a bearer token signed with the configured secret and
// carrying role "admin". Back-office mutations sit behind this.
func AuthAdmin(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			return utils.ErrorResponse(c, "missing bearer token", fiber.StatusUnauthorized, "auth")
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return utils.ErrorResponse(c, "invalid token", fiber.StatusUnauthorized, "auth")
		}

		role, _ := claims["role"].(string)
		if role != "admin" {
			return utils.ErrorResponse(c, "admin role required", fiber.StatusForbidden, "auth")
		}

		if sub, ok := claims["sub"].(string); ok {
			c.Locals("user", sub)
		}
		return c.Next()
	}
}
