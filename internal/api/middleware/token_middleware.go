package middleware

import (
	"crypto/subtle"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type TokenMiddleware struct {
	token string
}

func NewTokenMiddleware(token string) *TokenMiddleware {
	return &TokenMiddleware{token: token}
}

// TokenMiddleware accepts the token as "Authorization: Bearer <token>" or as
// the api_key query parameter.
func (m *TokenMiddleware) TokenMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Query("api_key")
		if auth := c.Get(fiber.HeaderAuthorization); auth != "" {
			token = strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		}

		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing api token",
			})
		}

		if subtle.ConstantTimeCompare([]byte(token), []byte(m.token)) != 1 {
			log.Printf("Rejected request to %s: invalid token", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid api token",
			})
		}
		return c.Next()
	}
}
