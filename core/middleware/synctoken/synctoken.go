package synctoken

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

// Headers accepted for the shared sync secret, checked in order.
// A token query parameter is accepted as a fallback for clients that
// cannot set headers.
const (
	HeaderPrimary = "X-Inventory-Sync-Token"
	HeaderLegacy  = "X-Sync-Token"
)

// Config holds configuration for the sync token middleware.
type Config struct {
	// Token is the expected shared secret.
	Token string
}

// New returns a middleware that gates the inventory sync endpoint with a
// shared secret instead of user session auth. Missing token yields 401,
// a mismatch yields 403.
func New(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		provided := c.Get(HeaderPrimary)
		if provided == "" {
			provided = c.Get(HeaderLegacy)
		}
		if provided == "" {
			provided = c.Query("token")
		}

		if provided == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Token de sincronización requerido",
			})
		}

		if subtle.ConstantTimeCompare([]byte(provided), []byte(cfg.Token)) != 1 {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Token de sincronización inválido",
			})
		}

		return c.Next()
	}
}
