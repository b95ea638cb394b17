package auth

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret"

func signTestToken(t *testing.T, role string, ttl time.Duration) string {
	t.Helper()
	token, err := Sign(&Claims{UserID: 1, Username: "ana", Role: role, Name: "Ana"}, testSecret, ttl)
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return token
}

func setupApp(handlers ...fiber.Handler) *fiber.App {
	app := fiber.New()
	chain := append([]fiber.Handler{}, handlers...)
	chain = append(chain, func(c *fiber.Ctx) error {
		claims := FromContext(c)
		return c.JSON(fiber.Map{"username": claims.Username, "role": claims.Role})
	})
	app.Get("/protected", chain...)
	return app
}

func TestAuthMiddleware(t *testing.T) {
	app := setupApp(New(Config{Secret: testSecret}))

	t.Run("MissingHeader", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("MalformedHeader", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Token abc")
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		token := signTestToken(t, "viewer", -time.Hour)
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("ValidToken", func(t *testing.T) {
		token := signTestToken(t, "viewer", time.Hour)
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		token, err := Sign(&Claims{UserID: 1, Username: "ana", Role: "viewer"}, "other-secret", time.Hour)
		assert.NoError(t, err)
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestRequireRoles(t *testing.T) {
	app := setupApp(New(Config{Secret: testSecret}), RequireRoles("admin", "importer"))

	t.Run("AllowedRole", func(t *testing.T) {
		token := signTestToken(t, "importer", time.Hour)
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("ForbiddenRole", func(t *testing.T) {
		token := signTestToken(t, "viewer", time.Hour)
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})
}

func TestSignRoundTrip(t *testing.T) {
	token := signTestToken(t, "admin", time.Hour)

	claims, err := Validate(token, testSecret)
	assert.NoError(t, err)
	assert.Equal(t, uint(1), claims.UserID)
	assert.Equal(t, "ana", claims.Username)
	assert.Equal(t, "admin", claims.Role)
}
