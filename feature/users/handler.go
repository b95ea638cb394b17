package users

import (
	"errors"
	"strconv"

	"parts-finder/core/audit"
	"parts-finder/core/logger"
	"parts-finder/core/middleware/auth"
	"parts-finder/core/server"
	"parts-finder/feature/users/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for auth and user administration.
type Handler struct {
	service  *Service
	recorder *audit.Recorder
	session  fiber.Handler
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, recorder *audit.Recorder, session fiber.Handler) *Handler {
	return &Handler{service: service, recorder: recorder, session: session}
}

// RegisterRoutes registers the auth and user routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/auth/login", h.HandleLogin)
	app.Get("/auth/me", h.session, h.HandleMe)

	admin := []fiber.Handler{h.session, auth.RequireRoles(server.RoleAdmin)}
	app.Get("/users", append(admin, h.HandleList)...)
	app.Post("/users", append(admin, h.HandleCreate)...)
	app.Put("/users/:id", append(admin, h.HandleUpdate)...)
}

// HandleLogin verifies credentials and issues a session token.
func (h *Handler) HandleLogin(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil || req.Username == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "username y password son requeridos",
		})
	}

	resp, err := h.service.Login(c.Context(), req)
	if errors.Is(err, ErrInvalidCredentials) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Credenciales invalidas",
		})
	}
	if err != nil {
		l.Error("Login failed", zap.String("username", req.Username), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	h.recorder.Record(c, &resp.User.ID, resp.User.Username, audit.ActionLogin, fiber.Map{
		"success": true,
	})

	return c.JSON(resp)
}

// HandleMe echoes the authenticated principal.
func (h *Handler) HandleMe(c *fiber.Ctx) error {
	claims := auth.FromContext(c)
	return c.JSON(models.PublicUser{
		ID:       claims.UserID,
		Username: claims.Username,
		Role:     claims.Role,
		Name:     claims.Name,
	})
}

// HandleList returns every user.
func (h *Handler) HandleList(c *fiber.Ctx) error {
	users, err := h.service.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(users)
}

// HandleCreate registers a new user.
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateUserRequest
	if err := c.BodyParser(&req); err != nil ||
		req.Username == "" || req.Password == "" || req.Role == "" || req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "username, password, role y name son requeridos",
		})
	}

	user, err := h.service.Create(c.Context(), req)
	switch {
	case errors.Is(err, ErrInvalidRole):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Rol no valido"})
	case errors.Is(err, ErrUserExists):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Usuario ya existe"})
	case err != nil:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": user.ID})
}

// HandleUpdate applies a partial update to a user.
func (h *Handler) HandleUpdate(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Id invalido"})
	}

	var req models.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payload invalido"})
	}

	err = h.service.Update(c.Context(), uint(id), req)
	switch {
	case errors.Is(err, ErrInvalidRole):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Rol no valido"})
	case errors.Is(err, ErrNothingToUpdate):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No hay campos para actualizar"})
	case errors.Is(err, ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Usuario no encontrado"})
	case err != nil:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"ok": true})
}
