package admin

import (
	"parts-finder/core/audit"
	"parts-finder/core/logger"
	"parts-finder/core/middleware/auth"
	"parts-finder/core/server"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler exposes administrative endpoints.
type Handler struct {
	service  *Service
	recorder *audit.Recorder
	session  fiber.Handler
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, recorder *audit.Recorder, session fiber.Handler) *Handler {
	return &Handler{service: service, recorder: recorder, session: session}
}

// RegisterRoutes registers the admin routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/admin/data/reset",
		h.session,
		auth.RequireRoles(server.RoleAdmin),
		h.HandleReset,
	)
}

// HandleReset wipes catalog, inventory, image and audit data.
func (h *Handler) HandleReset(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	result, err := h.service.ResetData(c.Context())
	if err != nil {
		l.Error("Data reset failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error restableciendo los datos",
		})
	}

	if claims := auth.FromContext(c); claims != nil {
		h.recorder.Record(c, &claims.UserID, claims.Username, audit.ActionReset, fiber.Map{
			"removed": result,
		})
	}

	l.Info("Data reset completed",
		zap.Int64("parts", result.Parts),
		zap.Int64("inventoryRows", result.InventoryRows))

	return c.JSON(fiber.Map{
		"message": "Datos restablecidos correctamente",
		"removed": result,
	})
}
