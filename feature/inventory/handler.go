package inventory

import (
	"encoding/json"

	"parts-finder/core/logger"
	"parts-finder/feature/inventory/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for inventory sync and detail.
type Handler struct {
	service  *Service
	session  fiber.Handler
	syncGate fiber.Handler
}

// NewHandler creates a new HTTP handler. session guards user-facing
// queries, syncGate guards the machine-to-machine sync endpoint.
func NewHandler(service *Service, session, syncGate fiber.Handler) *Handler {
	return &Handler{service: service, session: session, syncGate: syncGate}
}

// RegisterRoutes registers the inventory routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/inventory/sync", h.syncGate, h.HandleSync)
	app.Get("/inventory/:partNumber", h.session, h.HandleDetail)
}

// parseSyncPayload accepts either a bare array or an {items: []} wrapper.
// A JSON null unmarshals into a nil slice without error and must not pass
// for an empty batch: in replace mode that would wipe the store.
func parseSyncPayload(body []byte) ([]map[string]any, bool) {
	var items []map[string]any
	if err := json.Unmarshal(body, &items); err == nil && items != nil {
		return items, true
	}

	var wrapper struct {
		Items []map[string]any `json:"items"`
	}
	if err := json.Unmarshal(body, &wrapper); err == nil && wrapper.Items != nil {
		return wrapper.Items, true
	}

	return nil, false
}

// HandleSync applies an inventory snapshot pushed by the external stock
// system. Malformed rows inside the payload are dropped by normalization;
// a payload that is not a list at all is rejected before any store access.
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	items, ok := parseSyncPayload(c.Body())
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Payload inválido. Se esperaba un array o un objeto con { items: [] }",
		})
	}

	mode := models.ModeReplace
	if c.Query("mode") == models.ModeUpsert {
		mode = models.ModeUpsert
	}

	result, err := h.service.ApplySnapshot(c.Context(), items, mode)
	if err != nil {
		l.Error("Snapshot sync failed",
			zap.String("mode", mode),
			zap.Int("received", len(items)),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	l.Info("Snapshot applied",
		zap.String("mode", result.Mode),
		zap.Int("received", result.Received),
		zap.Int("stored", result.Stored),
	)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"ok":       true,
		"mode":     result.Mode,
		"received": result.Received,
		"stored":   result.Stored,
	})
}

// HandleDetail returns the stock breakdown for one part. The reader
// degrades store failures internally, so this always answers 200.
func (h *Handler) HandleDetail(c *fiber.Ctx) error {
	detail := h.service.Detail(c.Context(), c.Params("partNumber"))
	return c.JSON(detail)
}
