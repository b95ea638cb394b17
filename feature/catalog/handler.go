package catalog

import (
	"errors"
	"fmt"

	"parts-finder/core/audit"
	"parts-finder/core/logger"
	"parts-finder/core/middleware/auth"
	"parts-finder/core/server"
	"parts-finder/feature/catalog/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the equivalence catalog.
type Handler struct {
	service  *Service
	recorder *audit.Recorder
	session  fiber.Handler
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, recorder *audit.Recorder, session fiber.Handler) *Handler {
	return &Handler{service: service, recorder: recorder, session: session}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/search", h.session, h.HandleSearch)
	app.Get("/suggestions", h.session, h.HandleSuggestions)
	app.Get("/parts/:partNumber", h.session, h.HandleGetPart)
	app.Post("/compatibilities/import",
		h.session,
		auth.RequireRoles(server.RoleAdmin, server.RoleImporter),
		h.HandleImport,
	)
}

// HandleSearch answers the equivalence search used by the main result grid.
// Nothing found is an empty list, never an error.
func (h *Handler) HandleSearch(c *fiber.Ctx) error {
	query := c.Query("q")
	l := logger.WithRayID(h.service.logger, c)

	rows, err := h.service.Search(c.Context(), query)
	if err != nil {
		l.Error("Search failed", zap.String("query", query), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	h.service.EnrichStock(c.Context(), rows)

	if query != "" {
		if claims := auth.FromContext(c); claims != nil {
			h.recorder.Record(c, &claims.UserID, claims.Username, audit.ActionSearch, fiber.Map{
				"query":        query,
				"resultsCount": len(rows),
			})
		}
	}

	return c.JSON(rows)
}

// HandleSuggestions answers ranked autocomplete candidates.
func (h *Handler) HandleSuggestions(c *fiber.Ctx) error {
	query := c.Query("q")
	l := logger.WithRayID(h.service.logger, c)

	suggestions, err := h.service.Suggest(c.Context(), query)
	if err != nil {
		l.Error("Suggestions failed", zap.String("query", query), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(suggestions)
}

// HandleGetPart returns the detail card for a single part.
func (h *Handler) HandleGetPart(c *fiber.Ctx) error {
	identifier := c.Params("partNumber")
	l := logger.WithRayID(h.service.logger, c)

	detail, err := h.service.GetPart(c.Context(), identifier)
	if errors.Is(err, ErrPartNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Parte no encontrada",
		})
	}
	if err != nil {
		l.Error("Part lookup failed", zap.String("identifier", identifier), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(detail)
}

// HandleImport ingests a compatibility batch.
func (h *Handler) HandleImport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var items []models.ImportItem
	if err := c.BodyParser(&items); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Se esperaba un array de items",
		})
	}

	stats, err := h.service.ImportBatch(c.Context(), items)
	if err != nil {
		l.Error("Import failed", zap.Int("items", len(items)), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if claims := auth.FromContext(c); claims != nil {
		h.recorder.Record(c, &claims.UserID, claims.Username, audit.ActionUpload, fiber.Map{
			"type":  "IMPORT_BATCH",
			"count": len(items),
			"stats": stats,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": fmt.Sprintf("Importados %d registros", len(items)),
		"stats":   stats,
	})
}
