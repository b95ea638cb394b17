package images

import (
	"errors"
	"io"

	"parts-finder/core/audit"
	"parts-finder/core/logger"
	"parts-finder/core/middleware/auth"
	"parts-finder/core/server"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for part images.
type Handler struct {
	service  *Service
	recorder *audit.Recorder
	session  fiber.Handler
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, recorder *audit.Recorder, session fiber.Handler) *Handler {
	return &Handler{service: service, recorder: recorder, session: session}
}

// RegisterRoutes registers the image routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/parts/:partNumber/image", h.session, h.HandleFetch)
	app.Post("/parts/:partNumber/image",
		h.session,
		auth.RequireRoles(server.RoleAdmin, server.RoleImporter),
		h.HandleUpload,
	)
}

// HandleUpload stores a new primary image for a part.
func (h *Handler) HandleUpload(c *fiber.Ctx) error {
	partNumber := c.Params("partNumber")
	l := logger.WithRayID(h.service.logger, c)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No se proporcionó ninguna imagen",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No fue posible leer la imagen",
		})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No fue posible leer la imagen",
		})
	}

	var uploadedBy *uint
	claims := auth.FromContext(c)
	if claims != nil {
		uploadedBy = &claims.UserID
	}

	image, err := h.service.Upload(c.Context(), partNumber, fileHeader.Header.Get("Content-Type"), data, uploadedBy)
	switch {
	case errors.Is(err, ErrPartNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Parte no encontrada"})
	case errors.Is(err, ErrUnsupportedImage):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Solo se permiten imágenes (jpeg, jpg, png, gif, webp)",
		})
	case errors.Is(err, ErrEmptyUpload):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No se proporcionó ninguna imagen"})
	case err != nil:
		l.Error("Image upload failed", zap.String("partNumber", partNumber), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error subiendo imagen"})
	}

	if claims != nil {
		h.recorder.Record(c, &claims.UserID, claims.Username, audit.ActionUpload, fiber.Map{
			"type":       "IMAGE_UPLOAD",
			"partNumber": partNumber,
			"imageId":    image.ID,
		})
	}

	return c.JSON(fiber.Map{
		"message":  "Imagen subida correctamente",
		"imageUrl": ImageURL(partNumber, image.ID),
		"imageId":  image.ID,
	})
}

// HandleFetch streams the primary image for a part.
func (h *Handler) HandleFetch(c *fiber.Ctx) error {
	partNumber := c.Params("partNumber")
	l := logger.WithRayID(h.service.logger, c)

	object, image, err := h.service.Fetch(c.Context(), partNumber)
	switch {
	case errors.Is(err, ErrPartNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Parte no encontrada"})
	case errors.Is(err, ErrImageNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Imagen no encontrada"})
	case err != nil:
		l.Error("Image fetch failed", zap.String("partNumber", partNumber), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error obteniendo imagen"})
	}

	c.Set(fiber.HeaderContentType, image.ContentType)
	c.Set(fiber.HeaderCacheControl, "private, max-age=300")
	return c.SendStream(object)
}
