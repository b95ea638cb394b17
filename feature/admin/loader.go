package admin

import (
	"parts-finder/core/audit"
	"parts-finder/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature wires administrative maintenance endpoints into the application.
type Feature struct {
	handler *Handler
}

// NewFeature builds the admin feature.
func NewFeature(db *gorm.DB, client storage.Client, bucket string, l *zap.Logger, recorder *audit.Recorder, session fiber.Handler) *Feature {
	service := NewService(db, client, bucket, l)
	return &Feature{handler: NewHandler(service, recorder, session)}
}

// Name implements loader.Feature.
func (f *Feature) Name() string { return "admin" }

// IsEnabled implements loader.Feature.
func (f *Feature) IsEnabled() bool { return true }

// Load implements loader.Feature.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
