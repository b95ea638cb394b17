package inventory

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new inventory feature.
func NewFeature(db *gorm.DB, logger *zap.Logger, session, syncGate fiber.Handler) *Feature {
	svc := NewService(db, logger)
	h := NewHandler(svc, session, syncGate)
	return &Feature{service: svc, handler: h}
}

// Service exposes the feature's service so the catalog can borrow the
// snapshot reader for enrichment.
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "inventory"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
