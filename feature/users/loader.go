package users

import (
	"time"

	"parts-finder/core/audit"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new users feature.
func NewFeature(db *gorm.DB, logger *zap.Logger, jwtSecret string, jwtTTL time.Duration, recorder *audit.Recorder, session fiber.Handler) *Feature {
	svc := NewService(db, logger, jwtSecret, jwtTTL)
	h := NewHandler(svc, recorder, session)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "users"
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
