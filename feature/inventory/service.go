package inventory

import (
	"context"

	"parts-finder/feature/inventory/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles inventory snapshot operations.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
	reader *Reader
}

// NewService creates a new inventory service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{
		db:     db,
		logger: logger,
		reader: NewReader(db, logger),
	}
}

// Reader exposes the snapshot reader for enrichment consumers.
func (s *Service) Reader() *Reader {
	return s.reader
}

// ApplySnapshot reconciles a raw batch into the snapshot store.
func (s *Service) ApplySnapshot(ctx context.Context, items []map[string]any, mode string) (*models.SyncResult, error) {
	return ApplySnapshot(ctx, s.db, items, mode)
}

// Detail returns the per-location stock breakdown for a part.
func (s *Service) Detail(ctx context.Context, partNumber string) models.Detail {
	return s.reader.Detail(ctx, partNumber)
}
