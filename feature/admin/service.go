package admin

import (
	"context"

	auditcore "parts-finder/core/audit"
	"parts-finder/core/storage"
	catalogmodels "parts-finder/feature/catalog/models"
	imagemodels "parts-finder/feature/images/models"
	invmodels "parts-finder/feature/inventory/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ResetResult reports what a data reset removed.
type ResetResult struct {
	Parts           int64 `json:"parts"`
	Compatibilities int64 `json:"compatibilities"`
	InventoryRows   int64 `json:"inventoryRows"`
	Images          int64 `json:"images"`
	ActivityLogs    int64 `json:"activityLogs"`
}

// Service performs destructive maintenance operations.
type Service struct {
	db     *gorm.DB
	client storage.Client
	bucket string
	logger *zap.Logger
}

// NewService creates a new admin service.
func NewService(db *gorm.DB, client storage.Client, bucket string, logger *zap.Logger) *Service {
	return &Service{db: db, client: client, bucket: bucket, logger: logger}
}

// ResetData wipes catalog, inventory, image and audit data in one
// transaction, then removes the orphaned image objects best effort. User
// accounts survive the reset.
func (s *Service) ResetData(ctx context.Context) (*ResetResult, error) {
	result := &ResetResult{}

	var objectKeys []string
	if err := s.db.WithContext(ctx).
		Model(&imagemodels.PartImage{}).
		Pluck("object_key", &objectKeys).Error; err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tables := []struct {
			model any
			count *int64
		}{
			{&imagemodels.PartImage{}, &result.Images},
			{&catalogmodels.CrossReference{}, &result.Compatibilities},
			{&invmodels.SnapshotRow{}, &result.InventoryRows},
			{&auditcore.ActivityLog{}, &result.ActivityLogs},
			{&catalogmodels.Part{}, &result.Parts},
		}

		for _, table := range tables {
			if err := tx.Model(table.model).Count(table.count).Error; err != nil {
				return err
			}
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
				Delete(table.model).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(objectKeys) > 0 {
		if err := storage.RemoveObjectKeys(ctx, s.client, s.bucket, objectKeys); err != nil {
			// The database is already clean, a stale object is tolerable.
			s.logger.Warn("Failed to remove image objects during reset",
				zap.Int("count", len(objectKeys)), zap.Error(err))
		}
	}

	return result, nil
}
