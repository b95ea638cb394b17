package inventory

import (
	"context"
	"fmt"
	"time"

	"parts-finder/feature/inventory/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// snapshotConflictColumns is the composite bucket key the upsert resolves
// conflicts on.
var snapshotConflictColumns = []clause.Column{
	{Name: "part_number"},
	{Name: "zona"},
	{Name: "sede"},
	{Name: "almacen"},
}

// ApplySnapshot normalizes a raw batch and applies it to the snapshot
// store inside one transaction.
//
// In replace mode the store ends up mirroring the batch exactly: every
// existing row is deleted first, so buckets absent from the batch are
// gone. In upsert mode new buckets are inserted and existing buckets get
// cantidad, costoUnitario, sourceUpdatedAt and syncedAt overwritten; other
// buckets are untouched. Any failure rolls the whole batch back, a partial
// snapshot is never observable. Applying the same batch twice is
// idempotent in either mode: quantity summation happens only inside
// NormalizeBatch, never across calls.
func ApplySnapshot(ctx context.Context, db *gorm.DB, items []map[string]any, mode string) (*models.SyncResult, error) {
	if mode != models.ModeReplace && mode != models.ModeUpsert {
		return nil, fmt.Errorf("unknown sync mode %q", mode)
	}

	rows := NormalizeBatch(items)
	syncedAt := time.Now().UTC()
	for i := range rows {
		rows[i].SyncedAt = syncedAt
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if mode == models.ModeReplace {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
				Delete(&models.SnapshotRow{}).Error; err != nil {
				return fmt.Errorf("failed to clear snapshot: %w", err)
			}
		}

		if len(rows) == 0 {
			return nil
		}

		err := tx.Clauses(clause.OnConflict{
			Columns: snapshotConflictColumns,
			DoUpdates: clause.AssignmentColumns([]string{
				"cantidad", "costo_unitario", "source_updated_at", "synced_at",
			}),
		}).Create(&rows).Error
		if err != nil {
			return fmt.Errorf("failed to write snapshot rows: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &models.SyncResult{
		Received: len(items),
		Stored:   len(rows),
		Mode:     mode,
	}, nil
}
