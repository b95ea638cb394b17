package inventory

import (
	"context"

	"parts-finder/feature/inventory/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Reader answers summary and detail queries against the snapshot.
// Both operations are best-effort enrichment calls: a store failure yields
// a typed "connection error" result instead of an error.
type Reader struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewReader creates a new inventory reader.
func NewReader(db *gorm.DB, logger *zap.Logger) *Reader {
	return &Reader{db: db, logger: logger}
}

// Summary returns the total quantity across all buckets for the part and
// the sede holding the most stock. Zero total yields the "Sin stock"
// sentinel location.
func (r *Reader) Summary(ctx context.Context, partNumber string) models.Summary {
	key := NormalizePartNumber(partNumber)

	var total float64
	err := r.db.WithContext(ctx).
		Model(&models.SnapshotRow{}).
		Where("part_number = ?", key).
		Select("COALESCE(SUM(cantidad), 0)").
		Scan(&total).Error
	if err != nil {
		r.logger.Warn("Stock summary degraded", zap.String("partNumber", key), zap.Error(err))
		return models.Summary{Quantity: 0, Location: models.LocationConnectionError}
	}

	if total <= 0 {
		return models.Summary{Quantity: total, Location: models.LocationNoStock}
	}

	var sede string
	err = r.db.WithContext(ctx).
		Model(&models.SnapshotRow{}).
		Where("part_number = ? AND cantidad > 0", key).
		Order("cantidad DESC").
		Limit(1).
		Select("sede").
		Scan(&sede).Error
	if err != nil || sede == "" {
		if err != nil {
			r.logger.Warn("Stock location degraded", zap.String("partNumber", key), zap.Error(err))
		}
		sede = models.LocationNoStock
	}

	return models.Summary{Quantity: total, Location: sede}
}

// Detail returns every positive bucket for the part, largest first.
func (r *Reader) Detail(ctx context.Context, partNumber string) models.Detail {
	key := NormalizePartNumber(partNumber)

	var rows []models.SnapshotRow
	err := r.db.WithContext(ctx).
		Where("part_number = ? AND cantidad > 0", key).
		Order("cantidad DESC").
		Find(&rows).Error
	if err != nil {
		r.logger.Warn("Stock detail degraded", zap.String("partNumber", key), zap.Error(err))
		return models.Detail{
			PartNumber: key,
			Available:  false,
			Locations:  []models.Location{},
			Error:      "Error de conexión",
		}
	}

	locations := make([]models.Location, 0, len(rows))
	var total float64
	for _, row := range rows {
		total += row.Cantidad
		locations = append(locations, models.Location{
			PartNumber:    row.PartNumber,
			Zona:          row.Zona,
			Sede:          row.Sede,
			Almacen:       row.Almacen,
			Cantidad:      row.Cantidad,
			CostoUnitario: row.CostoUnitario,
		})
	}

	return models.Detail{
		PartNumber:    key,
		TotalQuantity: total,
		Available:     total > 0,
		Locations:     locations,
	}
}
