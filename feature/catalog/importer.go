package catalog

import (
	"context"
	"errors"
	"strings"

	"parts-finder/feature/catalog/models"

	"gorm.io/gorm"
)

// defaultResponseBrand is applied when an import row carries no brand of
// its own.
const defaultResponseBrand = "Navitrans"

// importBatch applies a compatibility import: each row upserts the owning
// part (description and brand follow the latest import) and inserts the
// edge unless the (owner, compatible number) pair already exists. Rows
// without a part number are skipped. The whole batch is one transaction.
func importBatch(ctx context.Context, db *gorm.DB, items []models.ImportItem) (models.ImportStats, error) {
	var stats models.ImportStats

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			partNumber := strings.TrimSpace(item.PartNumber)
			if partNumber == "" {
				continue
			}

			brand := item.SpareBrand
			if brand == "" {
				brand = defaultResponseBrand
			}

			var part models.Part
			err := tx.Where("part_number = ?", partNumber).First(&part).Error
			switch {
			case err == nil:
				part.Description = item.Description
				part.ResponseBrand = brand
				if err := tx.Model(&part).Updates(map[string]any{
					"description":    part.Description,
					"response_brand": part.ResponseBrand,
				}).Error; err != nil {
					return err
				}
				stats.UpdatedParts++
			case errors.Is(err, gorm.ErrRecordNotFound):
				part = models.Part{
					PartNumber:    partNumber,
					Description:   item.Description,
					ResponseBrand: brand,
				}
				if err := tx.Create(&part).Error; err != nil {
					return err
				}
				stats.NewParts++
			default:
				return err
			}

			if item.CompatiblePart == "" {
				continue
			}

			var existing models.CrossReference
			err = tx.Where("part_id = ? AND compatible_part_number = ?", part.ID, item.CompatiblePart).
				First(&existing).Error
			switch {
			case err == nil:
				// Re-importing the same pair is a no-op.
			case errors.Is(err, gorm.ErrRecordNotFound):
				edge := models.CrossReference{
					PartID:               part.ID,
					CompatiblePartNumber: item.CompatiblePart,
					EquipmentModel:       item.Equipment,
					OriginalBrand:        item.Brand,
				}
				if err := tx.Create(&edge).Error; err != nil {
					return err
				}
				stats.NewCompatibilities++
			default:
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.ImportStats{}, err
	}

	return stats, nil
}
