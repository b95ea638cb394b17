package inventory

import (
	"strings"
	"time"

	"parts-finder/core/utils"
	"parts-finder/feature/inventory/models"
)

// fieldAliases maps each logical snapshot field to the external names it
// may arrive under, in lookup order. Source exports mix camelCase,
// PascalCase, snake_case and accented headers; tolerating them here is
// data, not control flow.
var fieldAliases = map[string][]string{
	"partNumber":      {"partNumber", "PartNumber", "part_number"},
	"zona":            {"zona", "Zona"},
	"sede":            {"sede", "Sede"},
	"almacen":         {"almacen", "Almacen", "Almacén"},
	"cantidad":        {"cantidad", "Cantidad"},
	"costoUnitario":   {"costoUnitario", "CostoUnitario", "costo_unitario"},
	"sourceUpdatedAt": {"sourceUpdatedAt", "SourceUpdatedAt", "source_updated_at"},
}

// timestampLayouts are tried in order when parsing source timestamps.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func aliasValue(item map[string]any, field string) any {
	for _, name := range fieldAliases[field] {
		if value, ok := item[name]; ok && value != nil {
			return value
		}
	}
	return nil
}

func textField(item map[string]any, field string) string {
	return strings.TrimSpace(utils.ToString(aliasValue(item, field)))
}

func numberField(item map[string]any, field string) float64 {
	return utils.ToFloat64(aliasValue(item, field))
}

func timeField(item map[string]any, field string) *time.Time {
	raw := strings.TrimSpace(utils.ToString(aliasValue(item, field)))
	if raw == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			utc := parsed.UTC()
			return &utc
		}
	}
	// Unparseable timestamps become null, never "now".
	return nil
}

// bucketKey identifies one stock bucket within a batch.
func bucketKey(row models.SnapshotRow) string {
	return row.PartNumber + "|" + row.Zona + "|" + row.Sede + "|" + row.Almacen
}

// NormalizeBatch turns heterogeneous raw inventory records into canonical
// snapshot rows. Rows without a part number are dropped silently. Within
// the batch, rows sharing a bucket key are collapsed: cantidad is summed
// (partial rows for the same bucket are additive), while costoUnitario and
// sourceUpdatedAt are point-in-time facts where the last occurrence wins.
// First-seen key order is preserved.
func NormalizeBatch(items []map[string]any) []models.SnapshotRow {
	deduped := make(map[string]int, len(items))
	rows := make([]models.SnapshotRow, 0, len(items))

	for _, item := range items {
		if item == nil {
			continue
		}

		partNumber := strings.ToUpper(textField(item, "partNumber"))
		if partNumber == "" {
			continue
		}

		row := models.SnapshotRow{
			PartNumber:      partNumber,
			Zona:            textField(item, "zona"),
			Sede:            textField(item, "sede"),
			Almacen:         textField(item, "almacen"),
			Cantidad:        numberField(item, "cantidad"),
			CostoUnitario:   numberField(item, "costoUnitario"),
			SourceUpdatedAt: timeField(item, "sourceUpdatedAt"),
		}

		key := bucketKey(row)
		if idx, ok := deduped[key]; ok {
			rows[idx].Cantidad += row.Cantidad
			rows[idx].CostoUnitario = row.CostoUnitario
			rows[idx].SourceUpdatedAt = row.SourceUpdatedAt
			continue
		}

		deduped[key] = len(rows)
		rows = append(rows, row)
	}

	return rows
}

// NormalizePartNumber folds a part number the same way the normalizer
// does, so snapshot lookups hit the same bucket as the canonical catalog
// entry.
func NormalizePartNumber(partNumber string) string {
	return strings.ToUpper(strings.TrimSpace(partNumber))
}
