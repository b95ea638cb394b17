package models

import "time"

// SnapshotRow is one stock bucket of the canonical inventory snapshot.
// The (part number, zona, sede, almacen) tuple is unique; cantidad is not
// range-checked, negative source values pass through unchanged.
type SnapshotRow struct {
	ID              uint       `gorm:"column:id;primaryKey" json:"-"`
	PartNumber      string     `gorm:"column:part_number;size:100;not null;uniqueIndex:idx_inventory_bucket,priority:1" json:"partNumber"`
	Zona            string     `gorm:"column:zona;size:100;not null;default:'';uniqueIndex:idx_inventory_bucket,priority:2" json:"zona"`
	Sede            string     `gorm:"column:sede;size:100;not null;default:'';uniqueIndex:idx_inventory_bucket,priority:3" json:"sede"`
	Almacen         string     `gorm:"column:almacen;size:100;not null;default:'';uniqueIndex:idx_inventory_bucket,priority:4" json:"almacen"`
	Cantidad        float64    `gorm:"column:cantidad" json:"cantidad"`
	CostoUnitario   float64    `gorm:"column:costo_unitario" json:"costoUnitario"`
	SourceUpdatedAt *time.Time `gorm:"column:source_updated_at" json:"sourceUpdatedAt"`
	SyncedAt        time.Time  `gorm:"column:synced_at" json:"syncedAt"`
}

// TableName overrides the default table name.
func (SnapshotRow) TableName() string {
	return "inventory_availability"
}

// Sync modes accepted by the reconciler.
const (
	ModeReplace = "replace"
	ModeUpsert  = "upsert"
)

// SyncResult reports what a snapshot application did. received counts the
// raw payload rows, stored the normalized deduplicated rows written; the
// difference makes silently dropped malformed rows observable.
type SyncResult struct {
	Received int    `json:"received"`
	Stored   int    `json:"stored"`
	Mode     string `json:"mode"`
}

// Sentinel location values for the stock summary. They are data consumed
// by the frontend, not log text, hence Spanish.
const (
	LocationNoStock         = "Sin stock"
	LocationConnectionError = "Error conexión"
)

// Summary is the per-part stock enrichment attached to search results.
type Summary struct {
	Quantity float64 `json:"quantity"`
	Location string  `json:"location"`
}

// Location is one positive stock bucket in a detail response.
type Location struct {
	PartNumber    string  `json:"partNumber"`
	Zona          string  `json:"zona"`
	Sede          string  `json:"sede"`
	Almacen       string  `json:"almacen"`
	Cantidad      float64 `json:"cantidad"`
	CostoUnitario float64 `json:"costoUnitario"`
}

// Detail is the full per-location stock breakdown for one part.
type Detail struct {
	PartNumber    string     `json:"partNumber"`
	TotalQuantity float64    `json:"totalQuantity"`
	Available     bool       `json:"available"`
	Locations     []Location `json:"locations"`
	Error         string     `json:"error,omitempty"`
}
