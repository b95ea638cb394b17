package models

import "time"

// Part is a canonical catalog entry. The part number is stored
// case-preserved and compared case-insensitively (utf8mb4 ci collation).
type Part struct {
	ID            uint      `gorm:"column:id;primaryKey" json:"id"`
	PartNumber    string    `gorm:"column:part_number;size:100;uniqueIndex;not null" json:"partNumber"`
	Description   string    `gorm:"column:description;size:255;not null" json:"description"`
	ResponseBrand string    `gorm:"column:response_brand;size:100;not null;default:Navitrans" json:"responseBrand"`
	ImageURL      string    `gorm:"column:image_url;size:255" json:"imageUrl"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"column:updated_at" json:"updatedAt"`

	CrossReferences []CrossReference `gorm:"foreignKey:PartID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName overrides the default table name.
func (Part) TableName() string {
	return "parts"
}

// CrossReference is a directed equivalence edge owned by a part. The
// compatible part number is a free-text external identifier: it may match
// another Part's number (linking the graph) or be a foreign catalog number
// with no canonical entry. One (owner, compatible number) pair exists at
// most once.
type CrossReference struct {
	ID                   uint      `gorm:"column:id;primaryKey" json:"id"`
	PartID               uint      `gorm:"column:part_id;not null;uniqueIndex:idx_owner_compatible,priority:1" json:"partId"`
	CompatiblePartNumber string    `gorm:"column:compatible_part_number;size:100;not null;uniqueIndex:idx_owner_compatible,priority:2;index" json:"compatiblePartNumber"`
	EquipmentModel       string    `gorm:"column:equipment_model;size:100;not null" json:"equipmentModel"`
	OriginalBrand        string    `gorm:"column:original_brand;size:100;not null" json:"originalBrand"`
	CreatedAt            time.Time `gorm:"column:created_at" json:"createdAt"`
}

// TableName overrides the default table name.
func (CrossReference) TableName() string {
	return "part_compatibilities"
}

// EquivalenceRow is one (owner part, edge) pair returned by search.
type EquivalenceRow struct {
	PartNumber     string `json:"partNumber"`
	Description    string `json:"description"`
	CompatiblePart string `json:"compatiblePart"`
	Equipment      string `json:"equipment"`
	Brand          string `json:"brand"`
	SpareBrand     string `json:"spareBrand"`

	// Stock enrichment, zero-valued when the inventory lookup is skipped
	// or degraded.
	Quantity float64 `json:"quantity"`
	Location string  `json:"location,omitempty"`
}

// Suggestion types, in ranking priority order.
const (
	SuggestionPart       = "part"
	SuggestionCompatible = "compatible"
	SuggestionEquipment  = "equipment"
)

// Suggestion is one autocomplete candidate.
type Suggestion struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

// PartDetail is the response for a single part lookup.
type PartDetail struct {
	PartNumber  string `json:"partNumber"`
	Description string `json:"description"`
	Brand       string `json:"brand"`
	Category    string `json:"category"`
	Stock       int    `json:"stock"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// ImportItem is one row of a compatibility import payload.
type ImportItem struct {
	PartNumber     string `json:"partNumber"`
	Description    string `json:"description"`
	CompatiblePart string `json:"compatiblePart"`
	Equipment      string `json:"equipment"`
	Brand          string `json:"brand"`
	SpareBrand     string `json:"spareBrand"`
}

// ImportStats summarizes what an import batch changed.
type ImportStats struct {
	NewParts           int `json:"newParts"`
	UpdatedParts       int `json:"updatedParts"`
	NewCompatibilities int `json:"newCompatibilities"`
}
