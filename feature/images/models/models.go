package models

import "time"

// PartImage is the metadata row for an uploaded part image.
// Replaced images are soft deleted, the object cleanup is best effort.
type PartImage struct {
	ID              uint       `gorm:"column:id;primaryKey" json:"id"`
	PartID          uint       `gorm:"column:part_id;not null;index" json:"partId"`
	StorageProvider string     `gorm:"column:storage_provider;size:20;not null;default:s3" json:"storageProvider"`
	Bucket          string     `gorm:"column:bucket;size:100;not null" json:"bucket"`
	ObjectKey       string     `gorm:"column:object_key;size:255;not null" json:"objectKey"`
	ContentType     string     `gorm:"column:content_type;size:100;not null" json:"contentType"`
	SizeBytes       int64      `gorm:"column:size_bytes" json:"sizeBytes"`
	ChecksumSHA256  string     `gorm:"column:checksum_sha256;size:64" json:"checksumSha256"`
	IsPrimary       bool       `gorm:"column:is_primary;not null;default:false" json:"isPrimary"`
	CreatedBy       *uint      `gorm:"column:created_by" json:"createdBy"`
	CreatedAt       time.Time  `gorm:"column:created_at" json:"createdAt"`
	DeletedAt       *time.Time `gorm:"column:deleted_at" json:"deletedAt"`
}

// TableName overrides the default table name.
func (PartImage) TableName() string {
	return "part_images"
}
