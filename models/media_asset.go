package models

import (
	"time"

	"github.com/google/uuid"
)

// MediaAsset is an uploaded image referenced by rich-card templates.
// Width and height are recorded after decode so card layouts can be
// validated without re-reading the blob.
type MediaAsset struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UUID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_media_assets_uuid" json:"uuid"`
	CustomerID uint      `gorm:"not null;index:idx_media_assets_customer_id" json:"customer_id"`
	Customer   *Customer `gorm:"foreignKey:CustomerID;references:ID" json:"customer,omitempty"`

	FileName    string `gorm:"size:255;not null" json:"file_name"`
	ContentType string `gorm:"size:100;not null" json:"content_type"`
	SizeBytes   int64  `gorm:"not null" json:"size_bytes"`
	Width       int    `gorm:"not null;default:0" json:"width"`
	Height      int    `gorm:"not null;default:0" json:"height"`
	StoragePath string `gorm:"size:512;not null" json:"storage_path"`
	PublicURL   string `gorm:"size:512;not null" json:"public_url"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
}

func (MediaAsset) TableName() string {
	return "media_assets"
}

// MediaAssetFilter represents filter criteria for media asset queries
type MediaAssetFilter struct {
	ID          *uint
	UUID        *uuid.UUID
	CustomerID  *uint
	ContentType *string
}
