package models

import "time"

// GalleryImage is a vendor-scoped portfolio image.
type GalleryImage struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	VendorID  uint64    `gorm:"column:vendor_id;not null;index"`
	URL       string    `gorm:"column:url;not null"`
	Caption   *string   `gorm:"column:caption"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (GalleryImage) TableName() string { return "gallery_images" }
