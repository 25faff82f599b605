package models

import "time"

// Transformation is a vendor-scoped before/after showcase entry.
type Transformation struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	VendorID  uint64    `gorm:"column:vendor_id;not null;index"`
	BeforeURL string    `gorm:"column:before_url;not null"`
	AfterURL  string    `gorm:"column:after_url;not null"`
	Caption   *string   `gorm:"column:caption"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Transformation) TableName() string { return "transformations" }
