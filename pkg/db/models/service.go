package models

import "time"

// Service is a standalone vendor-scoped offering. Price is stored as
// text: legacy rows carry currency-prefixed strings ("₹8,000") that are
// normalized on read, never rewritten in place.
type Service struct {
	ID              uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	VendorID        uint64    `gorm:"column:vendor_id;not null;index"`
	Name            string    `gorm:"column:name;not null"`
	Category        string    `gorm:"column:category;not null"`
	Price           string    `gorm:"column:price;not null"`
	DurationMinutes int       `gorm:"column:duration_minutes;not null;default:0"`
	Description     *string   `gorm:"column:description"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Service) TableName() string { return "services" }
