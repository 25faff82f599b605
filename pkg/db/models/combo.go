package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Combo is a vendor-scoped pairing of at most two services sold at a
// single price and duration.
type Combo struct {
	ID              uint64          `gorm:"column:id;primaryKey;autoIncrement"`
	VendorID        uint64          `gorm:"column:vendor_id;not null;index"`
	Name            string          `gorm:"column:name;not null"`
	Price           decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	DurationMinutes int             `gorm:"column:duration_minutes;not null"`
	Services        []ComboService  `gorm:"foreignKey:ComboID"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (Combo) TableName() string { return "vendor_combo_services" }

// ComboService is a child row of Combo. VendorID is nullable for the
// same legacy reason as PackageService.
type ComboService struct {
	ID        uint64          `gorm:"column:id;primaryKey;autoIncrement"`
	ComboID   uint64          `gorm:"column:combo_id;not null;index"`
	VendorID  *uint64         `gorm:"column:vendor_id;index"`
	Name      string          `gorm:"column:name;not null"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (ComboService) TableName() string { return "combo_services" }
