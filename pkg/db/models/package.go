package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Package is a vendor-scoped bundle of services sold as one unit.
type Package struct {
	ID          uint64           `gorm:"column:id;primaryKey;autoIncrement"`
	VendorID    uint64           `gorm:"column:vendor_id;not null;index"`
	Name        string           `gorm:"column:name;not null"`
	Price       decimal.Decimal  `gorm:"column:price;type:numeric(10,2);not null"`
	Description *string          `gorm:"column:description"`
	Services    []PackageService `gorm:"foreignKey:PackageID"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (Package) TableName() string { return "vendor_packages_services" }

// PackageService is a child row of Package. VendorID stays nullable in
// the schema because legacy migrations produced rows without it; the
// reconciliation auditor detects and repairs those. Every write path
// stamps it with the parent's vendor id.
type PackageService struct {
	ID        uint64          `gorm:"column:id;primaryKey;autoIncrement"`
	PackageID uint64          `gorm:"column:package_id;not null;index"`
	VendorID  *uint64         `gorm:"column:vendor_id;index"`
	Name      string          `gorm:"column:name;not null"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (PackageService) TableName() string { return "package_services" }
