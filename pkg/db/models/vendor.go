package models

import (
	"time"

	"github.com/lib/pq"
)

// Vendor is the tenant record; business_email anchors every
// authorization decision and is unique by schema.
type Vendor struct {
	SrNo          uint64         `gorm:"column:sr_no;primaryKey;autoIncrement"`
	BusinessName  string         `gorm:"column:business_name;not null"`
	BusinessEmail string         `gorm:"column:business_email;uniqueIndex;not null"`
	PasswordHash  string         `gorm:"column:password_hash;not null"`
	Phone         *string        `gorm:"column:phone"`
	City          *string        `gorm:"column:city"`
	About         *string        `gorm:"column:about"`
	Categories    pq.StringArray `gorm:"column:categories;type:text[]"`
	Role          string         `gorm:"column:role;not null;default:'vendor'"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (Vendor) TableName() string { return "vendors" }
