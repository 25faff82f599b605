package models

import "time"

// StaffMember is a vendor-scoped employee record.
type StaffMember struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	VendorID  uint64    `gorm:"column:vendor_id;not null;index"`
	Name      string    `gorm:"column:name;not null"`
	Role      string    `gorm:"column:role;not null"`
	Phone     *string   `gorm:"column:phone"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (StaffMember) TableName() string { return "staff_members" }
