package models

import "time"

// Booking is a customer appointment against a vendor. Time-slot
// conflict resolution is deliberately absent; rows record intent only.
type Booking struct {
	ID            uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	VendorID      uint64    `gorm:"column:vendor_id;not null;index"`
	CustomerName  string    `gorm:"column:customer_name;not null"`
	CustomerEmail string    `gorm:"column:customer_email;not null"`
	ServiceName   string    `gorm:"column:service_name;not null"`
	ScheduledAt   time.Time `gorm:"column:scheduled_at;not null"`
	Status        string    `gorm:"column:status;not null;default:'pending'"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Booking) TableName() string { return "bookings" }
