package bookings

import (
	"context"
	"time"

	"github.com/glambook/glambook-backend/internal/identity"
	"github.com/glambook/glambook-backend/pkg/db"
	"github.com/glambook/glambook-backend/pkg/db/models"
	"github.com/glambook/glambook-backend/pkg/errors"
)

// Booking lifecycle states. There is no slot conflict detection; two
// bookings can share a time and the vendor sorts it out.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusDone      = "done"
)

// CreateBookingInput is submitted by an unauthenticated customer against
// a vendor chosen by id in the path.
type CreateBookingInput struct {
	CustomerName  string    `json:"customer_name" validate:"required,min=2,max=120"`
	CustomerEmail string    `json:"customer_email" validate:"required,email"`
	ServiceName   string    `json:"service_name" validate:"required,min=2,max=120"`
	ScheduledAt   time.Time `json:"scheduled_at" validate:"required"`
}

type UpdateStatusInput struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled done"`
}

type BookingDTO struct {
	ID            uint64    `json:"id"`
	VendorID      uint64    `json:"vendor_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	ServiceName   string    `json:"service_name"`
	ScheduledAt   time.Time `json:"scheduled_at"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// Service records customer bookings and lets the owning vendor work
// through them.
type Service struct {
	client *db.Client
	now    func() time.Time
}

func NewService(client *db.Client) *Service {
	return &Service{client: client, now: time.Now}
}

// Create is the public entry point: the target vendor comes from the
// request path, not from any token.
func (s *Service) Create(ctx context.Context, vendorID uint64, input CreateBookingInput) (*BookingDTO, error) {
	if input.ScheduledAt.Before(s.now()) {
		return nil, errors.New(errors.CodeValidation, "booking time is in the past")
	}

	row := models.Booking{
		VendorID:      vendorID,
		CustomerName:  input.CustomerName,
		CustomerEmail: identity.NormalizeEmail(input.CustomerEmail),
		ServiceName:   input.ServiceName,
		ScheduledAt:   input.ScheduledAt,
		Status:        StatusPending,
	}
	if err := s.client.DB().WithContext(ctx).Create(&row).Error; err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "creating booking")
	}
	dto := toBookingDTO(row)
	return &dto, nil
}

func (s *Service) List(ctx context.Context, vendorID uint64) ([]BookingDTO, error) {
	var rows []models.Booking
	err := s.client.DB().WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("scheduled_at").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "listing bookings")
	}
	out := make([]BookingDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, toBookingDTO(row))
	}
	return out, nil
}

func (s *Service) UpdateStatus(ctx context.Context, vendorID, bookingID uint64, input UpdateStatusInput) (*BookingDTO, error) {
	switch input.Status {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusDone:
	default:
		return nil, errors.New(errors.CodeValidation, "unknown booking status")
	}

	res := s.client.DB().WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND vendor_id = ?", bookingID, vendorID).
		Update("status", input.Status)
	if res.Error != nil {
		return nil, errors.Wrap(errors.CodeInternal, res.Error, "updating booking status")
	}
	if res.RowsAffected == 0 {
		return nil, errors.New(errors.CodeNotFound, "booking not found")
	}

	var row models.Booking
	if err := s.client.DB().WithContext(ctx).First(&row, "id = ?", bookingID).Error; err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "reloading booking")
	}
	dto := toBookingDTO(row)
	return &dto, nil
}

func toBookingDTO(m models.Booking) BookingDTO {
	return BookingDTO{
		ID:            m.ID,
		VendorID:      m.VendorID,
		CustomerName:  m.CustomerName,
		CustomerEmail: m.CustomerEmail,
		ServiceName:   m.ServiceName,
		ScheduledAt:   m.ScheduledAt,
		Status:        m.Status,
		CreatedAt:     m.CreatedAt,
	}
}
