package bookings

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/glambook/glambook-backend/pkg/db"
	"github.com/glambook/glambook-backend/pkg/errors"
)

const bookingsDDL = `
CREATE TABLE bookings (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	vendor_id INTEGER NOT NULL,
	customer_name TEXT NOT NULL,
	customer_email TEXT NOT NULL,
	service_name TEXT NOT NULL,
	scheduled_at DATETIME NOT NULL,
	status TEXT NOT NULL DEFAULT 'pending',
	created_at DATETIME,
	updated_at DATETIME
);`

func setupBookings(t *testing.T) *Service {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.Exec(bookingsDDL).Error)
	return NewService(db.NewWithConn(conn))
}

func slot() time.Time {
	return time.Now().Add(48 * time.Hour).Truncate(time.Minute)
}

func TestCreateBookingStartsPending(t *testing.T) {
	svc := setupBookings(t)

	booking, err := svc.Create(context.Background(), 9, CreateBookingInput{
		CustomerName:  "Priya",
		CustomerEmail: "Priya@Example.com",
		ServiceName:   "Bridal Makeup",
		ScheduledAt:   slot(),
	})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, booking.Status)
	assert.Equal(t, "priya@example.com", booking.CustomerEmail)
	assert.Equal(t, uint64(9), booking.VendorID)
}

func TestCreateBookingRejectsPastSlot(t *testing.T) {
	svc := setupBookings(t)
	frozen := time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return frozen }

	_, err := svc.Create(context.Background(), 9, CreateBookingInput{
		CustomerName:  "Priya",
		CustomerEmail: "priya@example.com",
		ServiceName:   "Bridal Makeup",
		ScheduledAt:   frozen.Add(-time.Minute),
	})
	require.Error(t, err)
	assert.Equal(t, errors.CodeValidation, errors.As(err).Code())

	booking, err := svc.Create(context.Background(), 9, CreateBookingInput{
		CustomerName:  "Priya",
		CustomerEmail: "priya@example.com",
		ServiceName:   "Bridal Makeup",
		ScheduledAt:   frozen.Add(time.Minute),
	})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, booking.Status)
}

func TestBookingStatusIsVendorScoped(t *testing.T) {
	svc := setupBookings(t)

	booking, err := svc.Create(context.Background(), 9, CreateBookingInput{
		CustomerName:  "Priya",
		CustomerEmail: "priya@example.com",
		ServiceName:   "Bridal Makeup",
		ScheduledAt:   slot(),
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), 10, booking.ID, UpdateStatusInput{Status: StatusConfirmed})
	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.As(err).Code())

	updated, err := svc.UpdateStatus(context.Background(), 9, booking.ID, UpdateStatusInput{Status: StatusConfirmed})
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, updated.Status)

	mine, err := svc.List(context.Background(), 9)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	theirs, err := svc.List(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, theirs)
}
