package combos

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/glambook/glambook-backend/pkg/db"
	"github.com/glambook/glambook-backend/pkg/db/models"
	"github.com/glambook/glambook-backend/pkg/errors"
	"github.com/glambook/glambook-backend/pkg/logger"
)

const combosDDL = `
CREATE TABLE vendor_combo_services (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	vendor_id INTEGER NOT NULL,
	name TEXT NOT NULL,
	price NUMERIC NOT NULL,
	duration_minutes INTEGER NOT NULL,
	created_at DATETIME,
	updated_at DATETIME
);
CREATE TABLE combo_services (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	combo_id INTEGER NOT NULL,
	vendor_id INTEGER,
	name TEXT NOT NULL,
	price NUMERIC NOT NULL,
	created_at DATETIME,
	updated_at DATETIME
);`

func setupCombos(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	for _, stmt := range strings.Split(combosDDL, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		require.NoError(t, conn.Exec(stmt).Error)
	}

	logg := logger.New(logger.Options{ServiceName: "combos-test", Level: zerolog.Disabled, Output: io.Discard})
	return NewService(NewRepository(db.NewWithConn(conn)), logg), conn
}

func glowComboInput() CreateComboInput {
	return CreateComboInput{
		Name:            "Glow Combo",
		Price:           "1500",
		DurationMinutes: 90,
		Services: []ChildServiceInput{
			{Name: "Facial", Price: "1000"},
			{Name: "Threading", Price: "500"},
		},
	}
}

func TestCreateComboRollsBackWhenChildInsertFails(t *testing.T) {
	svc, conn := setupCombos(t)
	require.NoError(t, conn.Exec(
		"CREATE UNIQUE INDEX idx_combo_services_name ON combo_services (combo_id, name)",
	).Error)

	// Both children pass validation; the second violates the unique
	// index mid-transaction, after the parent row is already written.
	input := glowComboInput()
	input.Services = []ChildServiceInput{
		{Name: "Facial", Price: "1000"},
		{Name: "Facial", Price: "500"},
	}

	_, err := svc.Create(context.Background(), 3, input)
	require.Error(t, err)
	assert.Equal(t, errors.CodeInternal, errors.As(err).Code())

	var parents, children int64
	require.NoError(t, conn.Model(&models.Combo{}).Count(&parents).Error)
	require.NoError(t, conn.Model(&models.ComboService{}).Count(&children).Error)
	assert.Zero(t, parents)
	assert.Zero(t, children)
}

func TestCreateComboStampsChildVendorID(t *testing.T) {
	svc, conn := setupCombos(t)

	dto, err := svc.Create(context.Background(), 3, glowComboInput())
	require.NoError(t, err)
	require.Len(t, dto.Services, 2)

	var rows []models.ComboService
	require.NoError(t, conn.Where("combo_id = ?", dto.ID).Find(&rows).Error)
	require.Len(t, rows, 2)
	for _, row := range rows {
		require.NotNil(t, row.VendorID)
		assert.Equal(t, uint64(3), *row.VendorID)
	}
}

func TestCreateComboRejectsThreeServices(t *testing.T) {
	svc, _ := setupCombos(t)

	input := glowComboInput()
	input.Services = append(input.Services, ChildServiceInput{Name: "Cleanup", Price: "300"})

	_, err := svc.Create(context.Background(), 3, input)
	require.Error(t, err)
	assert.Equal(t, errors.CodeValidation, errors.As(err).Code())
}

func TestCreateComboRejectsBadDurationAndPrice(t *testing.T) {
	svc, _ := setupCombos(t)

	input := glowComboInput()
	input.DurationMinutes = 0
	_, err := svc.Create(context.Background(), 3, input)
	require.Error(t, err)
	assert.Equal(t, errors.CodeValidation, errors.As(err).Code())

	input = glowComboInput()
	input.Price = "0"
	_, err = svc.Create(context.Background(), 3, input)
	require.Error(t, err)
	assert.Equal(t, errors.CodeValidation, errors.As(err).Code())
}

func TestUpdateComboReplacesChildren(t *testing.T) {
	svc, conn := setupCombos(t)

	created, err := svc.Create(context.Background(), 3, glowComboInput())
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), 3, created.ID, UpdateComboInput{
		Name:            "Glow Combo Plus",
		Price:           "1800",
		DurationMinutes: 120,
		Services: []ChildServiceInput{
			{Name: "Gold Facial", Price: "1800"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Glow Combo Plus", updated.Name)
	require.Len(t, updated.Services, 1)

	var count int64
	require.NoError(t, conn.Model(&models.ComboService{}).Where("combo_id = ?", created.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestComboOwnershipScoping(t *testing.T) {
	svc, _ := setupCombos(t)

	created, err := svc.Create(context.Background(), 3, glowComboInput())
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), 4, created.ID)
	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.As(err).Code())

	err = svc.Delete(context.Background(), 4, created.ID)
	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.As(err).Code())

	require.NoError(t, svc.Delete(context.Background(), 3, created.ID))
}

func TestDeleteComboRemovesChildren(t *testing.T) {
	svc, conn := setupCombos(t)

	created, err := svc.Create(context.Background(), 3, glowComboInput())
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), 3, created.ID))

	var count int64
	require.NoError(t, conn.Model(&models.ComboService{}).Where("combo_id = ?", created.ID).Count(&count).Error)
	assert.Zero(t, count)
}
