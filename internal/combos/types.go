package combos

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/glambook/glambook-backend/pkg/db/models"
)

// ChildServiceInput is one of the at-most-two services in a combo.
type ChildServiceInput struct {
	Name  string `json:"name" validate:"required,min=2,max=120"`
	Price string `json:"price" validate:"required"`
}

type CreateComboInput struct {
	Name            string              `json:"name" validate:"required,min=2,max=120"`
	Price           string              `json:"price" validate:"required"`
	DurationMinutes int                 `json:"duration_minutes" validate:"required,min=1,max=1440"`
	Services        []ChildServiceInput `json:"services" validate:"required,min=1,max=2,dive"`
}

type UpdateComboInput struct {
	Name            string              `json:"name" validate:"required,min=2,max=120"`
	Price           string              `json:"price" validate:"required"`
	DurationMinutes int                 `json:"duration_minutes" validate:"required,min=1,max=1440"`
	Services        []ChildServiceInput `json:"services" validate:"required,min=1,max=2,dive"`
}

type ChildServiceDTO struct {
	ID       uint64          `json:"id"`
	VendorID *uint64         `json:"vendor_id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
}

type ComboDTO struct {
	ID              uint64            `json:"id"`
	VendorID        uint64            `json:"vendor_id"`
	Name            string            `json:"name"`
	Price           decimal.Decimal   `json:"price"`
	DurationMinutes int               `json:"duration_minutes"`
	Services        []ChildServiceDTO `json:"services"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

func toComboDTO(m *models.Combo) ComboDTO {
	children := make([]ChildServiceDTO, 0, len(m.Services))
	for _, c := range m.Services {
		children = append(children, ChildServiceDTO{
			ID:       c.ID,
			VendorID: c.VendorID,
			Name:     c.Name,
			Price:    c.Price,
		})
	}
	return ComboDTO{
		ID:              m.ID,
		VendorID:        m.VendorID,
		Name:            m.Name,
		Price:           m.Price,
		DurationMinutes: m.DurationMinutes,
		Services:        children,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
