package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/glambook/glambook-backend/pkg/db/models"
	"github.com/glambook/glambook-backend/pkg/money"
)

// CreateServiceInput is the payload for adding a standalone service.
// Price arrives as a string so legacy clients that still send
// currency-prefixed values keep working; it is normalized before save.
type CreateServiceInput struct {
	Name            string  `json:"name" validate:"required,min=2,max=120"`
	Category        string  `json:"category" validate:"required,min=2,max=60"`
	Price           string  `json:"price" validate:"required"`
	DurationMinutes int     `json:"duration_minutes" validate:"omitempty,min=0,max=1440"`
	Description     *string `json:"description" validate:"omitempty,max=2000"`
}

// ServiceDTO is the outward shape of a service. PriceAmount is the
// normalized decimal; Price keeps the stored raw string for clients that
// still render it verbatim.
type ServiceDTO struct {
	ID              uint64          `json:"id"`
	VendorID        uint64          `json:"vendor_id"`
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	Price           string          `json:"price"`
	PriceAmount     decimal.Decimal `json:"price_amount"`
	DurationMinutes int             `json:"duration_minutes"`
	Description     *string         `json:"description,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func toServiceDTO(m *models.Service) ServiceDTO {
	amount, err := money.ParseAmount(m.Price)
	if err != nil {
		// Legacy rows can hold junk; surface zero rather than failing
		// the whole listing.
		amount = decimal.Zero
	}
	return ServiceDTO{
		ID:              m.ID,
		VendorID:        m.VendorID,
		Name:            m.Name,
		Category:        m.Category,
		Price:           m.Price,
		PriceAmount:     amount,
		DurationMinutes: m.DurationMinutes,
		Description:     m.Description,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
