package packages

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/glambook/glambook-backend/pkg/db/models"
)

// ChildServiceInput is one bundled service inside a package or combo
// payload. Prices arrive as strings and are normalized before save.
type ChildServiceInput struct {
	Name  string `json:"name" validate:"required,min=2,max=120"`
	Price string `json:"price" validate:"required"`
}

// CreatePackageInput is the payload for creating a package with its
// bundled services in one transaction.
type CreatePackageInput struct {
	Name        string              `json:"name" validate:"required,min=2,max=120"`
	Price       string              `json:"price" validate:"required"`
	Description *string             `json:"description" validate:"omitempty,max=2000"`
	Services    []ChildServiceInput `json:"services" validate:"required,min=1,dive"`
}

// UpdatePackageInput replaces the package head and its full child set.
type UpdatePackageInput struct {
	Name        string              `json:"name" validate:"required,min=2,max=120"`
	Price       string              `json:"price" validate:"required"`
	Description *string             `json:"description" validate:"omitempty,max=2000"`
	Services    []ChildServiceInput `json:"services" validate:"required,min=1,dive"`
}

type ChildServiceDTO struct {
	ID       uint64          `json:"id"`
	VendorID *uint64         `json:"vendor_id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
}

type PackageDTO struct {
	ID          uint64            `json:"id"`
	VendorID    uint64            `json:"vendor_id"`
	Name        string            `json:"name"`
	Price       decimal.Decimal   `json:"price"`
	Description *string           `json:"description,omitempty"`
	Services    []ChildServiceDTO `json:"services"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func toPackageDTO(m *models.Package) PackageDTO {
	children := make([]ChildServiceDTO, 0, len(m.Services))
	for _, c := range m.Services {
		children = append(children, ChildServiceDTO{
			ID:       c.ID,
			VendorID: c.VendorID,
			Name:     c.Name,
			Price:    c.Price,
		})
	}
	return PackageDTO{
		ID:          m.ID,
		VendorID:    m.VendorID,
		Name:        m.Name,
		Price:       m.Price,
		Description: m.Description,
		Services:    children,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
