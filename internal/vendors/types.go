package vendors

import (
	"time"

	"github.com/glambook/glambook-backend/pkg/db/models"
)

// RegisterInput is the payload accepted at signup.
type RegisterInput struct {
	BusinessName  string   `json:"business_name" validate:"required,min=2,max=120"`
	BusinessEmail string   `json:"business_email" validate:"required,email"`
	Password      string   `json:"password" validate:"required,min=8,max=128"`
	Phone         *string  `json:"phone" validate:"omitempty,min=7,max=20"`
	City          *string  `json:"city" validate:"omitempty,max=80"`
	Categories    []string `json:"categories" validate:"omitempty,dive,min=2,max=40"`
}

// LoginInput authenticates a vendor by business email.
type LoginInput struct {
	BusinessEmail string `json:"business_email" validate:"required,email"`
	Password      string `json:"password" validate:"required"`
}

// UpdateProfileInput carries the mutable profile fields. Absent pointers
// leave the column untouched; business_email is deliberately missing.
type UpdateProfileInput struct {
	BusinessName *string   `json:"business_name" validate:"omitempty,min=2,max=120"`
	Phone        *string   `json:"phone" validate:"omitempty,min=7,max=20"`
	City         *string   `json:"city" validate:"omitempty,max=80"`
	About        *string   `json:"about" validate:"omitempty,max=2000"`
	Categories   *[]string `json:"categories" validate:"omitempty,dive,min=2,max=40"`
}

// VendorDTO is the outward shape of a vendor profile. The password hash
// never leaves the service layer.
type VendorDTO struct {
	SrNo          uint64    `json:"sr_no"`
	BusinessName  string    `json:"business_name"`
	BusinessEmail string    `json:"business_email"`
	Phone         *string   `json:"phone,omitempty"`
	City          *string   `json:"city,omitempty"`
	About         *string   `json:"about,omitempty"`
	Categories    []string  `json:"categories,omitempty"`
	Role          string    `json:"role"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// AuthResult bundles a freshly minted access token with its vendor.
type AuthResult struct {
	Token  string    `json:"token"`
	Vendor VendorDTO `json:"vendor"`
}

func toDTO(v *models.Vendor) VendorDTO {
	return VendorDTO{
		SrNo:          v.SrNo,
		BusinessName:  v.BusinessName,
		BusinessEmail: v.BusinessEmail,
		Phone:         v.Phone,
		City:          v.City,
		About:         v.About,
		Categories:    []string(v.Categories),
		Role:          v.Role,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}
