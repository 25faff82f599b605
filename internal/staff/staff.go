package staff

import (
	"context"
	"time"

	"github.com/glambook/glambook-backend/pkg/db"
	"github.com/glambook/glambook-backend/pkg/db/models"
	"github.com/glambook/glambook-backend/pkg/errors"
)

type AddMemberInput struct {
	Name  string  `json:"name" validate:"required,min=2,max=120"`
	Role  string  `json:"role" validate:"required,min=2,max=60"`
	Phone *string `json:"phone" validate:"omitempty,min=7,max=20"`
}

type UpdateMemberInput struct {
	Name  *string `json:"name" validate:"omitempty,min=2,max=120"`
	Role  *string `json:"role" validate:"omitempty,min=2,max=60"`
	Phone *string `json:"phone" validate:"omitempty,min=7,max=20"`
}

type MemberDTO struct {
	ID        uint64    `json:"id"`
	VendorID  uint64    `json:"vendor_id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Phone     *string   `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Service manages a vendor's staff roster.
type Service struct {
	client *db.Client
}

func NewService(client *db.Client) *Service {
	return &Service{client: client}
}

func (s *Service) List(ctx context.Context, vendorID uint64) ([]MemberDTO, error) {
	var rows []models.StaffMember
	err := s.client.DB().WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "listing staff")
	}
	out := make([]MemberDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, toMemberDTO(row))
	}
	return out, nil
}

func (s *Service) Add(ctx context.Context, vendorID uint64, input AddMemberInput) (*MemberDTO, error) {
	row := models.StaffMember{
		VendorID: vendorID,
		Name:     input.Name,
		Role:     input.Role,
		Phone:    input.Phone,
	}
	if err := s.client.DB().WithContext(ctx).Create(&row).Error; err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "adding staff member")
	}
	dto := toMemberDTO(row)
	return &dto, nil
}

func (s *Service) Update(ctx context.Context, vendorID, memberID uint64, input UpdateMemberInput) (*MemberDTO, error) {
	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Role != nil {
		updates["role"] = *input.Role
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
	}
	if len(updates) == 0 {
		return nil, errors.New(errors.CodeValidation, "no staff fields to update")
	}

	res := s.client.DB().WithContext(ctx).
		Model(&models.StaffMember{}).
		Where("id = ? AND vendor_id = ?", memberID, vendorID).
		Updates(updates)
	if res.Error != nil {
		return nil, errors.Wrap(errors.CodeInternal, res.Error, "updating staff member")
	}
	if res.RowsAffected == 0 {
		return nil, errors.New(errors.CodeNotFound, "staff member not found")
	}

	var row models.StaffMember
	if err := s.client.DB().WithContext(ctx).First(&row, "id = ?", memberID).Error; err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "reloading staff member")
	}
	dto := toMemberDTO(row)
	return &dto, nil
}

func (s *Service) Delete(ctx context.Context, vendorID, memberID uint64) error {
	res := s.client.DB().WithContext(ctx).
		Where("id = ? AND vendor_id = ?", memberID, vendorID).
		Delete(&models.StaffMember{})
	if res.Error != nil {
		return errors.Wrap(errors.CodeInternal, res.Error, "deleting staff member")
	}
	if res.RowsAffected == 0 {
		return errors.New(errors.CodeNotFound, "staff member not found")
	}
	return nil
}

func toMemberDTO(m models.StaffMember) MemberDTO {
	return MemberDTO{
		ID:        m.ID,
		VendorID:  m.VendorID,
		Name:      m.Name,
		Role:      m.Role,
		Phone:     m.Phone,
		CreatedAt: m.CreatedAt,
	}
}
