package transformations

import (
	"context"
	"time"

	"github.com/glambook/glambook-backend/pkg/db"
	"github.com/glambook/glambook-backend/pkg/db/models"
	"github.com/glambook/glambook-backend/pkg/errors"
)

type AddInput struct {
	BeforeURL string  `json:"before_url" validate:"required,url"`
	AfterURL  string  `json:"after_url" validate:"required,url"`
	Caption   *string `json:"caption" validate:"omitempty,max=300"`
}

type TransformationDTO struct {
	ID        uint64    `json:"id"`
	VendorID  uint64    `json:"vendor_id"`
	BeforeURL string    `json:"before_url"`
	AfterURL  string    `json:"after_url"`
	Caption   *string   `json:"caption,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Service manages before/after showcase entries.
type Service struct {
	client *db.Client
}

func NewService(client *db.Client) *Service {
	return &Service{client: client}
}

func (s *Service) List(ctx context.Context, vendorID uint64) ([]TransformationDTO, error) {
	var rows []models.Transformation
	err := s.client.DB().WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "listing transformations")
	}
	out := make([]TransformationDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDTO(row))
	}
	return out, nil
}

func (s *Service) Add(ctx context.Context, vendorID uint64, input AddInput) (*TransformationDTO, error) {
	row := models.Transformation{
		VendorID:  vendorID,
		BeforeURL: input.BeforeURL,
		AfterURL:  input.AfterURL,
		Caption:   input.Caption,
	}
	if err := s.client.DB().WithContext(ctx).Create(&row).Error; err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "adding transformation")
	}
	dto := toDTO(row)
	return &dto, nil
}

func (s *Service) Delete(ctx context.Context, vendorID, id uint64) error {
	res := s.client.DB().WithContext(ctx).
		Where("id = ? AND vendor_id = ?", id, vendorID).
		Delete(&models.Transformation{})
	if res.Error != nil {
		return errors.Wrap(errors.CodeInternal, res.Error, "deleting transformation")
	}
	if res.RowsAffected == 0 {
		return errors.New(errors.CodeNotFound, "transformation not found")
	}
	return nil
}

func toDTO(m models.Transformation) TransformationDTO {
	return TransformationDTO{
		ID:        m.ID,
		VendorID:  m.VendorID,
		BeforeURL: m.BeforeURL,
		AfterURL:  m.AfterURL,
		Caption:   m.Caption,
		CreatedAt: m.CreatedAt,
	}
}
