package gallery

import (
	"context"
	"time"

	"github.com/glambook/glambook-backend/pkg/db"
	"github.com/glambook/glambook-backend/pkg/db/models"
	"github.com/glambook/glambook-backend/pkg/errors"
)

type AddImageInput struct {
	URL     string  `json:"url" validate:"required,url"`
	Caption *string `json:"caption" validate:"omitempty,max=300"`
}

type ImageDTO struct {
	ID        uint64    `json:"id"`
	VendorID  uint64    `json:"vendor_id"`
	URL       string    `json:"url"`
	Caption   *string   `json:"caption,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Service manages a vendor's portfolio gallery.
type Service struct {
	client *db.Client
}

func NewService(client *db.Client) *Service {
	return &Service{client: client}
}

func (s *Service) List(ctx context.Context, vendorID uint64) ([]ImageDTO, error) {
	var rows []models.GalleryImage
	err := s.client.DB().WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "listing gallery images")
	}
	out := make([]ImageDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, toImageDTO(row))
	}
	return out, nil
}

func (s *Service) Add(ctx context.Context, vendorID uint64, input AddImageInput) (*ImageDTO, error) {
	row := models.GalleryImage{
		VendorID: vendorID,
		URL:      input.URL,
		Caption:  input.Caption,
	}
	if err := s.client.DB().WithContext(ctx).Create(&row).Error; err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "adding gallery image")
	}
	dto := toImageDTO(row)
	return &dto, nil
}

func (s *Service) Delete(ctx context.Context, vendorID, imageID uint64) error {
	res := s.client.DB().WithContext(ctx).
		Where("id = ? AND vendor_id = ?", imageID, vendorID).
		Delete(&models.GalleryImage{})
	if res.Error != nil {
		return errors.Wrap(errors.CodeInternal, res.Error, "deleting gallery image")
	}
	if res.RowsAffected == 0 {
		return errors.New(errors.CodeNotFound, "gallery image not found")
	}
	return nil
}

func toImageDTO(m models.GalleryImage) ImageDTO {
	return ImageDTO{
		ID:        m.ID,
		VendorID:  m.VendorID,
		URL:       m.URL,
		Caption:   m.Caption,
		CreatedAt: m.CreatedAt,
	}
}
