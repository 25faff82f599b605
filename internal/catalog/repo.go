package catalog

import (
	"context"
	stderrors "errors"

	"gorm.io/gorm"

	"github.com/glambook/glambook-backend/pkg/db"
	"github.com/glambook/glambook-backend/pkg/db/models"
	"github.com/glambook/glambook-backend/pkg/errors"
)

// Repository persists standalone services. Every query is vendor-scoped;
// there is deliberately no unscoped listing.
type Repository struct {
	client *db.Client
}

func NewRepository(client *db.Client) *Repository {
	return &Repository{client: client}
}

func (r *Repository) ListByVendor(ctx context.Context, vendorID uint64) ([]models.Service, error) {
	var services []models.Service
	err := r.client.DB().WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("id").
		Find(&services).Error
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "listing services")
	}
	return services, nil
}

func (r *Repository) FindOwned(ctx context.Context, vendorID, serviceID uint64) (*models.Service, error) {
	var service models.Service
	err := r.client.DB().WithContext(ctx).
		Where("id = ? AND vendor_id = ?", serviceID, vendorID).
		First(&service).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "service not found")
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "finding service")
	}
	return &service, nil
}

func (r *Repository) Create(ctx context.Context, service *models.Service) error {
	if err := r.client.DB().WithContext(ctx).Create(service).Error; err != nil {
		return errors.Wrap(errors.CodeInternal, err, "creating service")
	}
	return nil
}

// Delete removes a service only when the caller's vendor id matches the
// row; a zero row count means the row is missing or owned by someone
// else, and both look like NOT_FOUND.
func (r *Repository) Delete(ctx context.Context, vendorID, serviceID uint64) error {
	res := r.client.DB().WithContext(ctx).
		Where("id = ? AND vendor_id = ?", serviceID, vendorID).
		Delete(&models.Service{})
	if res.Error != nil {
		return errors.Wrap(errors.CodeInternal, res.Error, "deleting service")
	}
	if res.RowsAffected == 0 {
		return errors.New(errors.CodeNotFound, "service not found")
	}
	return nil
}
