package vendors

import (
	"context"
	stderrors "errors"

	"gorm.io/gorm"

	"github.com/glambook/glambook-backend/internal/identity"
	"github.com/glambook/glambook-backend/pkg/db"
	"github.com/glambook/glambook-backend/pkg/db/models"
	"github.com/glambook/glambook-backend/pkg/errors"
)

// Repository persists vendor rows.
type Repository struct {
	client *db.Client
}

func NewRepository(client *db.Client) *Repository {
	return &Repository{client: client}
}

func (r *Repository) Create(ctx context.Context, vendor *models.Vendor) error {
	if err := r.client.DB().WithContext(ctx).Create(vendor).Error; err != nil {
		if db.IsUniqueViolation(err, "business_email") {
			return errors.Wrap(errors.CodeConflict, err, "business email already registered")
		}
		return errors.Wrap(errors.CodeInternal, err, "creating vendor")
	}
	return nil
}

func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.Vendor, error) {
	var vendor models.Vendor
	err := r.client.DB().WithContext(ctx).
		Where("LOWER(business_email) = ?", identity.NormalizeEmail(email)).
		First(&vendor).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "vendor not found")
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "finding vendor by email")
	}
	return &vendor, nil
}

func (r *Repository) FindBySrNo(ctx context.Context, srNo uint64) (*models.Vendor, error) {
	var vendor models.Vendor
	err := r.client.DB().WithContext(ctx).First(&vendor, "sr_no = ?", srNo).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "vendor not found")
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "finding vendor by sr_no")
	}
	return &vendor, nil
}

// UpdateProfile writes the mutable profile columns only. business_email
// never changes after registration; it anchors ownership checks.
func (r *Repository) UpdateProfile(ctx context.Context, srNo uint64, updates map[string]any) error {
	res := r.client.DB().WithContext(ctx).
		Model(&models.Vendor{}).
		Where("sr_no = ?", srNo).
		Updates(updates)
	if res.Error != nil {
		return errors.Wrap(errors.CodeInternal, res.Error, "updating vendor profile")
	}
	if res.RowsAffected == 0 {
		return errors.New(errors.CodeNotFound, "vendor not found")
	}
	return nil
}
