package combos

import (
	"context"
	stderrors "errors"

	"gorm.io/gorm"

	"github.com/glambook/glambook-backend/pkg/db"
	"github.com/glambook/glambook-backend/pkg/db/models"
	"github.com/glambook/glambook-backend/pkg/errors"
)

// Repository persists combos and their child rows with the same
// transactional discipline as packages.
type Repository struct {
	client *db.Client
}

func NewRepository(client *db.Client) *Repository {
	return &Repository{client: client}
}

func (r *Repository) Create(ctx context.Context, combo *models.Combo) error {
	err := r.client.WithTx(ctx, func(tx *gorm.DB) error {
		children := combo.Services
		combo.Services = nil
		if err := tx.Create(combo).Error; err != nil {
			return err
		}
		for i := range children {
			children[i].ComboID = combo.ID
			vendorID := combo.VendorID
			children[i].VendorID = &vendorID
		}
		if len(children) > 0 {
			if err := tx.Create(&children).Error; err != nil {
				return err
			}
		}
		combo.Services = children
		return nil
	})
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, "creating combo")
	}
	return nil
}

func (r *Repository) ListByVendor(ctx context.Context, vendorID uint64) ([]models.Combo, error) {
	var combosList []models.Combo
	err := r.client.DB().WithContext(ctx).
		Preload("Services").
		Where("vendor_id = ?", vendorID).
		Order("id").
		Find(&combosList).Error
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "listing combos")
	}
	return combosList, nil
}

func (r *Repository) FindOwned(ctx context.Context, vendorID, comboID uint64) (*models.Combo, error) {
	var combo models.Combo
	err := r.client.DB().WithContext(ctx).
		Preload("Services").
		Where("id = ? AND vendor_id = ?", comboID, vendorID).
		First(&combo).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "combo not found")
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "finding combo")
	}
	return &combo, nil
}

func (r *Repository) Replace(ctx context.Context, combo *models.Combo) error {
	err := r.client.WithTx(ctx, func(tx *gorm.DB) error {
		head := tx.Model(&models.Combo{}).
			Where("id = ? AND vendor_id = ?", combo.ID, combo.VendorID).
			Updates(map[string]any{
				"name":             combo.Name,
				"price":            combo.Price,
				"duration_minutes": combo.DurationMinutes,
			})
		if head.Error != nil {
			return head.Error
		}
		if head.RowsAffected == 0 {
			return errors.New(errors.CodeNotFound, "combo not found")
		}

		if err := tx.Where("combo_id = ?", combo.ID).Delete(&models.ComboService{}).Error; err != nil {
			return err
		}

		children := combo.Services
		for i := range children {
			children[i].ID = 0
			children[i].ComboID = combo.ID
			vendorID := combo.VendorID
			children[i].VendorID = &vendorID
		}
		if len(children) > 0 {
			if err := tx.Create(&children).Error; err != nil {
				return err
			}
		}
		combo.Services = children
		return nil
	})
	if err != nil {
		if appErr := errors.As(err); appErr != nil {
			return appErr
		}
		return errors.Wrap(errors.CodeInternal, err, "replacing combo")
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, vendorID, comboID uint64) error {
	err := r.client.WithTx(ctx, func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Combo{}).
			Where("id = ? AND vendor_id = ?", comboID, vendorID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errors.New(errors.CodeNotFound, "combo not found")
		}
		if err := tx.Where("combo_id = ?", comboID).Delete(&models.ComboService{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", comboID).Delete(&models.Combo{}).Error
	})
	if err != nil {
		if appErr := errors.As(err); appErr != nil {
			return appErr
		}
		return errors.Wrap(errors.CodeInternal, err, "deleting combo")
	}
	return nil
}
