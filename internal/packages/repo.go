package packages

import (
	"context"
	stderrors "errors"

	"gorm.io/gorm"

	"github.com/glambook/glambook-backend/pkg/db"
	"github.com/glambook/glambook-backend/pkg/db/models"
	"github.com/glambook/glambook-backend/pkg/errors"
)

// Repository persists packages and their child rows. Multi-row writes go
// through a single transaction so a package can never exist half-written.
type Repository struct {
	client *db.Client
}

func NewRepository(client *db.Client) *Repository {
	return &Repository{client: client}
}

// Create inserts the package head and its children atomically. Every
// child is stamped with the parent's vendor id before insert.
func (r *Repository) Create(ctx context.Context, pkg *models.Package) error {
	err := r.client.WithTx(ctx, func(tx *gorm.DB) error {
		children := pkg.Services
		pkg.Services = nil
		if err := tx.Create(pkg).Error; err != nil {
			return err
		}
		for i := range children {
			children[i].PackageID = pkg.ID
			vendorID := pkg.VendorID
			children[i].VendorID = &vendorID
		}
		if len(children) > 0 {
			if err := tx.Create(&children).Error; err != nil {
				return err
			}
		}
		pkg.Services = children
		return nil
	})
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, "creating package")
	}
	return nil
}

func (r *Repository) ListByVendor(ctx context.Context, vendorID uint64) ([]models.Package, error) {
	var pkgs []models.Package
	err := r.client.DB().WithContext(ctx).
		Preload("Services").
		Where("vendor_id = ?", vendorID).
		Order("id").
		Find(&pkgs).Error
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "listing packages")
	}
	return pkgs, nil
}

func (r *Repository) FindOwned(ctx context.Context, vendorID, packageID uint64) (*models.Package, error) {
	var pkg models.Package
	err := r.client.DB().WithContext(ctx).
		Preload("Services").
		Where("id = ? AND vendor_id = ?", packageID, vendorID).
		First(&pkg).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "package not found")
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "finding package")
	}
	return &pkg, nil
}

// Replace updates the package head and swaps the entire child set in one
// transaction. Children are replaced wholesale rather than diffed; the
// payload is the source of truth for the bundle.
func (r *Repository) Replace(ctx context.Context, pkg *models.Package) error {
	err := r.client.WithTx(ctx, func(tx *gorm.DB) error {
		head := tx.Model(&models.Package{}).
			Where("id = ? AND vendor_id = ?", pkg.ID, pkg.VendorID).
			Updates(map[string]any{
				"name":        pkg.Name,
				"price":       pkg.Price,
				"description": pkg.Description,
			})
		if head.Error != nil {
			return head.Error
		}
		if head.RowsAffected == 0 {
			return errors.New(errors.CodeNotFound, "package not found")
		}

		if err := tx.Where("package_id = ?", pkg.ID).Delete(&models.PackageService{}).Error; err != nil {
			return err
		}

		children := pkg.Services
		for i := range children {
			children[i].ID = 0
			children[i].PackageID = pkg.ID
			vendorID := pkg.VendorID
			children[i].VendorID = &vendorID
		}
		if len(children) > 0 {
			if err := tx.Create(&children).Error; err != nil {
				return err
			}
		}
		pkg.Services = children
		return nil
	})
	if err != nil {
		if appErr := errors.As(err); appErr != nil {
			return appErr
		}
		return errors.Wrap(errors.CodeInternal, err, "replacing package")
	}
	return nil
}

// Delete removes an owned package and its children explicitly in one
// transaction. Child deletion does not rely on the schema cascade, so
// behavior is the same on databases where the constraint is missing.
func (r *Repository) Delete(ctx context.Context, vendorID, packageID uint64) error {
	err := r.client.WithTx(ctx, func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Package{}).
			Where("id = ? AND vendor_id = ?", packageID, vendorID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errors.New(errors.CodeNotFound, "package not found")
		}
		if err := tx.Where("package_id = ?", packageID).Delete(&models.PackageService{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", packageID).Delete(&models.Package{}).Error
	})
	if err != nil {
		if appErr := errors.As(err); appErr != nil {
			return appErr
		}
		return errors.Wrap(errors.CodeInternal, err, "deleting package")
	}
	return nil
}
