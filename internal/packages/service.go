package packages

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/glambook/glambook-backend/pkg/db/models"
	"github.com/glambook/glambook-backend/pkg/errors"
	"github.com/glambook/glambook-backend/pkg/logger"
	"github.com/glambook/glambook-backend/pkg/money"
)

// Service validates and orchestrates package writes. All operations act
// on behalf of an already-authorized vendor id.
type Service struct {
	repo *Repository
	logg *logger.Logger
}

func NewService(repo *Repository, logg *logger.Logger) *Service {
	return &Service{repo: repo, logg: logg}
}

func (s *Service) List(ctx context.Context, vendorID uint64) ([]PackageDTO, error) {
	rows, err := s.repo.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	out := make([]PackageDTO, 0, len(rows))
	for i := range rows {
		out = append(out, toPackageDTO(&rows[i]))
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, vendorID, packageID uint64) (*PackageDTO, error) {
	pkg, err := s.repo.FindOwned(ctx, vendorID, packageID)
	if err != nil {
		return nil, err
	}
	dto := toPackageDTO(pkg)
	return &dto, nil
}

func (s *Service) Create(ctx context.Context, vendorID uint64, input CreatePackageInput) (*PackageDTO, error) {
	price, children, err := s.validateBundle(input.Price, input.Services)
	if err != nil {
		return nil, err
	}

	pkg := &models.Package{
		VendorID:    vendorID,
		Name:        input.Name,
		Price:       price,
		Description: input.Description,
		Services:    children,
	}
	if err := s.repo.Create(ctx, pkg); err != nil {
		return nil, err
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"vendor_id":  vendorID,
		"package_id": pkg.ID,
		"children":   len(pkg.Services),
	}), "package created")

	dto := toPackageDTO(pkg)
	return &dto, nil
}

func (s *Service) Update(ctx context.Context, vendorID, packageID uint64, input UpdatePackageInput) (*PackageDTO, error) {
	price, children, err := s.validateBundle(input.Price, input.Services)
	if err != nil {
		return nil, err
	}

	pkg := &models.Package{
		ID:          packageID,
		VendorID:    vendorID,
		Name:        input.Name,
		Price:       price,
		Description: input.Description,
		Services:    children,
	}
	if err := s.repo.Replace(ctx, pkg); err != nil {
		return nil, err
	}

	return s.Get(ctx, vendorID, packageID)
}

func (s *Service) Delete(ctx context.Context, vendorID, packageID uint64) error {
	return s.repo.Delete(ctx, vendorID, packageID)
}

func (s *Service) validateBundle(rawPrice string, inputs []ChildServiceInput) (decimal.Decimal, []models.PackageService, error) {
	price, err := money.MustPositive(rawPrice)
	if err != nil {
		return decimal.Decimal{}, nil, errors.Wrap(errors.CodeValidation, err, "invalid package price")
	}
	if len(inputs) == 0 {
		return decimal.Decimal{}, nil, errors.New(errors.CodeValidation, "package needs at least one service")
	}

	children := make([]models.PackageService, 0, len(inputs))
	for _, in := range inputs {
		childPrice, err := money.MustPositive(in.Price)
		if err != nil {
			return decimal.Decimal{}, nil, errors.Wrap(errors.CodeValidation, err, "invalid bundled service price").
				WithDetails(map[string]string{"service": in.Name})
		}
		children = append(children, models.PackageService{Name: in.Name, Price: childPrice})
	}
	return price, children, nil
}
