package catalog

import (
	"context"

	"github.com/glambook/glambook-backend/pkg/config"
	"github.com/glambook/glambook-backend/pkg/db/models"
	"github.com/glambook/glambook-backend/pkg/errors"
	"github.com/glambook/glambook-backend/pkg/logger"
	"github.com/glambook/glambook-backend/pkg/money"
)

// Service owns the vendor-facing side of the catalog: create, list and
// delete standalone services for an authenticated vendor.
type Service struct {
	repo *Repository
	logg *logger.Logger
}

func NewService(repo *Repository, logg *logger.Logger) *Service {
	return &Service{repo: repo, logg: logg}
}

func (s *Service) List(ctx context.Context, vendorID uint64) ([]ServiceDTO, error) {
	rows, err := s.repo.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	out := make([]ServiceDTO, 0, len(rows))
	for i := range rows {
		out = append(out, toServiceDTO(&rows[i]))
	}
	return out, nil
}

func (s *Service) Create(ctx context.Context, vendorID uint64, input CreateServiceInput) (*ServiceDTO, error) {
	if _, err := money.MustPositive(input.Price); err != nil {
		return nil, errors.Wrap(errors.CodeValidation, err, "invalid service price").
			WithDetails(map[string]string{"price": input.Price})
	}

	row := &models.Service{
		VendorID:        vendorID,
		Name:            input.Name,
		Category:        input.Category,
		Price:           input.Price,
		DurationMinutes: input.DurationMinutes,
		Description:     input.Description,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, err
	}

	dto := toServiceDTO(row)
	return &dto, nil
}

func (s *Service) Delete(ctx context.Context, vendorID, serviceID uint64) error {
	return s.repo.Delete(ctx, vendorID, serviceID)
}

// Source is the read side used by public browse endpoints. It is picked
// once at process start from configuration and never changes per
// request.
type Source interface {
	Name() string
	ListByVendor(ctx context.Context, vendorID uint64) ([]ServiceDTO, error)
}

// NewSource selects the live database source or the embedded static
// snapshot based on configuration.
func NewSource(cfg config.CatalogConfig, repo *Repository) (Source, error) {
	if cfg.IsStatic() {
		return newStaticSource()
	}
	return &liveSource{repo: repo}, nil
}

type liveSource struct {
	repo *Repository
}

func (l *liveSource) Name() string { return config.CatalogSourceLive }

func (l *liveSource) ListByVendor(ctx context.Context, vendorID uint64) ([]ServiceDTO, error) {
	rows, err := l.repo.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	out := make([]ServiceDTO, 0, len(rows))
	for i := range rows {
		out = append(out, toServiceDTO(&rows[i]))
	}
	return out, nil
}
