package combos

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/glambook/glambook-backend/pkg/db/models"
	"github.com/glambook/glambook-backend/pkg/errors"
	"github.com/glambook/glambook-backend/pkg/logger"
	"github.com/glambook/glambook-backend/pkg/money"
)

// MaxServices caps how many services a combo can bundle.
const MaxServices = 2

type Service struct {
	repo *Repository
	logg *logger.Logger
}

func NewService(repo *Repository, logg *logger.Logger) *Service {
	return &Service{repo: repo, logg: logg}
}

func (s *Service) List(ctx context.Context, vendorID uint64) ([]ComboDTO, error) {
	rows, err := s.repo.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	out := make([]ComboDTO, 0, len(rows))
	for i := range rows {
		out = append(out, toComboDTO(&rows[i]))
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, vendorID, comboID uint64) (*ComboDTO, error) {
	combo, err := s.repo.FindOwned(ctx, vendorID, comboID)
	if err != nil {
		return nil, err
	}
	dto := toComboDTO(combo)
	return &dto, nil
}

func (s *Service) Create(ctx context.Context, vendorID uint64, input CreateComboInput) (*ComboDTO, error) {
	price, children, err := s.validateBundle(input.Price, input.DurationMinutes, input.Services)
	if err != nil {
		return nil, err
	}

	combo := &models.Combo{
		VendorID:        vendorID,
		Name:            input.Name,
		Price:           price,
		DurationMinutes: input.DurationMinutes,
		Services:        children,
	}
	if err := s.repo.Create(ctx, combo); err != nil {
		return nil, err
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"vendor_id": vendorID,
		"combo_id":  combo.ID,
		"children":  len(combo.Services),
	}), "combo created")

	dto := toComboDTO(combo)
	return &dto, nil
}

func (s *Service) Update(ctx context.Context, vendorID, comboID uint64, input UpdateComboInput) (*ComboDTO, error) {
	price, children, err := s.validateBundle(input.Price, input.DurationMinutes, input.Services)
	if err != nil {
		return nil, err
	}

	combo := &models.Combo{
		ID:              comboID,
		VendorID:        vendorID,
		Name:            input.Name,
		Price:           price,
		DurationMinutes: input.DurationMinutes,
		Services:        children,
	}
	if err := s.repo.Replace(ctx, combo); err != nil {
		return nil, err
	}

	return s.Get(ctx, vendorID, comboID)
}

func (s *Service) Delete(ctx context.Context, vendorID, comboID uint64) error {
	return s.repo.Delete(ctx, vendorID, comboID)
}

func (s *Service) validateBundle(rawPrice string, durationMinutes int, inputs []ChildServiceInput) (decimal.Decimal, []models.ComboService, error) {
	price, err := money.MustPositive(rawPrice)
	if err != nil {
		return decimal.Decimal{}, nil, errors.Wrap(errors.CodeValidation, err, "invalid combo price")
	}
	if durationMinutes <= 0 {
		return decimal.Decimal{}, nil, errors.New(errors.CodeValidation, "combo duration must be positive")
	}
	if len(inputs) == 0 {
		return decimal.Decimal{}, nil, errors.New(errors.CodeValidation, "combo needs at least one service")
	}
	if len(inputs) > MaxServices {
		return decimal.Decimal{}, nil, errors.New(errors.CodeValidation, "combo bundles at most two services")
	}

	children := make([]models.ComboService, 0, len(inputs))
	for _, in := range inputs {
		childPrice, err := money.MustPositive(in.Price)
		if err != nil {
			return decimal.Decimal{}, nil, errors.Wrap(errors.CodeValidation, err, "invalid bundled service price").
				WithDetails(map[string]string{"service": in.Name})
		}
		children = append(children, models.ComboService{Name: in.Name, Price: childPrice})
	}
	return price, children, nil
}
