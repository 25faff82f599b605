package vendors

import (
	"context"
	"time"

	"github.com/lib/pq"

	"github.com/glambook/glambook-backend/internal/identity"
	"github.com/glambook/glambook-backend/pkg/auth"
	"github.com/glambook/glambook-backend/pkg/config"
	"github.com/glambook/glambook-backend/pkg/db/models"
	"github.com/glambook/glambook-backend/pkg/errors"
	"github.com/glambook/glambook-backend/pkg/logger"
	"github.com/glambook/glambook-backend/pkg/retry"
	"github.com/glambook/glambook-backend/pkg/security"
)

// Service owns vendor account lifecycle: registration, login, profile
// reads and writes, and email-to-id resolution for scoping.
type Service struct {
	repo        *Repository
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
	retryPolicy retry.Policy
	logg        *logger.Logger
	now         func() time.Time
}

func NewService(
	repo *Repository,
	jwtCfg config.JWTConfig,
	passwordCfg config.PasswordConfig,
	retryPolicy retry.Policy,
	logg *logger.Logger,
) *Service {
	return &Service{
		repo:        repo,
		jwtCfg:      jwtCfg,
		passwordCfg: passwordCfg,
		retryPolicy: retryPolicy,
		logg:        logg,
		now:         time.Now,
	}
}

func (s *Service) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email := identity.NormalizeEmail(input.BusinessEmail)

	hash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "hashing password")
	}

	vendor := &models.Vendor{
		BusinessName:  input.BusinessName,
		BusinessEmail: email,
		PasswordHash:  hash,
		Phone:         input.Phone,
		City:          input.City,
		Categories:    pq.StringArray(input.Categories),
		Role:          auth.RoleVendor,
	}
	if err := s.repo.Create(ctx, vendor); err != nil {
		return nil, err
	}

	s.logg.Info(s.logg.WithVendorID(ctx, vendor.SrNo), "vendor registered")
	return s.issueToken(vendor)
}

func (s *Service) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	vendor, err := s.repo.FindByEmail(ctx, input.BusinessEmail)
	if err != nil {
		if appErr := errors.As(err); appErr != nil && appErr.Code() == errors.CodeNotFound {
			// Same error either way, so a probe cannot tell a missing
			// account from a wrong password.
			return nil, errors.New(errors.CodeInvalidToken, "invalid credentials")
		}
		return nil, err
	}

	ok, err := security.VerifyPassword(input.Password, vendor.PasswordHash)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "verifying password")
	}
	if !ok {
		return nil, errors.New(errors.CodeInvalidToken, "invalid credentials")
	}

	s.logg.Info(s.logg.WithVendorID(ctx, vendor.SrNo), "vendor logged in")
	return s.issueToken(vendor)
}

// ResolveVendorID maps a business email to its vendor id. Resolution hits
// the database every time; the id anchors isolation checks, so a stale
// cache entry would leak one vendor's rows to another.
func (s *Service) ResolveVendorID(ctx context.Context, email string) (uint64, error) {
	vendor, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return 0, err
	}
	return vendor.SrNo, nil
}

func (s *Service) GetProfile(ctx context.Context, email string) (*VendorDTO, error) {
	vendor, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	dto := toDTO(vendor)
	return &dto, nil
}

func (s *Service) GetBySrNo(ctx context.Context, srNo uint64) (*VendorDTO, error) {
	vendor, err := s.repo.FindBySrNo(ctx, srNo)
	if err != nil {
		return nil, err
	}
	dto := toDTO(vendor)
	return &dto, nil
}

// UpdateProfile applies the provided fields and re-reads the row. The
// write retries on transient connection errors only.
func (s *Service) UpdateProfile(ctx context.Context, vendorID uint64, input UpdateProfileInput) (*VendorDTO, error) {
	updates := map[string]any{}
	if input.BusinessName != nil {
		updates["business_name"] = *input.BusinessName
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
	}
	if input.City != nil {
		updates["city"] = *input.City
	}
	if input.About != nil {
		updates["about"] = *input.About
	}
	if input.Categories != nil {
		updates["categories"] = pq.StringArray(*input.Categories)
	}
	if len(updates) == 0 {
		return nil, errors.New(errors.CodeValidation, "no profile fields to update")
	}
	updates["updated_at"] = s.now()

	err := retry.Do(ctx, s.retryPolicy, func(ctx context.Context) error {
		return s.repo.UpdateProfile(ctx, vendorID, updates)
	})
	if err != nil {
		return nil, err
	}

	return s.GetBySrNo(ctx, vendorID)
}

func (s *Service) issueToken(vendor *models.Vendor) (*AuthResult, error) {
	token, err := auth.MintAccessToken(s.jwtCfg, s.now(), auth.AccessTokenPayload{
		VendorID: vendor.SrNo,
		Email:    vendor.BusinessEmail,
		Role:     vendor.Role,
	})
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "minting access token")
	}
	return &AuthResult{Token: token, Vendor: toDTO(vendor)}, nil
}
