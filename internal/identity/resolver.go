package identity

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/glambook/glambook-backend/pkg/auth"
	"github.com/glambook/glambook-backend/pkg/config"
	"github.com/glambook/glambook-backend/pkg/db/models"
	"github.com/glambook/glambook-backend/pkg/errors"
	"github.com/glambook/glambook-backend/pkg/logger"
)

// Strategy turns a bearer token into an Identity. Strategies are tried in
// order by the Chain; a strategy that cannot even parse the token should
// return an INVALID_TOKEN error so the next one gets a chance.
type Strategy interface {
	Name() string
	Resolve(ctx context.Context, token string) (*Identity, error)
}

// VendorReader is the slice of the vendor repository the resolver needs.
// Resolution re-checks the vendor row on every call so that a deleted
// vendor's tokens die immediately, not at expiry.
type VendorReader interface {
	FindBySrNo(ctx context.Context, srNo uint64) (*models.Vendor, error)
	FindByEmail(ctx context.Context, email string) (*models.Vendor, error)
}

// Chain resolves a token through an ordered list of strategies.
type Chain struct {
	strategies []Strategy
	logg       *logger.Logger
}

func NewChain(logg *logger.Logger, strategies ...Strategy) *Chain {
	return &Chain{strategies: strategies, logg: logg}
}

// Resolve runs the strategies in order and returns the first identity.
// An empty token is NO_TOKEN. Terminal failures (expired token, vendor
// deleted) short-circuit; parse-level failures fall through to the next
// strategy.
func (c *Chain) Resolve(ctx context.Context, token string) (*Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errors.New(errors.CodeNoToken, "missing bearer token")
	}

	var lastErr error
	for _, s := range c.strategies {
		id, err := s.Resolve(ctx, token)
		if err == nil {
			return id, nil
		}
		if terminal(err) {
			return nil, err
		}
		fctx := c.logg.WithFields(ctx, map[string]any{"strategy": s.Name(), "error": err.Error()})
		c.logg.Warn(fctx, "token resolution failed, trying next strategy")
		lastErr = err
	}
	if lastErr == nil {
		return nil, errors.New(errors.CodeInvalidToken, "no resolver configured")
	}
	return nil, lastErr
}

// ResolveOptional is Resolve for public endpoints: any failure, including
// an absent token, yields an anonymous caller instead of an error.
func (c *Chain) ResolveOptional(ctx context.Context, token string) *Identity {
	id, err := c.Resolve(ctx, token)
	if err != nil {
		return nil
	}
	return id
}

// terminal reports whether a resolution error is authoritative: the token
// was understood and rejected, so later strategies must not override it.
func terminal(err error) bool {
	appErr := errors.As(err)
	if appErr == nil {
		return false
	}
	switch appErr.Code() {
	case errors.CodeTokenExpired, errors.CodeUserNotFound:
		return true
	}
	return false
}

// localStrategy verifies tokens minted by this service (HS256) and then
// confirms the vendor row still exists.
type localStrategy struct {
	cfg     config.JWTConfig
	vendors VendorReader
}

func NewLocalStrategy(cfg config.JWTConfig, vendors VendorReader) Strategy {
	return &localStrategy{cfg: cfg, vendors: vendors}
}

func (s *localStrategy) Name() string { return "local_jwt" }

func (s *localStrategy) Resolve(ctx context.Context, token string) (*Identity, error) {
	claims, err := auth.ParseAccessToken(s.cfg, token)
	if err != nil {
		if stderrors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.Wrap(errors.CodeTokenExpired, err, "access token expired")
		}
		return nil, errors.Wrap(errors.CodeInvalidToken, err, "invalid access token")
	}

	vendor, err := s.vendors.FindBySrNo(ctx, claims.VendorID)
	if err != nil {
		if appErr := errors.As(err); appErr != nil && appErr.Code() == errors.CodeNotFound {
			return nil, errors.New(errors.CodeUserNotFound, "vendor for token no longer exists")
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "looking up token vendor")
	}

	return &Identity{
		VendorID: vendor.SrNo,
		Email:    NormalizeEmail(vendor.BusinessEmail),
		Role:     vendor.Role,
	}, nil
}
