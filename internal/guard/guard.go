package guard

import (
	"context"

	"github.com/glambook/glambook-backend/internal/identity"
	"github.com/glambook/glambook-backend/pkg/auth"
	"github.com/glambook/glambook-backend/pkg/errors"
	"github.com/glambook/glambook-backend/pkg/logger"
)

// Guard is the single choke point for vendor data isolation. Every
// handler that touches vendor-owned rows on behalf of a caller asks the
// guard first; a denial is logged as a security event before it is
// returned.
type Guard struct {
	logg *logger.Logger
}

func New(logg *logger.Logger) *Guard {
	return &Guard{logg: logg}
}

// Authorize checks that the caller may act on the vendor identified by
// targetEmail. Comparison is on normalized emails. Admins pass for any
// target.
func (g *Guard) Authorize(ctx context.Context, caller *identity.Identity, targetEmail string) error {
	if caller == nil {
		return errors.New(errors.CodeNoToken, "no caller identity")
	}
	if caller.Role == auth.RoleAdmin {
		return nil
	}
	if identity.NormalizeEmail(targetEmail) == caller.Email {
		return nil
	}

	fctx := g.logg.WithFields(ctx, map[string]any{
		"event":        "vendor_isolation_denied",
		"caller_id":    caller.VendorID,
		"caller_email": caller.Email,
		"target_email": identity.NormalizeEmail(targetEmail),
	})
	g.logg.Warn(fctx, "caller attempted to access another vendor's data")

	return errors.New(errors.CodeForbidden, "caller does not own target vendor data")
}

// AuthorizeVendorID is Authorize for routes that carry a numeric vendor
// id instead of an email.
func (g *Guard) AuthorizeVendorID(ctx context.Context, caller *identity.Identity, targetVendorID uint64) error {
	if caller == nil {
		return errors.New(errors.CodeNoToken, "no caller identity")
	}
	if caller.Role == auth.RoleAdmin {
		return nil
	}
	if caller.VendorID == targetVendorID {
		return nil
	}

	fctx := g.logg.WithFields(ctx, map[string]any{
		"event":     "vendor_isolation_denied",
		"caller_id": caller.VendorID,
		"target_id": targetVendorID,
	})
	g.logg.Warn(fctx, "caller attempted to access another vendor's data")

	return errors.New(errors.CodeForbidden, "caller does not own target vendor data")
}
