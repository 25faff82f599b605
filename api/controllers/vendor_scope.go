package controllers

import (
	"net/http"

	"github.com/glambook/glambook-backend/api/middleware"
	"github.com/glambook/glambook-backend/api/validators"
	"github.com/glambook/glambook-backend/internal/guard"
	"github.com/glambook/glambook-backend/internal/vendors"
	pkgerrors "github.com/glambook/glambook-backend/pkg/errors"
)

// VendorScope resolves the target vendor for authenticated data routes.
// The target defaults to the caller; a business_email query parameter
// names another vendor explicitly, which only admins pass the guard for.
// The email-to-id resolution hits the database on every request.
type VendorScope struct {
	Guard   *guard.Guard
	Vendors *vendors.Service
}

func NewVendorScope(g *guard.Guard, v *vendors.Service) *VendorScope {
	return &VendorScope{Guard: g, Vendors: v}
}

// Resolve returns the vendor id the request may act on, or an error that
// maps straight onto the wire.
func (s *VendorScope) Resolve(r *http.Request) (uint64, error) {
	ctx := r.Context()

	caller := middleware.IdentityFromContext(ctx)
	if caller == nil {
		return 0, pkgerrors.New(pkgerrors.CodeNoToken, "no caller identity")
	}

	email, err := validators.ParseQueryEmail(r, "business_email")
	if err != nil {
		return 0, err
	}
	if email == "" {
		email = caller.Email
	}

	if err := s.Guard.Authorize(ctx, caller, email); err != nil {
		return 0, err
	}

	return s.Vendors.ResolveVendorID(ctx, email)
}
