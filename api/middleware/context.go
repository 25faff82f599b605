package middleware

import (
	"context"

	"github.com/glambook/glambook-backend/internal/identity"
)

type contextKey string

const ctxIdentity contextKey = "caller_identity"

// IdentityFromContext returns the resolved caller, or nil on public
// requests without a usable token.
func IdentityFromContext(ctx context.Context) *identity.Identity {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxIdentity).(*identity.Identity); ok {
		return v
	}
	return nil
}

// WithIdentity injects the caller identity into the context.
func WithIdentity(ctx context.Context, id *identity.Identity) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxIdentity, id)
}
