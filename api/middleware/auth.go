package middleware

import (
	"net/http"
	"strings"

	"github.com/glambook/glambook-backend/api/responses"
	"github.com/glambook/glambook-backend/internal/identity"
	"github.com/glambook/glambook-backend/pkg/auth"
	pkgerrors "github.com/glambook/glambook-backend/pkg/errors"
	"github.com/glambook/glambook-backend/pkg/logger"
)

// Auth resolves the bearer token through the strategy chain and seeds
// the request context with the caller identity. Requests without a
// resolvable identity never reach the handler.
func Auth(chain *identity.Chain, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller, err := chain.Resolve(r.Context(), bearerToken(r))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			ctx := WithIdentity(r.Context(), caller)
			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{
					"vendor_id":    caller.VendorID,
					"caller_email": caller.Email,
					"actor_role":   caller.Role,
				})
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth seeds an identity when a valid token is present but never
// rejects the request. Public endpoints use it so scoping stays driven
// by path and query parameters.
func OptionalAuth(chain *identity.Chain, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller := chain.ResolveOptional(r.Context(), bearerToken(r))
			if caller == nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := WithIdentity(r.Context(), caller)
			if logg != nil {
				ctx = logg.WithVendorID(ctx, caller.VendorID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin allows only callers carrying the admin role. It must run
// after Auth.
func RequireAdmin(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller := IdentityFromContext(r.Context())
			if caller == nil || caller.Role != auth.RoleAdmin {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "admin role required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
		return strings.TrimSpace(raw[7:])
	}
	return raw
}
