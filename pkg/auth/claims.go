package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// Roles carried in locally minted tokens.
const (
	RoleVendor = "vendor"
	RoleAdmin  = "admin"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	VendorID uint64
	Email    string
	Role     string
}

// AccessTokenClaims is the typed JWT issued to vendors. The vendor id
// in the claims is advisory only: resolvers re-validate it against the
// vendors table on every request.
type AccessTokenClaims struct {
	VendorID uint64 `json:"vendor_id"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}
