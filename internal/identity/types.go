package identity

import "strings"

// Identity is the resolved caller: a vendor row that exists right now.
type Identity struct {
	VendorID uint64
	Email    string
	Role     string
}

// NormalizeEmail lowercases and trims an email for comparison; every
// authorization decision goes through this.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
