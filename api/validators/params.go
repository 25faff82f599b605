package validators

import (
	"net/http"
	"net/mail"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	pkgerrors "github.com/glambook/glambook-backend/pkg/errors"
)

// ParsePathID reads a positive numeric path parameter.
func ParsePathID(r *http.Request, key string) (uint64, error) {
	raw := strings.TrimSpace(chi.URLParam(r, key))
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "path parameter must be a positive number").
			WithDetails(map[string]any{"field": key})
	}
	return value, nil
}

// ParseQueryEmail reads an optional email query parameter. Empty input
// returns "" without error.
func ParseQueryEmail(r *http.Request, key string) (string, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return "", nil
	}
	if _, err := mail.ParseAddress(raw); err != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be a valid email").
			WithDetails(map[string]any{"field": key})
	}
	return raw, nil
}

// ParseQueryUint reads an optional positive numeric query parameter.
// Empty input returns (0, false, nil).
func ParseQueryUint(r *http.Request, key string) (uint64, bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, false, nil
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		return 0, false, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be a positive number").
			WithDetails(map[string]any{"field": key})
	}
	return value, true, nil
}
