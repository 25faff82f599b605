package catalog

import (
	"context"
	_ "embed"
	"encoding/json"

	"github.com/glambook/glambook-backend/pkg/config"
	"github.com/glambook/glambook-backend/pkg/errors"
)

//go:embed static_catalog.json
var staticSnapshot []byte

// staticSource serves a compiled-in snapshot, keyed by vendor id. Used
// in demo and staging environments where the services table is empty.
type staticSource struct {
	byVendor map[uint64][]ServiceDTO
}

type staticEntry struct {
	VendorID uint64       `json:"vendor_id"`
	Services []ServiceDTO `json:"services"`
}

func newStaticSource() (*staticSource, error) {
	var entries []staticEntry
	if err := json.Unmarshal(staticSnapshot, &entries); err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "parsing embedded catalog snapshot")
	}
	byVendor := make(map[uint64][]ServiceDTO, len(entries))
	for _, e := range entries {
		byVendor[e.VendorID] = e.Services
	}
	return &staticSource{byVendor: byVendor}, nil
}

func (s *staticSource) Name() string { return config.CatalogSourceStatic }

func (s *staticSource) ListByVendor(_ context.Context, vendorID uint64) ([]ServiceDTO, error) {
	services, ok := s.byVendor[vendorID]
	if !ok {
		// An unknown vendor simply has no services yet.
		return []ServiceDTO{}, nil
	}
	return services, nil
}
