package controllers

import (
	"net/http"

	"github.com/glambook/glambook-backend/api/responses"
	"github.com/glambook/glambook-backend/api/validators"
	"github.com/glambook/glambook-backend/internal/audit"
	"github.com/glambook/glambook-backend/pkg/logger"
)

// AdminAuditRun triggers an on-demand reconciliation pass. An optional
// vendor_id query parameter restricts the audit to a single vendor.
// A run that repaired rows but hit a failure on one pair still returns
// the partial report alongside the error.
func AdminAuditRun(auditor *audit.Auditor, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var scope *uint64
		vendorID, ok, err := validators.ParseQueryUint(r, "vendor_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if ok {
			scope = &vendorID
		}

		report, err := auditor.Run(r.Context(), scope)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, report)
	}
}
