package audit

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/glambook/glambook-backend/pkg/db"
	"github.com/glambook/glambook-backend/pkg/errors"
	"github.com/glambook/glambook-backend/pkg/logger"
	"github.com/glambook/glambook-backend/pkg/metrics"
)

// TablePair names a parent table and the child table whose vendor_id
// must mirror it.
type TablePair struct {
	Label       string
	ParentTable string
	ChildTable  string
	ForeignKey  string
}

// Pairs lists every parent/child relationship the auditor reconciles.
var Pairs = []TablePair{
	{
		Label:       "package_services",
		ParentTable: "vendor_packages_services",
		ChildTable:  "package_services",
		ForeignKey:  "package_id",
	},
	{
		Label:       "combo_services",
		ParentTable: "vendor_combo_services",
		ChildTable:  "combo_services",
		ForeignKey:  "combo_id",
	},
}

// PairReport is the outcome for one table pair.
type PairReport struct {
	Pair         string `json:"pair"`
	Total        int64  `json:"total"`
	Mismatched   int64  `json:"mismatched"`
	NullVendorID int64  `json:"null_vendor_id"`
	Repaired     int64  `json:"repaired"`
	Unresolved   int64  `json:"unresolved"`
	Orphaned     int64  `json:"orphaned"`
}

// Report aggregates a full reconciliation run.
type Report struct {
	RanAt    time.Time    `json:"ran_at"`
	Scope    *uint64      `json:"scope_vendor_id,omitempty"`
	Pairs    []PairReport `json:"pairs"`
	Repaired int64        `json:"repaired"`
}

// Auditor detects and repairs child rows whose vendor_id is NULL or
// disagrees with the parent row. Repairs run inside a transaction per
// pair; a failing pair does not stop the others.
type Auditor struct {
	client  *db.Client
	logg    *logger.Logger
	metrics *metrics.AuditMetrics
	now     func() time.Time
}

func NewAuditor(client *db.Client, logg *logger.Logger, m *metrics.AuditMetrics) *Auditor {
	return &Auditor{client: client, logg: logg, metrics: m, now: time.Now}
}

// Run reconciles every table pair. A non-nil scope restricts the audit
// to children whose parent belongs to that vendor.
func (a *Auditor) Run(ctx context.Context, scope *uint64) (*Report, error) {
	report := &Report{RanAt: a.now(), Scope: scope, Pairs: make([]PairReport, 0, len(Pairs))}

	var errs error
	for _, pair := range Pairs {
		started := a.now()
		pairReport, err := a.runPair(ctx, pair, scope)
		a.metrics.ObserveDuration(pair.Label, a.now().Sub(started))
		if err != nil {
			a.metrics.IncFailure(pair.Label)
			a.logg.Error(a.logg.WithField(ctx, "pair", pair.Label), "reconciliation failed", err)
			errs = multierr.Append(errs, fmt.Errorf("pair %s: %w", pair.Label, err))
			continue
		}
		a.metrics.IncSuccess(pair.Label)
		a.metrics.AddRepaired(pair.Label, pairReport.Repaired)
		a.metrics.SetUnresolved(pair.Label, pairReport.Unresolved)

		report.Pairs = append(report.Pairs, *pairReport)
		report.Repaired += pairReport.Repaired

		a.logg.Info(a.logg.WithFields(ctx, map[string]any{
			"pair":       pairReport.Pair,
			"total":      pairReport.Total,
			"mismatched": pairReport.Mismatched,
			"null":       pairReport.NullVendorID,
			"repaired":   pairReport.Repaired,
			"unresolved": pairReport.Unresolved,
		}), "reconciliation pair finished")
	}

	if errs != nil {
		return report, errors.Wrap(errors.CodeInternal, errs, "reconciliation run had failures")
	}
	return report, nil
}

func (a *Auditor) runPair(ctx context.Context, pair TablePair, scope *uint64) (*PairReport, error) {
	report := &PairReport{Pair: pair.Label}

	err := a.client.WithTx(ctx, func(tx *gorm.DB) error {
		var err error
		if report.Total, err = a.countTotal(tx, pair, scope); err != nil {
			return err
		}
		if report.Mismatched, err = a.countMismatched(tx, pair, scope); err != nil {
			return err
		}
		if report.NullVendorID, err = a.countNull(tx, pair, scope); err != nil {
			return err
		}

		if report.Repaired, err = a.repair(tx, pair, scope); err != nil {
			return err
		}

		// Re-detect after the repair; anything still broken has no
		// parent to copy from or raced a concurrent write.
		remainingMismatch, err := a.countMismatched(tx, pair, scope)
		if err != nil {
			return err
		}
		remainingNull, err := a.countNull(tx, pair, scope)
		if err != nil {
			return err
		}
		if scope == nil {
			if report.Orphaned, err = a.countOrphans(tx, pair); err != nil {
				return err
			}
		}
		report.Unresolved = remainingMismatch + remainingNull + report.Orphaned
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (a *Auditor) countTotal(tx *gorm.DB, pair TablePair, scope *uint64) (int64, error) {
	query := fmt.Sprintf(
		`SELECT COUNT(*) FROM %s c JOIN %s p ON p.id = c.%s`,
		pair.ChildTable, pair.ParentTable, pair.ForeignKey,
	)
	return a.count(tx, query, " WHERE ", scope)
}

func (a *Auditor) countMismatched(tx *gorm.DB, pair TablePair, scope *uint64) (int64, error) {
	query := fmt.Sprintf(
		`SELECT COUNT(*) FROM %s c JOIN %s p ON p.id = c.%s WHERE c.vendor_id IS NOT NULL AND c.vendor_id <> p.vendor_id`,
		pair.ChildTable, pair.ParentTable, pair.ForeignKey,
	)
	return a.count(tx, query, " AND ", scope)
}

func (a *Auditor) countNull(tx *gorm.DB, pair TablePair, scope *uint64) (int64, error) {
	query := fmt.Sprintf(
		`SELECT COUNT(*) FROM %s c JOIN %s p ON p.id = c.%s WHERE c.vendor_id IS NULL`,
		pair.ChildTable, pair.ParentTable, pair.ForeignKey,
	)
	return a.count(tx, query, " AND ", scope)
}

func (a *Auditor) countOrphans(tx *gorm.DB, pair TablePair) (int64, error) {
	query := fmt.Sprintf(
		`SELECT COUNT(*) FROM %s c LEFT JOIN %s p ON p.id = c.%s WHERE p.id IS NULL`,
		pair.ChildTable, pair.ParentTable, pair.ForeignKey,
	)
	var count int64
	if err := tx.Raw(query).Scan(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (a *Auditor) count(tx *gorm.DB, query, joiner string, scope *uint64) (int64, error) {
	args := []any{}
	if scope != nil {
		query += joiner + "p.vendor_id = ?"
		args = append(args, *scope)
	}
	var count int64
	if err := tx.Raw(query, args...).Scan(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// repair copies the parent's vendor_id onto every NULL or mismatched
// child. The correlated subquery form runs unchanged on postgres and
// sqlite.
func (a *Auditor) repair(tx *gorm.DB, pair TablePair, scope *uint64) (int64, error) {
	query := fmt.Sprintf(
		`UPDATE %[1]s SET vendor_id = (SELECT p.vendor_id FROM %[2]s p WHERE p.id = %[1]s.%[3]s)
WHERE EXISTS (
	SELECT 1 FROM %[2]s p
	WHERE p.id = %[1]s.%[3]s
	AND (%[1]s.vendor_id IS NULL OR %[1]s.vendor_id <> p.vendor_id)%[4]s
)`,
		pair.ChildTable, pair.ParentTable, pair.ForeignKey,
		func() string {
			if scope != nil {
				return "\n\tAND p.vendor_id = ?"
			}
			return ""
		}(),
	)

	args := []any{}
	if scope != nil {
		args = append(args, *scope)
	}
	res := tx.Exec(query, args...)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
