package migration

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"

	"purser/internal/shared/id"
	"purser/internal/shared/logger"
)

// DefaultBatchSize bounds how many writes one reconcile batch commits.
const DefaultBatchSize = 500

// Summary reports the outcome of a reconcile run.
type Summary struct {
	Table   string
	Column  string
	Scanned int64
	Updated int64
	Skipped int64
	DryRun  bool
}

func (s *Summary) String() string {
	mode := "applied"
	if s.DryRun {
		mode = "dry-run"
	}
	return fmt.Sprintf("%s.%s (%s): scanned=%d updated=%d skipped=%d",
		s.Table, s.Column, mode, s.Scanned, s.Updated, s.Skipped)
}

// backfill produces the value for one row that is missing the target column.
type backfill func(tx *gorm.DB, rowID uint) (interface{}, error)

// Reconciler backfills a missing column across a table in fixed-size batches.
// Each batch commits on its own, so a failure mid-run leaves prior batches in
// place and the run can simply be repeated: rows already carrying a value are
// skipped.
type Reconciler struct {
	db        *gorm.DB
	batchSize int
	logger    logger.Interface
	fillers   map[string]backfill
}

func NewReconciler(db *gorm.DB, log logger.Interface) *Reconciler {
	r := &Reconciler{
		db:        db,
		batchSize: DefaultBatchSize,
		logger:    log,
	}

	r.fillers = map[string]backfill{
		"agencies.sid":     sidFiller(id.NewAgencyID),
		"bookings.sid":     sidFiller(id.NewBookingID),
		"payments.sid":     sidFiller(id.NewPaymentID),
		"team_invites.sid": sidFiller(id.NewInviteID),
		"users.sid":        sidFiller(id.NewUserID),
		"payments.agency_id": func(tx *gorm.DB, rowID uint) (interface{}, error) {
			var agencyID uint
			err := tx.Raw(
				"SELECT b.agency_id FROM bookings b JOIN payments p ON p.booking_id = b.id WHERE p.id = ?",
				rowID,
			).Scan(&agencyID).Error
			if err != nil {
				return nil, fmt.Errorf("failed to resolve agency for payment %d: %w", rowID, err)
			}
			if agencyID == 0 {
				return nil, fmt.Errorf("payment %d has no resolvable agency", rowID)
			}
			return agencyID, nil
		},
	}

	return r
}

func sidFiller(generate func() (string, error)) backfill {
	return func(_ *gorm.DB, _ uint) (interface{}, error) {
		return generate()
	}
}

// SupportedTargets lists the table.column pairs the reconciler can backfill.
func (r *Reconciler) SupportedTargets() []string {
	targets := make([]string, 0, len(r.fillers))
	for key := range r.fillers {
		targets = append(targets, key)
	}
	sort.Strings(targets)
	return targets
}

// Run backfills table.column. With dryRun set it only reports what would
// change.
func (r *Reconciler) Run(ctx context.Context, table, column string, dryRun bool) (*Summary, error) {
	key := table + "." + column
	fill, ok := r.fillers[key]
	if !ok {
		return nil, fmt.Errorf("unsupported reconcile target %q (supported: %s)",
			key, strings.Join(r.SupportedTargets(), ", "))
	}

	summary := &Summary{Table: table, Column: column, DryRun: dryRun}

	if err := r.db.WithContext(ctx).Table(table).Count(&summary.Scanned).Error; err != nil {
		return nil, fmt.Errorf("failed to count %s rows: %w", table, err)
	}

	missingCond := fmt.Sprintf("%s IS NULL OR %s = '' OR %s = '0'", column, column, column)

	if dryRun {
		var missing int64
		if err := r.db.WithContext(ctx).Table(table).Where(missingCond).Count(&missing).Error; err != nil {
			return nil, fmt.Errorf("failed to count missing %s: %w", key, err)
		}
		summary.Updated = missing
		summary.Skipped = summary.Scanned - missing
		return summary, nil
	}

	for {
		var rowIDs []uint
		if err := r.db.WithContext(ctx).
			Table(table).
			Where(missingCond).
			Order("id ASC").
			Limit(r.batchSize).
			Pluck("id", &rowIDs).Error; err != nil {
			return summary, fmt.Errorf("failed to scan %s for missing %s: %w", table, column, err)
		}
		if len(rowIDs) == 0 {
			break
		}

		// One transaction per batch: a mid-run failure keeps prior batches.
		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			for _, rowID := range rowIDs {
				value, err := fill(tx, rowID)
				if err != nil {
					return err
				}

				result := tx.Table(table).
					Where("id = ?", rowID).
					Where(missingCond).
					Update(column, value)
				if result.Error != nil {
					return fmt.Errorf("failed to update %s row %d: %w", table, rowID, result.Error)
				}
				summary.Updated += result.RowsAffected
			}
			return nil
		})
		if err != nil {
			summary.Skipped = summary.Scanned - summary.Updated
			return summary, fmt.Errorf("reconcile batch failed after %d updates: %w", summary.Updated, err)
		}

		r.logger.Infow("reconcile batch committed",
			"table", table, "column", column, "batch_rows", len(rowIDs), "updated_total", summary.Updated)

		if len(rowIDs) < r.batchSize {
			break
		}
	}

	summary.Skipped = summary.Scanned - summary.Updated
	return summary, nil
}
