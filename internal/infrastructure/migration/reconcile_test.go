package migration

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"purser/internal/shared/logger"
)

func setupReconcileDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.Exec(`CREATE TABLE bookings (id INTEGER PRIMARY KEY AUTOINCREMENT, sid TEXT, agency_id INTEGER)`).Error)
	require.NoError(t, db.Exec(`CREATE TABLE payments (id INTEGER PRIMARY KEY AUTOINCREMENT, sid TEXT, booking_id INTEGER, agency_id INTEGER)`).Error)

	return db
}

func newReconcileLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestReconciler_BackfillsSIDs(t *testing.T) {
	db := setupReconcileDB(t)
	r := NewReconciler(db, newReconcileLogger())
	ctx := context.Background()

	require.NoError(t, db.Exec(`INSERT INTO bookings (sid, agency_id) VALUES ('bk_existing', 1), (NULL, 1), ('', 2)`).Error)

	summary, err := r.Run(ctx, "bookings", "sid", false)
	require.NoError(t, err)
	assert.Equal(t, int64(3), summary.Scanned)
	assert.Equal(t, int64(2), summary.Updated)
	assert.Equal(t, int64(1), summary.Skipped)

	var sids []string
	require.NoError(t, db.Table("bookings").Order("id").Pluck("sid", &sids).Error)
	assert.Equal(t, "bk_existing", sids[0])
	for _, sid := range sids[1:] {
		assert.Regexp(t, `^bk_`, sid)
	}
}

func TestReconciler_SecondRunIsNoOp(t *testing.T) {
	db := setupReconcileDB(t)
	r := NewReconciler(db, newReconcileLogger())
	ctx := context.Background()

	require.NoError(t, db.Exec(`INSERT INTO bookings (sid, agency_id) VALUES (NULL, 1), (NULL, 1)`).Error)

	first, err := r.Run(ctx, "bookings", "sid", false)
	require.NoError(t, err)
	assert.Equal(t, int64(2), first.Updated)

	second, err := r.Run(ctx, "bookings", "sid", false)
	require.NoError(t, err)
	assert.Equal(t, int64(0), second.Updated)
	assert.Equal(t, int64(2), second.Skipped)
}

func TestReconciler_DryRunWritesNothing(t *testing.T) {
	db := setupReconcileDB(t)
	r := NewReconciler(db, newReconcileLogger())
	ctx := context.Background()

	require.NoError(t, db.Exec(`INSERT INTO bookings (sid, agency_id) VALUES (NULL, 1), ('bk_ok', 1)`).Error)

	summary, err := r.Run(ctx, "bookings", "sid", true)
	require.NoError(t, err)
	assert.True(t, summary.DryRun)
	assert.Equal(t, int64(1), summary.Updated)
	assert.Equal(t, int64(1), summary.Skipped)

	var missing int64
	require.NoError(t, db.Table("bookings").Where("sid IS NULL").Count(&missing).Error)
	assert.Equal(t, int64(1), missing)
}

func TestReconciler_BackfillsPaymentAgencyID(t *testing.T) {
	db := setupReconcileDB(t)
	r := NewReconciler(db, newReconcileLogger())
	ctx := context.Background()

	require.NoError(t, db.Exec(`INSERT INTO bookings (sid, agency_id) VALUES ('bk_1', 42)`).Error)
	require.NoError(t, db.Exec(`INSERT INTO payments (sid, booking_id, agency_id) VALUES ('pay_1', 1, 0), ('pay_2', 1, 42)`).Error)

	summary, err := r.Run(ctx, "payments", "agency_id", false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.Updated)

	var agencyIDs []uint
	require.NoError(t, db.Table("payments").Order("id").Pluck("agency_id", &agencyIDs).Error)
	assert.Equal(t, []uint{42, 42}, agencyIDs)
}

func TestReconciler_RunsInMultipleBatches(t *testing.T) {
	db := setupReconcileDB(t)
	r := NewReconciler(db, newReconcileLogger())
	r.batchSize = 10
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		require.NoError(t, db.Exec(`INSERT INTO bookings (sid, agency_id) VALUES (NULL, ?)`, i%3+1).Error)
	}

	summary, err := r.Run(ctx, "bookings", "sid", false)
	require.NoError(t, err)
	assert.Equal(t, int64(25), summary.Updated)

	var missing int64
	require.NoError(t, db.Table("bookings").Where("sid IS NULL OR sid = ''").Count(&missing).Error)
	assert.Equal(t, int64(0), missing)
}

func TestReconciler_RejectsUnknownTarget(t *testing.T) {
	db := setupReconcileDB(t)
	r := NewReconciler(db, newReconcileLogger())

	_, err := r.Run(context.Background(), "agencies", "stripe_customer_id", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported reconcile target")
	assert.Contains(t, fmt.Sprint(r.SupportedTargets()), "bookings.sid")
}
