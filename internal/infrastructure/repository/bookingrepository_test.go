package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"purser/internal/domain/booking"
	"purser/internal/infrastructure/persistence/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.AgencyModel{},
		&models.BookingModel{},
		&models.PaymentModel{},
		&models.InviteModel{},
		&models.UserModel{},
		&models.WebhookEventModel{},
	)
	require.NoError(t, err)

	return db
}

func createTestBooking(t *testing.T, sid string, agencyID uint) *booking.Booking {
	t.Helper()

	cabins := []booking.CabinAccount{
		{CabinNumber: "B204", SubtotalCAD: 150000, GratuitiesCAD: 15000},
		{CabinNumber: "B205", SubtotalCAD: 200000, GratuitiesCAD: 20000},
	}
	b, err := booking.NewBooking(sid, agencyID, "Alaska 2026", "Gagnon", "gagnon@example.com", cabins)
	require.NoError(t, err)
	return b
}

func TestBookingRepository_CreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	b := createTestBooking(t, "bk_create1", 1)
	require.NoError(t, repo.Create(ctx, b))
	assert.NotZero(t, b.ID())

	found, err := repo.FindBySID(ctx, "bk_create1")
	require.NoError(t, err)
	assert.Equal(t, b.ID(), found.ID())
	assert.Equal(t, int64(385000), found.TotalCADGlobal())
	assert.Len(t, found.Cabins(), 2)

	_, err = repo.FindBySID(ctx, "bk_missing")
	assert.ErrorIs(t, err, booking.ErrBookingNotFound)
}

func TestBookingRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	b := createTestBooking(t, "bk_update1", 1)
	require.NoError(t, repo.Create(ctx, b))

	now := time.Now().UTC()
	cabinIdx := 0
	require.NoError(t, b.ApplyPayment(50000, &cabinIdx, now))
	require.NoError(t, repo.Update(ctx, b))

	found, err := repo.FindByID(ctx, b.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(50000), found.PaidCADGlobal())
	assert.Equal(t, int64(50000), found.Cabins()[0].PaidCAD)
	assert.Equal(t, b.Version(), found.Version())
}

func TestBookingRepository_UpdateVersionConflict(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	b := createTestBooking(t, "bk_conflict1", 1)
	require.NoError(t, repo.Create(ctx, b))

	// Two readers load the same version; both apply a payment.
	first, err := repo.FindByID(ctx, b.ID())
	require.NoError(t, err)
	second, err := repo.FindByID(ctx, b.ID())
	require.NoError(t, err)

	now := time.Now().UTC()
	require.NoError(t, first.ApplyPayment(10000, nil, now))
	require.NoError(t, repo.Update(ctx, first))

	require.NoError(t, second.ApplyPayment(20000, nil, now))
	err = repo.Update(ctx, second)
	assert.ErrorIs(t, err, booking.ErrVersionConflict)

	// The stale write must not have landed.
	found, err := repo.FindByID(ctx, b.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(10000), found.GeneralPaidCAD())
}

func TestBookingRepository_ListByAgency(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	for i, sid := range []string{"bk_l1", "bk_l2", "bk_l3"} {
		agencyID := uint(1)
		if i == 2 {
			agencyID = 2
		}
		require.NoError(t, repo.Create(ctx, createTestBooking(t, sid, agencyID)))
	}

	bookings, total, err := repo.ListByAgency(ctx, 1, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, bookings, 2)

	bookings, total, err = repo.ListByAgency(ctx, 1, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, bookings, 1)
}

func TestPaymentRepository(t *testing.T) {
	db := setupTestDB(t)
	bookingRepo := NewBookingRepository(db)
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	b := createTestBooking(t, "bk_pay1", 1)
	require.NoError(t, bookingRepo.Create(ctx, b))

	now := time.Now().UTC().Truncate(time.Second)
	cabinIdx := 1
	p1, err := booking.NewPayment("pay_a", b.ID(), 1, 25000, &cabinIdx, "etransfer", "deposit", now.Add(-time.Hour))
	require.NoError(t, err)
	p2, err := booking.NewPayment("pay_b", b.ID(), 1, 40000, nil, "cheque", "", now)
	require.NoError(t, err)

	require.NoError(t, repo.Create(ctx, p1))
	require.NoError(t, repo.Create(ctx, p2))

	payments, err := repo.ListByBooking(ctx, b.ID())
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, "pay_a", payments[0].SID())
	require.NotNil(t, payments[0].CabinIndex())
	assert.Equal(t, 1, *payments[0].CabinIndex())
	assert.True(t, payments[1].IsGeneral())
}
