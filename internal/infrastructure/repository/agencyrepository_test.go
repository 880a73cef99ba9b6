package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"purser/internal/domain/agency"
)

func createTestAgency(t *testing.T, sid, name string) *agency.Agency {
	t.Helper()

	a, err := agency.NewAgency(sid, name, name+"@billing.example", "")
	require.NoError(t, err)
	return a
}

func TestAgencyRepository_CreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAgencyRepository(db)
	ctx := context.Background()

	a := createTestAgency(t, "ag_find1", "Northern Lights Travel")
	require.NoError(t, repo.Create(ctx, a))
	assert.NotZero(t, a.ID())

	found, err := repo.FindBySID(ctx, "ag_find1")
	require.NoError(t, err)
	assert.Equal(t, a.ID(), found.ID())
	assert.Equal(t, agency.BillingStatusNone, found.Billing().Status)

	_, err = repo.FindBySID(ctx, "ag_missing")
	assert.ErrorIs(t, err, agency.ErrAgencyNotFound)
}

func TestAgencyRepository_FindByStripeCustomerID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAgencyRepository(db)
	ctx := context.Background()

	a := createTestAgency(t, "ag_cust1", "Harbourview Cruises")
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, a.AttachBillingCustomer("cus_find_me"))
	require.NoError(t, repo.Update(ctx, a))

	found, err := repo.FindByStripeCustomerID(ctx, "cus_find_me")
	require.NoError(t, err)
	assert.Equal(t, a.ID(), found.ID())
	assert.Equal(t, agency.BillingStatusCustomerCreated, found.Billing().Status)

	_, err = repo.FindByStripeCustomerID(ctx, "cus_unknown")
	assert.ErrorIs(t, err, agency.ErrAgencyNotFound)
}

func TestAgencyRepository_UpdateVersionConflict(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAgencyRepository(db)
	ctx := context.Background()

	a := createTestAgency(t, "ag_conflict1", "Maple Leaf Voyages")
	require.NoError(t, repo.Create(ctx, a))

	first, err := repo.FindByID(ctx, a.ID())
	require.NoError(t, err)
	second, err := repo.FindByID(ctx, a.ID())
	require.NoError(t, err)

	require.NoError(t, first.Rename("Maple Leaf Voyages Inc"))
	require.NoError(t, repo.Update(ctx, first))

	require.NoError(t, second.Rename("A Stale Name"))
	err = repo.Update(ctx, second)
	assert.ErrorIs(t, err, agency.ErrVersionConflict)
}

func TestAgencyRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAgencyRepository(db)
	ctx := context.Background()

	for _, sid := range []string{"ag_a", "ag_b", "ag_c"} {
		require.NoError(t, repo.Create(ctx, createTestAgency(t, sid, "Agency "+sid)))
	}

	agencies, total, err := repo.List(ctx, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, agencies, 2)
}

func TestWebhookEventStore_MarkProcessed(t *testing.T) {
	db := setupTestDB(t)
	store := NewWebhookEventStore(db)
	ctx := context.Background()

	fresh, err := store.MarkProcessed(ctx, "evt_once", "customer.subscription.updated")
	require.NoError(t, err)
	assert.True(t, fresh)

	fresh, err = store.MarkProcessed(ctx, "evt_once", "customer.subscription.updated")
	require.NoError(t, err)
	assert.False(t, fresh)

	fresh, err = store.MarkProcessed(ctx, "evt_other", "invoice.paid")
	require.NoError(t, err)
	assert.True(t, fresh)
}
