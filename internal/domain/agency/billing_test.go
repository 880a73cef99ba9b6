package agency

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAgency(t *testing.T) *Agency {
	t.Helper()
	a, err := NewAgency("ag_test12345678", "Horizon Cruises", "billing@horizon.test", "ops@horizon.test")
	require.NoError(t, err)
	return a
}

func TestNewAgency_InitialBillingState(t *testing.T) {
	a := newTestAgency(t)

	assert.Equal(t, BillingStatusNone, a.Billing().Status)
	assert.Equal(t, PlanTrial, a.Billing().PlanKey)
	assert.False(t, a.Billing().HasCustomer())
}

func TestAttachBillingCustomer(t *testing.T) {
	a := newTestAgency(t)

	err := a.AttachBillingCustomer("cus_123")
	require.NoError(t, err)

	assert.Equal(t, "cus_123", a.Billing().StripeCustomerID)
	assert.Equal(t, BillingStatusCustomerCreated, a.Billing().Status)
	assert.True(t, a.Billing().HasCustomer())
}

func TestAttachBillingCustomer_EmptyID(t *testing.T) {
	a := newTestAgency(t)
	assert.Error(t, a.AttachBillingCustomer(""))
}

func TestAttachBillingCustomer_DoesNotRegressStatus(t *testing.T) {
	a := newTestAgency(t)
	require.NoError(t, a.CompleteCheckout("cus_123", "sub_123", "active"))

	// Re-attaching the same customer must not rewind an active agency.
	require.NoError(t, a.AttachBillingCustomer("cus_123"))
	assert.Equal(t, BillingStatusActive, a.Billing().Status)
}

func TestMarkCheckoutPending(t *testing.T) {
	a := newTestAgency(t)
	require.NoError(t, a.AttachBillingCustomer("cus_123"))

	a.MarkCheckoutPending()
	assert.Equal(t, BillingStatusCheckoutPending, a.Billing().Status)
}

func TestMarkCheckoutPending_DoesNotRegressLiveSubscription(t *testing.T) {
	a := newTestAgency(t)
	require.NoError(t, a.CompleteCheckout("cus_123", "sub_123", "active"))

	// A plan-change checkout on an active agency leaves the status alone
	// until the provider confirms; an abandoned session changes nothing.
	a.MarkCheckoutPending()
	assert.Equal(t, BillingStatusActive, a.Billing().Status)

	require.NoError(t, a.CompleteCheckout("cus_123", "sub_123", "trialing"))
	a.MarkCheckoutPending()
	assert.Equal(t, BillingStatusTrialing, a.Billing().Status)
}

func TestCompleteCheckout(t *testing.T) {
	a := newTestAgency(t)
	require.NoError(t, a.AttachBillingCustomer("cus_123"))
	a.MarkCheckoutPending()

	err := a.CompleteCheckout("cus_123", "sub_456", "trialing")
	require.NoError(t, err)

	assert.Equal(t, "cus_123", a.Billing().StripeCustomerID)
	assert.Equal(t, "sub_456", a.Billing().SubscriptionID)
	assert.Equal(t, BillingStatusTrialing, a.Billing().Status)
}

func TestCompleteCheckout_MissingIDs(t *testing.T) {
	a := newTestAgency(t)
	assert.Error(t, a.CompleteCheckout("", "sub_456", "active"))
	assert.Error(t, a.CompleteCheckout("cus_123", "", "active"))
}

func TestSyncSubscription(t *testing.T) {
	a := newTestAgency(t)
	require.NoError(t, a.CompleteCheckout("cus_123", "sub_456", "active"))

	periodEnd := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	a.SyncSubscription("sub_456", "active", PlanPro, &periodEnd)

	assert.Equal(t, BillingStatusActive, a.Billing().Status)
	assert.Equal(t, PlanPro, a.Billing().PlanKey)
	require.NotNil(t, a.Billing().CurrentPeriodEnd)
	assert.True(t, periodEnd.Equal(*a.Billing().CurrentPeriodEnd))
}

func TestSyncSubscription_UnknownPlanKeepsExisting(t *testing.T) {
	a := newTestAgency(t)
	require.NoError(t, a.CompleteCheckout("cus_123", "sub_456", "active"))
	a.SyncSubscription("sub_456", "active", PlanPro, nil)

	// An unrecognised price id yields an empty plan key; the previous plan
	// must survive the sync.
	a.SyncSubscription("sub_456", "active", "", nil)
	assert.Equal(t, PlanPro, a.Billing().PlanKey)
}

func TestCancelSubscription_AgencySurvives(t *testing.T) {
	a := newTestAgency(t)
	require.NoError(t, a.CompleteCheckout("cus_123", "sub_456", "active"))

	a.CancelSubscription()

	assert.Equal(t, BillingStatusCanceled, a.Billing().Status)
	assert.Equal(t, "Horizon Cruises", a.Name())
	assert.Equal(t, "sub_456", a.Billing().SubscriptionID)
}

func TestMarkPastDueAndInvoicePaid(t *testing.T) {
	a := newTestAgency(t)
	require.NoError(t, a.CompleteCheckout("cus_123", "sub_456", "active"))

	a.MarkPastDue()
	assert.Equal(t, BillingStatusPastDue, a.Billing().Status)

	a.MarkInvoicePaid()
	assert.Equal(t, BillingStatusActive, a.Billing().Status)
}

func TestMarkInvoicePaid_TrialingUntouched(t *testing.T) {
	a := newTestAgency(t)
	require.NoError(t, a.CompleteCheckout("cus_123", "sub_456", "trialing"))

	// Routine invoice.paid during a trial must not force the state to active.
	a.MarkInvoicePaid()
	assert.Equal(t, BillingStatusTrialing, a.Billing().Status)
}

func TestParseBillingStatus(t *testing.T) {
	tests := []struct {
		provider string
		want     BillingStatus
	}{
		{"active", BillingStatusActive},
		{"trialing", BillingStatusTrialing},
		{"past_due", BillingStatusPastDue},
		{"canceled", BillingStatusCanceled},
		{"unpaid", BillingStatusPastDue},
		{"incomplete", BillingStatusCheckoutPending},
		{"incomplete_expired", BillingStatusCheckoutPending},
		{"something_new", BillingStatusCheckoutPending},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseBillingStatus(tt.provider))
		})
	}
}

func TestBillingMutations_BumpVersion(t *testing.T) {
	a := newTestAgency(t)
	v := a.Version()

	require.NoError(t, a.AttachBillingCustomer("cus_123"))
	assert.Equal(t, v+1, a.Version())

	require.NoError(t, a.CompleteCheckout("cus_123", "sub_456", "active"))
	assert.Equal(t, v+2, a.Version())
}
