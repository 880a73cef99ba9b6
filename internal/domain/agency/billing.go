package agency

import (
	"fmt"
	"time"
)

// BillingStatus tracks where an agency sits in the subscription lifecycle.
// Transitions are driven by the checkout flow and by provider webhook events:
//
//	none -> customer_created -> checkout_pending -> {active, trialing}
//	{active, trialing} -> {past_due, canceled}
type BillingStatus string

const (
	BillingStatusNone            BillingStatus = "none"
	BillingStatusCustomerCreated BillingStatus = "customer_created"
	BillingStatusCheckoutPending BillingStatus = "checkout_pending"
	BillingStatusActive          BillingStatus = "active"
	BillingStatusTrialing        BillingStatus = "trialing"
	BillingStatusPastDue         BillingStatus = "past_due"
	BillingStatusCanceled        BillingStatus = "canceled"
)

func (s BillingStatus) IsValid() bool {
	switch s {
	case BillingStatusNone, BillingStatusCustomerCreated, BillingStatusCheckoutPending,
		BillingStatusActive, BillingStatusTrialing, BillingStatusPastDue, BillingStatusCanceled:
		return true
	}
	return false
}

// ParseBillingStatus maps a provider subscription status string onto the
// billing lifecycle. Provider statuses with no local equivalent (incomplete,
// unpaid, paused) collapse to checkout_pending or past_due.
func ParseBillingStatus(providerStatus string) BillingStatus {
	switch providerStatus {
	case "active":
		return BillingStatusActive
	case "trialing":
		return BillingStatusTrialing
	case "past_due":
		return BillingStatusPastDue
	case "canceled":
		return BillingStatusCanceled
	case "unpaid":
		return BillingStatusPastDue
	case "incomplete", "incomplete_expired":
		return BillingStatusCheckoutPending
	default:
		return BillingStatusCheckoutPending
	}
}

// Billing is the subscription state attached to an agency. It mirrors the
// provider's source of truth and is overwritten, never merged, on webhook
// delivery so repeated events are harmless.
type Billing struct {
	StripeCustomerID string
	SubscriptionID   string
	Status           BillingStatus
	PlanKey          PlanKey
	CurrentPeriodEnd *time.Time
}

// HasCustomer reports whether a provider customer has been created.
func (b Billing) HasCustomer() bool {
	return b.StripeCustomerID != ""
}

// AttachBillingCustomer records the provider customer id created ahead of the
// first checkout session.
func (a *Agency) AttachBillingCustomer(customerID string) error {
	if customerID == "" {
		return fmt.Errorf("customer id is required")
	}
	a.billing.StripeCustomerID = customerID
	if a.billing.Status == BillingStatusNone {
		a.billing.Status = BillingStatusCustomerCreated
	}
	a.touch()
	return nil
}

// MarkCheckoutPending is set when a checkout session has been handed to the
// caller but the provider has not yet confirmed completion. It only moves an
// agency that never subscribed: an active or trialing agency starting a new
// checkout (plan change) keeps its status until the webhook lands, so an
// abandoned session cannot regress a live subscription.
func (a *Agency) MarkCheckoutPending() {
	switch a.billing.Status {
	case BillingStatusNone, BillingStatusCustomerCreated:
		a.billing.Status = BillingStatusCheckoutPending
		a.touch()
	}
}

// CompleteCheckout attaches the customer and subscription ids delivered by a
// checkout.session.completed event and adopts the provider's status.
func (a *Agency) CompleteCheckout(customerID, subscriptionID, providerStatus string) error {
	if customerID == "" || subscriptionID == "" {
		return fmt.Errorf("customer id and subscription id are required")
	}
	a.billing.StripeCustomerID = customerID
	a.billing.SubscriptionID = subscriptionID
	a.billing.Status = ParseBillingStatus(providerStatus)
	a.touch()
	return nil
}

// SyncSubscription overwrites the local billing state from a subscription
// created/updated event. planKey comes from the static price-to-plan map.
func (a *Agency) SyncSubscription(subscriptionID, providerStatus string, planKey PlanKey, periodEnd *time.Time) {
	a.billing.SubscriptionID = subscriptionID
	a.billing.Status = ParseBillingStatus(providerStatus)
	if planKey != "" {
		a.billing.PlanKey = planKey
	}
	a.billing.CurrentPeriodEnd = periodEnd
	a.touch()
}

// CancelSubscription marks the subscription canceled. The agency itself
// survives and keeps its data.
func (a *Agency) CancelSubscription() {
	a.billing.Status = BillingStatusCanceled
	a.touch()
}

// MarkPastDue flags a failed invoice payment. The agency is not locked out
// here; grace period policy belongs to the caller.
func (a *Agency) MarkPastDue() {
	a.billing.Status = BillingStatusPastDue
	a.touch()
}

// MarkInvoicePaid clears a past_due flag back to active. Agencies already
// active or trialing are left untouched.
func (a *Agency) MarkInvoicePaid() {
	if a.billing.Status == BillingStatusPastDue {
		a.billing.Status = BillingStatusActive
		a.touch()
	}
}
