package usecases

import (
	"context"
	"errors"
	"time"
)

// ErrProviderRejected marks a request the payment provider refused as
// malformed. Transport failures and provider outages do not wrap it.
var ErrProviderRejected = errors.New("payment provider rejected request")

// CheckoutSessionParams carries what the payment provider needs to start a
// subscription checkout.
type CheckoutSessionParams struct {
	CustomerID string
	PriceID    string
	AgencySID  string
	Locale     string
	SuccessURL string
	CancelURL  string
}

// CheckoutSession is the provider's created session.
type CheckoutSession struct {
	SessionID string
	URL       string
}

// BillingGateway abstracts the payment provider. The Stripe implementation
// lives in the infrastructure layer.
type BillingGateway interface {
	// CreateCustomer registers the agency with the provider and returns the
	// provider's customer ID. The agency SID is attached as metadata so
	// webhook events can be traced back.
	CreateCustomer(ctx context.Context, name, email, agencySID string) (string, error)
	// CreateCheckoutSession starts a subscription checkout and returns the
	// session ID together with the hosted page URL.
	CreateCheckoutSession(ctx context.Context, params CheckoutSessionParams) (*CheckoutSession, error)
	// CreatePortalSession opens the provider's self-serve billing portal.
	CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error)
}

// WebhookEvent is a provider event normalized by the interface layer. Only
// the fields the billing state machine needs are carried.
type WebhookEvent struct {
	EventID          string
	EventType        string
	AgencySID        string
	CustomerID       string
	SubscriptionID   string
	ProviderStatus   string
	PriceID          string
	CurrentPeriodEnd *time.Time
}

// Transactor runs a function within a database transaction.
type Transactor interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
