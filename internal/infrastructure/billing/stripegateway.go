package billing

import (
	"context"
	"errors"
	"fmt"

	stripe "github.com/stripe/stripe-go/v82"
	portalsession "github.com/stripe/stripe-go/v82/billingportal/session"
	checkoutsession "github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/customer"

	"purser/internal/application/billing/usecases"
	"purser/internal/shared/config"
)

// StripeGateway implements the billing provider contract against the Stripe
// API. Customers are tagged with the owning agency SID so webhook events can
// always be routed back to a tenant.
type StripeGateway struct {
	cfg config.StripeConfig
}

func NewStripeGateway(cfg config.StripeConfig) *StripeGateway {
	stripe.Key = cfg.SecretKey
	return &StripeGateway{cfg: cfg}
}

// wrapStripeErr separates rejections from outages: a 4xx from Stripe means
// the request itself was bad and wraps ErrProviderRejected, everything else
// stays an opaque provider failure.
func wrapStripeErr(op string, err error) error {
	var sErr *stripe.Error
	if errors.As(err, &sErr) && sErr.HTTPStatusCode >= 400 && sErr.HTTPStatusCode < 500 {
		return fmt.Errorf("%w: %s: %s", usecases.ErrProviderRejected, op, sErr.Msg)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (g *StripeGateway) CreateCustomer(ctx context.Context, name, email, agencySID string) (string, error) {
	params := &stripe.CustomerParams{
		Name:  stripe.String(name),
		Email: stripe.String(email),
		Metadata: map[string]string{
			"agencyId": agencySID,
		},
	}
	params.Context = ctx

	c, err := customer.New(params)
	if err != nil {
		return "", wrapStripeErr("create stripe customer", err)
	}
	return c.ID, nil
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, p usecases.CheckoutSessionParams) (*usecases.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		Customer:   stripe.String(p.CustomerID),
		SuccessURL: stripe.String(p.SuccessURL),
		CancelURL:  stripe.String(p.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(p.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
		ClientReferenceID: stripe.String(p.AgencySID),
		Metadata: map[string]string{
			"agencyId": p.AgencySID,
		},
	}
	if p.Locale != "" {
		params.Locale = stripe.String(p.Locale)
	}
	params.Context = ctx

	session, err := checkoutsession.New(params)
	if err != nil {
		return nil, wrapStripeErr("create checkout session", err)
	}
	if session.URL == "" {
		return nil, fmt.Errorf("stripe returned empty checkout URL")
	}

	return &usecases.CheckoutSession{
		SessionID: session.ID,
		URL:       session.URL,
	}, nil
}

func (g *StripeGateway) CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error) {
	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(returnURL),
	}
	params.Context = ctx

	session, err := portalsession.New(params)
	if err != nil {
		return "", wrapStripeErr("create portal session", err)
	}
	return session.URL, nil
}
