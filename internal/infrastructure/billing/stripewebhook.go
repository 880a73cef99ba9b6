package billing

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v82/webhook"

	"purser/internal/application/billing/usecases"
)

// WebhookDecoder verifies a provider webhook signature against the raw body
// and flattens the event payload into the fields the billing state machine
// consumes. Payloads are decoded into minimal local shapes so provider API
// version drift does not break routing.
type WebhookDecoder struct {
	secret string
}

func NewWebhookDecoder(secret string) *WebhookDecoder {
	return &WebhookDecoder{secret: secret}
}

// ErrInvalidSignature is returned when the signature header does not match
// the raw payload.
var ErrInvalidSignature = fmt.Errorf("invalid webhook signature")

func (d *WebhookDecoder) Decode(payload []byte, sigHeader string) (usecases.WebhookEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, sigHeader, d.secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return usecases.WebhookEvent{}, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	ev := usecases.WebhookEvent{
		EventID:   event.ID,
		EventType: string(event.Type),
	}

	switch ev.EventType {
	case usecases.EventCheckoutSessionCompleted:
		var session checkoutSessionPayload
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return usecases.WebhookEvent{}, fmt.Errorf("failed to decode checkout session: %w", err)
		}
		ev.AgencySID = session.AgencySID()
		ev.CustomerID = session.Customer
		ev.SubscriptionID = session.Subscription
		// The session payload carries no subscription status. The
		// subscription.created event that follows sets the real one; active
		// is the provisional state until it lands.
		ev.ProviderStatus = "active"

	case usecases.EventCustomerSubscriptionCreated,
		usecases.EventCustomerSubscriptionUpdated,
		usecases.EventCustomerSubscriptionDeleted:
		var sub subscriptionPayload
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return usecases.WebhookEvent{}, fmt.Errorf("failed to decode subscription: %w", err)
		}
		ev.CustomerID = sub.Customer
		ev.SubscriptionID = sub.ID
		ev.ProviderStatus = sub.Status
		ev.PriceID = sub.FirstPriceID()
		ev.CurrentPeriodEnd = sub.PeriodEnd()

	case usecases.EventInvoicePaid, usecases.EventInvoicePaymentFailed:
		var inv invoicePayload
		if err := json.Unmarshal(event.Data.Raw, &inv); err != nil {
			return usecases.WebhookEvent{}, fmt.Errorf("failed to decode invoice: %w", err)
		}
		ev.CustomerID = inv.Customer
		ev.SubscriptionID = inv.SubscriptionID()
	}

	return ev, nil
}

// checkoutSessionPayload is a minimal representation of a checkout.session
// event payload.
type checkoutSessionPayload struct {
	ID           string            `json:"id"`
	Customer     string            `json:"customer"`
	Subscription string            `json:"subscription"`
	Metadata     map[string]string `json:"metadata"`
}

func (s *checkoutSessionPayload) AgencySID() string {
	return strings.TrimSpace(s.Metadata["agencyId"])
}

// subscriptionPayload is a minimal representation of a subscription event
// payload. The current period end has moved between the top level and the
// subscription items across provider API versions, so both are read.
type subscriptionPayload struct {
	ID               string `json:"id"`
	Customer         string `json:"customer"`
	Status           string `json:"status"`
	CurrentPeriodEnd int64  `json:"current_period_end"`
	Items            struct {
		Data []struct {
			CurrentPeriodEnd int64 `json:"current_period_end"`
			Price            struct {
				ID string `json:"id"`
			} `json:"price"`
		} `json:"data"`
	} `json:"items"`
}

func (s *subscriptionPayload) FirstPriceID() string {
	for _, item := range s.Items.Data {
		if priceID := strings.TrimSpace(item.Price.ID); priceID != "" {
			return priceID
		}
	}
	return ""
}

func (s *subscriptionPayload) PeriodEnd() *time.Time {
	ts := s.CurrentPeriodEnd
	if ts == 0 {
		for _, item := range s.Items.Data {
			if item.CurrentPeriodEnd != 0 {
				ts = item.CurrentPeriodEnd
				break
			}
		}
	}
	if ts == 0 {
		return nil
	}
	t := time.Unix(ts, 0).UTC()
	return &t
}

// invoicePayload is a minimal representation of an invoice event payload.
type invoicePayload struct {
	ID       string `json:"id"`
	Customer string `json:"customer"`
	// The subscription reference moved under parent.subscription_details in
	// newer provider API versions.
	Subscription string `json:"subscription"`
	Parent       struct {
		SubscriptionDetails struct {
			Subscription string `json:"subscription"`
		} `json:"subscription_details"`
	} `json:"parent"`
}

func (i *invoicePayload) SubscriptionID() string {
	if i.Subscription != "" {
		return i.Subscription
	}
	return i.Parent.SubscriptionDetails.Subscription
}
