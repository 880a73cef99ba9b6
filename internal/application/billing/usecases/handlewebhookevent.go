package usecases

import (
	"context"
	"errors"
	"fmt"

	"purser/internal/domain/agency"
	"purser/internal/shared/logger"
)

// Provider event types the billing state machine reacts to.
const (
	EventCheckoutSessionCompleted    = "checkout.session.completed"
	EventCustomerSubscriptionCreated = "customer.subscription.created"
	EventCustomerSubscriptionUpdated = "customer.subscription.updated"
	EventCustomerSubscriptionDeleted = "customer.subscription.deleted"
	EventInvoicePaymentFailed        = "invoice.payment_failed"
	EventInvoicePaid                 = "invoice.paid"
)

type HandleWebhookEventUseCase struct {
	agencyRepo agency.Repository
	eventStore agency.WebhookEventStore
	catalog    *agency.Catalog
	tx         Transactor
	logger     logger.Interface
}

func NewHandleWebhookEventUseCase(
	agencyRepo agency.Repository,
	eventStore agency.WebhookEventStore,
	catalog *agency.Catalog,
	tx Transactor,
	logger logger.Interface,
) *HandleWebhookEventUseCase {
	return &HandleWebhookEventUseCase{
		agencyRepo: agencyRepo,
		eventStore: eventStore,
		catalog:    catalog,
		tx:         tx,
		logger:     logger,
	}
}

// Execute applies one provider event to the owning agency's billing state.
// The event ID is recorded in the same transaction as the state change, so a
// redelivered event is a no-op and a failed apply leaves the event unmarked
// for the provider's retry.
func (uc *HandleWebhookEventUseCase) Execute(ctx context.Context, ev WebhookEvent) error {
	if ev.EventID == "" {
		return fmt.Errorf("event ID is required")
	}

	return uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		fresh, err := uc.eventStore.MarkProcessed(txCtx, ev.EventID, ev.EventType)
		if err != nil {
			return fmt.Errorf("failed to record webhook event: %w", err)
		}
		if !fresh {
			uc.logger.Infow("webhook event already processed", "event_id", ev.EventID, "event_type", ev.EventType)
			return nil
		}

		return uc.apply(txCtx, ev)
	})
}

func (uc *HandleWebhookEventUseCase) apply(ctx context.Context, ev WebhookEvent) error {
	ag, err := uc.findAgency(ctx, ev)
	if err != nil {
		if errors.Is(err, agency.ErrAgencyNotFound) {
			// Events for agencies we no longer know are accepted so the
			// provider stops retrying.
			uc.logger.Warnw("webhook event for unknown agency",
				"event_id", ev.EventID, "event_type", ev.EventType,
				"agency_sid", ev.AgencySID, "customer_id", ev.CustomerID)
			return nil
		}
		return err
	}
	if ag == nil {
		uc.logger.Debugw("webhook event carries no agency reference, ignoring",
			"event_id", ev.EventID, "event_type", ev.EventType)
		return nil
	}

	switch ev.EventType {
	case EventCheckoutSessionCompleted:
		if err := ag.CompleteCheckout(ev.CustomerID, ev.SubscriptionID, ev.ProviderStatus); err != nil {
			return fmt.Errorf("failed to complete checkout: %w", err)
		}

	case EventCustomerSubscriptionCreated, EventCustomerSubscriptionUpdated:
		ag.SyncSubscription(ev.SubscriptionID, ev.ProviderStatus, uc.planKeyForPrice(ev.PriceID), ev.CurrentPeriodEnd)

	case EventCustomerSubscriptionDeleted:
		ag.CancelSubscription()

	case EventInvoicePaymentFailed:
		ag.MarkPastDue()

	case EventInvoicePaid:
		ag.MarkInvoicePaid()

	default:
		uc.logger.Debugw("unhandled webhook event type", "event_id", ev.EventID, "event_type", ev.EventType)
		return nil
	}

	if err := uc.agencyRepo.Update(ctx, ag); err != nil {
		return fmt.Errorf("failed to update agency billing state: %w", err)
	}

	uc.logger.Infow("billing state updated from webhook",
		"event_id", ev.EventID,
		"event_type", ev.EventType,
		"agency_id", ag.ID(),
		"billing_status", ag.Billing().Status,
	)
	return nil
}

// findAgency resolves the event's owning agency. Checkout sessions carry the
// agency SID in metadata; subscription and invoice events are routed by the
// provider customer ID. A nil agency with nil error means the event carries
// no usable reference.
func (uc *HandleWebhookEventUseCase) findAgency(ctx context.Context, ev WebhookEvent) (*agency.Agency, error) {
	if ev.AgencySID != "" {
		ag, err := uc.agencyRepo.FindBySID(ctx, ev.AgencySID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up agency by sid: %w", err)
		}
		return ag, nil
	}
	if ev.CustomerID != "" {
		ag, err := uc.agencyRepo.FindByStripeCustomerID(ctx, ev.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up agency by customer: %w", err)
		}
		return ag, nil
	}
	return nil, nil
}

// planKeyForPrice maps a provider price ID to a plan key. An unknown price
// yields the zero key, which keeps the agency's existing plan.
func (uc *HandleWebhookEventUseCase) planKeyForPrice(priceID string) agency.PlanKey {
	if priceID == "" {
		return ""
	}
	plan, ok := uc.catalog.PlanByPriceID(priceID)
	if !ok {
		uc.logger.Warnw("unknown price ID in webhook event", "price_id", priceID)
		return ""
	}
	return plan.Key
}
