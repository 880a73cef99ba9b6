package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	billingUC "purser/internal/application/billing/usecases"
	"purser/internal/infrastructure/billing"
	"purser/internal/shared/logger"
)

// maxWebhookBodyBytes bounds the raw payload read; provider events are small.
const maxWebhookBodyBytes = 65536

type WebhookHandler struct {
	decoder        *billing.WebhookDecoder
	webhookUseCase *billingUC.HandleWebhookEventUseCase
	logger         logger.Interface
}

func NewWebhookHandler(
	decoder *billing.WebhookDecoder,
	webhookUseCase *billingUC.HandleWebhookEventUseCase,
	logger logger.Interface,
) *WebhookHandler {
	return &WebhookHandler{
		decoder:        decoder,
		webhookUseCase: webhookUseCase,
		logger:         logger,
	}
}

// HandleStripeWebhook verifies the signature over the raw body before any
// parsing, applies the event, and acknowledges with {"received":true}.
// Unknown event types are acknowledged too; a handler failure returns 500 so
// the provider redelivers.
func (h *WebhookHandler) HandleStripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBodyBytes))
	if err != nil {
		h.logger.Warnw("failed to read webhook body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	ev, err := h.decoder.Decode(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		if errors.Is(err, billing.ErrInvalidSignature) {
			h.logger.Warnw("webhook signature verification failed", "ip", c.ClientIP())
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
			return
		}
		h.logger.Warnw("failed to decode webhook payload", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if err := h.webhookUseCase.Execute(c.Request.Context(), ev); err != nil {
		h.logger.Errorw("webhook handling failed", "error", err, "event_id", ev.EventID, "event_type", ev.EventType)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "event handling failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
