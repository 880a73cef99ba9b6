package billing

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	stripe "github.com/stripe/stripe-go/v82"

	"purser/internal/application/billing/usecases"
)

func TestWrapStripeErr_ClientErrorIsRejection(t *testing.T) {
	sErr := &stripe.Error{
		Type:           stripe.ErrorTypeInvalidRequest,
		HTTPStatusCode: 400,
		Msg:            "No such price: 'price_missing'",
	}

	err := wrapStripeErr("create checkout session", sErr)
	assert.ErrorIs(t, err, usecases.ErrProviderRejected)
	assert.Contains(t, err.Error(), "No such price")

	// A wrapped stripe error is still classified.
	err = wrapStripeErr("create stripe customer", fmt.Errorf("request failed: %w", sErr))
	assert.ErrorIs(t, err, usecases.ErrProviderRejected)
}

func TestWrapStripeErr_ServerAndTransportErrorsAreNot(t *testing.T) {
	sErr := &stripe.Error{
		Type:           stripe.ErrorTypeAPI,
		HTTPStatusCode: 503,
		Msg:            "service unavailable",
	}
	err := wrapStripeErr("create checkout session", sErr)
	assert.False(t, errors.Is(err, usecases.ErrProviderRejected))

	err = wrapStripeErr("create checkout session", fmt.Errorf("connection reset"))
	assert.False(t, errors.Is(err, usecases.ErrProviderRejected))
	assert.Contains(t, err.Error(), "create checkout session")
}
