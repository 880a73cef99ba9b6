package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	sharedConfig "purser/internal/shared/config"
)

func validConfig() *Config {
	return &Config{
		Server: sharedConfig.ServerConfig{
			AppURL: "https://app.purser.example",
		},
		Stripe: sharedConfig.StripeConfig{
			SecretKey:       "sk_test_123",
			WebhookSecret:   "whsec_123",
			PriceSoloGroups: "price_solo",
			PricePro:        "price_pro",
		},
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid config passes", func(t *testing.T) {
		assert.NoError(t, validConfig().Validate())
	})

	t.Run("missing keys are all reported", func(t *testing.T) {
		cfg := validConfig()
		cfg.Server.AppURL = ""
		cfg.Stripe.PriceSoloGroups = ""
		cfg.Stripe.PricePro = ""

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "PURSER_SERVER_APP_URL")
		assert.Contains(t, err.Error(), "PURSER_STRIPE_PRICE_SOLO_GROUPS")
		assert.Contains(t, err.Error(), "PURSER_STRIPE_PRICE_PRO")
		assert.NotContains(t, err.Error(), "PURSER_STRIPE_SECRET_KEY")
	})

	t.Run("missing secrets are reported", func(t *testing.T) {
		cfg := validConfig()
		cfg.Stripe.SecretKey = ""
		cfg.Stripe.WebhookSecret = ""

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Equal(t, 2, strings.Count(err.Error(), "PURSER_STRIPE_"))
	})
}
