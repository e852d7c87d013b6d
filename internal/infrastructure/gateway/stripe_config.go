package gateway

import (
	"fmt"

	"github.com/stripe/stripe-go/v81"

	"github.com/rentfolio/backend/internal/infrastructure/config"
)

// StripeConfig holds configuration for the Stripe payment gateway
type StripeConfig struct {
	// SecretKey is the Stripe secret API key (sk_test_xxx or sk_live_xxx)
	SecretKey string `json:"secret_key" mapstructure:"secret_key"`

	// WebhookSecret is the secret for verifying webhook signatures
	WebhookSecret string `json:"webhook_secret" mapstructure:"webhook_secret"`
}

// NewStripeConfig builds the gateway configuration from application config
func NewStripeConfig(cfg config.GatewayConfig) *StripeConfig {
	return &StripeConfig{
		SecretKey:     cfg.StripeSecretKey,
		WebhookSecret: cfg.StripeWebhookSecret,
	}
}

// Validate validates the Stripe configuration
func (c *StripeConfig) Validate() error {
	if c.SecretKey == "" {
		return fmt.Errorf("stripe: secret key is required")
	}
	if c.WebhookSecret == "" {
		return fmt.Errorf("stripe: webhook secret is required")
	}
	return nil
}

// Apply sets the global Stripe API key. Call once at startup before any
// outbound Stripe API use.
func (c *StripeConfig) Apply() {
	stripe.Key = c.SecretKey
}
