package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/webhook"
	"go.uber.org/zap"

	"github.com/rentfolio/backend/internal/infrastructure/gateway"
)

// Webhook processing errors
var (
	// ErrWebhookSignature is returned when the Stripe signature cannot be verified
	ErrWebhookSignature = errors.New("stripe webhook: signature verification failed")
	// ErrWebhookMissingTenant is returned when the event metadata carries no tenant
	ErrWebhookMissingTenant = errors.New("stripe webhook: missing tenant_id metadata")
	// ErrWebhookInvalidEvent marks a delivery that can never be applied,
	// such as malformed payloads or unparseable metadata. Retrying the
	// same delivery would fail the same way.
	ErrWebhookInvalidEvent = errors.New("stripe webhook: event cannot be applied")
)

// StripeWebhookService translates verified Stripe events into ledger
// payment events. Stripe retries deliveries, so everything downstream
// runs through the idempotent PaymentEventService.
type StripeWebhookService struct {
	config        *gateway.StripeConfig
	paymentEvents *PaymentEventService
	logger        *zap.Logger
}

// StripeWebhookServiceConfig contains configuration for StripeWebhookService
type StripeWebhookServiceConfig struct {
	Config        *gateway.StripeConfig
	PaymentEvents *PaymentEventService
	Logger        *zap.Logger
}

// NewStripeWebhookService creates a new StripeWebhookService
func NewStripeWebhookService(cfg StripeWebhookServiceConfig) *StripeWebhookService {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StripeWebhookService{
		config:        cfg.Config,
		paymentEvents: cfg.PaymentEvents,
		logger:        logger,
	}
}

// WebhookResult contains the result of processing a webhook delivery
type WebhookResult struct {
	EventID          string `json:"event_id"`
	EventType        string `json:"event_type"`
	Processed        bool   `json:"processed"`
	AlreadyProcessed bool   `json:"already_processed,omitempty"`
	Message          string `json:"message,omitempty"`
}

// ProcessWebhook verifies the delivery signature and applies the payment
// it describes. Unhandled event types are acknowledged without action so
// Stripe does not retry them.
func (s *StripeWebhookService) ProcessWebhook(ctx context.Context, payload []byte, signature string) (*WebhookResult, error) {
	event, err := webhook.ConstructEvent(payload, signature, s.config.WebhookSecret)
	if err != nil {
		s.logger.Error("Failed to verify webhook signature", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrWebhookSignature, err)
	}

	s.logger.Info("Processing Stripe webhook event",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)))

	result := &WebhookResult{
		EventID:   event.ID,
		EventType: string(event.Type),
		Processed: true,
	}

	var paymentEvent *PaymentEvent
	var tenantID uuid.UUID

	switch event.Type {
	case "payment_intent.succeeded":
		tenantID, paymentEvent, err = s.fromPaymentIntent(event)
	case "checkout.session.completed":
		tenantID, paymentEvent, err = s.fromCheckoutSession(event)
	default:
		s.logger.Debug("Unhandled webhook event type",
			zap.String("event_type", string(event.Type)))
		result.Message = "Event type not handled"
		return result, nil
	}
	if err != nil {
		result.Processed = false
		result.Message = err.Error()
		return result, err
	}

	outcome, err := s.paymentEvents.Process(ctx, tenantID, *paymentEvent)
	if err != nil {
		s.logger.Error("Failed to apply payment event from webhook",
			zap.String("event_id", event.ID),
			zap.String("transaction_id", paymentEvent.ExternalTransactionID),
			zap.Error(err))
		result.Processed = false
		result.Message = err.Error()
		return result, err
	}

	result.AlreadyProcessed = outcome.AlreadyProcessed
	if outcome.AlreadyProcessed {
		result.Message = "Duplicate delivery ignored"
	} else {
		result.Message = fmt.Sprintf("Payment applied, status %s", outcome.Status)
	}
	return result, nil
}

func (s *StripeWebhookService) fromPaymentIntent(event stripe.Event) (uuid.UUID, *PaymentEvent, error) {
	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		return uuid.Nil, nil, fmt.Errorf("%w: bad payment intent payload: %v", ErrWebhookInvalidEvent, err)
	}

	tenantID, err := tenantFromMetadata(intent.Metadata)
	if err != nil {
		return uuid.Nil, nil, err
	}

	paymentEvent, err := eventFromMetadata(intent.Metadata, intent.AmountReceived, intent.ID, event.Created)
	if err != nil {
		return uuid.Nil, nil, err
	}
	return tenantID, paymentEvent, nil
}

func (s *StripeWebhookService) fromCheckoutSession(event stripe.Event) (uuid.UUID, *PaymentEvent, error) {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return uuid.Nil, nil, fmt.Errorf("%w: bad checkout session payload: %v", ErrWebhookInvalidEvent, err)
	}

	tenantID, err := tenantFromMetadata(session.Metadata)
	if err != nil {
		return uuid.Nil, nil, err
	}

	// Prefer the payment intent as the transaction ID so a later
	// payment_intent.succeeded replay for the same money dedupes
	transactionID := session.ID
	if session.PaymentIntent != nil && session.PaymentIntent.ID != "" {
		transactionID = session.PaymentIntent.ID
	}

	paymentEvent, err := eventFromMetadata(session.Metadata, session.AmountTotal, transactionID, event.Created)
	if err != nil {
		return uuid.Nil, nil, err
	}
	return tenantID, paymentEvent, nil
}

func tenantFromMetadata(metadata map[string]string) (uuid.UUID, error) {
	raw, ok := metadata["tenant_id"]
	if !ok || raw == "" {
		return uuid.Nil, ErrWebhookMissingTenant
	}
	tenantID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid tenant_id metadata: %v", ErrWebhookInvalidEvent, err)
	}
	return tenantID, nil
}

// eventFromMetadata builds the ledger event from the checkout metadata
// written when the payment link was created. rent_payment_id pins the
// exact period; lease_id with an optional period_start falls back to
// oldest-outstanding resolution.
func eventFromMetadata(metadata map[string]string, amount int64, transactionID string, created int64) (*PaymentEvent, error) {
	paymentEvent := &PaymentEvent{
		Amount:                amount,
		ExternalTransactionID: transactionID,
		OccurredAt:            time.Unix(created, 0).UTC(),
	}

	if raw, ok := metadata["rent_payment_id"]; ok && raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid rent_payment_id metadata: %v", ErrWebhookInvalidEvent, err)
		}
		paymentEvent.PaymentID = &id
	}
	if raw, ok := metadata["lease_id"]; ok && raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid lease_id metadata: %v", ErrWebhookInvalidEvent, err)
		}
		paymentEvent.LeaseID = &id
	}
	if raw, ok := metadata["period_start"]; ok && raw != "" {
		periodStart, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid period_start metadata: %v", ErrWebhookInvalidEvent, err)
		}
		paymentEvent.PeriodStart = &periodStart
	}

	return paymentEvent, nil
}
