package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	ledgerapp "github.com/rentfolio/backend/internal/application/ledger"
	"github.com/rentfolio/backend/internal/domain/ledger"
)

// Maximum webhook payload size (64KB - Stripe webhooks are small)
const maxWebhookPayloadSize = 65536

// PaymentWebhookHandler receives payment gateway deliveries. Stripe
// calls these endpoints directly, so they carry no tenant header and no
// authentication beyond the signature.
type PaymentWebhookHandler struct {
	BaseHandler
	webhookService *ledgerapp.StripeWebhookService
}

// NewPaymentWebhookHandler creates a new PaymentWebhookHandler
func NewPaymentWebhookHandler(webhookService *ledgerapp.StripeWebhookService) *PaymentWebhookHandler {
	return &PaymentWebhookHandler{webhookService: webhookService}
}

// PaymentWebhookResponse represents the response for a gateway delivery
type PaymentWebhookResponse struct {
	Received  bool   `json:"received"`
	EventID   string `json:"event_id,omitempty"`
	EventType string `json:"event_type,omitempty"`
	Message   string `json:"message,omitempty"`
}

// permanentWebhookError reports whether a verified delivery can never
// be applied. Those get acknowledged with 200 so Stripe stops retrying;
// anything else (a database outage, a lock timeout) gets a 503 so the
// retry lands once the dependency recovers.
func permanentWebhookError(err error) bool {
	return errors.Is(err, ledgerapp.ErrWebhookMissingTenant) ||
		errors.Is(err, ledgerapp.ErrWebhookInvalidEvent) ||
		errors.Is(err, ledgerapp.ErrEventInvalidAmount) ||
		errors.Is(err, ledgerapp.ErrEventMissingTransactionID) ||
		errors.Is(err, ledger.ErrPaymentNotFound)
}

// HandleStripeWebhook verifies and applies a Stripe webhook delivery.
// After a verified signature, permanently-failing events return 200 so
// Stripe does not retry them; transient failures return 503 to request
// a retry.
func (h *PaymentWebhookHandler) HandleStripeWebhook(c *gin.Context) {
	// Stripe requires the raw body for signature verification
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookPayloadSize+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, PaymentWebhookResponse{
			Received: false,
			Message:  "Failed to read request body",
		})
		return
	}

	if len(payload) > maxWebhookPayloadSize {
		c.JSON(http.StatusRequestEntityTooLarge, PaymentWebhookResponse{
			Received: false,
			Message:  "Payload too large",
		})
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if signature == "" {
		c.JSON(http.StatusUnauthorized, PaymentWebhookResponse{
			Received: false,
			Message:  "Missing Stripe-Signature header",
		})
		return
	}

	result, err := h.webhookService.ProcessWebhook(c.Request.Context(), payload, signature)
	if err != nil {
		// A nil result means the signature never verified
		if result == nil {
			c.JSON(http.StatusUnauthorized, PaymentWebhookResponse{
				Received: false,
				Message:  "Webhook signature verification failed",
			})
			return
		}

		// Internal error details stay out of the response body
		if permanentWebhookError(err) {
			c.JSON(http.StatusOK, PaymentWebhookResponse{
				Received:  true,
				EventID:   result.EventID,
				EventType: result.EventType,
				Message:   "Webhook received but cannot be applied",
			})
			return
		}
		c.JSON(http.StatusServiceUnavailable, PaymentWebhookResponse{
			Received:  false,
			EventID:   result.EventID,
			EventType: result.EventType,
			Message:   "Temporary processing failure, delivery will be retried",
		})
		return
	}

	c.JSON(http.StatusOK, PaymentWebhookResponse{
		Received:  true,
		EventID:   result.EventID,
		EventType: result.EventType,
		Message:   result.Message,
	})
}

// RegisterRoutes registers webhook routes
func (h *PaymentWebhookHandler) RegisterRoutes(rg *gin.RouterGroup) {
	webhooks := rg.Group("/webhooks")
	{
		webhooks.POST("/stripe", h.HandleStripeWebhook)
	}
}
