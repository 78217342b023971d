package stripewebhooks

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"echopoint-app/internal/domain/signups"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/webhook"
)

// Handler reconciles signup records against asynchronous Stripe events.
type Handler struct {
	Store         *signups.Store
	WebhookSecret string
}

func NewHandler(store *signups.Store, webhookSecret string) *Handler {
	return &Handler{Store: store, WebhookSecret: webhookSecret}
}

// HandleWebhook verifies the delivery signature against the raw body and
// dispatches on event type. Nothing is mutated before verification passes.
// Once it does, the delivery is always acknowledged with 200: a failed
// record update is our problem, and a non-2xx here would only trigger the
// provider's retry storm for an error it cannot fix.
func (h *Handler) HandleWebhook(c *gin.Context) {
	if h.WebhookSecret == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook secret not configured"})
		return
	}

	payload, err := readStripeBody(c, 65536)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Error reading request body"})
		return
	}

	event, err := webhook.ConstructEventWithOptions(
		payload,
		c.GetHeader("Stripe-Signature"),
		h.WebhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		log.Println("Stripe signature verification failed:", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Signature verification failed"})
		return
	}

	// Audit trail only; processing is not gated on the event id, a
	// redelivery re-applies the same absolute update.
	if err := h.Store.RecordWebhookEvent(event.ID, string(event.Type)); err != nil {
		log.Println("Failed to record webhook event", event.ID, ":", err)
	}

	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse session"})
			return
		}
		if err := h.handleCheckoutCompleted(&session); err != nil {
			log.Println("Error processing checkout.session.completed:", err)
		}
		c.JSON(http.StatusOK, gin.H{"status": "received"})

	case "customer.subscription.created", "customer.subscription.updated":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse subscription"})
			return
		}
		if err := h.handleSubscriptionUpdated(&sub); err != nil {
			log.Println("Error processing", event.Type, ":", err)
		}
		c.JSON(http.StatusOK, gin.H{"status": "received"})

	case "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse subscription"})
			return
		}
		if err := h.handleSubscriptionDeleted(&sub); err != nil {
			log.Println("Error processing customer.subscription.deleted:", err)
		}
		c.JSON(http.StatusOK, gin.H{"status": "received"})

	default:
		// Acknowledge unknown events to avoid retries.
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
	}
}

func readStripeBody(c *gin.Context, maxBytes int64) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	return io.ReadAll(c.Request.Body)
}
