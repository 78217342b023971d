package stripewebhooks

import (
	"fmt"
	"log"

	infrastripe "echopoint-app/internal/infra/stripe"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v75"
)

// handleSubscriptionUpdated covers both customer.subscription.created and
// customer.subscription.updated. Subscriptions are resolved by correlation
// metadata only; there is no heuristic fallback for recurring payments.
func (h *Handler) handleSubscriptionUpdated(sub *stripe.Subscription) error {
	id, ok := signupIDFromMetadata(sub.Metadata)
	if !ok {
		log.Println("Subscription", sub.ID, "carries no event_signup_id, skipping")
		return nil
	}

	status := infrastripe.NormalizeSubscriptionStatus(sub.Status)
	if err := h.Store.ApplySubscription(id, status, sub.ID); err != nil {
		return fmt.Errorf("failed to update subscription state for signup %s: %w", id, err)
	}
	return nil
}

func signupIDFromMetadata(md map[string]string) (uuid.UUID, bool) {
	if md == nil {
		return uuid.Nil, false
	}
	s := md["event_signup_id"]
	if s == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
