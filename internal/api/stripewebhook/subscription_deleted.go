package stripewebhooks

import (
	"fmt"
	"log"

	"github.com/stripe/stripe-go/v75"
)

// handleSubscriptionDeleted cancels the record's subscription state.
// payment_status is deliberately left untouched: the signup was paid for
// the periods that already ran.
func (h *Handler) handleSubscriptionDeleted(sub *stripe.Subscription) error {
	id, ok := signupIDFromMetadata(sub.Metadata)
	if !ok {
		log.Println("Deleted subscription", sub.ID, "carries no event_signup_id, skipping")
		return nil
	}

	if err := h.Store.CancelSubscription(id); err != nil {
		return fmt.Errorf("failed to cancel subscription for signup %s: %w", id, err)
	}
	return nil
}
