package stripewebhooks

import (
	"errors"
	"fmt"
	"log"
	"strings"

	infrastripe "echopoint-app/internal/infra/stripe"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v75"
	"gorm.io/gorm"
)

// handleCheckoutCompleted marks the matching signup record paid. Records
// are resolved by the event_signup_id correlation metadata when present;
// sessions created outside our own checkout endpoints (shared payment
// links) carry none, so those fall back to heuristic matching.
func (h *Handler) handleCheckoutCompleted(session *stripe.CheckoutSession) error {
	paymentRef := ""
	if session.PaymentIntent != nil {
		paymentRef = session.PaymentIntent.ID
	}

	if idStr := session.Metadata["event_signup_id"]; idStr != "" {
		id, err := uuid.Parse(idStr)
		if err != nil {
			return fmt.Errorf("invalid event_signup_id %q: %w", idStr, err)
		}
		if err := h.Store.MarkPaid(id, paymentRef); err != nil {
			return fmt.Errorf("failed to update event signup %s: %w", id, err)
		}
		return nil
	}

	return h.matchWithoutMetadata(session, paymentRef)
}

// matchWithoutMetadata takes the newest pending one-time record with the
// paid amount and commits only if the payer email matches the record's
// owner. The lookup and the update are separate statements against the
// store, so two concurrent identical purchases can claim the same record;
// that window is accepted for this degraded path.
func (h *Handler) matchWithoutMetadata(session *stripe.CheckoutSession, paymentRef string) error {
	if session.CustomerDetails == nil || session.CustomerDetails.Email == "" {
		log.Println("Checkout session", session.ID, "has no metadata and no payer email, skipping")
		return nil
	}

	amount := infrastripe.FromMinorUnits(session.AmountTotal)
	rec, err := h.Store.LatestPendingOneTime(amount)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Println("No pending one-time signup for amount", amount, "- skipping session", session.ID)
			return nil
		}
		return fmt.Errorf("failed to look up pending signup: %w", err)
	}

	email, err := h.Store.OwnerEmail(rec.UserID)
	if err != nil {
		return fmt.Errorf("failed to resolve owner of signup %s: %w", rec.ID, err)
	}
	if !strings.EqualFold(email, session.CustomerDetails.Email) {
		log.Println("Payer email does not match owner of signup", rec.ID, "- skipping session", session.ID)
		return nil
	}

	if err := h.Store.MarkPaid(rec.ID, paymentRef); err != nil {
		return fmt.Errorf("failed to update event signup %s: %w", rec.ID, err)
	}
	log.Println("Matched session", session.ID, "to signup", rec.ID, "by amount and payer email")
	return nil
}
