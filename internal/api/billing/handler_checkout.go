package billing

import (
	"errors"
	"log"
	"net/http"

	"echopoint-app/internal/domain/signups"
	infrastripe "echopoint-app/internal/infra/stripe"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
	"gorm.io/gorm"
)

// Handler creates hosted Stripe Checkout sessions for signup records.
type Handler struct {
	Store     *signups.Store
	StripeKey string
	AppURL    string
}

func NewHandler(store *signups.Store, stripeKey, appURL string) *Handler {
	return &Handler{Store: store, StripeKey: stripeKey, AppURL: appURL}
}

// CreateCheckoutSession handles POST /api/create-checkout-session?event_signup_id=...
// (one-time ticket purchase).
func (h *Handler) CreateCheckoutSession(c *gin.Context) {
	h.createSession(c, false)
}

// CreateSubscription handles POST /api/create-subscription?event_signup_id=...
// (monthly subscription).
func (h *Handler) CreateSubscription(c *gin.Context) {
	h.createSession(c, true)
}

func (h *Handler) createSession(c *gin.Context, recurring bool) {
	stripe.Key = h.StripeKey
	if stripe.Key == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe key not configured"})
		return
	}

	idStr := c.Query("event_signup_id")
	if idStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing event_signup_id"})
		return
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event_signup_id"})
		return
	}

	rec, err := h.Store.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event signup not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load event signup"})
		return
	}

	priceData := &stripe.CheckoutSessionLineItemPriceDataParams{
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name:        stripe.String("Event Ticket"),
			Description: stripe.String("One-time event ticket purchase"),
		},
		UnitAmount: stripe.Int64(infrastripe.ToMinorUnits(rec.Amount)),
	}
	mode := stripe.CheckoutSessionModePayment
	if recurring {
		priceData.ProductData.Name = stripe.String("Monthly Event Subscription")
		priceData.ProductData.Description = stripe.String("Access to all monthly events")
		priceData.Recurring = &stripe.CheckoutSessionLineItemPriceDataRecurringParams{
			Interval: stripe.String(string(stripe.PriceRecurringIntervalMonth)),
		}
		mode = stripe.CheckoutSessionModeSubscription
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{PriceData: priceData, Quantity: stripe.Int64(1)},
		},
		Mode:       stripe.String(string(mode)),
		SuccessURL: stripe.String(h.AppURL + "/dashboard?success=true"),
		CancelURL:  stripe.String(h.AppURL + "/dashboard?canceled=true"),
		// Every session created here carries the record id, so the webhook
		// resolves it deterministically instead of falling back to matching.
		Metadata: map[string]string{"event_signup_id": rec.ID.String()},
	}
	if recurring {
		params.SubscriptionData = &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: map[string]string{"event_signup_id": rec.ID.String()},
		}
	}

	s, err := checkoutsession.New(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout session", "details": err.Error()})
		return
	}

	// Write-back failure does not block the caller; the URL is still usable
	// and the webhook will reconcile the record later.
	if err := h.Store.SetPaymentURL(rec.ID, s.URL); err != nil {
		log.Println("Failed to store checkout URL for signup", rec.ID, ":", err)
	}

	c.JSON(http.StatusOK, gin.H{"url": s.URL})
}
