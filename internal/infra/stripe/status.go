package stripe

import (
	"github.com/shopspring/decimal"
	stripesdk "github.com/stripe/stripe-go/v75"

	"echopoint-app/internal/domain/signups"
)

// NormalizeSubscriptionStatus maps Stripe's subscription status onto the
// three states a signup record tracks.
func NormalizeSubscriptionStatus(s stripesdk.SubscriptionStatus) string {
	switch s {
	case stripesdk.SubscriptionStatusActive, stripesdk.SubscriptionStatusTrialing:
		return signups.SubscriptionStatusActive
	case stripesdk.SubscriptionStatusIncompleteExpired:
		return signups.SubscriptionStatusExpired
	default:
		return signups.SubscriptionStatusCancelled
	}
}

// ToMinorUnits converts a decimal currency amount to Stripe's integer
// minor units (9.99 -> 999).
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// FromMinorUnits is the inverse (999 -> 9.99).
func FromMinorUnits(n int64) decimal.Decimal {
	return decimal.New(n, -2)
}
