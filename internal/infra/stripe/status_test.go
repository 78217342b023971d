package stripe

import (
	"testing"

	"github.com/shopspring/decimal"
	stripesdk "github.com/stripe/stripe-go/v75"

	"echopoint-app/internal/domain/signups"
)

func TestNormalizeSubscriptionStatus(t *testing.T) {
	tests := []struct {
		in   stripesdk.SubscriptionStatus
		want string
	}{
		{in: stripesdk.SubscriptionStatusActive, want: signups.SubscriptionStatusActive},
		{in: stripesdk.SubscriptionStatusTrialing, want: signups.SubscriptionStatusActive},
		{in: stripesdk.SubscriptionStatusIncompleteExpired, want: signups.SubscriptionStatusExpired},
		{in: stripesdk.SubscriptionStatusCanceled, want: signups.SubscriptionStatusCancelled},
		{in: stripesdk.SubscriptionStatusPastDue, want: signups.SubscriptionStatusCancelled},
		{in: stripesdk.SubscriptionStatusUnpaid, want: signups.SubscriptionStatusCancelled},
	}

	for _, tt := range tests {
		if got := NormalizeSubscriptionStatus(tt.in); got != tt.want {
			t.Fatalf("NormalizeSubscriptionStatus(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestToMinorUnits(t *testing.T) {
	tests := []struct {
		in   decimal.Decimal
		want int64
	}{
		{in: decimal.New(999, -2), want: 999},
		{in: decimal.New(1499, -2), want: 1499},
		{in: decimal.NewFromInt(10), want: 1000},
		{in: decimal.Zero, want: 0},
	}

	for _, tt := range tests {
		if got := ToMinorUnits(tt.in); got != tt.want {
			t.Fatalf("ToMinorUnits(%s) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFromMinorUnitsRoundTrip(t *testing.T) {
	for _, n := range []int64{0, 999, 1499, 100000} {
		if got := ToMinorUnits(FromMinorUnits(n)); got != n {
			t.Fatalf("round trip of %d produced %d", n, got)
		}
	}
}
