package signups

import (
	"time"

	"echopoint-app/internal/domain/users"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment types.
const (
	PaymentTypeOneTime      = "one_time"
	PaymentTypeSubscription = "subscription"
)

// Payment statuses. Pending is the initial state; paid is the expected
// terminal state. Transitions are applied as absolute sets, so a redelivered
// provider event lands on the same final state.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

// Subscription statuses. Only meaningful when PaymentType is subscription.
const (
	SubscriptionStatusActive    = "active"
	SubscriptionStatusCancelled = "cancelled"
	SubscriptionStatusExpired   = "expired"
)

// EventSignup is one checkout attempt for one event seat. The ID is
// generated at insert and never changes; there is no delete path.
type EventSignup struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uint          `gorm:"not null;index" json:"user_id"`
	User      users.User    `json:"-"`
	ProfileID uuid.UUID     `gorm:"type:uuid;not null" json:"profile_id"`
	Profile   users.Profile `json:"-"`

	EventDate   time.Time `gorm:"type:date" json:"event_date"`
	PaymentType string    `gorm:"type:varchar(20);not null" json:"payment_type"`

	PaymentStatus      string  `gorm:"type:varchar(20);not null;default:'pending';index" json:"payment_status"`
	SubscriptionStatus *string `gorm:"type:varchar(20)" json:"subscription_status,omitempty"`

	Amount decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`

	StripePaymentID *string `gorm:"column:stripe_payment_id" json:"stripe_payment_id,omitempty"`
	PaymentURL      *string `gorm:"column:payment_url" json:"payment_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *EventSignup) TableName() string { return "events_signup" }

func (s *EventSignup) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// WebhookEvent is an append-only audit row per verified provider event.
// It records delivery, it does not gate processing: record updates stay
// idempotent by construction and redeliveries simply re-apply them.
type WebhookEvent struct {
	ID          uint   `gorm:"primaryKey"`
	EventID     string `gorm:"index"`
	EventType   string
	ProcessedAt time.Time
}
