package signups

import (
	"time"

	"echopoint-app/internal/domain/users"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Store wraps all persistence for signup records. Handlers receive it from
// main instead of reaching for a package-level connection.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Create(rec *EventSignup) error {
	return s.db.Create(rec).Error
}

func (s *Store) FindByID(id uuid.UUID) (*EventSignup, error) {
	var rec EventSignup
	if err := s.db.Where("id = ?", id).First(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *Store) ListByUser(userID uint) ([]EventSignup, error) {
	var recs []EventSignup
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&recs).Error
	return recs, err
}

// SetPaymentURL stores the hosted checkout redirect URL on the record.
func (s *Store) SetPaymentURL(id uuid.UUID, url string) error {
	return s.db.Model(&EventSignup{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"payment_url": url,
			"updated_at":  time.Now(),
		}).Error
}

// MarkPaid sets the terminal-success payment state and the provider's
// payment reference. Absolute values, safe to re-apply on redelivery.
func (s *Store) MarkPaid(id uuid.UUID, paymentRef string) error {
	return s.db.Model(&EventSignup{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"payment_status":    PaymentStatusPaid,
			"stripe_payment_id": paymentRef,
			"updated_at":        time.Now(),
		}).Error
}

// ApplySubscription records a subscription lifecycle change: the first (and
// any later) payment marks the record paid, and the normalized provider
// status lands in subscription_status.
func (s *Store) ApplySubscription(id uuid.UUID, status, subscriptionID string) error {
	return s.db.Model(&EventSignup{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"payment_status":      PaymentStatusPaid,
			"subscription_status": status,
			"stripe_payment_id":   subscriptionID,
			"updated_at":          time.Now(),
		}).Error
}

// CancelSubscription flips subscription_status only; payment_status keeps
// whatever it already was.
func (s *Store) CancelSubscription(id uuid.UUID) error {
	return s.db.Model(&EventSignup{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"subscription_status": SubscriptionStatusCancelled,
			"updated_at":          time.Now(),
		}).Error
}

// LatestPendingOneTime finds the newest pending one-time record with the
// given amount. Degraded-mode matching for checkouts that carry no
// correlation metadata; the lookup and the later update are two separate
// statements, so two concurrent identical purchases can race here.
func (s *Store) LatestPendingOneTime(amount decimal.Decimal) (*EventSignup, error) {
	var rec EventSignup
	err := s.db.Where("amount = ?", amount).
		Where("payment_type = ?", PaymentTypeOneTime).
		Where("payment_status = ?", PaymentStatusPending).
		Order("created_at DESC").
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// OwnerEmail resolves the account email behind a signup record, used to
// cross-check the payer before committing a heuristic match.
func (s *Store) OwnerEmail(userID uint) (string, error) {
	var user users.User
	if err := s.db.Where("id = ?", userID).First(&user).Error; err != nil {
		return "", err
	}
	return user.Email, nil
}

// RecordWebhookEvent appends to the webhook audit log.
func (s *Store) RecordWebhookEvent(eventID, eventType string) error {
	return s.db.Create(&WebhookEvent{
		EventID:     eventID,
		EventType:   eventType,
		ProcessedAt: time.Now(),
	}).Error
}
