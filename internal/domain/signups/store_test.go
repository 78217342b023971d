package signups

import (
	"testing"
	"time"

	"echopoint-app/internal/domain/users"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestStore(t *testing.T) (*Store, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&users.User{}, &users.Profile{}, &EventSignup{}, &WebhookEvent{}))
	return NewStore(db), db
}

func newPending(t *testing.T, store *Store, db *gorm.DB, email, paymentType string, amount decimal.Decimal, createdAt time.Time) EventSignup {
	t.Helper()
	user := users.User{Email: email, AuthProvider: "local", Role: "user"}
	require.NoError(t, db.Create(&user).Error)
	profile := users.Profile{UserID: user.ID, FullName: "Someone"}
	require.NoError(t, db.Create(&profile).Error)

	rec := EventSignup{
		UserID:        user.ID,
		ProfileID:     profile.ID,
		EventDate:     createdAt,
		PaymentType:   paymentType,
		PaymentStatus: PaymentStatusPending,
		Amount:        amount,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}
	require.NoError(t, store.Create(&rec))
	return rec
}

func TestCreateGeneratesIdentifier(t *testing.T) {
	store, db := newTestStore(t)
	rec := newPending(t, store, db, "a@example.com", PaymentTypeOneTime, decimal.New(999, -2), time.Now())
	assert.NotEqual(t, uuid.Nil, rec.ID)

	found, err := store.FindByID(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, found.ID)
	assert.True(t, found.Amount.Equal(decimal.New(999, -2)))
}

func TestMarkPaidRefreshesUpdatedAt(t *testing.T) {
	store, db := newTestStore(t)
	rec := newPending(t, store, db, "a@example.com", PaymentTypeOneTime, decimal.New(999, -2), time.Now().Add(-time.Hour))

	before := rec.UpdatedAt
	require.NoError(t, store.MarkPaid(rec.ID, "pi_1"))

	found, err := store.FindByID(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, PaymentStatusPaid, found.PaymentStatus)
	require.NotNil(t, found.StripePaymentID)
	assert.Equal(t, "pi_1", *found.StripePaymentID)
	assert.True(t, found.UpdatedAt.After(before))
}

func TestMarkPaidIsRepeatable(t *testing.T) {
	store, db := newTestStore(t)
	rec := newPending(t, store, db, "a@example.com", PaymentTypeOneTime, decimal.New(999, -2), time.Now())

	require.NoError(t, store.MarkPaid(rec.ID, "pi_1"))
	require.NoError(t, store.MarkPaid(rec.ID, "pi_1"))

	found, err := store.FindByID(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, PaymentStatusPaid, found.PaymentStatus)
}

func TestLatestPendingOneTimeFiltersAndOrders(t *testing.T) {
	store, db := newTestStore(t)
	price := decimal.New(999, -2)

	older := newPending(t, store, db, "old@example.com", PaymentTypeOneTime, price, time.Now().Add(-3*time.Hour))
	newest := newPending(t, store, db, "new@example.com", PaymentTypeOneTime, price, time.Now().Add(-1*time.Hour))
	otherAmount := newPending(t, store, db, "other@example.com", PaymentTypeOneTime, decimal.New(1999, -2), time.Now())
	subscription := newPending(t, store, db, "sub@example.com", PaymentTypeSubscription, price, time.Now())

	got, err := store.LatestPendingOneTime(price)
	require.NoError(t, err)
	assert.Equal(t, newest.ID, got.ID)
	assert.NotEqual(t, older.ID, got.ID)
	assert.NotEqual(t, otherAmount.ID, got.ID)
	assert.NotEqual(t, subscription.ID, got.ID)

	// paid records drop out of the candidate set
	require.NoError(t, store.MarkPaid(newest.ID, "pi_1"))
	got, err = store.LatestPendingOneTime(price)
	require.NoError(t, err)
	assert.Equal(t, older.ID, got.ID)
}

func TestLatestPendingOneTimeNotFound(t *testing.T) {
	store, _ := newTestStore(t)
	_, err := store.LatestPendingOneTime(decimal.New(999, -2))
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCancelSubscriptionLeavesPaymentStatus(t *testing.T) {
	store, db := newTestStore(t)
	rec := newPending(t, store, db, "a@example.com", PaymentTypeSubscription, decimal.New(1499, -2), time.Now())
	require.NoError(t, store.ApplySubscription(rec.ID, SubscriptionStatusActive, "sub_1"))

	require.NoError(t, store.CancelSubscription(rec.ID))

	found, err := store.FindByID(rec.ID)
	require.NoError(t, err)
	require.NotNil(t, found.SubscriptionStatus)
	assert.Equal(t, SubscriptionStatusCancelled, *found.SubscriptionStatus)
	assert.Equal(t, PaymentStatusPaid, found.PaymentStatus)
}

func TestOwnerEmail(t *testing.T) {
	store, db := newTestStore(t)
	rec := newPending(t, store, db, "owner@example.com", PaymentTypeOneTime, decimal.New(999, -2), time.Now())

	email, err := store.OwnerEmail(rec.UserID)
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", email)

	_, err = store.OwnerEmail(9999)
	assert.Error(t, err)
}
