package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"echopoint-app/database"
	"echopoint-app/internal/domain/signups"
	"echopoint-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func guardedRouter(t *testing.T) (*gin.Engine, *gorm.DB, users.User) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	user := users.User{Email: "member@example.com", AuthProvider: "local", Role: "user"}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.Create(&users.Profile{UserID: user.ID, FullName: "Member"}).Error)

	r := gin.New()
	r.GET("/member-events",
		func(c *gin.Context) { c.Set("user_id", user.ID) },
		RequireActiveSubscription(db),
		func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) },
	)
	return r, db, user
}

func memberGet(r *gin.Engine) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/member-events", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireActiveSubscription(t *testing.T) {
	r, db, user := guardedRouter(t)

	// no subscription at all
	assert.Equal(t, http.StatusPaymentRequired, memberGet(r).Code)

	var profile users.Profile
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&profile).Error)

	active := signups.SubscriptionStatusActive
	rec := signups.EventSignup{
		UserID:             user.ID,
		ProfileID:          profile.ID,
		PaymentType:        signups.PaymentTypeSubscription,
		PaymentStatus:      signups.PaymentStatusPaid,
		SubscriptionStatus: &active,
		Amount:             decimal.New(1499, -2),
	}
	require.NoError(t, db.Create(&rec).Error)

	assert.Equal(t, http.StatusOK, memberGet(r).Code)

	// cancelled subscriptions do not count
	require.NoError(t, signups.NewStore(db).CancelSubscription(rec.ID))
	assert.Equal(t, http.StatusPaymentRequired, memberGet(r).Code)
}
