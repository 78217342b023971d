package signups

import (
	"net/http"
	"time"

	"echopoint-app/internal/domain/signups"
	"echopoint-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Ticket prices are fixed server side; the client only picks the type.
var (
	oneTimePrice      = decimal.New(999, -2)  // $9.99
	subscriptionPrice = decimal.New(1499, -2) // $14.99/month
)

type Handler struct {
	DB    *gorm.DB
	Store *signups.Store
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Store: signups.NewStore(db)}
}

// Create handles POST /api/signups: one pending record per checkout attempt.
func (h *Handler) Create(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	var input struct {
		PaymentType string `json:"payment_type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var amount decimal.Decimal
	switch input.PaymentType {
	case signups.PaymentTypeOneTime:
		amount = oneTimePrice
	case signups.PaymentTypeSubscription:
		amount = subscriptionPrice
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "payment_type must be one_time or subscription"})
		return
	}

	var profile users.Profile
	if err := h.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User profile not found"})
		return
	}

	rec := signups.EventSignup{
		UserID:        userID,
		ProfileID:     profile.ID,
		EventDate:     time.Now().Truncate(24 * time.Hour),
		PaymentType:   input.PaymentType,
		PaymentStatus: signups.PaymentStatusPending,
		Amount:        amount,
	}
	if input.PaymentType == signups.PaymentTypeSubscription {
		active := signups.SubscriptionStatusActive
		rec.SubscriptionStatus = &active
	}

	if err := h.Store.Create(&rec); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create event signup"})
		return
	}

	c.JSON(http.StatusOK, rec)
}

// ListMine handles GET /api/signups, newest first.
func (h *Handler) ListMine(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	recs, err := h.Store.ListByUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load signups"})
		return
	}

	c.JSON(http.StatusOK, recs)
}

// UpcomingEvents handles GET /api/member-events, behind the subscription
// guard.
func (h *Handler) UpcomingEvents(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"events": []gin.H{
			{
				"title": "Monthly Dinner Event",
				"date":  nextSunday().Format("2006-01-02"),
				"time":  "18:30",
			},
		},
	})
}

func nextSunday() time.Time {
	now := time.Now()
	days := (7 - int(now.Weekday())) % 7
	if days == 0 {
		days = 7
	}
	return now.AddDate(0, 0, days)
}
