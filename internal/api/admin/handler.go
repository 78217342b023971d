package admin

import (
	"net/http"
	"time"

	"echopoint-app/internal/domain/signups"
	"echopoint-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Handler struct {
	DB *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db}
}

type AdminUser struct {
	ID          uint      `json:"id"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	IsVerified  bool      `json:"is_verified"`
	FullName    string    `json:"full_name,omitempty"`
	Institution string    `json:"institution,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type AdminSignup struct {
	ID                 string          `json:"id"`
	Email              string          `json:"email"`
	PaymentType        string          `json:"payment_type"`
	PaymentStatus      string          `json:"payment_status"`
	SubscriptionStatus *string         `json:"subscription_status,omitempty"`
	Amount             decimal.Decimal `json:"amount"`
	StripePaymentID    *string         `json:"stripe_payment_id,omitempty"`
	CreatedAt          string          `json:"created_at"`
}

type AdminStats struct {
	TotalUsers     int64            `json:"total_users"`
	TotalSignups   int64            `json:"total_signups"`
	PaidRevenue    decimal.Decimal  `json:"paid_revenue"`
	SignupsByState map[string]int64 `json:"signups_by_status"`
}

func (h *Handler) Dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to the admin dashboard"})
}

func (h *Handler) ListAllUsers(c *gin.Context) {
	var all []users.User
	if err := h.DB.Order("created_at DESC").Find(&all).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	var profiles []users.Profile
	if err := h.DB.Find(&profiles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profiles"})
		return
	}
	byUser := make(map[uint]users.Profile, len(profiles))
	for _, p := range profiles {
		byUser[p.UserID] = p
	}

	result := make([]AdminUser, 0, len(all))
	for _, u := range all {
		au := AdminUser{
			ID:         u.ID,
			Email:      u.Email,
			Role:       u.Role,
			IsVerified: u.IsVerified,
			CreatedAt:  u.CreatedAt,
		}
		if p, ok := byUser[u.ID]; ok {
			au.FullName = p.FullName
			au.Institution = p.Institution
		}
		result = append(result, au)
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) ListAllSignups(c *gin.Context) {
	var recs []signups.EventSignup
	if err := h.DB.Preload("User").Order("created_at DESC").Find(&recs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load signups"})
		return
	}

	result := make([]AdminSignup, 0, len(recs))
	for _, r := range recs {
		result = append(result, AdminSignup{
			ID:                 r.ID.String(),
			Email:              r.User.Email,
			PaymentType:        r.PaymentType,
			PaymentStatus:      r.PaymentStatus,
			SubscriptionStatus: r.SubscriptionStatus,
			Amount:             r.Amount,
			StripePaymentID:    r.StripePaymentID,
			CreatedAt:          r.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) GetStats(c *gin.Context) {
	var stats AdminStats
	stats.SignupsByState = make(map[string]int64)
	stats.PaidRevenue = decimal.Zero

	if err := h.DB.Model(&users.User{}).Count(&stats.TotalUsers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count users"})
		return
	}
	if err := h.DB.Model(&signups.EventSignup{}).Count(&stats.TotalSignups).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count signups"})
		return
	}

	type statusCount struct {
		PaymentStatus string
		N             int64
	}
	var counts []statusCount
	if err := h.DB.Model(&signups.EventSignup{}).
		Select("payment_status, count(*) as n").
		Group("payment_status").
		Scan(&counts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate signups"})
		return
	}
	for _, sc := range counts {
		stats.SignupsByState[sc.PaymentStatus] = sc.N
	}

	var paid []signups.EventSignup
	if err := h.DB.Where("payment_status = ?", signups.PaymentStatusPaid).Find(&paid).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load paid signups"})
		return
	}
	for _, r := range paid {
		stats.PaidRevenue = stats.PaidRevenue.Add(r.Amount)
	}

	c.JSON(http.StatusOK, stats)
}
