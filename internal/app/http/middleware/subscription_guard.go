package middleware

import (
	"net/http"

	"echopoint-app/internal/domain/signups"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RequireActiveSubscription lets through only callers who own a
// subscription signup that is still active.
func RequireActiveSubscription(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")
		if userID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
			return
		}

		var count int64
		err := db.Model(&signups.EventSignup{}).
			Where("user_id = ?", userID).
			Where("payment_type = ?", signups.PaymentTypeSubscription).
			Where("subscription_status = ?", signups.SubscriptionStatusActive).
			Count(&count).Error
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to check subscription"})
			return
		}
		if count == 0 {
			c.AbortWithStatusJSON(http.StatusPaymentRequired, gin.H{"error": "An active subscription is required"})
			return
		}

		c.Next()
	}
}
