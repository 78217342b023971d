package users

import (
	"net/http"

	"echopoint-app/internal/domain/signups"
	"echopoint-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	DB *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db}
}

type ProfileDTO struct {
	FullName    string `json:"full_name"`
	Institution string `json:"institution,omitempty"`
	Whatsapp    string `json:"whatsapp,omitempty"`
	Gender      string `json:"gender,omitempty"`
}

type MeResponse struct {
	ID         uint                  `json:"id"`
	Email      string                `json:"email"`
	Role       string                `json:"role"`
	IsVerified bool                  `json:"is_verified"`
	Profile    *ProfileDTO           `json:"profile,omitempty"`
	Signups    []signups.EventSignup `json:"signups"`
}

// GetCurrentUser handles GET /api/me.
func (h *Handler) GetCurrentUser(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var user users.User
	if err := h.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	resp := MeResponse{
		ID:         user.ID,
		Email:      user.Email,
		Role:       user.Role,
		IsVerified: user.IsVerified,
	}

	var profile users.Profile
	if err := h.DB.Where("user_id = ?", user.ID).First(&profile).Error; err == nil {
		resp.Profile = &ProfileDTO{
			FullName:    profile.FullName,
			Institution: profile.Institution,
			Whatsapp:    profile.Whatsapp,
			Gender:      profile.Gender,
		}
	}

	recs, err := signups.NewStore(h.DB).ListByUser(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load signups"})
		return
	}
	resp.Signups = recs

	c.JSON(http.StatusOK, resp)
}
