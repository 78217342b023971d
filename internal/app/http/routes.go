package routes

import (
	"echopoint-app/config"
	adminapi "echopoint-app/internal/api/admin"
	authapi "echopoint-app/internal/api/auth"
	"echopoint-app/internal/api/billing"
	signupsapi "echopoint-app/internal/api/signups"
	stripewebhooks "echopoint-app/internal/api/stripewebhook"
	usersapi "echopoint-app/internal/api/users"
	"echopoint-app/internal/app/http/middleware"
	"echopoint-app/internal/domain/signups"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterRoutes wires every handler. The DB handle and parsed config come
// from main; nothing here reaches for process globals.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	store := signups.NewStore(db)

	authHandler := authapi.NewHandler(db, cfg)
	usersHandler := usersapi.NewHandler(db)
	signupsHandler := signupsapi.NewHandler(db)
	checkoutHandler := billing.NewHandler(store, cfg.Stripe.SecretKey, cfg.AppURL)
	webhookHandler := stripewebhooks.NewHandler(store, cfg.Stripe.WebhookSecret)
	adminHandler := adminapi.NewHandler(db)

	// The webhook route must see the raw body, so it stays outside the
	// sanitizing group.
	r.POST("/api/webhook", webhookHandler.HandleWebhook)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	public := r.Group("/api")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())
	public.POST("/register", authHandler.Register)
	public.POST("/login", authHandler.Login)
	public.GET("/verify", authHandler.VerifyEmail)
	public.POST("/resend-verification", authHandler.ResendVerification)
	public.GET("/auth/google", authHandler.GoogleStart)
	public.GET("/auth/google/callback", authHandler.GoogleCallback)

	// Authenticated
	auth := r.Group("/api")
	auth.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	auth.GET("/me", usersHandler.GetCurrentUser)
	auth.POST("/signups", signupsHandler.Create)
	auth.GET("/signups", signupsHandler.ListMine)
	auth.POST("/create-checkout-session", checkoutHandler.CreateCheckoutSession)
	auth.POST("/create-subscription", checkoutHandler.CreateSubscription)

	// Active subscribers
	members := auth.Group("/")
	members.Use(middleware.RequireActiveSubscription(db))
	members.GET("/member-events", signupsHandler.UpcomingEvents)

	// Admin
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg.JWTSecret), middleware.RequireRole("admin"))
	admin.GET("/dashboard", adminHandler.Dashboard)
	admin.GET("/users", adminHandler.ListAllUsers)
	admin.GET("/signups", adminHandler.ListAllSignups)
	admin.GET("/stats", adminHandler.GetStats)
}
