package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"

	"echopoint-app/internal/domain/users"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

func (h *Handler) googleOAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.Google.ClientID,
		ClientSecret: h.Google.ClientSecret,
		RedirectURL:  h.Google.RedirectURL,
		Scopes: []string{
			"openid",
			"email",
			"profile",
		},
		Endpoint: google.Endpoint,
	}
}

func randomState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// GoogleStart handles GET /api/auth/google.
func (h *Handler) GoogleStart(c *gin.Context) {
	state, err := randomState()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate state"})
		return
	}

	// state lives in an HttpOnly cookie until the callback
	c.SetCookie("oauth_state", state, 300, "/", "", false, true)

	url := h.googleOAuthConfig().AuthCodeURL(state, oauth2.AccessTypeOnline)
	c.Redirect(http.StatusFound, url)
}

// GoogleCallback handles GET /api/auth/google/callback.
func (h *Handler) GoogleCallback(c *gin.Context) {
	state := c.Query("state")
	code := c.Query("code")
	if code == "" || state == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing code/state"})
		return
	}

	cookieState, err := c.Cookie("oauth_state")
	if err != nil || cookieState != state {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid oauth state"})
		return
	}

	tok, err := h.googleOAuthConfig().Exchange(c.Request.Context(), code)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "failed to exchange code"})
		return
	}

	rawIDToken, ok := tok.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing id_token"})
		return
	}

	claims, err := h.verifyGoogleIDToken(c, rawIDToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	if claims.Email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "google account has no email"})
		return
	}

	user, err := h.findOrCreateGoogleUser(claims)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}

	tokenString, err := h.issueAppJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create token"})
		return
	}

	redirect := h.Google.FrontendRedirect
	if redirect == "" {
		c.JSON(http.StatusOK, gin.H{"token": tokenString})
		return
	}
	c.Redirect(http.StatusFound, redirect+"?token="+tokenString)
}

type googleIDClaims struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
}

func (h *Handler) verifyGoogleIDToken(c *gin.Context, rawIDToken string) (*googleIDClaims, error) {
	ctx := c.Request.Context()

	provider, err := oidc.NewProvider(ctx, "https://accounts.google.com")
	if err != nil {
		return nil, errors.New("failed to init google oidc provider")
	}

	verifier := provider.Verifier(&oidc.Config{ClientID: h.Google.ClientID})

	idToken, err := verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, errors.New("invalid id_token")
	}

	var claims googleIDClaims
	if err := idToken.Claims(&claims); err != nil {
		return nil, errors.New("failed to decode token claims")
	}

	if claims.Email == "" || claims.Sub == "" {
		return nil, errors.New("token missing required claims")
	}

	return &claims, nil
}

func (h *Handler) findOrCreateGoogleUser(gc *googleIDClaims) (users.User, error) {
	var user users.User

	if gc.Sub != "" {
		if err := h.DB.Where("google_sub = ?", gc.Sub).First(&user).Error; err == nil {
			return user, nil
		}
	}

	// Known email: link the Google identity to the existing account.
	if err := h.DB.Where("email = ?", gc.Email).First(&user).Error; err == nil {
		if user.GoogleSub == nil {
			sub := gc.Sub
			user.GoogleSub = &sub
			user.AuthProvider = "google"
			user.IsVerified = true
			if err := h.DB.Save(&user).Error; err != nil {
				return users.User{}, err
			}
		}
		return user, nil
	}

	sub := gc.Sub
	user = users.User{
		Email:        gc.Email,
		Password:     nil,
		AuthProvider: "google",
		GoogleSub:    &sub,
		Role:         "user",
		IsVerified:   true,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		return users.User{}, err
	}

	profile := users.Profile{
		UserID:   user.ID,
		FullName: firstNonEmpty(gc.Name, gc.GivenName),
	}
	if err := h.DB.Create(&profile).Error; err != nil {
		return users.User{}, err
	}

	return user, nil
}

func firstNonEmpty(s ...string) string {
	for _, v := range s {
		if v != "" {
			return v
		}
	}
	return ""
}
