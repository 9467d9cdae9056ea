package auth

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"time"

	"vividmedi-backend/internal/actor"
	authcore "vividmedi-backend/internal/auth"
	"vividmedi-backend/internal/domain/users"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
)

func randomState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// GoogleStart begins the same-origin redirect flow for browsers that did
// not use the ID-token path.
// GET /auth/google
func (h *Handler) GoogleStart(c *gin.Context) {
	if h.OAuth == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Google OAuth not configured"})
		return
	}

	state, err := randomState()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate state"})
		return
	}

	c.SetCookie("oauth_state", state, 300, "/", "", false, true)
	c.Redirect(http.StatusFound, h.OAuth.AuthCodeURL(state, oauth2.AccessTypeOnline))
}

// GoogleCallback finishes the redirect flow: exchange the code, verify the
// ID token, sign the user in and hand the bearer token to the frontend.
// GET /auth/google/callback
func (h *Handler) GoogleCallback(c *gin.Context) {
	if h.OAuth == nil || h.Verifier == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Google OAuth not configured"})
		return
	}

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

	tok, err := h.OAuth.Exchange(c.Request.Context(), code)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "failed to exchange code"})
		return
	}

	rawIDToken, ok := tok.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing id_token"})
		return
	}

	claims, err := h.Verifier.Verify(c.Request.Context(), rawIDToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	user, err := h.signInUser(c, claims)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}

	token, err := h.issueBearer(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create token"})
		return
	}

	if h.FrontendRedirect == "" {
		c.JSON(http.StatusOK, gin.H{"token": token})
		return
	}
	c.Redirect(http.StatusFound, h.FrontendRedirect+"?token="+token)
}

/* ---------------- shared sign-in plumbing ---------------- */

// signInUser upserts the verified identity, applies the creator override
// and opens a server-side session for the cookie fallback path.
func (h *Handler) signInUser(c *gin.Context, claims *authcore.GoogleClaims) (users.User, error) {
	name := firstNonEmpty(claims.Name, claims.GivenName)

	user, err := h.Users.UpsertByEmail(c.Request.Context(), claims.Email, name, claims.Picture)
	if err != nil {
		return users.User{}, err
	}

	if h.CreatorEmail != "" && user.Email == h.CreatorEmail && !user.IsPro() {
		if err := h.Users.UpgradeToPro(c.Request.Context(), user.ID, "", ""); err == nil {
			user.Plan = users.PlanPro
		}
	}

	if sess, err := h.Sessions.Create(c.Request.Context(), user.ID); err == nil {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(actor.SessionCookie, sess.ID, int(time.Until(sess.ExpiresAt).Seconds()), "/", "", true, true)
	}

	return user, nil
}

func (h *Handler) issueBearer(userID string) (string, error) {
	return authcore.SignToken(userID, h.Secret, time.Now())
}

func firstNonEmpty(s ...string) string {
	for _, v := range s {
		if v != "" {
			return v
		}
	}
	return ""
}
