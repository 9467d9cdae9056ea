package auth

import (
	"log"
	"net/http"
	"strings"

	"vividmedi-backend/internal/actor"
	"vividmedi-backend/internal/auth"
	"vividmedi-backend/internal/store"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
)

type Handler struct {
	Users    *store.UserStore
	Sessions *store.SessionStore
	Verifier auth.IDTokenVerifier
	Secret   []byte

	// CreatorEmail, when set, auto-upgrades that account at sign-in. The
	// only operator override in the system.
	CreatorEmail string

	OAuth            *oauth2.Config
	FrontendRedirect string
}

// GoogleSignIn verifies a Google ID token posted by the browser, upserts
// the user, opens a server-side session and returns a bearer token.
// POST /auth/google
func (h *Handler) GoogleSignIn(c *gin.Context) {
	if h.Verifier == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server misconfigured: missing GOOGLE_CLIENT_ID"})
		return
	}

	var body struct {
		Credential string `json:"credential"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.Credential) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing credential"})
		return
	}

	claims, err := h.Verifier.Verify(c.Request.Context(), strings.TrimSpace(body.Credential))
	if err != nil {
		log.Println("GOOGLE AUTH ERROR:", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Google sign-in failed"})
		return
	}

	user, err := h.signInUser(c, claims)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	token, err := h.issueBearer(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":    true,
		"token": token,
		"user":  gin.H{"email": user.Email, "plan": user.Plan},
	})
}

// Logout drops the server-side session. Bearer tokens expire on their own.
// POST /auth/logout
func (h *Handler) Logout(c *gin.Context) {
	if sessionID, err := c.Cookie(actor.SessionCookie); err == nil && sessionID != "" {
		_ = h.Sessions.Delete(c.Request.Context(), sessionID)
	}
	c.SetCookie(actor.SessionCookie, "", -1, "/", "", true, true)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
