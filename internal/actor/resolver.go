// Package actor decides which quota-accounting identity a request belongs
// to: an authenticated user or a cookie-identified guest.
package actor

import (
	"net/http"
	"strings"
	"time"

	"vividmedi-backend/internal/auth"
	"vividmedi-backend/internal/domain/usage"
	"vividmedi-backend/internal/domain/users"
	"vividmedi-backend/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	GuestCookie   = "vivid_guest"
	SessionCookie = "vivid_session"

	// A guest id sticks for a year so dropping the cookie is the only way
	// to reset guest quota, and regenerating it starts a fresh allowance
	// no sooner than a fresh browser profile would.
	guestCookieMaxAge = 365 * 24 * 60 * 60
)

type Actor struct {
	Kind string
	ID   string
	User *users.User
}

func (a Actor) LoggedIn() bool {
	return a.User != nil
}

func (a Actor) Plan() string {
	if a.User == nil {
		return ""
	}
	return a.User.Plan
}

type Resolver struct {
	Users    *store.UserStore
	Sessions *store.SessionStore
	Secret   []byte
}

func NewResolver(userStore *store.UserStore, sessionStore *store.SessionStore, secret []byte) *Resolver {
	return &Resolver{Users: userStore, Sessions: sessionStore, Secret: secret}
}

// Resolve never fails: bearer token first, then the server-side session
// cookie, then the guest cookie, minting a guest id (and persisting it back
// to the client) when nothing else matches.
func (r *Resolver) Resolve(c *gin.Context) Actor {
	if user, ok := r.userFromBearer(c); ok {
		return Actor{Kind: usage.ActorUser, ID: user.ID, User: user}
	}
	if user, ok := r.userFromSession(c); ok {
		return Actor{Kind: usage.ActorUser, ID: user.ID, User: user}
	}
	return Actor{Kind: usage.ActorGuest, ID: r.ensureGuestID(c)}
}

func (r *Resolver) userFromBearer(c *gin.Context) (*users.User, bool) {
	header := c.GetHeader("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	if token == header || strings.TrimSpace(token) == "" {
		return nil, false
	}

	// Bad signature and expiry both collapse to "no identity" here.
	uid, err := auth.VerifyToken(strings.TrimSpace(token), r.Secret, time.Now())
	if err != nil {
		return nil, false
	}

	user, err := r.Users.GetByID(c.Request.Context(), uid)
	if err != nil {
		return nil, false
	}
	return &user, true
}

func (r *Resolver) userFromSession(c *gin.Context) (*users.User, bool) {
	sessionID, err := c.Cookie(SessionCookie)
	if err != nil || sessionID == "" {
		return nil, false
	}

	uid, err := r.Sessions.GetUserID(c.Request.Context(), sessionID)
	if err != nil {
		return nil, false
	}

	user, err := r.Users.GetByID(c.Request.Context(), uid)
	if err != nil {
		return nil, false
	}
	return &user, true
}

func (r *Resolver) ensureGuestID(c *gin.Context) string {
	if gid, err := c.Cookie(GuestCookie); err == nil && gid != "" {
		return gid
	}

	gid := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(GuestCookie, gid, guestCookieMaxAge, "/", "", true, true)
	return gid
}
