package users

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"vividmedi-backend/database"
	"vividmedi-backend/internal/actor"
	"vividmedi-backend/internal/app/http/middleware"
	coreauth "vividmedi-backend/internal/auth"
	"vividmedi-backend/internal/domain/quota"
	"vividmedi-backend/internal/domain/usage"
	"vividmedi-backend/internal/entitlement"
	"vividmedi-backend/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testSecret = []byte("test-secret")

type meFixture struct {
	router *gin.Engine
	users  *store.UserStore
	usage  *store.UsageStore
}

func newMeFixture(t *testing.T) meFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	userStore := store.NewUserStore(db)
	usageStore := store.NewUsageStore(db)
	resolver := actor.NewResolver(userStore, store.NewSessionStore(db), testSecret)
	h := NewHandler(entitlement.NewService(usageStore))

	r := gin.New()
	api := r.Group("", middleware.WithActor(resolver))
	api.GET("/api/me", h.Me)
	api.GET("/api/session", h.EnsureSession)

	return meFixture{router: r, users: userStore, usage: usageStore}
}

func getMe(f meFixture, mutate func(*http.Request)) MeResponse {
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	if mutate != nil {
		mutate(req)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	var resp MeResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

func TestMeGuestShape(t *testing.T) {
	f := newMeFixture(t)

	resp := getMe(f, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: actor.GuestCookie, Value: "guest-1"})
	})

	assert.False(t, resp.LoggedIn)
	assert.Nil(t, resp.Email)
	assert.Equal(t, "guest", resp.Plan)
	assert.Equal(t, int64(0), resp.Used)
	assert.Equal(t, int64(quota.GuestLimit), resp.Limit)
	assert.Equal(t, int64(quota.GuestLimit), resp.Remaining)
}

func TestMeReflectsUsage(t *testing.T) {
	f := newMeFixture(t)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, err := f.usage.IncrementAndGet(ctx, usage.ActorGuest, "guest-1")
		require.NoError(t, err)
	}

	resp := getMe(f, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: actor.GuestCookie, Value: "guest-1"})
	})

	assert.Equal(t, int64(4), resp.Used)
	assert.Equal(t, int64(quota.GuestLimit-4), resp.Remaining)
}

func TestMeRemainingNeverNegative(t *testing.T) {
	f := newMeFixture(t)
	ctx := context.Background()

	for i := 0; i < quota.GuestLimit+7; i++ {
		_, err := f.usage.IncrementAndGet(ctx, usage.ActorGuest, "guest-1")
		require.NoError(t, err)
	}

	resp := getMe(f, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: actor.GuestCookie, Value: "guest-1"})
	})

	assert.Equal(t, int64(quota.GuestLimit+7), resp.Used)
	assert.Equal(t, int64(0), resp.Remaining)
}

func TestMeLoggedInShape(t *testing.T) {
	f := newMeFixture(t)

	user, err := f.users.UpsertByEmail(context.Background(), "doc@example.com", "Doc", "")
	require.NoError(t, err)
	token, err := coreauth.SignToken(user.ID, testSecret, time.Now())
	require.NoError(t, err)

	resp := getMe(f, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	})

	assert.True(t, resp.LoggedIn)
	require.NotNil(t, resp.Email)
	assert.Equal(t, "doc@example.com", *resp.Email)
	assert.Equal(t, "free", resp.Plan)
	assert.Equal(t, int64(quota.FreeLimit), resp.Limit)
}

func TestSessionEndpointMintsGuestCookie(t *testing.T) {
	f := newMeFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	found := false
	for _, ck := range w.Result().Cookies() {
		if ck.Name == actor.GuestCookie && ck.Value != "" {
			found = true
		}
	}
	assert.True(t, found, "first contact must leave a guest cookie behind")
}
