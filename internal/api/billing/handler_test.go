package billing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"vividmedi-backend/database"
	"vividmedi-backend/internal/actor"
	"vividmedi-backend/internal/app/http/middleware"
	coreauth "vividmedi-backend/internal/auth"
	corebilling "vividmedi-backend/internal/billing"
	"vividmedi-backend/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testSecret = []byte("test-secret")

type staticProvider struct{}

func (staticProvider) CreateCustomer(context.Context, string, map[string]string) (string, error) {
	return "cus_static", nil
}

func (staticProvider) CreateCheckoutSession(_ context.Context, _ corebilling.CheckoutParams) (corebilling.CheckoutSession, error) {
	return corebilling.CheckoutSession{ID: "cs_static", URL: "https://checkout.stripe.com/pay/cs_static"}, nil
}

func newCheckoutRouter(t *testing.T, provider corebilling.Provider, priceID string) (*gin.Engine, *store.UserStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	userStore := store.NewUserStore(db)
	resolver := actor.NewResolver(userStore, store.NewSessionStore(db), testSecret)
	h := NewHandler(corebilling.NewGateway(userStore, provider, priceID, "https://vividmedi.example"))

	r := gin.New()
	authed := r.Group("", middleware.WithActor(resolver), middleware.RequireUser())
	authed.POST("/api/stripe/create-checkout-session", h.CreateCheckoutSession)
	return r, userStore
}

func postCheckout(r *gin.Engine, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/stripe/create-checkout-session", nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCheckoutRequiresUser(t *testing.T) {
	r, _ := newCheckoutRouter(t, staticProvider{}, "price_123")

	w := postCheckout(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "not_authenticated")
}

func TestCheckoutReturnsURL(t *testing.T) {
	r, userStore := newCheckoutRouter(t, staticProvider{}, "price_123")

	user, err := userStore.UpsertByEmail(context.Background(), "doc@example.com", "", "")
	require.NoError(t, err)
	token, err := coreauth.SignToken(user.ID, testSecret, time.Now())
	require.NoError(t, err)

	w := postCheckout(r, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "https://checkout.stripe.com/pay/cs_static")
}

func TestCheckoutNotConfigured(t *testing.T) {
	r, userStore := newCheckoutRouter(t, nil, "")

	user, err := userStore.UpsertByEmail(context.Background(), "doc@example.com", "", "")
	require.NoError(t, err)
	token, err := coreauth.SignToken(user.ID, testSecret, time.Now())
	require.NoError(t, err)

	w := postCheckout(r, token)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "misconfigured")
}
