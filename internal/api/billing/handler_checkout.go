package billing

import (
	"errors"
	"log"
	"net/http"

	"vividmedi-backend/internal/app/http/middleware"
	"vividmedi-backend/internal/billing"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Gateway *billing.Gateway
}

func NewHandler(gateway *billing.Gateway) *Handler {
	return &Handler{Gateway: gateway}
}

// CreateCheckoutSession returns a Stripe-hosted checkout URL for the
// authenticated user. RequireUser has already rejected anonymous callers
// with a distinct not_authenticated outcome. Provider failures surface as
// retryable server errors; re-entering is safe because the customer ref is
// reused, never recreated.
// POST /api/stripe/create-checkout-session
func (h *Handler) CreateCheckoutSession(c *gin.Context) {
	a := middleware.CurrentActor(c)
	if a.User == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated"})
		return
	}

	url, err := h.Gateway.CreateCheckout(c.Request.Context(), *a.User)
	if errors.Is(err, billing.ErrNotConfigured) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server misconfigured: missing Stripe configuration"})
		return
	}
	if err != nil {
		log.Println("STRIPE CHECKOUT ERROR:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
