package stripewebhooks

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"vividmedi-backend/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/webhook"
)

type Handler struct {
	Users         *store.UserStore
	WebhookSecret string
}

func NewHandler(userStore *store.UserStore, webhookSecret string) *Handler {
	return &Handler{Users: userStore, WebhookSecret: webhookSecret}
}

// HandleWebhook receives Stripe's asynchronous event stream. Delivery is
// at-least-once and unordered, so every branch below must be safe to
// replay. Status codes drive Stripe's retry behavior: 400 for a bad
// signature (misconfigured or compromised secret — retrying cannot help),
// 200 for anything we consciously ignore, 500 only for store failures we
// want redelivered.
func (h *Handler) HandleWebhook(c *gin.Context) {
	if h.WebhookSecret == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "STRIPE_WEBHOOK_SECRET not configured"})
		return
	}

	payload, err := readStripeBody(c, 65536)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Error reading request body"})
		return
	}

	event, err := webhook.ConstructEventWithOptions(
		payload,
		c.GetHeader("Stripe-Signature"),
		h.WebhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		log.Println("❌ Stripe signature verification failed:", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Signature verification failed"})
		return
	}

	ctx := c.Request.Context()

	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse session"})
			return
		}
		if err := h.handleCheckoutCompleted(ctx, &session); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "received"})

	case "customer.subscription.updated":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse subscription"})
			return
		}
		if err := h.handleSubscriptionUpdated(ctx, &sub); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "received"})

	case "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse subscription"})
			return
		}
		if err := h.handleSubscriptionDeleted(ctx, &sub); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "received"})

	default:
		// Acknowledge unknown event types so provider API evolution does
		// not turn into an endless retry loop.
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
	}
}

func readStripeBody(c *gin.Context, maxBytes int64) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	return io.ReadAll(c.Request.Body)
}
