// Package billing bridges plan state to the external payment provider:
// checkout creation outbound, webhook-driven plan transitions inbound.
package billing

import (
	"context"
	"errors"
	"fmt"

	"vividmedi-backend/internal/domain/users"
	"vividmedi-backend/internal/store"
)

// ErrNotConfigured means the Stripe secret or price id is absent. Billing
// endpoints surface this as a server error; quota enforcement keeps working.
var ErrNotConfigured = errors.New("stripe billing not configured")

type Gateway struct {
	Users    *store.UserStore
	Provider Provider
	PriceID  string
	BaseURL  string
}

func NewGateway(userStore *store.UserStore, provider Provider, priceID, baseURL string) *Gateway {
	return &Gateway{Users: userStore, Provider: provider, PriceID: priceID, BaseURL: baseURL}
}

// CreateCheckout returns a provider-hosted checkout URL for upgrading user
// to pro. The Stripe customer is created lazily on the first call and the
// reference persisted set-once, so a retry after a failed session call
// reuses the existing customer instead of minting a duplicate. The session
// call itself is singular and not retried here; failures go back to the
// caller as retryable.
func (g *Gateway) CreateCheckout(ctx context.Context, user users.User) (string, error) {
	if g.Provider == nil || g.PriceID == "" {
		return "", ErrNotConfigured
	}

	customerID := ""
	if user.StripeCustomerID != nil {
		customerID = *user.StripeCustomerID
	}

	if customerID == "" {
		id, err := g.Provider.CreateCustomer(ctx, user.Email, map[string]string{
			"user_id": user.ID,
		})
		if err != nil {
			return "", fmt.Errorf("create stripe customer: %w", err)
		}
		if err := g.Users.SetStripeCustomerID(ctx, user.ID, id); err != nil {
			return "", fmt.Errorf("store stripe customer: %w", err)
		}
		customerID = id
	}

	sess, err := g.Provider.CreateCheckoutSession(ctx, CheckoutParams{
		CustomerID: customerID,
		PriceID:    g.PriceID,
		SuccessURL: g.BaseURL + "/pro/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  g.BaseURL + "/pro/cancelled",
		ClientRef:  user.ID,
		Metadata: map[string]string{
			"user_id": user.ID,
			"product": "vividmedi_pro",
		},
	})
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	return sess.URL, nil
}
