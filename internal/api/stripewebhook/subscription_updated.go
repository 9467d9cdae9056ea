package stripewebhooks

import (
	"context"
	"errors"
	"fmt"
	"log"

	infrastripe "vividmedi-backend/internal/infra/stripe"
	"vividmedi-backend/internal/store"

	"github.com/stripe/stripe-go/v75"
)

func (h *Handler) handleSubscriptionUpdated(ctx context.Context, sub *stripe.Subscription) error {
	return h.applySubscriptionStatus(ctx, sub)
}

// applySubscriptionStatus downgrades the user when Stripe reports a
// terminal status. Transitions are keyed on terminal-vs-not only, so
// updated and deleted events commute no matter the delivery order and a
// replay is a no-op in effect.
func (h *Handler) applySubscriptionStatus(ctx context.Context, sub *stripe.Subscription) error {
	if !infrastripe.IsTerminal(string(sub.Status)) {
		return nil
	}

	customerID := ""
	if sub.Customer != nil {
		customerID = sub.Customer.ID
	}
	if customerID == "" {
		return nil
	}

	user, err := h.Users.GetByStripeCustomerID(ctx, customerID)
	if errors.Is(err, store.ErrNotFound) {
		log.Println("terminal subscription for unknown customer, ignoring:", customerID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("lookup user for customer %s: %w", customerID, err)
	}

	if err := h.Users.DowngradeToFree(ctx, user.ID); err != nil {
		return fmt.Errorf("downgrade user %s: %w", user.ID, err)
	}
	return nil
}
