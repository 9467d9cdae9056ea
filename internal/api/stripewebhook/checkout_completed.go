package stripewebhooks

import (
	"context"
	"errors"
	"fmt"
	"log"

	"vividmedi-backend/internal/store"

	"github.com/stripe/stripe-go/v75"
)

// handleCheckoutCompleted upgrades the user linked to the session's Stripe
// customer. Everything is read from the event payload itself; no follow-up
// provider calls, so redelivered events resolve the same way offline.
func (h *Handler) handleCheckoutCompleted(ctx context.Context, session *stripe.CheckoutSession) error {
	customerID := ""
	if session.Customer != nil {
		customerID = session.Customer.ID
	}
	if customerID == "" {
		// Nothing to join on; acknowledge rather than retry forever.
		log.Println("checkout.session.completed without customer, ignoring:", session.ID)
		return nil
	}

	subscriptionID := ""
	if session.Subscription != nil {
		subscriptionID = session.Subscription.ID
	}

	user, err := h.Users.GetByStripeCustomerID(ctx, customerID)
	if errors.Is(err, store.ErrNotFound) {
		// Out-of-band customer or test traffic. Log and move on.
		log.Println("checkout completed for unknown customer, ignoring:", customerID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("lookup user for customer %s: %w", customerID, err)
	}

	if err := h.Users.UpgradeToPro(ctx, user.ID, customerID, subscriptionID); err != nil {
		return fmt.Errorf("upgrade user %s: %w", user.ID, err)
	}
	return nil
}
