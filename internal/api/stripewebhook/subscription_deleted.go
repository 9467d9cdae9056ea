package stripewebhooks

import (
	"context"

	"github.com/stripe/stripe-go/v75"
)

// Deleted subscriptions arrive with status=canceled; the shared terminal
// check handles them identically to a terminal update.
func (h *Handler) handleSubscriptionDeleted(ctx context.Context, sub *stripe.Subscription) error {
	return h.applySubscriptionStatus(ctx, sub)
}
