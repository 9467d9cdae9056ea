package stripe

// Terminal subscription statuses: once Stripe reports one of these the
// customer must be treated as no longer entitled to paid features.
// Anything else (active, trialing, past_due grace, incomplete) leaves the
// plan untouched.
func IsTerminal(status string) bool {
	switch status {
	case "canceled", "unpaid", "incomplete_expired":
		return true
	}
	return false
}
