package generate

import (
	"fmt"

	"vividmedi-backend/internal/entitlement"

	"github.com/gin-gonic/gin"
)

// quotaBlockPayload is the structured paywall the frontend renders on a
// denied attempt. Used is clamped to the limit for display; the raw counter
// keeps growing underneath.
func quotaBlockPayload(d entitlement.Decision) gin.H {
	shown := d.Used
	if shown > d.Limit {
		shown = d.Limit
	}

	secondaryLabel, secondaryAction := "Create account", "signup"
	if d.LoggedIn {
		secondaryLabel, secondaryAction = "Account", "account"
	}

	payload := gin.H{
		"error":    "quota_exceeded",
		"used":     shown,
		"limit":    d.Limit,
		"headline": "Free limit reached",
		"copy": []string{
			fmt.Sprintf("You’ve used %d/%d free generations.", shown, d.Limit),
			"Upgrade to Pro for unlimited access.",
			"Pro includes higher limits, priority processing, and ongoing updates.",
		},
		"cta": gin.H{
			"primary":   gin.H{"label": "Upgrade to Pro", "action": "upgrade"},
			"secondary": gin.H{"label": secondaryLabel, "action": secondaryAction},
		},
	}
	if !d.LoggedIn {
		payload["promo"] = gin.H{"label": "Create a free account to unlock 1 extra generation today."}
	}
	return payload
}
