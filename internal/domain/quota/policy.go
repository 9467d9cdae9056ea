// Package quota is the pure allowance policy: it maps an actor to a limit
// and a post-increment usage value to an allow/deny decision. It holds no
// state and touches no storage.
package quota

import (
	"vividmedi-backend/internal/domain/usage"
	"vividmedi-backend/internal/domain/users"
)

const (
	// GuestLimit and FreeLimit are lifetime generation allowances.
	// Creating an account buys exactly one extra generation.
	GuestLimit = 10
	FreeLimit  = 11

	// ProLimit is a large sentinel, not a true unlimited flag, so the
	// arithmetic stays total and the JSON shape stays uniform.
	ProLimit = 1_000_000
)

// LimitFor returns the allowance for an actor of the given kind and plan.
// Plan is only meaningful for user actors.
func LimitFor(actorKind, plan string) int64 {
	if actorKind != usage.ActorUser {
		return GuestLimit
	}
	if plan == users.PlanPro {
		return ProLimit
	}
	return FreeLimit
}

// Allowed decides on the post-increment usage value. The increment has
// already been taken by the time this runs: a denied attempt still consumed
// one unit, which keeps exhaustion monotonic under retries.
func Allowed(used, limit int64) bool {
	return used <= limit
}
