// Package entitlement joins the usage ledger and the quota policy into the
// per-request allow/deny decision.
package entitlement

import (
	"context"

	"vividmedi-backend/internal/actor"
	"vividmedi-backend/internal/domain/quota"
	"vividmedi-backend/internal/store"
)

type Service struct {
	Usage *store.UsageStore
}

func NewService(usageStore *store.UsageStore) *Service {
	return &Service{Usage: usageStore}
}

// Decision is derived at request time and never persisted.
type Decision struct {
	Used     int64
	Limit    int64
	Allowed  bool
	LoggedIn bool
}

// RecordAttemptAndCheck consumes one unit of the actor's ledger and decides
// against the limit for the actor's current plan. The increment is
// unconditional: a denied attempt still counts, so repeated denied calls
// keep the counter moving and cannot be used to probe for a free slot.
func (s *Service) RecordAttemptAndCheck(ctx context.Context, a actor.Actor) (Decision, error) {
	limit := quota.LimitFor(a.Kind, a.Plan())

	used, err := s.Usage.IncrementAndGet(ctx, a.Kind, a.ID)
	if err != nil {
		return Decision{}, err
	}

	return Decision{
		Used:     used,
		Limit:    limit,
		Allowed:  quota.Allowed(used, limit),
		LoggedIn: a.LoggedIn(),
	}, nil
}

// Status reports the actor's standing without consuming a unit.
func (s *Service) Status(ctx context.Context, a actor.Actor) (Decision, error) {
	limit := quota.LimitFor(a.Kind, a.Plan())

	used, err := s.Usage.Get(ctx, a.Kind, a.ID)
	if err != nil {
		return Decision{}, err
	}

	return Decision{
		Used:     used,
		Limit:    limit,
		Allowed:  quota.Allowed(used, limit),
		LoggedIn: a.LoggedIn(),
	}, nil
}
