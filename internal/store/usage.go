package store

import (
	"context"
	"errors"
	"time"

	"vividmedi-backend/internal/domain/usage"

	"gorm.io/gorm"
)

type UsageStore struct {
	db *gorm.DB
}

func NewUsageStore(db *gorm.DB) *UsageStore {
	return &UsageStore{db: db}
}

// IncrementAndGet bumps the actor's counter by one and returns the
// post-increment value. The upsert-and-increment is a single statement so
// concurrent requests for the same actor serialize inside the database and
// no increment is ever lost. Valid on both postgres and sqlite.
func (s *UsageStore) IncrementAndGet(ctx context.Context, actorKind, actorID string) (int64, error) {
	if actorID == "" {
		return 0, nil
	}

	var used int64
	err := s.db.WithContext(ctx).Raw(`
		INSERT INTO usage_counters (actor_kind, actor_id, used, updated_at)
		VALUES (?, ?, 1, ?)
		ON CONFLICT (actor_kind, actor_id)
		DO UPDATE SET used = usage_counters.used + 1, updated_at = excluded.updated_at
		RETURNING used`,
		actorKind, actorID, time.Now().UTC(),
	).Scan(&used).Error
	if err != nil {
		return 0, err
	}
	return used, nil
}

// Get reads the current counter without consuming a unit. Unknown actors
// read as zero; the row is created lazily by the first increment.
func (s *UsageStore) Get(ctx context.Context, actorKind, actorID string) (int64, error) {
	if actorID == "" {
		return 0, nil
	}

	var counter usage.Counter
	err := s.db.WithContext(ctx).
		Where("actor_kind = ? AND actor_id = ?", actorKind, actorID).
		First(&counter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return counter.Used, nil
}
