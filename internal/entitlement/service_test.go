package entitlement

import (
	"context"
	"path/filepath"
	"testing"

	"vividmedi-backend/database"
	"vividmedi-backend/internal/actor"
	"vividmedi-backend/internal/domain/quota"
	"vividmedi-backend/internal/domain/usage"
	"vividmedi-backend/internal/domain/users"
	"vividmedi-backend/internal/store"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	return NewService(store.NewUsageStore(db))
}

func TestGuestConsumesThenDenies(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	guest := actor.Actor{Kind: usage.ActorGuest, ID: "guest-1"}

	for i := int64(1); i <= quota.GuestLimit; i++ {
		d, err := svc.RecordAttemptAndCheck(ctx, guest)
		require.NoError(t, err)
		assert.True(t, d.Allowed, "attempt %d within the guest allowance", i)
		assert.Equal(t, i, d.Used)
		assert.Equal(t, int64(quota.GuestLimit), d.Limit)
		assert.False(t, d.LoggedIn)
	}

	d, err := svc.RecordAttemptAndCheck(ctx, guest)
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, int64(quota.GuestLimit+1), d.Used, "the denied attempt is still recorded")
}

func TestDeniedAttemptsKeepCounting(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	guest := actor.Actor{Kind: usage.ActorGuest, ID: "guest-1"}

	for i := 0; i < quota.GuestLimit+3; i++ {
		_, err := svc.RecordAttemptAndCheck(ctx, guest)
		require.NoError(t, err)
	}

	d, err := svc.Status(ctx, guest)
	require.NoError(t, err)
	assert.Equal(t, int64(quota.GuestLimit+3), d.Used)
	assert.False(t, d.Allowed)
}

func TestFreeUserGetsOneMoreThanGuest(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	member := actor.Actor{
		Kind: usage.ActorUser,
		ID:   "usr_1",
		User: &users.User{ID: "usr_1", Plan: users.PlanFree},
	}

	var last Decision
	for i := 0; i < quota.FreeLimit; i++ {
		d, err := svc.RecordAttemptAndCheck(ctx, member)
		require.NoError(t, err)
		last = d
	}
	assert.True(t, last.Allowed)
	assert.Equal(t, int64(quota.FreeLimit), last.Used)
	assert.True(t, last.LoggedIn)

	d, err := svc.RecordAttemptAndCheck(ctx, member)
	require.NoError(t, err)
	assert.False(t, d.Allowed)
}

func TestProUserIsNotDenied(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	pro := actor.Actor{
		Kind: usage.ActorUser,
		ID:   "usr_pro",
		User: &users.User{ID: "usr_pro", Plan: users.PlanPro},
	}

	for i := 0; i < 100; i++ {
		d, err := svc.RecordAttemptAndCheck(ctx, pro)
		require.NoError(t, err)
		assert.True(t, d.Allowed)
	}
}

func TestStatusDoesNotConsume(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	guest := actor.Actor{Kind: usage.ActorGuest, ID: "guest-1"}

	_, err := svc.RecordAttemptAndCheck(ctx, guest)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		d, err := svc.Status(ctx, guest)
		require.NoError(t, err)
		assert.Equal(t, int64(1), d.Used)
	}
}

func TestGuestAndUserLedgersAreSeparate(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	guest := actor.Actor{Kind: usage.ActorGuest, ID: "shared-id"}
	member := actor.Actor{
		Kind: usage.ActorUser,
		ID:   "shared-id",
		User: &users.User{ID: "shared-id", Plan: users.PlanFree},
	}

	_, err := svc.RecordAttemptAndCheck(ctx, guest)
	require.NoError(t, err)

	d, err := svc.Status(ctx, member)
	require.NoError(t, err)
	assert.Equal(t, int64(0), d.Used, "signing in starts from the user's own ledger")
}
