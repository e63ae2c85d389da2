package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestTokenStore_RevokeAndExpire(t *testing.T) {
	store := NewTokenStore(time.Hour)
	defer store.Close()

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	revoked, err := store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, "jti-1", time.Minute))
	revoked, err = store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	now = now.Add(2 * time.Minute)
	revoked, err = store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	store.sweep()
	assert.Equal(t, 0, store.Len())
}

func TestTokenStore_SweeperRuns(t *testing.T) {
	store := NewTokenStore(10 * time.Millisecond)
	defer store.Close()

	require.NoError(t, store.Revoke(context.Background(), "short", time.Millisecond))

	assert.Eventually(t, func() bool { return store.Len() == 0 }, time.Second, 10*time.Millisecond)
}

func TestTokenStore_CloseIsIdempotent(t *testing.T) {
	store := NewTokenStore(time.Second)
	require.NoError(t, store.Close())
	require.NoError(t, store.Close())
}
