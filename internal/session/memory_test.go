package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/job-hub/backend/internal/domain"
)

func TestMemoryStoreExpiresSessions(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, &domain.Session{ID: "abc", UserID: 7, IsAdmin: true}, time.Hour))

	sess, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, int64(7), sess.UserID)
	assert.True(t, sess.IsAdmin)

	now = now.Add(time.Hour)
	_, err = store.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Save(ctx, &domain.Session{ID: "abc"}, time.Hour))
	require.NoError(t, store.Delete(ctx, "abc"))
	require.NoError(t, store.Delete(ctx, "missing"))

	_, err := store.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "session_abc", Key("abc"))
}

func TestMemoryStoreZeroTTLNeverExpires(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, &domain.Session{ID: "abc", UserID: 7}, 0))

	now = now.Add(365 * 24 * time.Hour)
	sess, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, int64(7), sess.UserID)
}
