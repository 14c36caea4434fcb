// internal/session/session_test.go
package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Create(ctx, "abc", Data{UserID: 7}, time.Hour))

	data, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, uint(7), data.UserID)

	now = now.Add(time.Hour)
	_, err = store.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Create(ctx, "abc", Data{UserID: 1}, time.Hour))
	require.NoError(t, store.Delete(ctx, "abc"))

	_, err := store.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrNotFound)

	// deleting twice is fine
	assert.NoError(t, store.Delete(ctx, "abc"))
}

func TestManagerIssueResolveRevoke(t *testing.T) {
	ctx := context.Background()
	manager := NewManager(NewMemoryStore(), "test-secret", time.Hour)

	token, err := manager.Issue(ctx, 42, true)
	require.NoError(t, err)

	claims, err := manager.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.True(t, claims.IsStaff)

	require.NoError(t, manager.Revoke(ctx, token))

	_, err = manager.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManagerRejectsForeignSignature(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	other := NewManager(store, "other-secret", time.Hour)
	token, err := other.Issue(ctx, 1, false)
	require.NoError(t, err)

	manager := NewManager(store, "test-secret", time.Hour)
	_, err = manager.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = manager.Resolve(ctx, "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	assert.NoError(t, manager.Revoke(ctx, "not-a-token"))
}
