package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oasisfintech/oasis-backend/internal/domain"
)

func TestMemoryStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	created, err := store.Create(ctx, "MEM-1")
	require.NoError(t, err)
	assert.Len(t, created.ID, 32) // 16 bytes hex-encoded
	assert.Equal(t, "MEM-1", created.MemberID)

	fetched, err := store.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.MemberID, fetched.MemberID)

	require.NoError(t, store.Delete(ctx, created.ID))

	_, err = store.Get(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	// Deleting again is not an error.
	assert.NoError(t, store.Delete(ctx, created.ID))
}

func TestMemoryStore_UniqueIDs(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		s, err := store.Create(ctx, "MEM-1")
		require.NoError(t, err)
		assert.False(t, seen[s.ID])
		seen[s.ID] = true
	}
}
