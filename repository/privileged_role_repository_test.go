package repository

import (
	"context"
	"testing"

	"annobot/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrivilegedRoleRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := testutil.SetupTestDatabase(t)
	repo := NewPrivilegedRoleRepository(testDB.DB)
	ctx := context.Background()

	t.Run("duplicate grants are stored", func(t *testing.T) {
		first, err := repo.Insert(ctx, 10, 100)
		require.NoError(t, err)
		second, err := repo.Insert(ctx, 10, 100)
		require.NoError(t, err)

		assert.NotEqual(t, first.ID, second.ID)
		assert.False(t, first.CreatedAt.IsZero())

		roles, err := repo.ListByGuild(ctx, 10)
		require.NoError(t, err)
		assert.Len(t, roles, 2)
	})

	t.Run("delete one removes a single duplicate", func(t *testing.T) {
		removed, err := repo.DeleteOne(ctx, 10, 100)
		require.NoError(t, err)
		assert.True(t, removed)

		roles, err := repo.ListByGuild(ctx, 10)
		require.NoError(t, err)
		require.Len(t, roles, 1)
		assert.Equal(t, int64(100), roles[0].RoleID)

		removed, err = repo.DeleteOne(ctx, 10, 100)
		require.NoError(t, err)
		assert.True(t, removed)

		removed, err = repo.DeleteOne(ctx, 10, 100)
		require.NoError(t, err)
		assert.False(t, removed, "revoking with no remaining grant is a no-op")
	})

	t.Run("grants are isolated per guild", func(t *testing.T) {
		_, err := repo.Insert(ctx, 11, 200)
		require.NoError(t, err)
		_, err = repo.Insert(ctx, 12, 200)
		require.NoError(t, err)

		removed, err := repo.DeleteByGuild(ctx, 11)
		require.NoError(t, err)
		assert.Equal(t, int64(1), removed)

		roles, err := repo.ListByGuild(ctx, 12)
		require.NoError(t, err)
		assert.Len(t, roles, 1)
	})
}
