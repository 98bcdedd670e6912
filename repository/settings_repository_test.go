package repository

import (
	"context"
	"sync"
	"testing"

	"annobot/models"
	"annobot/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := testutil.SetupTestDatabase(t)
	repo := NewSettingsRepository(testDB.DB)
	ctx := context.Background()

	t.Run("unknown guild has no rows", func(t *testing.T) {
		known, err := repo.HasGuild(ctx, 1)
		require.NoError(t, err)
		assert.False(t, known)

		setting, err := repo.Get(ctx, 1, models.SettingLogChannel)
		require.NoError(t, err)
		assert.Nil(t, setting)

		settings, err := repo.List(ctx, 1)
		require.NoError(t, err)
		assert.Empty(t, settings)
	})

	t.Run("ensure defaults preserves order and is idempotent", func(t *testing.T) {
		guildID := int64(2)

		inserted, err := repo.EnsureDefaults(ctx, guildID, models.SettingKinds)
		require.NoError(t, err)
		assert.Equal(t, int64(len(models.SettingKinds)), inserted)

		inserted, err = repo.EnsureDefaults(ctx, guildID, models.SettingKinds)
		require.NoError(t, err)
		assert.Zero(t, inserted)

		settings, err := repo.List(ctx, guildID)
		require.NoError(t, err)
		require.Len(t, settings, len(models.SettingKinds))
		for i, setting := range settings {
			assert.Equal(t, models.SettingKinds[i], setting.Kind)
			assert.Equal(t, models.DefaultSettingValue, setting.Value)
		}
	})

	t.Run("ensure defaults keeps existing values", func(t *testing.T) {
		guildID := int64(3)

		require.NoError(t, repo.Upsert(ctx, guildID, models.SettingLFGRole, models.IntValue(99)))

		inserted, err := repo.EnsureDefaults(ctx, guildID, models.SettingKinds)
		require.NoError(t, err)
		assert.Equal(t, int64(len(models.SettingKinds)-1), inserted)

		setting, err := repo.Get(ctx, guildID, models.SettingLFGRole)
		require.NoError(t, err)
		require.NotNil(t, setting)
		assert.Equal(t, models.IntValue(99), setting.Value)
	})

	t.Run("upsert updates in place", func(t *testing.T) {
		guildID := int64(4)

		require.NoError(t, repo.Upsert(ctx, guildID, models.SettingLFGReactionEmoji, "👍"))
		require.NoError(t, repo.Upsert(ctx, guildID, models.SettingLFGReactionEmoji, "🎮"))

		settings, err := repo.List(ctx, guildID)
		require.NoError(t, err)
		require.Len(t, settings, 1)
		assert.Equal(t, models.SettingValue("🎮"), settings[0].Value)
	})

	t.Run("concurrent provisioning never duplicates", func(t *testing.T) {
		guildID := int64(5)

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := repo.EnsureDefaults(ctx, guildID, models.SettingKinds)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		settings, err := repo.List(ctx, guildID)
		require.NoError(t, err)
		assert.Len(t, settings, len(models.SettingKinds))
	})

	t.Run("delete by guild is scoped", func(t *testing.T) {
		_, err := repo.EnsureDefaults(ctx, 6, models.SettingKinds)
		require.NoError(t, err)
		_, err = repo.EnsureDefaults(ctx, 7, models.SettingKinds)
		require.NoError(t, err)

		removed, err := repo.DeleteByGuild(ctx, 6)
		require.NoError(t, err)
		assert.Equal(t, int64(len(models.SettingKinds)), removed)

		known, err := repo.HasGuild(ctx, 6)
		require.NoError(t, err)
		assert.False(t, known)

		known, err = repo.HasGuild(ctx, 7)
		require.NoError(t, err)
		assert.True(t, known)
	})
}
