package bot

import (
	"context"
	"errors"
	"testing"

	"annobot/bot/commands"
	"annobot/events"
	"annobot/models"
	"annobot/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProvisionGuild_NewGuild(t *testing.T) {
	ctx := context.Background()
	stores := service.NewMockStores(42)

	stores.Settings.On("HasGuild", ctx, int64(42)).Return(false, nil)
	stores.Settings.On("EnsureDefaults", ctx, int64(42), models.SettingKinds).
		Return(int64(len(models.SettingKinds)), nil)
	stores.Events.On("Publish", events.TenantProvisionedEvent{GuildID: 42, Kinds: len(models.SettingKinds)}).Return()

	isNew, err := provisionGuild(ctx, stores.Factory, 42)

	require.NoError(t, err)
	assert.True(t, isNew)
	stores.AssertExpectations(t)
	stores.UnitOfWork.AssertCalled(t, "Commit")
}

func TestProvisionGuild_KnownGuild(t *testing.T) {
	ctx := context.Background()
	stores := service.NewMockStores(42)

	stores.Settings.On("HasGuild", ctx, int64(42)).Return(true, nil)
	stores.Settings.On("Get", ctx, int64(42), models.SettingCommandsChannel).
		Return(&models.Setting{GuildID: 42, Kind: models.SettingCommandsChannel, Value: "0"}, nil)

	isNew, err := provisionGuild(ctx, stores.Factory, 42)

	require.NoError(t, err)
	assert.False(t, isNew)
	stores.Settings.AssertNotCalled(t, "EnsureDefaults", mock.Anything, mock.Anything, mock.Anything)
	stores.AssertExpectations(t)
}

func TestProvisionGuild_StoreError(t *testing.T) {
	ctx := context.Background()
	stores := service.NewMockStores(42)

	stores.Settings.On("HasGuild", ctx, int64(42)).Return(false, errors.New("connection refused"))

	_, err := provisionGuild(ctx, stores.Factory, 42)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	stores.UnitOfWork.AssertNotCalled(t, "Commit")
}

func TestEraseGuild(t *testing.T) {
	ctx := context.Background()
	stores := service.NewMockStores(42)

	stores.Settings.On("List", ctx, int64(42)).Return([]*models.Setting{
		{GuildID: 42, Kind: models.SettingLogChannel, Value: "777"},
	}, nil)
	stores.Settings.On("DeleteByGuild", ctx, int64(42)).Return(int64(8), nil)
	stores.Roles.On("DeleteByGuild", ctx, int64(42)).Return(int64(1), nil)
	stores.Texts.On("DeleteByGuild", ctx, int64(42)).Return(int64(3), nil)
	stores.Listings.On("DeleteByGuild", ctx, int64(42)).Return(int64(0), nil)
	stores.Events.On("Publish", events.TenantErasedEvent{
		GuildID:      42,
		Reason:       service.EraseReasonGuildRemoved,
		LogChannelID: 777,
	}).Return()

	require.NoError(t, eraseGuild(ctx, stores.Factory, 42))
	stores.AssertExpectations(t)
	stores.UnitOfWork.AssertCalled(t, "Commit")
}

func TestGreeting(t *testing.T) {
	resp := Greeting("?")

	assert.Equal(t, "Beep Boop!", resp.Title)
	assert.Contains(t, resp.Description, "`?help`")
	assert.Equal(t, commands.ColorGreeting, resp.Color)
}
