package service

import (
	"context"
	"errors"
	"testing"

	"annobot/events"
	"annobot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type settingsMocks struct {
	settingsRepo *MockSettingsRepository
	roleRepo     *MockPrivilegedRoleRepository
	publisher    *MockEventPublisher
}

func newSettingsServiceWithMocks() (SettingsService, *settingsMocks) {
	m := &settingsMocks{
		settingsRepo: new(MockSettingsRepository),
		roleRepo:     new(MockPrivilegedRoleRepository),
		publisher:    new(MockEventPublisher),
	}
	return NewSettingsService(m.settingsRepo, m.roleRepo, m.publisher), m
}

func (m *settingsMocks) assertExpectations(t *testing.T) {
	m.settingsRepo.AssertExpectations(t)
	m.roleRepo.AssertExpectations(t)
	m.publisher.AssertExpectations(t)
}

func TestSettingsService_GetSetting_UnknownKind(t *testing.T) {
	ctx := context.Background()
	svc, mocks := newSettingsServiceWithMocks()

	value, provisioned, err := svc.GetSetting(ctx, models.SettingKind("BOGUS"), 42)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownSettingKind))
	assert.Empty(t, value)
	assert.False(t, provisioned)

	// The store must not be touched
	mocks.settingsRepo.AssertNotCalled(t, "HasGuild", mock.Anything, mock.Anything)
	mocks.settingsRepo.AssertNotCalled(t, "EnsureDefaults", mock.Anything, mock.Anything, mock.Anything)
	mocks.publisher.AssertNotCalled(t, "Publish", mock.Anything)
}

func TestSettingsService_GetSetting_UnknownGuildProvisions(t *testing.T) {
	ctx := context.Background()
	svc, mocks := newSettingsServiceWithMocks()

	mocks.settingsRepo.On("HasGuild", ctx, int64(42)).Return(false, nil)
	mocks.settingsRepo.On("EnsureDefaults", ctx, int64(42), models.SettingKinds).Return(int64(len(models.SettingKinds)), nil)
	mocks.publisher.On("Publish", events.TenantProvisionedEvent{GuildID: 42, Kinds: len(models.SettingKinds)}).Return()

	value, provisioned, err := svc.GetSetting(ctx, models.SettingLogChannel, 42)

	require.NoError(t, err)
	assert.False(t, provisioned, "first access must report the not-provisioned sentinel")
	assert.Empty(t, value)
	mocks.settingsRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
	mocks.assertExpectations(t)
}

func TestSettingsService_GetSetting_ConcurrentProvisionDoesNotRepublish(t *testing.T) {
	ctx := context.Background()
	svc, mocks := newSettingsServiceWithMocks()

	mocks.settingsRepo.On("HasGuild", ctx, int64(42)).Return(false, nil)
	mocks.settingsRepo.On("EnsureDefaults", ctx, int64(42), models.SettingKinds).Return(int64(0), nil)

	_, provisioned, err := svc.GetSetting(ctx, models.SettingLFGRole, 42)

	require.NoError(t, err)
	assert.False(t, provisioned)
	mocks.publisher.AssertNotCalled(t, "Publish", mock.Anything)
}

func TestSettingsService_GetSetting_StoredValue(t *testing.T) {
	ctx := context.Background()
	svc, mocks := newSettingsServiceWithMocks()

	mocks.settingsRepo.On("HasGuild", ctx, int64(42)).Return(true, nil)
	mocks.settingsRepo.On("Get", ctx, int64(42), models.SettingLFGReactionEmoji).Return(&models.Setting{
		GuildID: 42,
		Kind:    models.SettingLFGReactionEmoji,
		Value:   "🎮",
	}, nil)

	value, provisioned, err := svc.GetSetting(ctx, models.SettingLFGReactionEmoji, 42)

	require.NoError(t, err)
	assert.True(t, provisioned)
	assert.Equal(t, models.SettingValue("🎮"), value)
	mocks.assertExpectations(t)
}

func TestSettingsService_GetSetting_BackfillsMissingKind(t *testing.T) {
	ctx := context.Background()
	svc, mocks := newSettingsServiceWithMocks()

	mocks.settingsRepo.On("HasGuild", ctx, int64(42)).Return(true, nil)
	mocks.settingsRepo.On("Get", ctx, int64(42), models.SettingKeepOnTopMessage).Return(nil, nil)
	mocks.settingsRepo.On("EnsureDefaults", ctx, int64(42), []models.SettingKind{models.SettingKeepOnTopMessage}).Return(int64(1), nil)

	value, provisioned, err := svc.GetSetting(ctx, models.SettingKeepOnTopMessage, 42)

	require.NoError(t, err)
	assert.True(t, provisioned)
	assert.Equal(t, models.DefaultSettingValue, value)
	mocks.publisher.AssertNotCalled(t, "Publish", mock.Anything)
	mocks.assertExpectations(t)
}

func TestSettingsService_GetSetting_StoreFailure(t *testing.T) {
	ctx := context.Background()
	svc, mocks := newSettingsServiceWithMocks()

	mocks.settingsRepo.On("HasGuild", ctx, int64(42)).Return(false, errors.New("connection refused"))

	_, _, err := svc.GetSetting(ctx, models.SettingLogChannel, 42)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.False(t, errors.Is(err, ErrUnknownSettingKind))
}

func TestSettingsService_SetSetting_UnknownGuild(t *testing.T) {
	ctx := context.Background()
	svc, mocks := newSettingsServiceWithMocks()

	var others []models.SettingKind
	for _, kind := range models.SettingKinds {
		if kind != models.SettingLogChannel {
			others = append(others, kind)
		}
	}

	mocks.settingsRepo.On("HasGuild", ctx, int64(42)).Return(false, nil)
	mocks.settingsRepo.On("EnsureDefaults", ctx, int64(42), others).Return(int64(len(others)), nil)
	mocks.settingsRepo.On("Upsert", ctx, int64(42), models.SettingLogChannel, models.IntValue(777)).Return(nil)
	mocks.publisher.On("Publish", events.TenantProvisionedEvent{GuildID: 42, Kinds: len(others)}).Return()
	mocks.publisher.On("Publish", events.SettingChangedEvent{GuildID: 42, Kind: "LOGCHANNEL", Value: "777"}).Return()

	err := svc.SetSetting(ctx, models.SettingLogChannel, models.IntValue(777), 42)

	require.NoError(t, err)
	mocks.assertExpectations(t)
}

func TestSettingsService_SetSetting_KnownGuild(t *testing.T) {
	ctx := context.Background()
	svc, mocks := newSettingsServiceWithMocks()

	mocks.settingsRepo.On("HasGuild", ctx, int64(42)).Return(true, nil)
	mocks.settingsRepo.On("Upsert", ctx, int64(42), models.SettingAnnounceChannel, models.IntValue(5)).Return(nil)
	mocks.publisher.On("Publish", mock.AnythingOfType("events.SettingChangedEvent")).Return()

	err := svc.SetSetting(ctx, models.SettingAnnounceChannel, models.IntValue(5), 42)

	require.NoError(t, err)
	mocks.settingsRepo.AssertNotCalled(t, "EnsureDefaults", mock.Anything, mock.Anything, mock.Anything)
	mocks.assertExpectations(t)
}

func TestSettingsService_SetSetting_UnknownKind(t *testing.T) {
	ctx := context.Background()
	svc, mocks := newSettingsServiceWithMocks()

	err := svc.SetSetting(ctx, models.SettingKind("PREFIX"), "?", 42)

	assert.ErrorIs(t, err, ErrUnknownSettingKind)
	mocks.settingsRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSettingsService_SetSetting_UpsertFailureSkipsEvent(t *testing.T) {
	ctx := context.Background()
	svc, mocks := newSettingsServiceWithMocks()

	mocks.settingsRepo.On("HasGuild", ctx, int64(42)).Return(true, nil)
	mocks.settingsRepo.On("Upsert", ctx, int64(42), models.SettingLFGRole, models.IntValue(1)).Return(errors.New("db down"))

	err := svc.SetSetting(ctx, models.SettingLFGRole, models.IntValue(1), 42)

	require.Error(t, err)
	mocks.publisher.AssertNotCalled(t, "Publish", mock.Anything)
}

func TestSettingsService_ListSettings_Empty(t *testing.T) {
	ctx := context.Background()
	svc, mocks := newSettingsServiceWithMocks()

	mocks.settingsRepo.On("List", ctx, int64(7)).Return(nil, nil)

	settings, err := svc.ListSettings(ctx, 7)

	require.NoError(t, err)
	assert.NotNil(t, settings)
	assert.Empty(t, settings)
}

func TestSettingsService_Privileges(t *testing.T) {
	ctx := context.Background()

	t.Run("grant publishes event", func(t *testing.T) {
		svc, mocks := newSettingsServiceWithMocks()
		mocks.roleRepo.On("Insert", ctx, int64(9), int64(100)).Return(&models.PrivilegedRole{ID: 1, GuildID: 9, RoleID: 100}, nil)
		mocks.publisher.On("Publish", events.PrivilegeGrantedEvent{GuildID: 9, RoleID: 100}).Return()

		require.NoError(t, svc.GrantPrivilege(ctx, 100, 9))
		mocks.assertExpectations(t)
	})

	t.Run("revoke of absent grant is a no-op", func(t *testing.T) {
		svc, mocks := newSettingsServiceWithMocks()
		mocks.roleRepo.On("DeleteOne", ctx, int64(9), int64(100)).Return(false, nil)

		removed, err := svc.RevokePrivilege(ctx, 100, 9)
		require.NoError(t, err)
		assert.False(t, removed)
		mocks.publisher.AssertNotCalled(t, "Publish", mock.Anything)
	})

	t.Run("list keeps duplicates", func(t *testing.T) {
		svc, mocks := newSettingsServiceWithMocks()
		mocks.roleRepo.On("ListByGuild", ctx, int64(9)).Return([]*models.PrivilegedRole{
			{ID: 1, GuildID: 9, RoleID: 100},
			{ID: 2, GuildID: 9, RoleID: 100},
			{ID: 3, GuildID: 9, RoleID: 200},
		}, nil)

		roles, err := svc.ListPrivileges(ctx, 9)
		require.NoError(t, err)
		assert.Equal(t, []int64{100, 100, 200}, roles)
	})

	t.Run("membership", func(t *testing.T) {
		svc, mocks := newSettingsServiceWithMocks()
		mocks.roleRepo.On("ListByGuild", ctx, int64(9)).Return([]*models.PrivilegedRole{
			{ID: 1, GuildID: 9, RoleID: 100},
		}, nil)

		ok, err := svc.IsPrivileged(ctx, 9, []int64{5, 100})
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = svc.IsPrivileged(ctx, 9, []int64{5})
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = svc.IsPrivileged(ctx, 9, nil)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestSettingsService_EraseTenant(t *testing.T) {
	ctx := context.Background()
	svc, mocks := newSettingsServiceWithMocks()

	mocks.settingsRepo.On("DeleteByGuild", ctx, int64(42)).Return(int64(8), nil)
	mocks.roleRepo.On("DeleteByGuild", ctx, int64(42)).Return(int64(2), nil)

	require.NoError(t, svc.EraseTenant(ctx, 42))
	mocks.assertExpectations(t)
}
