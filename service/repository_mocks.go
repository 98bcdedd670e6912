package service

import (
	"context"

	"annobot/events"
	"annobot/models"

	"github.com/stretchr/testify/mock"
)

// MockSettingsRepository is a mock implementation of SettingsRepository
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) HasGuild(ctx context.Context, guildID int64) (bool, error) {
	args := m.Called(ctx, guildID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSettingsRepository) Get(ctx context.Context, guildID int64, kind models.SettingKind) (*models.Setting, error) {
	args := m.Called(ctx, guildID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Setting), args.Error(1)
}

func (m *MockSettingsRepository) EnsureDefaults(ctx context.Context, guildID int64, kinds []models.SettingKind) (int64, error) {
	args := m.Called(ctx, guildID, kinds)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSettingsRepository) Upsert(ctx context.Context, guildID int64, kind models.SettingKind, value models.SettingValue) error {
	args := m.Called(ctx, guildID, kind, value)
	return args.Error(0)
}

func (m *MockSettingsRepository) List(ctx context.Context, guildID int64) ([]*models.Setting, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Setting), args.Error(1)
}

func (m *MockSettingsRepository) DeleteByGuild(ctx context.Context, guildID int64) (int64, error) {
	args := m.Called(ctx, guildID)
	return args.Get(0).(int64), args.Error(1)
}

// MockPrivilegedRoleRepository is a mock implementation of PrivilegedRoleRepository
type MockPrivilegedRoleRepository struct {
	mock.Mock
}

func (m *MockPrivilegedRoleRepository) Insert(ctx context.Context, guildID, roleID int64) (*models.PrivilegedRole, error) {
	args := m.Called(ctx, guildID, roleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PrivilegedRole), args.Error(1)
}

func (m *MockPrivilegedRoleRepository) DeleteOne(ctx context.Context, guildID, roleID int64) (bool, error) {
	args := m.Called(ctx, guildID, roleID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPrivilegedRoleRepository) ListByGuild(ctx context.Context, guildID int64) ([]*models.PrivilegedRole, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PrivilegedRole), args.Error(1)
}

func (m *MockPrivilegedRoleRepository) DeleteByGuild(ctx context.Context, guildID int64) (int64, error) {
	args := m.Called(ctx, guildID)
	return args.Get(0).(int64), args.Error(1)
}

// MockStoredTextRepository is a mock implementation of StoredTextRepository
type MockStoredTextRepository struct {
	mock.Mock
}

func (m *MockStoredTextRepository) Get(ctx context.Context, guildID int64, name string) (*models.StoredText, error) {
	args := m.Called(ctx, guildID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StoredText), args.Error(1)
}

func (m *MockStoredTextRepository) Upsert(ctx context.Context, guildID int64, name, content string) error {
	args := m.Called(ctx, guildID, name, content)
	return args.Error(0)
}

func (m *MockStoredTextRepository) Delete(ctx context.Context, guildID int64, name string) (bool, error) {
	args := m.Called(ctx, guildID, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockStoredTextRepository) ListNames(ctx context.Context, guildID int64) ([]string, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStoredTextRepository) DeleteByGuild(ctx context.Context, guildID int64) (int64, error) {
	args := m.Called(ctx, guildID)
	return args.Get(0).(int64), args.Error(1)
}

// MockListingRepository is a mock implementation of ListingRepository
type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) Create(ctx context.Context, listing *models.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

func (m *MockListingRepository) Get(ctx context.Context, id int64) (*models.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Listing), args.Error(1)
}

func (m *MockListingRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockListingRepository) ListByGuild(ctx context.Context, guildID int64) ([]*models.Listing, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Listing), args.Error(1)
}

func (m *MockListingRepository) DeleteByGuild(ctx context.Context, guildID int64) (int64, error) {
	args := m.Called(ctx, guildID)
	return args.Get(0).(int64), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Called(event)
}
