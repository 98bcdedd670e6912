package service

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockUnitOfWork is a mock implementation of UnitOfWork.
// Repositories are plain fields so tests can wire only what they use.
type MockUnitOfWork struct {
	mock.Mock

	settingsRepo SettingsRepository
	roleRepo     PrivilegedRoleRepository
	textRepo     StoredTextRepository
	listingRepo  ListingRepository
	eventBus     EventPublisher
}

// SetRepositories wires the repositories returned by the getters
func (m *MockUnitOfWork) SetRepositories(settingsRepo SettingsRepository, roleRepo PrivilegedRoleRepository, textRepo StoredTextRepository, listingRepo ListingRepository, eventBus EventPublisher) {
	m.settingsRepo = settingsRepo
	m.roleRepo = roleRepo
	m.textRepo = textRepo
	m.listingRepo = listingRepo
	m.eventBus = eventBus
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) SettingsRepository() SettingsRepository {
	return m.settingsRepo
}

func (m *MockUnitOfWork) PrivilegedRoleRepository() PrivilegedRoleRepository {
	return m.roleRepo
}

func (m *MockUnitOfWork) StoredTextRepository() StoredTextRepository {
	return m.textRepo
}

func (m *MockUnitOfWork) ListingRepository() ListingRepository {
	return m.listingRepo
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	return m.eventBus
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) CreateForGuild(guildID int64) UnitOfWork {
	args := m.Called(guildID)
	return args.Get(0).(UnitOfWork)
}

// MockStores groups the repository mocks behind one MockUnitOfWork
type MockStores struct {
	Settings *MockSettingsRepository
	Roles    *MockPrivilegedRoleRepository
	Texts    *MockStoredTextRepository
	Listings *MockListingRepository
	Events   *MockEventPublisher

	UnitOfWork *MockUnitOfWork
	Factory    *MockUnitOfWorkFactory
}

// NewMockStores returns a factory whose units of work for guildID always begin,
// commit and roll back successfully
func NewMockStores(guildID int64) *MockStores {
	m := &MockStores{
		Settings:   new(MockSettingsRepository),
		Roles:      new(MockPrivilegedRoleRepository),
		Texts:      new(MockStoredTextRepository),
		Listings:   new(MockListingRepository),
		Events:     new(MockEventPublisher),
		UnitOfWork: new(MockUnitOfWork),
		Factory:    new(MockUnitOfWorkFactory),
	}
	m.UnitOfWork.SetRepositories(m.Settings, m.Roles, m.Texts, m.Listings, m.Events)
	m.UnitOfWork.On("Begin", mock.Anything).Return(nil).Maybe()
	m.UnitOfWork.On("Commit").Return(nil).Maybe()
	m.UnitOfWork.On("Rollback").Return(nil).Maybe()
	m.Factory.On("CreateForGuild", guildID).Return(m.UnitOfWork).Maybe()
	return m
}

// AssertExpectations asserts every repository mock
func (m *MockStores) AssertExpectations(t mock.TestingT) {
	m.Settings.AssertExpectations(t)
	m.Roles.AssertExpectations(t)
	m.Texts.AssertExpectations(t)
	m.Listings.AssertExpectations(t)
	m.Events.AssertExpectations(t)
}
