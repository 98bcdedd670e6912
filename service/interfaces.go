package service

import (
	"context"

	"annobot/events"
	"annobot/models"
)

// SettingsRepository defines the interface for per-guild setting rows
type SettingsRepository interface {
	// HasGuild reports whether any setting row exists for the guild
	HasGuild(ctx context.Context, guildID int64) (bool, error)

	// Get returns the setting row, or nil if it does not exist
	Get(ctx context.Context, guildID int64, kind models.SettingKind) (*models.Setting, error)

	// EnsureDefaults inserts a default row for every given kind that is missing.
	// Existing rows are left untouched. Returns the number of rows inserted.
	EnsureDefaults(ctx context.Context, guildID int64, kinds []models.SettingKind) (int64, error)

	// Upsert writes the value, inserting the row if needed
	Upsert(ctx context.Context, guildID int64, kind models.SettingKind, value models.SettingValue) error

	// List returns every row for the guild in storage order
	List(ctx context.Context, guildID int64) ([]*models.Setting, error)

	// DeleteByGuild removes every setting row for the guild
	DeleteByGuild(ctx context.Context, guildID int64) (int64, error)
}

// PrivilegedRoleRepository defines the interface for privileged role grants
type PrivilegedRoleRepository interface {
	// Insert records a grant; duplicates are allowed
	Insert(ctx context.Context, guildID, roleID int64) (*models.PrivilegedRole, error)

	// DeleteOne removes the oldest matching grant. Returns false if none matched.
	DeleteOne(ctx context.Context, guildID, roleID int64) (bool, error)

	// ListByGuild returns every grant for the guild in grant order
	ListByGuild(ctx context.Context, guildID int64) ([]*models.PrivilegedRole, error)

	// DeleteByGuild removes every grant for the guild
	DeleteByGuild(ctx context.Context, guildID int64) (int64, error)
}

// StoredTextRepository defines the interface for named text blobs
type StoredTextRepository interface {
	// Get returns the entry, or nil if it does not exist
	Get(ctx context.Context, guildID int64, name string) (*models.StoredText, error)

	// Upsert creates or replaces the entry
	Upsert(ctx context.Context, guildID int64, name, content string) error

	// Delete removes the entry. Returns false if it did not exist.
	Delete(ctx context.Context, guildID int64, name string) (bool, error)

	// ListNames returns every name for the guild in storage order, reserved names included
	ListNames(ctx context.Context, guildID int64) ([]string, error)

	// DeleteByGuild removes every entry for the guild
	DeleteByGuild(ctx context.Context, guildID int64) (int64, error)
}

// ListingRepository defines the interface for matchmaking listings
type ListingRepository interface {
	Create(ctx context.Context, listing *models.Listing) error
	Get(ctx context.Context, id int64) (*models.Listing, error)
	Delete(ctx context.Context, id int64) (bool, error)
	ListByGuild(ctx context.Context, guildID int64) ([]*models.Listing, error)
	DeleteByGuild(ctx context.Context, guildID int64) (int64, error)
}

// SettingsService defines the self-provisioning settings accessor
type SettingsService interface {
	// GetSetting returns the stored value. provisioned is false when the guild was unknown
	// and has just been initialized with defaults; value is then meaningless.
	GetSetting(ctx context.Context, kind models.SettingKind, guildID int64) (value models.SettingValue, provisioned bool, err error)

	// SetSetting writes the value, provisioning the guild first if needed
	SetSetting(ctx context.Context, kind models.SettingKind, value models.SettingValue, guildID int64) error

	// ListSettings returns every stored setting; an empty slice means the guild is unknown
	ListSettings(ctx context.Context, guildID int64) ([]*models.Setting, error)

	// GrantPrivilege records a privileged role grant
	GrantPrivilege(ctx context.Context, roleID, guildID int64) error

	// RevokePrivilege removes one matching grant. Returns false if none remained.
	RevokePrivilege(ctx context.Context, roleID, guildID int64) (bool, error)

	// ListPrivileges returns granted role IDs, duplicates included
	ListPrivileges(ctx context.Context, guildID int64) ([]int64, error)

	// IsPrivileged reports whether any of the given roles holds a grant
	IsPrivileged(ctx context.Context, guildID int64, roleIDs []int64) (bool, error)

	// EraseTenant deletes the guild's settings and privileged roles
	EraseTenant(ctx context.Context, guildID int64) error
}

// TextService defines the accessor for tags and reserved system texts
type TextService interface {
	// GetText returns the content and whether the entry exists
	GetText(ctx context.Context, name string, guildID int64) (string, bool, error)

	// SetText creates or replaces the entry
	SetText(ctx context.Context, name, content string, guildID int64) error

	// DeleteText removes the entry if present
	DeleteText(ctx context.Context, name string, guildID int64) (bool, error)

	// ListTagNames returns user-defined names, reserved names excluded
	ListTagNames(ctx context.Context, guildID int64) ([]string, error)

	// EraseTenant deletes every text entry of the guild
	EraseTenant(ctx context.Context, guildID int64) error
}

// ListingService defines the matchmaking listing operations
type ListingService interface {
	CreateListing(ctx context.Context, listing *models.Listing) error
	ListListings(ctx context.Context, guildID int64) ([]*models.Listing, error)

	// DeleteListing removes a listing owned by the guild. Only the host or a privileged
	// member may delete; callers pass that decision as canModerate.
	DeleteListing(ctx context.Context, guildID, listingID, requesterID int64, canModerate bool) error

	EraseTenant(ctx context.Context, guildID int64) error
}

// TenantService removes everything stored for a guild
type TenantService interface {
	// Erase deletes settings, privileges, texts and listings, then publishes TenantErased
	Erase(ctx context.Context, guildID int64, reason string) error
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction and flushes pending events
	Commit() error

	// Rollback rolls back the transaction and discards pending events
	Rollback() error

	// Repository getters
	SettingsRepository() SettingsRepository
	PrivilegedRoleRepository() PrivilegedRoleRepository
	StoredTextRepository() StoredTextRepository
	ListingRepository() ListingRepository

	// EventBus returns the transactional event publisher
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	// CreateForGuild creates a new UnitOfWork instance scoped to a specific guild
	CreateForGuild(guildID int64) UnitOfWork
}
