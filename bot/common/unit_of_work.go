package common

import (
	"context"
	"fmt"

	"annobot/service"
)

// Services bundles the services of one guild-scoped unit of work
type Services struct {
	Settings service.SettingsService
	Texts    service.TextService
	Listings service.ListingService
	Tenant   service.TenantService
}

// NewServices instantiates the services over the repositories of uow
func NewServices(uow service.UnitOfWork) *Services {
	settings := service.NewSettingsService(
		uow.SettingsRepository(),
		uow.PrivilegedRoleRepository(),
		uow.EventBus(),
	)
	texts := service.NewTextService(uow.StoredTextRepository())
	listings := service.NewListingService(uow.ListingRepository())

	return &Services{
		Settings: settings,
		Texts:    texts,
		Listings: listings,
		Tenant:   service.NewTenantService(settings, texts, listings, uow.EventBus()),
	}
}

// WithServices runs fn inside a unit of work scoped to guildID. The transaction
// commits when fn returns nil and rolls back otherwise.
func WithServices(ctx context.Context, factory service.UnitOfWorkFactory, guildID int64, fn func(*Services) error) error {
	uow := factory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := fn(NewServices(uow)); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
