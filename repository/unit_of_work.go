package repository

import (
	"context"
	"errors"
	"fmt"

	"annobot/database"
	"annobot/events"
	"annobot/service"

	"github.com/jackc/pgx/v5"
)

// unitOfWork implements the UnitOfWork interface
type unitOfWork struct {
	db               *database.DB
	tx               pgx.Tx
	ctx              context.Context
	guildID          int64
	transactionalBus *events.TransactionalBus
	settingsRepo     service.SettingsRepository
	roleRepo         service.PrivilegedRoleRepository
	textRepo         service.StoredTextRepository
	listingRepo      service.ListingRepository
}

type unitOfWorkFactory struct {
	db       *database.DB
	eventBus *events.Bus
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(db *database.DB, eventBus *events.Bus) service.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db:       db,
		eventBus: eventBus,
	}
}

// CreateForGuild creates a unit of work whose events are flushed to the factory's bus
func (f *unitOfWorkFactory) CreateForGuild(guildID int64) service.UnitOfWork {
	return &unitOfWork{
		db:               f.db,
		guildID:          guildID,
		transactionalBus: events.NewTransactionalBus(f.eventBus),
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for guild %d: %w", u.guildID, err)
	}

	u.tx = tx
	u.ctx = ctx

	u.settingsRepo = NewSettingsRepositoryWithTx(tx)
	u.roleRepo = NewPrivilegedRoleRepositoryWithTx(tx)
	u.textRepo = NewStoredTextRepositoryWithTx(tx)
	u.listingRepo = NewListingRepositoryWithTx(tx)

	return nil
}

// Commit commits the transaction and flushes pending events
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	if err := u.tx.Commit(u.ctx); err != nil {
		return fmt.Errorf("failed to commit transaction for guild %d: %w", u.guildID, err)
	}

	u.tx = nil
	u.transactionalBus.Flush(u.ctx)

	return nil
}

// Rollback rolls back the transaction. It is a no-op after Commit.
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil
	}

	err := u.tx.Rollback(u.ctx)
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("failed to rollback transaction for guild %d: %w", u.guildID, err)
	}

	u.tx = nil
	u.transactionalBus.Discard()

	return nil
}

// SettingsRepository returns the settings repository for this unit of work
func (u *unitOfWork) SettingsRepository() service.SettingsRepository {
	if u.settingsRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.settingsRepo
}

// PrivilegedRoleRepository returns the privileged role repository for this unit of work
func (u *unitOfWork) PrivilegedRoleRepository() service.PrivilegedRoleRepository {
	if u.roleRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.roleRepo
}

// StoredTextRepository returns the stored text repository for this unit of work
func (u *unitOfWork) StoredTextRepository() service.StoredTextRepository {
	if u.textRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.textRepo
}

// ListingRepository returns the listing repository for this unit of work
func (u *unitOfWork) ListingRepository() service.ListingRepository {
	if u.listingRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.listingRepo
}

// EventBus returns the transactional event bus for this unit of work
func (u *unitOfWork) EventBus() service.EventPublisher {
	return u.transactionalBus
}
