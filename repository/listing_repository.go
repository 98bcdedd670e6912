package repository

import (
	"context"
	"errors"
	"fmt"

	"annobot/database"
	"annobot/models"

	"github.com/jackc/pgx/v5"
)

// ListingRepository implements the ListingRepository interface
type ListingRepository struct {
	q Queryable
}

// NewListingRepository creates a new listing repository
func NewListingRepository(db *database.DB) *ListingRepository {
	return &ListingRepository{q: db.Pool}
}

// NewListingRepositoryWithTx creates a new listing repository bound to a transaction
func NewListingRepositoryWithTx(tx Queryable) *ListingRepository {
	return &ListingRepository{q: tx}
}

const listingColumns = `id, guild_id, ubi_name, host_id, game_mode, player_count, dlc, mods,
		timezone, additional_info, created_at`

func scanListing(row pgx.Row) (*models.Listing, error) {
	var l models.Listing
	err := row.Scan(
		&l.ID,
		&l.GuildID,
		&l.UbiName,
		&l.HostID,
		&l.GameMode,
		&l.PlayerCount,
		&l.DLC,
		&l.Mods,
		&l.Timezone,
		&l.AdditionalInfo,
		&l.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Create stores a new listing
func (r *ListingRepository) Create(ctx context.Context, listing *models.Listing) error {
	query := `
		INSERT INTO match_listings (id, guild_id, ubi_name, host_id, game_mode, player_count, dlc,
			mods, timezone, additional_info)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at
	`

	err := r.q.QueryRow(ctx, query,
		listing.ID,
		listing.GuildID,
		listing.UbiName,
		listing.HostID,
		listing.GameMode,
		listing.PlayerCount,
		listing.DLC,
		listing.Mods,
		listing.Timezone,
		listing.AdditionalInfo,
	).Scan(&listing.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create listing %d: %w", listing.ID, err)
	}

	return nil
}

// Get returns the listing, or nil if absent
func (r *ListingRepository) Get(ctx context.Context, id int64) (*models.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM match_listings WHERE id = $1`

	listing, err := scanListing(r.q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get listing %d: %w", id, err)
	}
	return listing, nil
}

// Delete removes the listing and reports whether it existed
func (r *ListingRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM match_listings WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete listing %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListByGuild returns the guild's listings, newest first
func (r *ListingRepository) ListByGuild(ctx context.Context, guildID int64) ([]*models.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM match_listings WHERE guild_id = $1 ORDER BY created_at DESC, id DESC`

	rows, err := r.q.Query(ctx, query, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list listings for guild %d: %w", guildID, err)
	}
	defer rows.Close()

	listings := make([]*models.Listing, 0)
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		listings = append(listings, listing)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating listings: %w", err)
	}

	return listings, nil
}

// DeleteByGuild removes every listing of the guild
func (r *ListingRepository) DeleteByGuild(ctx context.Context, guildID int64) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM match_listings WHERE guild_id = $1`, guildID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete listings for guild %d: %w", guildID, err)
	}
	return tag.RowsAffected(), nil
}
