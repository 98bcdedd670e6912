package repository

import (
	"context"
	"errors"
	"fmt"

	"annobot/database"
	"annobot/models"

	"github.com/jackc/pgx/v5"
)

// SettingsRepository implements the SettingsRepository interface
type SettingsRepository struct {
	q Queryable
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *database.DB) *SettingsRepository {
	return &SettingsRepository{q: db.Pool}
}

// NewSettingsRepositoryWithTx creates a new settings repository bound to a transaction
func NewSettingsRepositoryWithTx(tx Queryable) *SettingsRepository {
	return &SettingsRepository{q: tx}
}

// HasGuild reports whether the guild has at least one setting row
func (r *SettingsRepository) HasGuild(ctx context.Context, guildID int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM settings WHERE guild_id = $1)`, guildID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check settings for guild %d: %w", guildID, err)
	}
	return exists, nil
}

// Get returns the row for (guild, kind), or nil if absent
func (r *SettingsRepository) Get(ctx context.Context, guildID int64, kind models.SettingKind) (*models.Setting, error) {
	query := `
		SELECT id, guild_id, datatype, value
		FROM settings
		WHERE guild_id = $1 AND datatype = $2
	`

	var setting models.Setting
	err := r.q.QueryRow(ctx, query, guildID, string(kind)).Scan(
		&setting.ID,
		&setting.GuildID,
		&setting.Kind,
		&setting.Value,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get setting %s for guild %d: %w", kind, guildID, err)
	}

	return &setting, nil
}

// EnsureDefaults inserts the default value for each kind that has no row yet.
// Rows are inserted in the order given so listing preserves it.
func (r *SettingsRepository) EnsureDefaults(ctx context.Context, guildID int64, kinds []models.SettingKind) (int64, error) {
	if len(kinds) == 0 {
		return 0, nil
	}

	names := make([]string, len(kinds))
	for i, kind := range kinds {
		names[i] = string(kind)
	}

	query := `
		INSERT INTO settings (guild_id, datatype, value)
		SELECT $1, kind, $3
		FROM unnest($2::text[]) WITH ORDINALITY AS k(kind, ord)
		ORDER BY ord
		ON CONFLICT (guild_id, datatype) DO NOTHING
	`

	tag, err := r.q.Exec(ctx, query, guildID, names, string(models.DefaultSettingValue))
	if err != nil {
		return 0, fmt.Errorf("failed to insert default settings for guild %d: %w", guildID, err)
	}

	return tag.RowsAffected(), nil
}

// Upsert writes value for (guild, kind), inserting the row if it does not exist
func (r *SettingsRepository) Upsert(ctx context.Context, guildID int64, kind models.SettingKind, value models.SettingValue) error {
	query := `
		INSERT INTO settings (guild_id, datatype, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (guild_id, datatype) DO UPDATE SET value = EXCLUDED.value
	`

	if _, err := r.q.Exec(ctx, query, guildID, string(kind), string(value)); err != nil {
		return fmt.Errorf("failed to upsert setting %s for guild %d: %w", kind, guildID, err)
	}
	return nil
}

// List returns every setting row of the guild in insertion order
func (r *SettingsRepository) List(ctx context.Context, guildID int64) ([]*models.Setting, error) {
	query := `
		SELECT id, guild_id, datatype, value
		FROM settings
		WHERE guild_id = $1
		ORDER BY id
	`

	rows, err := r.q.Query(ctx, query, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list settings for guild %d: %w", guildID, err)
	}
	defer rows.Close()

	settings := make([]*models.Setting, 0)
	for rows.Next() {
		var setting models.Setting
		if err := rows.Scan(&setting.ID, &setting.GuildID, &setting.Kind, &setting.Value); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		settings = append(settings, &setting)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating settings: %w", err)
	}

	return settings, nil
}

// DeleteByGuild removes every setting row of the guild
func (r *SettingsRepository) DeleteByGuild(ctx context.Context, guildID int64) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM settings WHERE guild_id = $1`, guildID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete settings for guild %d: %w", guildID, err)
	}
	return tag.RowsAffected(), nil
}
