package repository

import (
	"context"
	"errors"
	"fmt"

	"annobot/database"
	"annobot/models"

	"github.com/jackc/pgx/v5"
)

// StoredTextRepository implements the StoredTextRepository interface
type StoredTextRepository struct {
	q Queryable
}

// NewStoredTextRepository creates a new stored text repository
func NewStoredTextRepository(db *database.DB) *StoredTextRepository {
	return &StoredTextRepository{q: db.Pool}
}

// NewStoredTextRepositoryWithTx creates a new stored text repository bound to a transaction
func NewStoredTextRepositoryWithTx(tx Queryable) *StoredTextRepository {
	return &StoredTextRepository{q: tx}
}

// Get returns the entry, or nil if absent
func (r *StoredTextRepository) Get(ctx context.Context, guildID int64, name string) (*models.StoredText, error) {
	query := `
		SELECT id, guild_id, text_name, text_content, updated_at
		FROM stored_text
		WHERE guild_id = $1 AND text_name = $2
	`

	var text models.StoredText
	err := r.q.QueryRow(ctx, query, guildID, name).Scan(
		&text.ID,
		&text.GuildID,
		&text.Name,
		&text.Content,
		&text.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get text %q for guild %d: %w", name, guildID, err)
	}

	return &text, nil
}

// Upsert creates the entry or replaces its content
func (r *StoredTextRepository) Upsert(ctx context.Context, guildID int64, name, content string) error {
	query := `
		INSERT INTO stored_text (guild_id, text_name, text_content)
		VALUES ($1, $2, $3)
		ON CONFLICT (guild_id, text_name)
		DO UPDATE SET text_content = EXCLUDED.text_content, updated_at = NOW()
	`

	if _, err := r.q.Exec(ctx, query, guildID, name, content); err != nil {
		return fmt.Errorf("failed to upsert text %q for guild %d: %w", name, guildID, err)
	}
	return nil
}

// Delete removes the entry and reports whether it existed
func (r *StoredTextRepository) Delete(ctx context.Context, guildID int64, name string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM stored_text WHERE guild_id = $1 AND text_name = $2`, guildID, name)
	if err != nil {
		return false, fmt.Errorf("failed to delete text %q for guild %d: %w", name, guildID, err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListNames returns every entry name of the guild in creation order
func (r *StoredTextRepository) ListNames(ctx context.Context, guildID int64) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT text_name FROM stored_text WHERE guild_id = $1 ORDER BY id`, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list text names for guild %d: %w", guildID, err)
	}
	defer rows.Close()

	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan text names: %w", err)
	}

	return names, nil
}

// DeleteByGuild removes every entry of the guild
func (r *StoredTextRepository) DeleteByGuild(ctx context.Context, guildID int64) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM stored_text WHERE guild_id = $1`, guildID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete stored text for guild %d: %w", guildID, err)
	}
	return tag.RowsAffected(), nil
}
