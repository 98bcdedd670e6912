package repository

import (
	"context"
	"fmt"

	"annobot/database"
	"annobot/models"
)

// PrivilegedRoleRepository implements the PrivilegedRoleRepository interface
type PrivilegedRoleRepository struct {
	q Queryable
}

// NewPrivilegedRoleRepository creates a new privileged role repository
func NewPrivilegedRoleRepository(db *database.DB) *PrivilegedRoleRepository {
	return &PrivilegedRoleRepository{q: db.Pool}
}

// NewPrivilegedRoleRepositoryWithTx creates a new privileged role repository bound to a transaction
func NewPrivilegedRoleRepositoryWithTx(tx Queryable) *PrivilegedRoleRepository {
	return &PrivilegedRoleRepository{q: tx}
}

// Insert records a grant. There is no uniqueness constraint on (guild, role).
func (r *PrivilegedRoleRepository) Insert(ctx context.Context, guildID, roleID int64) (*models.PrivilegedRole, error) {
	query := `
		INSERT INTO privileged_roles (guild_id, role_id)
		VALUES ($1, $2)
		RETURNING id, guild_id, role_id, created_at
	`

	var role models.PrivilegedRole
	err := r.q.QueryRow(ctx, query, guildID, roleID).Scan(
		&role.ID,
		&role.GuildID,
		&role.RoleID,
		&role.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert privileged role %d for guild %d: %w", roleID, guildID, err)
	}

	return &role, nil
}

// DeleteOne removes the oldest grant matching (guild, role)
func (r *PrivilegedRoleRepository) DeleteOne(ctx context.Context, guildID, roleID int64) (bool, error) {
	query := `
		DELETE FROM privileged_roles
		WHERE id = (
			SELECT id FROM privileged_roles
			WHERE guild_id = $1 AND role_id = $2
			ORDER BY id
			LIMIT 1
		)
	`

	tag, err := r.q.Exec(ctx, query, guildID, roleID)
	if err != nil {
		return false, fmt.Errorf("failed to delete privileged role %d for guild %d: %w", roleID, guildID, err)
	}

	return tag.RowsAffected() > 0, nil
}

// ListByGuild returns every grant of the guild in grant order
func (r *PrivilegedRoleRepository) ListByGuild(ctx context.Context, guildID int64) ([]*models.PrivilegedRole, error) {
	query := `
		SELECT id, guild_id, role_id, created_at
		FROM privileged_roles
		WHERE guild_id = $1
		ORDER BY id
	`

	rows, err := r.q.Query(ctx, query, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list privileged roles for guild %d: %w", guildID, err)
	}
	defer rows.Close()

	roles := make([]*models.PrivilegedRole, 0)
	for rows.Next() {
		var role models.PrivilegedRole
		if err := rows.Scan(&role.ID, &role.GuildID, &role.RoleID, &role.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan privileged role: %w", err)
		}
		roles = append(roles, &role)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating privileged roles: %w", err)
	}

	return roles, nil
}

// DeleteByGuild removes every grant of the guild
func (r *PrivilegedRoleRepository) DeleteByGuild(ctx context.Context, guildID int64) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM privileged_roles WHERE guild_id = $1`, guildID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete privileged roles for guild %d: %w", guildID, err)
	}
	return tag.RowsAffected(), nil
}
