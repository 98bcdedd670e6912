package models

import (
	"time"
)

// PrivilegedRole grants a role access to hidden commands within a guild.
// The same pair may be stored more than once.
type PrivilegedRole struct {
	ID        int64     `db:"id"`
	GuildID   int64     `db:"guild_id"`
	RoleID    int64     `db:"role_id"`
	CreatedAt time.Time `db:"created_at"`
}
