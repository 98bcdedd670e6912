package models

import (
	"time"
)

// Reserved text names used by internal features. They live in the same table as tags
// but are never listed to users.
const (
	TextKeepOnTopContent = "KEEP_ON_TOP_CONTENT"
)

// ReservedTextNames is the closed set of reserved names
var ReservedTextNames = []string{
	TextKeepOnTopContent,
}

// IsReservedTextName reports whether name belongs to an internal feature
func IsReservedTextName(name string) bool {
	for _, reserved := range ReservedTextNames {
		if reserved == name {
			return true
		}
	}
	return false
}

// StoredText is a named text blob owned by a guild
type StoredText struct {
	ID        int64     `db:"id"`
	GuildID   int64     `db:"guild_id"`
	Name      string    `db:"text_name"`
	Content   string    `db:"text_content"`
	UpdatedAt time.Time `db:"updated_at"`
}
