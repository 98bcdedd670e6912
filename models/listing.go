package models

import (
	"time"
)

// Listing is a matchmaking post looking for players
type Listing struct {
	ID             int64     `db:"id"` // Discord message ID of the listing post
	GuildID        int64     `db:"guild_id"`
	UbiName        string    `db:"ubi_name"`
	HostID         int64     `db:"host_id"`
	GameMode       string    `db:"game_mode"`
	PlayerCount    string    `db:"player_count"`
	DLC            string    `db:"dlc"`
	Mods           string    `db:"mods"`
	Timezone       string    `db:"timezone"`
	AdditionalInfo string    `db:"additional_info"`
	CreatedAt      time.Time `db:"created_at"`
}
