package testutil

import (
	"time"

	"annobot/models"
)

// CreateTestListing creates a listing with default values
func CreateTestListing(id, guildID, hostID int64) *models.Listing {
	return &models.Listing{
		ID:             id,
		GuildID:        guildID,
		UbiName:        "TestPlayer",
		HostID:         hostID,
		GameMode:       "Coop",
		PlayerCount:    "2/4",
		DLC:            "All",
		Mods:           "None",
		Timezone:       "UTC",
		AdditionalInfo: "",
		CreatedAt:      time.Now(),
	}
}

// SettingsMap flattens a setting list for assertions
func SettingsMap(settings []*models.Setting) map[models.SettingKind]models.SettingValue {
	m := make(map[models.SettingKind]models.SettingValue, len(settings))
	for _, s := range settings {
		m[s.Kind] = s.Value
	}
	return m
}
