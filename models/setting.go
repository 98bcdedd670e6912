package models

import (
	"strconv"
)

// SettingKind identifies one configurable guild parameter
type SettingKind string

const (
	SettingCommandsChannel  SettingKind = "COMMANDSCHANNEL"
	SettingLogChannel       SettingKind = "LOGCHANNEL"
	SettingAnnounceChannel  SettingKind = "ANNOUNCECHANNEL"
	SettingRoleReactMessage SettingKind = "ROLEREACTMSG"
	SettingLFGRole          SettingKind = "LFGROLE"
	SettingLFGReactionEmoji SettingKind = "LFGREACTIONEMOJI"
	SettingKeepOnTopChannel SettingKind = "KEEP_ON_TOP_CHANNEL"
	SettingKeepOnTopMessage SettingKind = "KEEP_ON_TOP_MSG"
)

// SettingKinds is the closed set of recognized kinds, in provisioning order.
// Adding a kind here is enough for it to be materialized for every guild on next access.
var SettingKinds = []SettingKind{
	SettingCommandsChannel,
	SettingLogChannel,
	SettingAnnounceChannel,
	SettingRoleReactMessage,
	SettingLFGRole,
	SettingLFGReactionEmoji,
	SettingKeepOnTopChannel,
	SettingKeepOnTopMessage,
}

// IsValid reports whether the kind is part of the recognized set
func (k SettingKind) IsValid() bool {
	for _, kind := range SettingKinds {
		if kind == k {
			return true
		}
	}
	return false
}

// SettingValue is the opaque scalar stored for a setting.
// Interpretation is owned by the caller; the store passes it through verbatim.
type SettingValue string

// DefaultSettingValue is written for every kind when a guild is provisioned
const DefaultSettingValue SettingValue = "0"

// IntValue wraps a numeric ID (channel, role, message) as a setting value
func IntValue(v int64) SettingValue {
	return SettingValue(strconv.FormatInt(v, 10))
}

// Int64 interprets the value as a numeric ID
func (v SettingValue) Int64() (int64, error) {
	return strconv.ParseInt(string(v), 10, 64)
}

// IsUnset reports whether the value is still the provisioning default
func (v SettingValue) IsUnset() bool {
	return v == "" || v == DefaultSettingValue
}

// String returns the raw stored value
func (v SettingValue) String() string {
	return string(v)
}

// Setting is one (guild, kind, value) row
type Setting struct {
	ID      int64        `db:"id"`
	GuildID int64        `db:"guild_id"`
	Kind    SettingKind  `db:"datatype"`
	Value   SettingValue `db:"value"`
}
