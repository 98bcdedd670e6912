package admin

import (
	"fmt"
	"regexp"
	"strings"

	"annobot/bot/common"
	"annobot/models"
)

var customEmojiPattern = regexp.MustCompile(`^<a?:(\w+):(\d+)>$`)

func isChannelKind(kind models.SettingKind) bool {
	switch kind {
	case models.SettingCommandsChannel, models.SettingLogChannel,
		models.SettingAnnounceChannel, models.SettingKeepOnTopChannel:
		return true
	}
	return false
}

// ParseValue converts user input for kind into the value to store
func ParseValue(kind models.SettingKind, raw string) (models.SettingValue, error) {
	raw = strings.TrimSpace(raw)
	if raw == models.DefaultSettingValue.String() {
		return models.DefaultSettingValue, nil
	}

	if kind == models.SettingLFGReactionEmoji {
		// Reactions take custom emoji as name:id
		if m := customEmojiPattern.FindStringSubmatch(raw); m != nil {
			return models.SettingValue(m[1] + ":" + m[2]), nil
		}
		if raw == "" || strings.ContainsAny(raw, " \t\n") {
			return "", fmt.Errorf("%q is not an emoji", raw)
		}
		return models.SettingValue(raw), nil
	}

	id, err := common.ParseSnowflake(raw)
	if err != nil {
		return "", err
	}
	return models.IntValue(id), nil
}

// FormatValue renders a stored value for display
func FormatValue(kind models.SettingKind, value models.SettingValue) string {
	if value.IsUnset() {
		return "`not set`"
	}

	id, err := value.Int64()
	switch {
	case err != nil:
		return value.String()
	case isChannelKind(kind):
		return common.ChannelMention(id)
	case kind == models.SettingLFGRole:
		return common.RoleMention(id)
	default:
		return fmt.Sprintf("`%d`", id)
	}
}

func validKinds() string {
	names := make([]string, len(models.SettingKinds))
	for i, kind := range models.SettingKinds {
		names[i] = "`" + string(kind) + "`"
	}
	return strings.Join(names, ", ")
}
