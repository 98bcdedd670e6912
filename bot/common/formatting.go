package common

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var mentionPattern = regexp.MustCompile(`^<(@!?|@&|#)(\d+)>$`)

// ParseSnowflake parses a Discord ID given as a raw number or as a user, role or channel mention
func ParseSnowflake(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if m := mentionPattern.FindStringSubmatch(s); m != nil {
		s = m[2]
	}

	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("%q is not a Discord ID or mention", s)
	}
	return id, nil
}

// FormatID renders an ID the way discordgo expects it
func FormatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// MustParseID parses a discordgo ID string. Malformed input yields zero.
func MustParseID(s string) int64 {
	id, _ := strconv.ParseInt(s, 10, 64)
	return id
}

func ChannelMention(id int64) string {
	return fmt.Sprintf("<#%d>", id)
}

func RoleMention(id int64) string {
	return fmt.Sprintf("<@&%d>", id)
}

func UserMention(id int64) string {
	return fmt.Sprintf("<@%d>", id)
}

// FormatDiscordTimestamp formats a time as a Discord timestamp that displays in user's local timezone
// Format types: "t" = short time, "T" = long time, "d" = short date, "D" = long date,
// "f" = short date/time, "F" = long date/time, "R" = relative time
func FormatDiscordTimestamp(t time.Time, format string) string {
	return fmt.Sprintf("<t:%d:%s>", t.Unix(), format)
}
