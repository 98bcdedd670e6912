package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSnowflake(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{"raw", "123456789012345678", 123456789012345678, false},
		{"user mention", "<@123>", 123, false},
		{"nickname mention", "<@!123>", 123, false},
		{"role mention", "<@&456>", 456, false},
		{"channel mention", "<#789>", 789, false},
		{"zero unsets", "0", 0, false},
		{"padded", "  42 ", 42, false},
		{"text", "general", 0, true},
		{"negative", "-5", 0, true},
		{"broken mention", "<#abc>", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSnowflake(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMentions(t *testing.T) {
	assert.Equal(t, "<#1>", ChannelMention(1))
	assert.Equal(t, "<@&2>", RoleMention(2))
	assert.Equal(t, "<@3>", UserMention(3))
	assert.Equal(t, "4", FormatID(4))
	assert.Equal(t, int64(5), MustParseID("5"))
	assert.Equal(t, int64(0), MustParseID(""))
}

func TestFormatDiscordTimestamp(t *testing.T) {
	ts := time.Unix(1700000000, 0)
	assert.Equal(t, "<t:1700000000:R>", FormatDiscordTimestamp(ts, "R"))
}
