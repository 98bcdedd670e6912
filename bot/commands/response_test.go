package commands

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatRetry(t *testing.T) {
	assert.Equal(t, "0:00:00", FormatRetry(0))
	assert.Equal(t, "0:00:05", FormatRetry(4600*time.Millisecond))
	assert.Equal(t, "0:01:30", FormatRetry(90*time.Second))
	assert.Equal(t, "2:00:01", FormatRetry(2*time.Hour+time.Second))
	assert.Equal(t, "0:00:00", FormatRetry(-time.Second))
}

func TestErrorResponse_Templates(t *testing.T) {
	tests := []struct {
		err   *CommandError
		title string
		color int
	}{
		{UnauthorizedError("x"), "❌ Error: Insufficient permissions.", ColorError},
		{NotFoundError("x", ""), "❓ Unknown command!", ColorUnknown},
		{CooldownError("x", time.Second), "🕘 Error: This command is on cooldown.", ColorError},
		{MissingArgumentError("x", "!x <a>"), "❌ Missing argument.", ColorError},
		{UserInputError("bad"), "⚠️ Warning: Invalid data entered.", ColorWarn},
		{Classify(assert.AnError), "❌ Error: Something went wrong.", ColorError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Kind.String(), func(t *testing.T) {
			resp := ErrorResponse(tt.err, "!")
			assert.Equal(t, tt.title, resp.Title)
			assert.Equal(t, tt.color, resp.Color)
		})
	}
}

func TestClassify(t *testing.T) {
	assert.Equal(t, KindInternal, Classify(assert.AnError).Kind)
	assert.ErrorIs(t, Classify(assert.AnError), assert.AnError)

	userErr := UserInputErrorf("Unknown setting %q.", "FOO")
	assert.Same(t, userErr, Classify(userErr))
	assert.Equal(t, `Unknown setting "FOO".`, userErr.Hint)
}
