package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantName string
		wantArgs []string
		wantOK   bool
	}{
		{"plain command", "!ping", "ping", nil, true},
		{"with args", "!tag  welcome  extra", "tag", []string{"welcome", "extra"}, true},
		{"no prefix", "ping", "", nil, false},
		{"prefix only", "!", "", nil, false},
		{"space after prefix", "! ping", "", nil, false},
		{"double prefix keeps second", "!!ping", "!ping", nil, true},
		{"other prefix", "?ping", "", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, args, _, ok := Parse(tt.content, "!")
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestInvocation_Rest(t *testing.T) {
	_, args, rest, ok := Parse("!tagcreate rules  Be   nice\nto everyone", "!")
	assert.True(t, ok)

	inv := &Invocation{Args: args, rest: rest}
	assert.Equal(t, "rules  Be   nice\nto everyone", inv.Rest(0))
	assert.Equal(t, "Be   nice\nto everyone", inv.Rest(1))
	assert.Equal(t, "", inv.Rest(10))
	assert.Equal(t, "rules", inv.Arg(0))
	assert.Equal(t, "", inv.Arg(99))
}

func TestCommand_UsageLine(t *testing.T) {
	assert.Equal(t, "!ping", (&Command{Name: "ping"}).UsageLine("!"))
	assert.Equal(t, "!tag <name>", (&Command{Name: "tag", Usage: "<name>"}).UsageLine("!"))
}

func TestNewInvocation(t *testing.T) {
	inv, ok := NewInvocation("!lfg ranked 4 chill games only", "!")
	assert.True(t, ok)
	assert.Equal(t, "lfg", inv.Name)
	assert.Equal(t, []string{"ranked", "4", "chill", "games", "only"}, inv.Args)
	assert.Equal(t, "chill games only", inv.Rest(2))
	assert.Equal(t, "!", inv.Prefix)

	_, ok = NewInvocation("hello there", "!")
	assert.False(t, ok)
}
