package commands

import (
	"context"
	"strings"
	"time"
	"unicode"
)

// HandlerFunc runs a resolved command. Returning a *CommandError selects a specific
// response template; any other error is reported as an internal failure.
type HandlerFunc func(ctx context.Context, inv *Invocation) (*Response, error)

// Command is one entry of the command table
type Command struct {
	Name        string
	Aliases     []string
	Brief       string
	Description string
	Usage       string // arguments only, the name is prepended when displayed

	// Hidden commands are only visible to, and runnable by, authorized principals
	Hidden bool

	// Cooldown is applied per guild member; zero disables it
	Cooldown time.Duration

	// MinArgs is the number of whitespace-delimited arguments the command requires
	MinArgs int

	Handler HandlerFunc
}

// UsageLine renders the invocation syntax with the given prefix
func (c *Command) UsageLine(prefix string) string {
	if c.Usage == "" {
		return prefix + c.Name
	}
	return prefix + c.Name + " " + c.Usage
}

// Principal is the member invoking a command
type Principal struct {
	UserID  int64
	Name    string
	RoleIDs []int64
}

// Invocation carries everything a handler needs about one command call
type Invocation struct {
	GuildID      int64
	GuildOwnerID int64
	ChannelID    int64
	MessageID    int64
	Author       Principal

	// Content is the raw message text
	Content string

	// Name is the command token as typed, without the prefix
	Name string
	Args []string

	// Set by the dispatcher once resolved
	Command    *Command
	Prefix     string
	Authorized bool

	rest string
}

// Rest returns the raw text after the first n arguments, whitespace preserved
func (inv *Invocation) Rest(n int) string {
	s := inv.rest
	for i := 0; i < n; i++ {
		s = strings.TrimLeftFunc(s, unicode.IsSpace)
		idx := strings.IndexFunc(s, unicode.IsSpace)
		if idx < 0 {
			return ""
		}
		s = s[idx:]
	}
	return strings.TrimSpace(s)
}

// Arg returns the i-th argument or an empty string
func (inv *Invocation) Arg(i int) string {
	if i < 0 || i >= len(inv.Args) {
		return ""
	}
	return inv.Args[i]
}

// Parse splits prefixed message content into a command token and arguments.
// ok is false when the content does not start with prefix or names no command.
func Parse(content, prefix string) (name string, args []string, rest string, ok bool) {
	if prefix == "" || !strings.HasPrefix(content, prefix) {
		return "", nil, "", false
	}

	body := content[len(prefix):]
	if body == "" || unicode.IsSpace([]rune(body)[0]) {
		return "", nil, "", false
	}

	idx := strings.IndexFunc(body, unicode.IsSpace)
	if idx < 0 {
		return body, nil, "", true
	}

	rest = body[idx:]
	return body[:idx], strings.Fields(rest), rest, true
}

// NewInvocation parses content into an invocation ready for dispatch or a handler.
// ok is false when content is not a command.
func NewInvocation(content, prefix string) (*Invocation, bool) {
	name, args, rest, ok := Parse(content, prefix)
	if !ok {
		return nil, false
	}
	return &Invocation{
		Content: content,
		Name:    name,
		Args:    args,
		Prefix:  prefix,
		rest:    rest,
	}, true
}
