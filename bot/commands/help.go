package commands

import (
	"context"
	"fmt"
	"strings"
)

// NewHelpCommand builds the help command over resolver's registry
func NewHelpCommand(resolver *Resolver) *Command {
	return &Command{
		Name:        "help",
		Brief:       "Displays this help message.",
		Description: "Lists available commands, or shows usage and aliases of a single command.",
		Usage:       "[command]",
		Handler: func(ctx context.Context, inv *Invocation) (*Response, error) {
			prefix := resolver.Prefix()

			if len(inv.Args) == 0 {
				return helpListing(resolver, prefix, inv.Authorized), nil
			}

			cmd, ok := resolver.Lookup(inv.Args[0], inv.Authorized)
			if !ok {
				return nil, NotFoundError(resolver.StripPrefix(inv.Args[0]), "")
			}
			return helpDetail(cmd, prefix), nil
		},
	}
}

func helpListing(resolver *Resolver, prefix string, authorized bool) *Response {
	var b strings.Builder
	fmt.Fprintf(&b, "You can also use `%shelp <command>` to get more information about a specific command.\n\n", prefix)

	for _, info := range resolver.Visible(authorized) {
		if info.Brief != "" {
			fmt.Fprintf(&b, "`%s%s` - %s\n", prefix, info.Name, info.Brief)
		} else {
			fmt.Fprintf(&b, "`%s%s`\n", prefix, info.Name)
		}
	}

	return Info("⚙️ __Available commands:__", b.String())
}

func helpDetail(cmd *Command, prefix string) *Response {
	desc := cmd.Description
	if desc == "" {
		desc = cmd.Brief
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n**Usage:** `%s`", desc, cmd.UsageLine(prefix))

	if len(cmd.Aliases) > 0 {
		aliases := make([]string, len(cmd.Aliases))
		for i, alias := range cmd.Aliases {
			aliases[i] = fmt.Sprintf("`%s%s`", prefix, alias)
		}
		fmt.Fprintf(&b, "\n**Aliases:** %s", strings.Join(aliases, ", "))
	}

	return Info(fmt.Sprintf("⚙️ Command: %s%s", prefix, cmd.Name), b.String())
}
