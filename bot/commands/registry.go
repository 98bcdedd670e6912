package commands

import (
	"fmt"
)

// Registry is the ordered command table. It is populated at startup and read-only afterwards.
type Registry struct {
	commands []*Command
	byName   map[string]*Command
	byAlias  map[string]*Command
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		byName:  make(map[string]*Command),
		byAlias: make(map[string]*Command),
	}
}

// Register adds commands in order. A name or alias may only be claimed once.
func (r *Registry) Register(cmds ...*Command) error {
	for _, cmd := range cmds {
		if cmd.Name == "" {
			return fmt.Errorf("command has no name")
		}
		if cmd.Handler == nil {
			return fmt.Errorf("command %q has no handler", cmd.Name)
		}
		if r.claimed(cmd.Name) {
			return fmt.Errorf("command name %q already registered", cmd.Name)
		}
		for _, alias := range cmd.Aliases {
			if alias == cmd.Name || r.claimed(alias) {
				return fmt.Errorf("alias %q of command %q already registered", alias, cmd.Name)
			}
		}

		r.commands = append(r.commands, cmd)
		r.byName[cmd.Name] = cmd
		for _, alias := range cmd.Aliases {
			r.byAlias[alias] = cmd
		}
	}
	return nil
}

// MustRegister is Register that panics on conflicts
func (r *Registry) MustRegister(cmds ...*Command) {
	if err := r.Register(cmds...); err != nil {
		panic(err)
	}
}

func (r *Registry) claimed(token string) bool {
	_, isName := r.byName[token]
	_, isAlias := r.byAlias[token]
	return isName || isAlias
}

// Commands returns the table in registration order
func (r *Registry) Commands() []*Command {
	out := make([]*Command, len(r.commands))
	copy(out, r.commands)
	return out
}
