package commands

import (
	"context"
	"fmt"
	"strings"
)

// PrivilegeSource answers whether any of a member's roles holds a privileged grant
type PrivilegeSource interface {
	IsPrivileged(ctx context.Context, guildID int64, roleIDs []int64) (bool, error)
}

// PrivilegeSourceFunc adapts a function to PrivilegeSource
type PrivilegeSourceFunc func(ctx context.Context, guildID int64, roleIDs []int64) (bool, error)

func (f PrivilegeSourceFunc) IsPrivileged(ctx context.Context, guildID int64, roleIDs []int64) (bool, error) {
	return f(ctx, guildID, roleIDs)
}

// CommandInfo is the listing view of a command
type CommandInfo struct {
	Name    string
	Brief   string
	Aliases []string
}

// Resolver maps invocation tokens to commands. It holds no per-call state.
type Resolver struct {
	registry   *Registry
	privileges PrivilegeSource
	ownerID    int64
	prefix     string
}

// NewResolver creates a resolver over registry. ownerID is the bot owner, who is
// always authorized.
func NewResolver(registry *Registry, privileges PrivilegeSource, ownerID int64, prefix string) *Resolver {
	return &Resolver{
		registry:   registry,
		privileges: privileges,
		ownerID:    ownerID,
		prefix:     prefix,
	}
}

// Prefix returns the configured command prefix
func (r *Resolver) Prefix() string {
	return r.prefix
}

// Authorized reports whether p may see and run hidden commands in the guild
func (r *Resolver) Authorized(ctx context.Context, guildID, guildOwnerID int64, p Principal) (bool, error) {
	if p.UserID != 0 && (p.UserID == r.ownerID || p.UserID == guildOwnerID) {
		return true, nil
	}
	if r.privileges == nil || len(p.RoleIDs) == 0 {
		return false, nil
	}

	ok, err := r.privileges.IsPrivileged(ctx, guildID, p.RoleIDs)
	if err != nil {
		return false, fmt.Errorf("failed to check privileged roles for user %d: %w", p.UserID, err)
	}
	return ok, nil
}

// Visible lists commands in registration order, hidden ones only when authorized
func (r *Resolver) Visible(authorized bool) []CommandInfo {
	var infos []CommandInfo
	for _, cmd := range r.registry.commands {
		if cmd.Hidden && !authorized {
			continue
		}
		infos = append(infos, CommandInfo{
			Name:    cmd.Name,
			Brief:   cmd.Brief,
			Aliases: append([]string(nil), cmd.Aliases...),
		})
	}
	return infos
}

// StripPrefix removes exactly one leading occurrence of the prefix
func (r *Resolver) StripPrefix(token string) string {
	return strings.TrimPrefix(token, r.prefix)
}

// Lookup resolves token by exact name, then exact alias. Matching is case-sensitive.
func (r *Resolver) Lookup(token string, includeHidden bool) (*Command, bool) {
	token = r.StripPrefix(token)

	cmd, ok := r.registry.byName[token]
	if !ok {
		cmd, ok = r.registry.byAlias[token]
	}
	if !ok || (cmd.Hidden && !includeHidden) {
		return nil, false
	}
	return cmd, true
}

// Suggest finds the closest visible name, falling back to the closest visible alias
func (r *Resolver) Suggest(token string, authorized bool) (string, bool) {
	token = r.StripPrefix(token)

	var names, aliases []string
	for _, cmd := range r.registry.commands {
		if cmd.Hidden && !authorized {
			continue
		}
		names = append(names, cmd.Name)
		aliases = append(aliases, cmd.Aliases...)
	}

	if match, ok := ClosestMatch(token, names); ok {
		return match, true
	}
	return ClosestMatch(token, aliases)
}
