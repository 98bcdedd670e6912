package commands

import (
	"context"
	"errors"
	"time"
)

const (
	testOwnerID      = int64(1)
	testGuildOwnerID = int64(2)
	testModRoleID    = int64(500)
	testGuildID      = int64(42)
)

func okHandler(title string) HandlerFunc {
	return func(ctx context.Context, inv *Invocation) (*Response, error) {
		return Info(title, inv.Rest(0)), nil
	}
}

// newTestRegistry mirrors the shape of the real command table
func newTestRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(
		&Command{Name: "ping", Brief: "Pong!", Handler: okHandler("ping")},
		&Command{Name: "tag", Aliases: []string{"t"}, Brief: "Shows a tag.", Usage: "<name>", MinArgs: 1, Handler: okHandler("tag")},
		&Command{Name: "version", Aliases: []string{"ver"}, Brief: "Shows the version.", Handler: okHandler("version")},
		&Command{Name: "tagcreate", Brief: "Creates a tag.", Usage: "<name> <content...>", MinArgs: 2, Hidden: true, Handler: okHandler("tagcreate")},
		&Command{Name: "lfg", Brief: "Looking for group.", Cooldown: 30 * time.Second, Handler: okHandler("lfg")},
	)
	return r
}

func staticPrivileges(roleIDs ...int64) PrivilegeSource {
	return PrivilegeSourceFunc(func(ctx context.Context, guildID int64, memberRoles []int64) (bool, error) {
		for _, granted := range roleIDs {
			for _, role := range memberRoles {
				if granted == role {
					return true, nil
				}
			}
		}
		return false, nil
	})
}

func failingPrivileges() PrivilegeSource {
	return PrivilegeSourceFunc(func(ctx context.Context, guildID int64, memberRoles []int64) (bool, error) {
		return false, errors.New("connection reset")
	})
}

func newTestResolver(privileges PrivilegeSource) *Resolver {
	registry := newTestRegistry()
	resolver := NewResolver(registry, privileges, testOwnerID, "!")
	registry.MustRegister(NewHelpCommand(resolver))
	return resolver
}

func member(userID int64, roles ...int64) Principal {
	return Principal{UserID: userID, Name: "alice", RoleIDs: roles}
}

func newInvocation(content string, author Principal) *Invocation {
	return &Invocation{
		GuildID:      testGuildID,
		GuildOwnerID: testGuildOwnerID,
		ChannelID:    10,
		MessageID:    11,
		Author:       author,
		Content:      content,
	}
}
