package bot

import (
	"context"
	"strings"

	"annobot/bot/commands"
	"annobot/bot/common"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// handleMessageCreate dispatches prefixed guild messages and keeps the
// keep-on-top message below everything else
func (b *Bot) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return
	}

	ctx := context.Background()
	var ownerID int64
	if strings.HasPrefix(m.Content, b.config.Prefix) {
		ownerID = b.guildOwnerID(s, m.GuildID)
	}
	inv := newInvocation(m, ownerID)

	if resp, handled := b.dispatcher.Dispatch(ctx, inv); handled && resp != nil {
		if _, err := common.SendResponse(s, m.ChannelID, resp); err != nil {
			log.WithFields(log.Fields{
				"guildID":   m.GuildID,
				"channelID": m.ChannelID,
				"error":     err,
			}).Error("Failed to send command response")
		}
	}

	// Runs after the reply so the kept message ends up below it. A fresh
	// keepontop binding gets its first post here.
	if err := b.keepOnTop.OnMessage(ctx, inv.GuildID, inv.ChannelID); err != nil {
		log.WithFields(log.Fields{
			"guildID":   m.GuildID,
			"channelID": m.ChannelID,
			"error":     err,
		}).Warn("Failed to refresh keep-on-top message")
	}
}

// newInvocation maps a Discord message onto the transport-neutral invocation
func newInvocation(m *discordgo.MessageCreate, guildOwnerID int64) *commands.Invocation {
	inv := &commands.Invocation{
		GuildID:      common.MustParseID(m.GuildID),
		GuildOwnerID: guildOwnerID,
		ChannelID:    common.MustParseID(m.ChannelID),
		MessageID:    common.MustParseID(m.ID),
		Content:      m.Content,
		Author: commands.Principal{
			UserID: common.MustParseID(m.Author.ID),
			Name:   displayName(m.Author, m.Member),
		},
	}

	if m.Member != nil {
		for _, role := range m.Member.Roles {
			if id := common.MustParseID(role); id != 0 {
				inv.Author.RoleIDs = append(inv.Author.RoleIDs, id)
			}
		}
	}
	return inv
}

func displayName(user *discordgo.User, member *discordgo.Member) string {
	switch {
	case member != nil && member.Nick != "":
		return member.Nick
	case user.GlobalName != "":
		return user.GlobalName
	default:
		return user.Username
	}
}

// guildOwnerID reads the owner from the state cache, falling back to the API
func (b *Bot) guildOwnerID(s *discordgo.Session, guildID string) int64 {
	if guild, err := s.State.Guild(guildID); err == nil {
		return common.MustParseID(guild.OwnerID)
	}

	guild, err := s.Guild(guildID)
	if err != nil {
		log.WithFields(log.Fields{
			"guildID": guildID,
			"error":   err,
		}).Warn("Failed to look up guild owner")
		return 0
	}
	return common.MustParseID(guild.OwnerID)
}
