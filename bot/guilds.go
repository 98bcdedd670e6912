package bot

import (
	"context"
	"fmt"

	"annobot/bot/commands"
	"annobot/bot/common"
	"annobot/models"
	"annobot/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (b *Bot) handleReady(s *discordgo.Session, r *discordgo.Ready) {
	log.WithFields(log.Fields{
		"user":   r.User.Username,
		"guilds": len(r.Guilds),
	}).Info("Bot is ready")

	if err := s.UpdateGameStatus(0, b.config.Prefix+"help"); err != nil {
		log.WithError(err).Warn("Failed to update status")
	}
}

// handleGuildCreate provisions settings for every guild the bot is in and greets
// guilds it has never seen
func (b *Bot) handleGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	if g.Unavailable {
		return
	}

	ctx := context.Background()
	guildID := common.MustParseID(g.ID)

	isNew, err := provisionGuild(ctx, b.uowFactory, guildID)
	if err != nil {
		log.WithFields(log.Fields{
			"guildID": g.ID,
			"error":   err,
		}).Error("Failed to provision guild")
		return
	}
	if !isNew || g.SystemChannelID == "" {
		return
	}

	if _, err := common.SendResponse(s, g.SystemChannelID, Greeting(b.config.Prefix)); err != nil {
		log.WithFields(log.Fields{
			"guildID":   g.ID,
			"channelID": g.SystemChannelID,
			"error":     err,
		}).Warn("Failed to send greeting")
	}
}

// handleGuildDelete erases a guild's data when the bot is removed. Outages also
// produce GuildDelete, but with Unavailable set.
func (b *Bot) handleGuildDelete(s *discordgo.Session, g *discordgo.GuildDelete) {
	if g.Guild == nil || g.Unavailable {
		return
	}

	ctx := context.Background()
	if err := eraseGuild(ctx, b.uowFactory, common.MustParseID(g.ID)); err != nil {
		log.WithFields(log.Fields{
			"guildID": g.ID,
			"error":   err,
		}).Error("Failed to erase guild data")
	}
}

// provisionGuild materializes default settings. isNew is true when the guild had
// no stored settings before.
func provisionGuild(ctx context.Context, uowFactory service.UnitOfWorkFactory, guildID int64) (isNew bool, err error) {
	err = common.WithServices(ctx, uowFactory, guildID, func(svc *common.Services) error {
		_, provisioned, err := svc.Settings.GetSetting(ctx, models.SettingCommandsChannel, guildID)
		isNew = !provisioned
		return err
	})
	return isNew, err
}

func eraseGuild(ctx context.Context, uowFactory service.UnitOfWorkFactory, guildID int64) error {
	return common.WithServices(ctx, uowFactory, guildID, func(svc *common.Services) error {
		return svc.Tenant.Erase(ctx, guildID, service.EraseReasonGuildRemoved)
	})
}

// Greeting is posted to the system channel of newly joined guilds
func Greeting(prefix string) *commands.Response {
	return &commands.Response{
		Title:       "Beep Boop!",
		Description: fmt.Sprintf("I have been summoned to this server. Use `%shelp` to see what I can do!", prefix),
		Color:       commands.ColorGreeting,
	}
}
