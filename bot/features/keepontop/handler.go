package keepontop

import (
	"context"
	"fmt"

	"annobot/bot/commands"
	"annobot/bot/common"
	"annobot/models"

	log "github.com/sirupsen/logrus"
)

// binding is the stored keep-on-top state of a guild
type binding struct {
	channelID int64
	messageID int64
	content   string
}

// loadBinding reads the guild's binding. nil means nothing is kept on top.
func loadBinding(ctx context.Context, svc *common.Services, guildID int64) (*binding, error) {
	channel, provisioned, err := svc.Settings.GetSetting(ctx, models.SettingKeepOnTopChannel, guildID)
	if err != nil || !provisioned || channel.IsUnset() {
		return nil, err
	}
	channelID, err := channel.Int64()
	if err != nil {
		return nil, nil
	}

	message, _, err := svc.Settings.GetSetting(ctx, models.SettingKeepOnTopMessage, guildID)
	if err != nil {
		return nil, err
	}
	// A malformed ID only means there is no previous post to remove
	messageID, _ := message.Int64()

	content, found, err := svc.Texts.GetText(ctx, models.TextKeepOnTopContent, guildID)
	if err != nil || !found {
		return nil, err
	}

	return &binding{channelID: channelID, messageID: messageID, content: content}, nil
}

func (f *Feature) deletePost(channelID, messageID int64) {
	if messageID == 0 {
		return
	}
	if err := f.messenger.ChannelMessageDelete(common.FormatID(channelID), common.FormatID(messageID)); err != nil {
		log.WithFields(log.Fields{
			"channelID": channelID,
			"messageID": messageID,
			"error":     err,
		}).Warn("Failed to delete previous keep-on-top message")
	}
}

func (f *Feature) saveMessageID(ctx context.Context, guildID, messageID int64) error {
	return common.WithServices(ctx, f.uowFactory, guildID, func(svc *common.Services) error {
		return svc.Settings.SetSetting(ctx, models.SettingKeepOnTopMessage, models.IntValue(messageID), guildID)
	})
}

// handleEnable stores the binding. The content is posted by OnMessage, which runs
// for the invoking message right after dispatch.
func (f *Feature) handleEnable(ctx context.Context, inv *commands.Invocation) (*commands.Response, error) {
	content := inv.Rest(0)

	lock := f.guildLock(inv.GuildID)
	lock.Lock()
	defer lock.Unlock()

	var previous *binding
	err := common.WithServices(ctx, f.uowFactory, inv.GuildID, func(svc *common.Services) error {
		var err error
		previous, err = loadBinding(ctx, svc, inv.GuildID)
		if err != nil {
			return err
		}

		if err := svc.Texts.SetText(ctx, models.TextKeepOnTopContent, content, inv.GuildID); err != nil {
			return err
		}
		if err := svc.Settings.SetSetting(ctx, models.SettingKeepOnTopChannel, models.IntValue(inv.ChannelID), inv.GuildID); err != nil {
			return err
		}
		if previous == nil {
			return nil
		}
		return svc.Settings.SetSetting(ctx, models.SettingKeepOnTopMessage, models.DefaultSettingValue, inv.GuildID)
	})
	if err != nil {
		return nil, err
	}

	if previous != nil {
		f.deletePost(previous.channelID, previous.messageID)
	}

	log.WithFields(log.Fields{
		"guildID":   inv.GuildID,
		"channelID": inv.ChannelID,
		"userID":    inv.Author.UserID,
	}).Info("Keep-on-top message enabled")

	// The kept message is the confirmation; a reply would land below it
	return nil, nil
}

func (f *Feature) handleDisable(ctx context.Context, inv *commands.Invocation) (*commands.Response, error) {
	lock := f.guildLock(inv.GuildID)
	lock.Lock()
	defer lock.Unlock()

	var previous *binding
	err := common.WithServices(ctx, f.uowFactory, inv.GuildID, func(svc *common.Services) error {
		var err error
		previous, err = loadBinding(ctx, svc, inv.GuildID)
		if err != nil || previous == nil {
			return err
		}

		if err := svc.Settings.SetSetting(ctx, models.SettingKeepOnTopChannel, models.DefaultSettingValue, inv.GuildID); err != nil {
			return err
		}
		if err := svc.Settings.SetSetting(ctx, models.SettingKeepOnTopMessage, models.DefaultSettingValue, inv.GuildID); err != nil {
			return err
		}
		_, err = svc.Texts.DeleteText(ctx, models.TextKeepOnTopContent, inv.GuildID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if previous == nil {
		return nil, commands.UserInputError("No message is being kept on top.")
	}

	f.deletePost(previous.channelID, previous.messageID)
	return commands.Success("Keep-on-top disabled",
		fmt.Sprintf("Stopped keeping a message on top of %s.", common.ChannelMention(previous.channelID))), nil
}

// OnMessage re-posts the kept message when a new message arrives in its channel
func (f *Feature) OnMessage(ctx context.Context, guildID, channelID int64) error {
	lock := f.guildLock(guildID)
	lock.Lock()
	defer lock.Unlock()

	var current *binding
	err := common.WithServices(ctx, f.uowFactory, guildID, func(svc *common.Services) error {
		var err error
		current, err = loadBinding(ctx, svc, guildID)
		return err
	})
	if err != nil {
		return err
	}
	if current == nil || current.channelID != channelID {
		return nil
	}

	f.deletePost(current.channelID, current.messageID)

	msg, err := f.messenger.ChannelMessageSend(common.FormatID(channelID), current.content)
	if err != nil {
		return fmt.Errorf("failed to re-post keep-on-top message: %w", err)
	}
	return f.saveMessageID(ctx, guildID, common.MustParseID(msg.ID))
}
