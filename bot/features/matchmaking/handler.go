package matchmaking

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"annobot/bot/commands"
	"annobot/bot/common"
	"annobot/models"
	"annobot/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

const maxListed = 10

// postSettings are the settings that shape a listing post
type postSettings struct {
	role     models.SettingValue
	emoji    models.SettingValue
	announce models.SettingValue
}

func (f *Feature) loadPostSettings(ctx context.Context, guildID int64) (*postSettings, error) {
	ps := &postSettings{}
	err := common.WithServices(ctx, f.uowFactory, guildID, func(svc *common.Services) error {
		targets := []struct {
			kind models.SettingKind
			dst  *models.SettingValue
		}{
			{models.SettingLFGRole, &ps.role},
			{models.SettingLFGReactionEmoji, &ps.emoji},
			{models.SettingAnnounceChannel, &ps.announce},
		}
		for _, target := range targets {
			value, provisioned, err := svc.Settings.GetSetting(ctx, target.kind, guildID)
			if err != nil {
				return err
			}
			if provisioned {
				*target.dst = value
			}
		}
		return nil
	})
	return ps, err
}

// BuildListingMessage renders the post announcing a listing
func BuildListingMessage(listing *models.Listing, roleID int64) *discordgo.MessageSend {
	resp := &commands.Response{
		Title:       "🎮 Looking for group",
		Description: fmt.Sprintf("%s is looking for players.", common.UserMention(listing.HostID)),
		Color:       commands.ColorInfo,
		Fields: []commands.Field{
			{Name: "Mode", Value: listing.GameMode, Inline: true},
			{Name: "Players", Value: listing.PlayerCount, Inline: true},
		},
	}
	if listing.AdditionalInfo != "" {
		resp.Fields = append(resp.Fields, commands.Field{Name: "Info", Value: listing.AdditionalInfo})
	}
	if roleID != 0 {
		resp.Content = common.RoleMention(roleID)
	}
	return common.BuildMessage(resp)
}

func (f *Feature) handlePost(ctx context.Context, inv *commands.Invocation) (*commands.Response, error) {
	players := inv.Arg(1)
	if n, err := strconv.Atoi(players); err != nil || n < 1 || n > 99 {
		return nil, commands.UserInputErrorf("`%s` is not a valid player count. Use a number from 1 to 99.", players)
	}

	settings, err := f.loadPostSettings(ctx, inv.GuildID)
	if err != nil {
		return nil, err
	}

	channelID := inv.ChannelID
	if !settings.announce.IsUnset() {
		if id, err := settings.announce.Int64(); err == nil {
			channelID = id
		}
	}
	roleID, _ := settings.role.Int64()

	listing := &models.Listing{
		GuildID:        inv.GuildID,
		UbiName:        inv.Author.Name,
		HostID:         inv.Author.UserID,
		GameMode:       inv.Arg(0),
		PlayerCount:    players,
		AdditionalInfo: inv.Rest(2),
	}

	msg, err := f.messenger.ChannelMessageSendComplex(common.FormatID(channelID), BuildListingMessage(listing, roleID))
	if err != nil {
		return nil, fmt.Errorf("failed to post listing: %w", err)
	}
	listing.ID = common.MustParseID(msg.ID)

	if !settings.emoji.IsUnset() {
		if err := f.messenger.MessageReactionAdd(msg.ChannelID, msg.ID, settings.emoji.String()); err != nil {
			log.WithFields(log.Fields{
				"guildID": inv.GuildID,
				"emoji":   settings.emoji,
				"error":   err,
			}).Warn("Failed to add LFG reaction")
		}
	}

	err = common.WithServices(ctx, f.uowFactory, inv.GuildID, func(svc *common.Services) error {
		return svc.Listings.CreateListing(ctx, listing)
	})
	if err != nil {
		// Do not leave a post behind that lfgdelete cannot find
		if delErr := f.messenger.ChannelMessageDelete(msg.ChannelID, msg.ID); delErr != nil {
			log.WithError(delErr).Warn("Failed to remove orphaned listing post")
		}
		return nil, err
	}

	return commands.Success("Listing posted",
		fmt.Sprintf("Listing `%d` is up in %s. Use `%slfgdelete %d` to remove it.",
			listing.ID, common.ChannelMention(channelID), inv.Prefix, listing.ID)), nil
}

func (f *Feature) handleList(ctx context.Context, inv *commands.Invocation) (*commands.Response, error) {
	var listings []*models.Listing
	err := common.WithServices(ctx, f.uowFactory, inv.GuildID, func(svc *common.Services) error {
		var err error
		listings, err = svc.Listings.ListListings(ctx, inv.GuildID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if len(listings) == 0 {
		return commands.Info("🎮 Open listings",
			fmt.Sprintf("There are no open listings. Use `%slfg <mode> <players>` to post one.", inv.Prefix)), nil
	}

	resp := commands.Info("🎮 Open listings", "")
	for i, listing := range listings {
		if i == maxListed {
			resp.Description = fmt.Sprintf("Showing the %d newest of %d listings.", maxListed, len(listings))
			break
		}

		value := fmt.Sprintf("%s players · hosted by %s · %s",
			listing.PlayerCount, common.UserMention(listing.HostID),
			common.FormatDiscordTimestamp(listing.CreatedAt, "R"))
		if listing.AdditionalInfo != "" {
			value += "\n" + listing.AdditionalInfo
		}
		resp.Fields = append(resp.Fields, commands.Field{
			Name:  fmt.Sprintf("`%d` · %s", listing.ID, listing.GameMode),
			Value: value,
		})
	}
	return resp, nil
}

func (f *Feature) handleDelete(ctx context.Context, inv *commands.Invocation) (*commands.Response, error) {
	listingID, err := strconv.ParseInt(strings.Trim(inv.Arg(0), "`"), 10, 64)
	if err != nil {
		return nil, commands.UserInputErrorf("`%s` is not a listing ID. Use `%slfglist` to find it.", inv.Arg(0), inv.Prefix)
	}

	err = common.WithServices(ctx, f.uowFactory, inv.GuildID, func(svc *common.Services) error {
		return svc.Listings.DeleteListing(ctx, inv.GuildID, listingID, inv.Author.UserID, inv.Authorized)
	})
	switch {
	case errors.Is(err, service.ErrListingNotFound):
		return nil, commands.UserInputErrorf("There is no listing `%d`. Use `%slfglist` to find it.", listingID, inv.Prefix)
	case errors.Is(err, service.ErrNotListingHost):
		return nil, commands.UnauthorizedError("lfgdelete")
	case err != nil:
		return nil, err
	}

	return commands.Success("Listing removed", fmt.Sprintf("Listing `%d` was removed.", listingID)), nil
}
