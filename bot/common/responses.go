package common

import (
	"annobot/bot/commands"

	"github.com/bwmarrin/discordgo"
)

// Messenger is the part of *discordgo.Session the features use to talk to channels
type Messenger interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error
	MessageReactionAdd(channelID, messageID, emojiID string, options ...discordgo.RequestOption) error
}

// BuildEmbed converts a command response into a Discord embed
func BuildEmbed(resp *commands.Response) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       resp.Title,
		Description: resp.Description,
		Color:       resp.Color,
	}

	if resp.Footer != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: resp.Footer}
	}

	for _, field := range resp.Fields {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   field.Name,
			Value:  field.Value,
			Inline: field.Inline,
		})
	}

	return embed
}

// BuildMessage converts a command response into a message. Responses without a
// title or description are sent as plain content.
func BuildMessage(resp *commands.Response) *discordgo.MessageSend {
	msg := &discordgo.MessageSend{Content: resp.Content}
	if resp.Title != "" || resp.Description != "" || len(resp.Fields) > 0 {
		msg.Embeds = []*discordgo.MessageEmbed{BuildEmbed(resp)}
	}
	return msg
}

// SendResponse posts resp to the channel
func SendResponse(m Messenger, channelID string, resp *commands.Response) (*discordgo.Message, error) {
	return m.ChannelMessageSendComplex(channelID, BuildMessage(resp))
}
