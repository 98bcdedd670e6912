package common

import (
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/mock"
)

// MockMessenger is a mock implementation of Messenger. Request options are not recorded.
type MockMessenger struct {
	mock.Mock
}

func (m *MockMessenger) ChannelMessageSend(channelID string, content string, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	args := m.Called(channelID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*discordgo.Message), args.Error(1)
}

func (m *MockMessenger) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	args := m.Called(channelID, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*discordgo.Message), args.Error(1)
}

func (m *MockMessenger) ChannelMessageDelete(channelID, messageID string, _ ...discordgo.RequestOption) error {
	args := m.Called(channelID, messageID)
	return args.Error(0)
}

func (m *MockMessenger) MessageReactionAdd(channelID, messageID, emojiID string, _ ...discordgo.RequestOption) error {
	args := m.Called(channelID, messageID, emojiID)
	return args.Error(0)
}
