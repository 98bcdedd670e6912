package keepontop

import (
	"sync"

	"annobot/bot/commands"
	"annobot/bot/common"
	"annobot/service"
)

// Feature keeps one message pinned to the bottom of a channel by re-posting it
// after every new message
type Feature struct {
	uowFactory service.UnitOfWorkFactory
	messenger  common.Messenger

	// Reposts are serialized per guild so bursts of messages do not leave
	// duplicates behind
	locksMu sync.Mutex
	locks   map[int64]*sync.Mutex
}

// NewFeature creates a new keep-on-top feature instance
func NewFeature(uowFactory service.UnitOfWorkFactory, messenger common.Messenger) *Feature {
	return &Feature{
		uowFactory: uowFactory,
		messenger:  messenger,
		locks:      make(map[int64]*sync.Mutex),
	}
}

// guildLock returns the repost lock of a guild
func (f *Feature) guildLock(guildID int64) *sync.Mutex {
	f.locksMu.Lock()
	defer f.locksMu.Unlock()

	lock, ok := f.locks[guildID]
	if !ok {
		lock = &sync.Mutex{}
		f.locks[guildID] = lock
	}
	return lock
}

func (f *Feature) Commands() []*commands.Command {
	return []*commands.Command{
		{
			Name:        "keepontop",
			Brief:       "Keep a message at the bottom of this channel",
			Description: "Keeps the content below every new message in this channel. Replaces any previous keep-on-top message.",
			Usage:       "<content...>",
			Hidden:      true,
			MinArgs:     1,
			Handler:     f.handleEnable,
		},
		{
			Name:        "keepontopoff",
			Brief:       "Stop keeping a message on top",
			Description: "Removes the keep-on-top message and stops re-posting it.",
			Hidden:      true,
			Handler:     f.handleDisable,
		},
	}
}
