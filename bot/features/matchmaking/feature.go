package matchmaking

import (
	"time"

	"annobot/bot/commands"
	"annobot/bot/common"
	"annobot/service"
)

// ListingCooldown limits how often one member can post a listing
const ListingCooldown = 30 * time.Second

// Feature posts and tracks looking-for-group listings
type Feature struct {
	uowFactory service.UnitOfWorkFactory
	messenger  common.Messenger
}

// NewFeature creates a new matchmaking feature instance
func NewFeature(uowFactory service.UnitOfWorkFactory, messenger common.Messenger) *Feature {
	return &Feature{
		uowFactory: uowFactory,
		messenger:  messenger,
	}
}

func (f *Feature) Commands() []*commands.Command {
	return []*commands.Command{
		{
			Name:        "lfg",
			Brief:       "Look for players",
			Description: "Posts a listing, pinging the LFG role when one is configured.",
			Usage:       "<mode> <players> [info...]",
			Cooldown:    ListingCooldown,
			MinArgs:     2,
			Handler:     f.handlePost,
		},
		{
			Name:        "lfglist",
			Brief:       "Show open listings",
			Description: "Lists this server's open listings, newest first.",
			Handler:     f.handleList,
		},
		{
			Name:        "lfgdelete",
			Brief:       "Remove a listing",
			Description: "Removes a listing. Only its host or a privileged member can remove it.",
			Usage:       "<id>",
			MinArgs:     1,
			Handler:     f.handleDelete,
		},
	}
}
