package bot

import (
	"context"

	"annobot/bot/commands"
	"annobot/bot/common"
	"annobot/service"
)

// NewPrivilegeSource answers privilege checks from the guild's stored grants
func NewPrivilegeSource(uowFactory service.UnitOfWorkFactory) commands.PrivilegeSource {
	return commands.PrivilegeSourceFunc(func(ctx context.Context, guildID int64, roleIDs []int64) (bool, error) {
		var privileged bool
		err := common.WithServices(ctx, uowFactory, guildID, func(svc *common.Services) error {
			var err error
			privileged, err = svc.Settings.IsPrivileged(ctx, guildID, roleIDs)
			return err
		})
		return privileged, err
	})
}
