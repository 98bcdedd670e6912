package admin

import (
	"context"
	"fmt"
	"strings"

	"annobot/bot/commands"
	"annobot/bot/common"
	"annobot/models"
	"annobot/service"

	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleSettings(ctx context.Context, inv *commands.Invocation) (*commands.Response, error) {
	var settings []*models.Setting
	err := common.WithServices(ctx, f.uowFactory, inv.GuildID, func(svc *common.Services) error {
		var err error
		settings, err = svc.Settings.ListSettings(ctx, inv.GuildID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if len(settings) == 0 {
		return commands.Info("⚙️ Server settings", "No settings are stored for this server yet."), nil
	}

	resp := commands.Info("⚙️ Server settings",
		fmt.Sprintf("Use `%ssetsetting <KIND> <value>` to change a setting.", inv.Prefix))
	for _, setting := range settings {
		resp.Fields = append(resp.Fields, commands.Field{
			Name:   string(setting.Kind),
			Value:  FormatValue(setting.Kind, setting.Value),
			Inline: true,
		})
	}
	return resp, nil
}

func (f *Feature) handleSetSetting(ctx context.Context, inv *commands.Invocation) (*commands.Response, error) {
	kind := models.SettingKind(strings.ToUpper(inv.Arg(0)))
	if !kind.IsValid() {
		return nil, commands.UserInputErrorf("`%s` is not a setting. Valid settings: %s", inv.Arg(0), validKinds())
	}

	value, err := ParseValue(kind, inv.Arg(1))
	if err != nil {
		return nil, commands.UserInputErrorf("`%s` is not a valid value for `%s`. Use a mention, an ID or `0` to unset.", inv.Arg(1), kind)
	}

	err = common.WithServices(ctx, f.uowFactory, inv.GuildID, func(svc *common.Services) error {
		return svc.Settings.SetSetting(ctx, kind, value, inv.GuildID)
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"guildID": inv.GuildID,
		"userID":  inv.Author.UserID,
		"kind":    kind,
		"value":   value,
	}).Info("Setting updated by command")

	return commands.Success("Setting updated",
		fmt.Sprintf("`%s` is now %s.", kind, FormatValue(kind, value))), nil
}

func parseRole(raw string) (int64, error) {
	roleID, err := common.ParseSnowflake(raw)
	if err != nil || roleID == 0 {
		return 0, commands.UserInputError("Please mention a role or give its ID.")
	}
	return roleID, nil
}

func (f *Feature) handleAddPrivilege(ctx context.Context, inv *commands.Invocation) (*commands.Response, error) {
	roleID, err := parseRole(inv.Arg(0))
	if err != nil {
		return nil, err
	}

	err = common.WithServices(ctx, f.uowFactory, inv.GuildID, func(svc *common.Services) error {
		return svc.Settings.GrantPrivilege(ctx, roleID, inv.GuildID)
	})
	if err != nil {
		return nil, err
	}

	return commands.Success("Privilege granted",
		fmt.Sprintf("%s can now use hidden commands.", common.RoleMention(roleID))), nil
}

func (f *Feature) handleRemovePrivilege(ctx context.Context, inv *commands.Invocation) (*commands.Response, error) {
	roleID, err := parseRole(inv.Arg(0))
	if err != nil {
		return nil, err
	}

	var removed bool
	err = common.WithServices(ctx, f.uowFactory, inv.GuildID, func(svc *common.Services) error {
		var err error
		removed, err = svc.Settings.RevokePrivilege(ctx, roleID, inv.GuildID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if !removed {
		return nil, commands.UserInputErrorf("%s is not a privileged role.", common.RoleMention(roleID))
	}

	return commands.Success("Privilege revoked",
		fmt.Sprintf("Removed one grant of %s.", common.RoleMention(roleID))), nil
}

func (f *Feature) handleListPrivileges(ctx context.Context, inv *commands.Invocation) (*commands.Response, error) {
	var roleIDs []int64
	err := common.WithServices(ctx, f.uowFactory, inv.GuildID, func(svc *common.Services) error {
		var err error
		roleIDs, err = svc.Settings.ListPrivileges(ctx, inv.GuildID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if len(roleIDs) == 0 {
		return commands.Info("🔑 Privileged roles",
			"No privileged roles. Only the server owner can use hidden commands."), nil
	}

	lines := make([]string, len(roleIDs))
	for i, roleID := range roleIDs {
		lines[i] = "• " + common.RoleMention(roleID)
	}
	return commands.Info("🔑 Privileged roles", strings.Join(lines, "\n")), nil
}

func (f *Feature) handleReset(ctx context.Context, inv *commands.Invocation) (*commands.Response, error) {
	err := common.WithServices(ctx, f.uowFactory, inv.GuildID, func(svc *common.Services) error {
		return svc.Tenant.Erase(ctx, inv.GuildID, service.EraseReasonReset)
	})
	if err != nil {
		return nil, err
	}

	return commands.Success("Server data reset",
		"All settings, privileged roles, tags and listings were removed. Defaults are restored on next use."), nil
}
