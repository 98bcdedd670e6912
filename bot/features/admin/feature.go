package admin

import (
	"annobot/bot/commands"
	"annobot/service"
)

// Feature handles server configuration and privileged role management
type Feature struct {
	uowFactory service.UnitOfWorkFactory
}

// NewFeature creates a new admin feature instance
func NewFeature(uowFactory service.UnitOfWorkFactory) *Feature {
	return &Feature{uowFactory: uowFactory}
}

// Commands returns the admin command table. Every entry is hidden.
func (f *Feature) Commands() []*commands.Command {
	return []*commands.Command{
		{
			Name:        "settings",
			Brief:       "Show this server's settings",
			Description: "Lists every stored setting with its current value.",
			Hidden:      true,
			Handler:     f.handleSettings,
		},
		{
			Name:        "setsetting",
			Brief:       "Change a server setting",
			Description: "Sets a setting to a channel, role, message ID or emoji. Use `0` to unset it.",
			Usage:       "<KIND> <value>",
			Hidden:      true,
			MinArgs:     2,
			Handler:     f.handleSetSetting,
		},
		{
			Name:        "addpriv",
			Brief:       "Grant a role access to hidden commands",
			Description: "Members holding a privileged role can use hidden commands.",
			Usage:       "<role>",
			Hidden:      true,
			MinArgs:     1,
			Handler:     f.handleAddPrivilege,
		},
		{
			Name:        "delpriv",
			Brief:       "Revoke a role's access to hidden commands",
			Description: "Removes one grant of the role. A role granted twice needs two revocations.",
			Usage:       "<role>",
			Hidden:      true,
			MinArgs:     1,
			Handler:     f.handleRemovePrivilege,
		},
		{
			Name:        "privs",
			Brief:       "List privileged roles",
			Description: "Shows every role with access to hidden commands.",
			Hidden:      true,
			Handler:     f.handleListPrivileges,
		},
		{
			Name:        "resetsettings",
			Brief:       "Erase all stored data for this server",
			Description: "Removes settings, privileged roles, tags and listings. Defaults are restored on next use.",
			Hidden:      true,
			Handler:     f.handleReset,
		},
	}
}
