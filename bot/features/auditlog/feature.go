package auditlog

import (
	"context"
	"fmt"

	"annobot/bot/commands"
	"annobot/bot/common"
	"annobot/events"
	"annobot/models"
	"annobot/service"

	log "github.com/sirupsen/logrus"
)

// Feature posts configuration changes to each guild's log channel
type Feature struct {
	uowFactory service.UnitOfWorkFactory
	messenger  common.Messenger
}

// NewFeature creates a new audit log feature instance
func NewFeature(uowFactory service.UnitOfWorkFactory, messenger common.Messenger) *Feature {
	return &Feature{
		uowFactory: uowFactory,
		messenger:  messenger,
	}
}

// SubscribeTo registers the audit handlers on the bus
func (f *Feature) SubscribeTo(bus *events.Bus) {
	for _, eventType := range []events.EventType{
		events.EventTypeSettingChanged,
		events.EventTypePrivilegeGranted,
		events.EventTypePrivilegeRevoked,
		events.EventTypeTenantErased,
	} {
		bus.Subscribe(eventType, f.handle)
	}
}

func (f *Feature) handle(ctx context.Context, event events.Event) {
	if err := f.Post(ctx, event); err != nil {
		log.WithFields(log.Fields{
			"eventType": event.Type(),
			"guildID":   event.Guild(),
			"error":     err,
		}).Warn("Failed to post audit log entry")
	}
}

// Post writes one entry for event. Events without an entry, or guilds without a
// log channel, are skipped.
func (f *Feature) Post(ctx context.Context, event events.Event) error {
	resp := Describe(event)
	if resp == nil {
		return nil
	}

	channelID, err := f.logChannel(ctx, event)
	if err != nil || channelID == 0 {
		return err
	}

	_, err = common.SendResponse(f.messenger, common.FormatID(channelID), resp)
	return err
}

// logChannel resolves the destination without provisioning the guild
func (f *Feature) logChannel(ctx context.Context, event events.Event) (int64, error) {
	if erased, ok := event.(events.TenantErasedEvent); ok {
		return erased.LogChannelID, nil
	}

	var channelID int64
	err := common.WithServices(ctx, f.uowFactory, event.Guild(), func(svc *common.Services) error {
		settings, err := svc.Settings.ListSettings(ctx, event.Guild())
		if err != nil {
			return err
		}
		for _, setting := range settings {
			if setting.Kind == models.SettingLogChannel && !setting.Value.IsUnset() {
				channelID, _ = setting.Value.Int64()
			}
		}
		return nil
	})
	return channelID, err
}

// Describe renders the audit entry for event, or nil when the event is not logged
func Describe(event events.Event) *commands.Response {
	switch e := event.(type) {
	case events.SettingChangedEvent:
		// Rewritten on every repost, so logging it would flood the channel
		if e.Kind == string(models.SettingKeepOnTopMessage) {
			return nil
		}
		return &commands.Response{
			Title:       "⚙️ Setting changed",
			Description: fmt.Sprintf("`%s` was set to `%s`.", e.Kind, e.Value),
			Color:       commands.ColorMisc,
		}

	case events.PrivilegeGrantedEvent:
		return &commands.Response{
			Title:       "🔑 Privilege granted",
			Description: fmt.Sprintf("%s can now use hidden commands.", common.RoleMention(e.RoleID)),
			Color:       commands.ColorMisc,
		}

	case events.PrivilegeRevokedEvent:
		return &commands.Response{
			Title:       "🔑 Privilege revoked",
			Description: fmt.Sprintf("One grant of %s was removed.", common.RoleMention(e.RoleID)),
			Color:       commands.ColorMisc,
		}

	case events.TenantErasedEvent:
		return &commands.Response{
			Title:       "🗑️ Server data erased",
			Description: fmt.Sprintf("Settings, privileged roles, tags and listings were removed (`%s`).", e.Reason),
			Color:       commands.ColorWarn,
		}
	}
	return nil
}
