package service

import (
	"context"
	"fmt"

	"annobot/events"
	"annobot/models"

	log "github.com/sirupsen/logrus"
)

// Erase reasons
const (
	EraseReasonGuildRemoved = "guild_removed"
	EraseReasonReset        = "reset"
)

// tenantService implements the TenantService interface
type tenantService struct {
	settings SettingsService
	texts    TextService
	listings ListingService
	eventPub EventPublisher
}

// NewTenantService creates a tenant service over the per-store services
func NewTenantService(settings SettingsService, texts TextService, listings ListingService, eventPub EventPublisher) TenantService {
	return &tenantService{
		settings: settings,
		texts:    texts,
		listings: listings,
		eventPub: eventPub,
	}
}

// Erase removes every store's rows for the guild
func (s *tenantService) Erase(ctx context.Context, guildID int64, reason string) error {
	// Captured first so the audit log can still report the erasure
	logChannel, err := s.logChannel(ctx, guildID)
	if err != nil {
		return err
	}

	if err := s.settings.EraseTenant(ctx, guildID); err != nil {
		return err
	}
	if err := s.texts.EraseTenant(ctx, guildID); err != nil {
		return err
	}
	if err := s.listings.EraseTenant(ctx, guildID); err != nil {
		return err
	}

	s.eventPub.Publish(events.TenantErasedEvent{
		GuildID:      guildID,
		Reason:       reason,
		LogChannelID: logChannel,
	})

	log.WithFields(log.Fields{
		"guildID": guildID,
		"reason":  reason,
	}).Info("Guild data erased")
	return nil
}

// logChannel reads LOGCHANNEL without provisioning an unknown guild
func (s *tenantService) logChannel(ctx context.Context, guildID int64) (int64, error) {
	settings, err := s.settings.ListSettings(ctx, guildID)
	if err != nil {
		return 0, fmt.Errorf("failed to read settings for guild %d: %w", guildID, err)
	}

	for _, setting := range settings {
		if setting.Kind != models.SettingLogChannel || setting.Value.IsUnset() {
			continue
		}
		id, _ := setting.Value.Int64()
		return id, nil
	}
	return 0, nil
}
