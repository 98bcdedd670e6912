package service

import (
	"context"
	"errors"
	"fmt"

	"annobot/events"
	"annobot/models"

	log "github.com/sirupsen/logrus"
)

// ErrUnknownSettingKind is returned when a caller passes a kind outside models.SettingKinds.
// It indicates a programming error, never bad user input.
var ErrUnknownSettingKind = errors.New("unknown setting kind")

// settingsService implements the SettingsService interface
type settingsService struct {
	settingsRepo SettingsRepository
	roleRepo     PrivilegedRoleRepository
	eventPub     EventPublisher
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo SettingsRepository, roleRepo PrivilegedRoleRepository, eventPub EventPublisher) SettingsService {
	return &settingsService{
		settingsRepo: settingsRepo,
		roleRepo:     roleRepo,
		eventPub:     eventPub,
	}
}

func (s *settingsService) checkKind(kind models.SettingKind, guildID int64) error {
	if kind.IsValid() {
		return nil
	}

	log.WithFields(log.Fields{
		"severity": "critical",
		"kind":     kind,
		"guildID":  guildID,
	}).Error("Unrecognized setting kind requested")
	return fmt.Errorf("%w: %q", ErrUnknownSettingKind, kind)
}

// GetSetting returns the stored value, provisioning an unknown guild on the way
func (s *settingsService) GetSetting(ctx context.Context, kind models.SettingKind, guildID int64) (models.SettingValue, bool, error) {
	if err := s.checkKind(kind, guildID); err != nil {
		return "", false, err
	}

	known, err := s.settingsRepo.HasGuild(ctx, guildID)
	if err != nil {
		return "", false, fmt.Errorf("failed to check guild %d: %w", guildID, err)
	}

	if !known {
		if err := s.provision(ctx, guildID, models.SettingKinds); err != nil {
			return "", false, err
		}
		return "", false, nil
	}

	setting, err := s.settingsRepo.Get(ctx, guildID, kind)
	if err != nil {
		return "", false, fmt.Errorf("failed to get setting %s for guild %d: %w", kind, guildID, err)
	}

	if setting == nil {
		// Kind added after the guild was provisioned
		if _, err := s.settingsRepo.EnsureDefaults(ctx, guildID, []models.SettingKind{kind}); err != nil {
			return "", false, fmt.Errorf("failed to backfill setting %s for guild %d: %w", kind, guildID, err)
		}
		log.WithFields(log.Fields{
			"guildID": guildID,
			"kind":    kind,
		}).Info("Backfilled missing setting row")
		return models.DefaultSettingValue, true, nil
	}

	return setting.Value, true, nil
}

// SetSetting writes the value. An unknown guild gets defaults for every other kind first.
func (s *settingsService) SetSetting(ctx context.Context, kind models.SettingKind, value models.SettingValue, guildID int64) error {
	if err := s.checkKind(kind, guildID); err != nil {
		return err
	}

	known, err := s.settingsRepo.HasGuild(ctx, guildID)
	if err != nil {
		return fmt.Errorf("failed to check guild %d: %w", guildID, err)
	}

	if !known {
		others := make([]models.SettingKind, 0, len(models.SettingKinds)-1)
		for _, k := range models.SettingKinds {
			if k != kind {
				others = append(others, k)
			}
		}
		if err := s.provision(ctx, guildID, others); err != nil {
			return err
		}
	}

	if err := s.settingsRepo.Upsert(ctx, guildID, kind, value); err != nil {
		return fmt.Errorf("failed to set %s for guild %d: %w", kind, guildID, err)
	}

	log.WithFields(log.Fields{
		"guildID": guildID,
		"kind":    kind,
		"value":   value,
	}).Info("Setting updated")

	s.eventPub.Publish(events.SettingChangedEvent{
		GuildID: guildID,
		Kind:    string(kind),
		Value:   string(value),
	})

	return nil
}

func (s *settingsService) provision(ctx context.Context, guildID int64, kinds []models.SettingKind) error {
	inserted, err := s.settingsRepo.EnsureDefaults(ctx, guildID, kinds)
	if err != nil {
		return fmt.Errorf("failed to provision guild %d: %w", guildID, err)
	}

	// A concurrent first access may have provisioned the guild already
	if inserted == 0 {
		return nil
	}

	log.WithFields(log.Fields{
		"guildID":  guildID,
		"inserted": inserted,
	}).Info("Provisioned default settings for guild")

	s.eventPub.Publish(events.TenantProvisionedEvent{
		GuildID: guildID,
		Kinds:   int(inserted),
	})
	return nil
}

// ListSettings returns every stored setting in storage order
func (s *settingsService) ListSettings(ctx context.Context, guildID int64) ([]*models.Setting, error) {
	settings, err := s.settingsRepo.List(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list settings for guild %d: %w", guildID, err)
	}
	if settings == nil {
		settings = []*models.Setting{}
	}
	return settings, nil
}

// GrantPrivilege records a grant; granting the same role twice stores two rows
func (s *settingsService) GrantPrivilege(ctx context.Context, roleID, guildID int64) error {
	if _, err := s.roleRepo.Insert(ctx, guildID, roleID); err != nil {
		return fmt.Errorf("failed to grant privilege to role %d in guild %d: %w", roleID, guildID, err)
	}

	s.eventPub.Publish(events.PrivilegeGrantedEvent{GuildID: guildID, RoleID: roleID})
	return nil
}

// RevokePrivilege removes a single matching grant
func (s *settingsService) RevokePrivilege(ctx context.Context, roleID, guildID int64) (bool, error) {
	removed, err := s.roleRepo.DeleteOne(ctx, guildID, roleID)
	if err != nil {
		return false, fmt.Errorf("failed to revoke privilege from role %d in guild %d: %w", roleID, guildID, err)
	}

	if removed {
		s.eventPub.Publish(events.PrivilegeRevokedEvent{GuildID: guildID, RoleID: roleID})
	}
	return removed, nil
}

// ListPrivileges returns granted role IDs in grant order
func (s *settingsService) ListPrivileges(ctx context.Context, guildID int64) ([]int64, error) {
	grants, err := s.roleRepo.ListByGuild(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list privileged roles for guild %d: %w", guildID, err)
	}

	roleIDs := make([]int64, 0, len(grants))
	for _, grant := range grants {
		roleIDs = append(roleIDs, grant.RoleID)
	}
	return roleIDs, nil
}

// IsPrivileged reports whether any of roleIDs has been granted
func (s *settingsService) IsPrivileged(ctx context.Context, guildID int64, roleIDs []int64) (bool, error) {
	if len(roleIDs) == 0 {
		return false, nil
	}

	granted, err := s.ListPrivileges(ctx, guildID)
	if err != nil {
		return false, err
	}

	grantSet := make(map[int64]struct{}, len(granted))
	for _, id := range granted {
		grantSet[id] = struct{}{}
	}
	for _, id := range roleIDs {
		if _, ok := grantSet[id]; ok {
			return true, nil
		}
	}
	return false, nil
}

// EraseTenant deletes settings and privileged roles as two independent operations
func (s *settingsService) EraseTenant(ctx context.Context, guildID int64) error {
	settingsRemoved, err := s.settingsRepo.DeleteByGuild(ctx, guildID)
	if err != nil {
		return fmt.Errorf("failed to delete settings for guild %d: %w", guildID, err)
	}

	rolesRemoved, err := s.roleRepo.DeleteByGuild(ctx, guildID)
	if err != nil {
		return fmt.Errorf("failed to delete privileged roles for guild %d: %w", guildID, err)
	}

	log.WithFields(log.Fields{
		"guildID":         guildID,
		"settingsRemoved": settingsRemoved,
		"rolesRemoved":    rolesRemoved,
	}).Info("Erased guild settings and privileges")
	return nil
}
