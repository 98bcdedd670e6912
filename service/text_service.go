package service

import (
	"context"
	"fmt"

	"annobot/models"

	log "github.com/sirupsen/logrus"
)

// textService implements the TextService interface
type textService struct {
	textRepo StoredTextRepository
}

// NewTextService creates a new text service
func NewTextService(textRepo StoredTextRepository) TextService {
	return &textService{textRepo: textRepo}
}

// GetText returns the content for name
func (s *textService) GetText(ctx context.Context, name string, guildID int64) (string, bool, error) {
	entry, err := s.textRepo.Get(ctx, guildID, name)
	if err != nil {
		return "", false, fmt.Errorf("failed to get text %q for guild %d: %w", name, guildID, err)
	}
	if entry == nil {
		return "", false, nil
	}
	return entry.Content, true, nil
}

// SetText creates or replaces the entry. Reserved names are writable.
func (s *textService) SetText(ctx context.Context, name, content string, guildID int64) error {
	if err := s.textRepo.Upsert(ctx, guildID, name, content); err != nil {
		return fmt.Errorf("failed to set text %q for guild %d: %w", name, guildID, err)
	}
	return nil
}

// DeleteText removes the entry; absence is not an error
func (s *textService) DeleteText(ctx context.Context, name string, guildID int64) (bool, error) {
	deleted, err := s.textRepo.Delete(ctx, guildID, name)
	if err != nil {
		return false, fmt.Errorf("failed to delete text %q for guild %d: %w", name, guildID, err)
	}
	return deleted, nil
}

// ListTagNames returns every stored name except reserved ones, in storage order
func (s *textService) ListTagNames(ctx context.Context, guildID int64) ([]string, error) {
	names, err := s.textRepo.ListNames(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list text names for guild %d: %w", guildID, err)
	}

	tags := make([]string, 0, len(names))
	for _, name := range names {
		if models.IsReservedTextName(name) {
			continue
		}
		tags = append(tags, name)
	}
	return tags, nil
}

// EraseTenant deletes every text entry of the guild
func (s *textService) EraseTenant(ctx context.Context, guildID int64) error {
	removed, err := s.textRepo.DeleteByGuild(ctx, guildID)
	if err != nil {
		return fmt.Errorf("failed to delete stored text for guild %d: %w", guildID, err)
	}

	log.WithFields(log.Fields{
		"guildID": guildID,
		"removed": removed,
	}).Info("Erased guild stored text")
	return nil
}
