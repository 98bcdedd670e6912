package service

import (
	"context"
	"errors"
	"fmt"

	"annobot/models"

	log "github.com/sirupsen/logrus"
)

var (
	ErrListingNotFound = errors.New("listing not found")
	ErrNotListingHost  = errors.New("only the host can remove this listing")
)

// listingService implements the ListingService interface
type listingService struct {
	listingRepo ListingRepository
}

// NewListingService creates a new listing service
func NewListingService(listingRepo ListingRepository) ListingService {
	return &listingService{listingRepo: listingRepo}
}

func (s *listingService) CreateListing(ctx context.Context, listing *models.Listing) error {
	if listing.ID == 0 || listing.GuildID == 0 {
		return fmt.Errorf("listing requires a message ID and guild ID")
	}

	if err := s.listingRepo.Create(ctx, listing); err != nil {
		return fmt.Errorf("failed to create listing %d: %w", listing.ID, err)
	}

	log.WithFields(log.Fields{
		"listingID": listing.ID,
		"guildID":   listing.GuildID,
		"hostID":    listing.HostID,
		"gameMode":  listing.GameMode,
	}).Info("Listing created")
	return nil
}

func (s *listingService) ListListings(ctx context.Context, guildID int64) ([]*models.Listing, error) {
	listings, err := s.listingRepo.ListByGuild(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list listings for guild %d: %w", guildID, err)
	}
	return listings, nil
}

func (s *listingService) DeleteListing(ctx context.Context, guildID, listingID, requesterID int64, canModerate bool) error {
	listing, err := s.listingRepo.Get(ctx, listingID)
	if err != nil {
		return fmt.Errorf("failed to get listing %d: %w", listingID, err)
	}
	if listing == nil || listing.GuildID != guildID {
		return ErrListingNotFound
	}
	if listing.HostID != requesterID && !canModerate {
		return ErrNotListingHost
	}

	if _, err := s.listingRepo.Delete(ctx, listingID); err != nil {
		return fmt.Errorf("failed to delete listing %d: %w", listingID, err)
	}

	log.WithFields(log.Fields{
		"listingID":   listingID,
		"guildID":     guildID,
		"requesterID": requesterID,
	}).Info("Listing removed")
	return nil
}

func (s *listingService) EraseTenant(ctx context.Context, guildID int64) error {
	if _, err := s.listingRepo.DeleteByGuild(ctx, guildID); err != nil {
		return fmt.Errorf("failed to delete listings for guild %d: %w", guildID, err)
	}
	return nil
}
