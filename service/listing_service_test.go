package service

import (
	"context"
	"testing"

	"annobot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestListingService_CreateListing(t *testing.T) {
	ctx := context.Background()
	repo := new(MockListingRepository)
	svc := NewListingService(repo)

	listing := &models.Listing{ID: 555, GuildID: 9, HostID: 1, GameMode: "coop"}
	repo.On("Create", ctx, listing).Return(nil)

	require.NoError(t, svc.CreateListing(ctx, listing))
	repo.AssertExpectations(t)

	err := svc.CreateListing(ctx, &models.Listing{GuildID: 9})
	assert.Error(t, err)
}

func TestListingService_DeleteListing(t *testing.T) {
	ctx := context.Background()
	listing := &models.Listing{ID: 555, GuildID: 9, HostID: 1}

	t.Run("host can delete", func(t *testing.T) {
		repo := new(MockListingRepository)
		svc := NewListingService(repo)
		repo.On("Get", ctx, int64(555)).Return(listing, nil)
		repo.On("Delete", ctx, int64(555)).Return(true, nil)

		require.NoError(t, svc.DeleteListing(ctx, 9, 555, 1, false))
		repo.AssertExpectations(t)
	})

	t.Run("moderator can delete", func(t *testing.T) {
		repo := new(MockListingRepository)
		svc := NewListingService(repo)
		repo.On("Get", ctx, int64(555)).Return(listing, nil)
		repo.On("Delete", ctx, int64(555)).Return(true, nil)

		require.NoError(t, svc.DeleteListing(ctx, 9, 555, 2, true))
	})

	t.Run("other member is rejected", func(t *testing.T) {
		repo := new(MockListingRepository)
		svc := NewListingService(repo)
		repo.On("Get", ctx, int64(555)).Return(listing, nil)

		err := svc.DeleteListing(ctx, 9, 555, 2, false)
		assert.ErrorIs(t, err, ErrNotListingHost)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("listing from another guild is not found", func(t *testing.T) {
		repo := new(MockListingRepository)
		svc := NewListingService(repo)
		repo.On("Get", ctx, int64(555)).Return(listing, nil)

		err := svc.DeleteListing(ctx, 10, 555, 1, true)
		assert.ErrorIs(t, err, ErrListingNotFound)
	})

	t.Run("missing listing", func(t *testing.T) {
		repo := new(MockListingRepository)
		svc := NewListingService(repo)
		repo.On("Get", ctx, int64(1)).Return(nil, nil)

		err := svc.DeleteListing(ctx, 9, 1, 1, false)
		assert.ErrorIs(t, err, ErrListingNotFound)
	})
}
