package service

import (
	"context"
	"fmt"

	"github.com/rgoyal/flipfolio/internal/models"
	"github.com/rgoyal/flipfolio/internal/storage"
	"github.com/rgoyal/flipfolio/internal/storage/objectstore"
)

// ListingService handles listing CRUD and photo uploads, scoped to the
// owning user.
type ListingService struct {
	store    storage.Store
	objects  objectstore.Store
	analyses *AnalysisService
}

// NewListingService creates a ListingService. The AnalysisService is used
// to drop cached results when a listing goes away.
func NewListingService(store storage.Store, objects objectstore.Store, analyses *AnalysisService) *ListingService {
	return &ListingService{store: store, objects: objects, analyses: analyses}
}

// Create persists a new listing owned by the given user.
func (s *ListingService) Create(ctx context.Context, ownerID string, listing *models.Listing) error {
	listing.OwnerID = ownerID
	if err := s.store.CreateListing(ctx, listing); err != nil {
		return fmt.Errorf("failed to create listing: %w", err)
	}
	return nil
}

// Get retrieves a listing owned by the user.
func (s *ListingService) Get(ctx context.Context, userID, listingID string) (*models.Listing, error) {
	listing, err := s.store.GetListing(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.OwnerID != userID {
		return nil, ErrForbidden
	}
	return listing, nil
}

// List retrieves all of the user's listings, newest first.
func (s *ListingService) List(ctx context.Context, userID string) ([]*models.Listing, error) {
	return s.store.ListListings(ctx, userID)
}

// Update applies edits to a listing the user owns.
func (s *ListingService) Update(ctx context.Context, userID string, listing *models.Listing) error {
	existing, err := s.Get(ctx, userID, listing.ID)
	if err != nil {
		return err
	}
	listing.OwnerID = existing.OwnerID
	listing.CreatedAt = existing.CreatedAt
	return s.store.UpdateListing(ctx, listing)
}

// Delete removes a listing the user owns, along with its cached analysis.
func (s *ListingService) Delete(ctx context.Context, userID, listingID string) error {
	if _, err := s.Get(ctx, userID, listingID); err != nil {
		return err
	}
	if err := s.store.DeleteListing(ctx, listingID); err != nil {
		return err
	}
	s.analyses.Invalidate(ctx, listingID)
	return nil
}

// AttachPhoto uploads photo bytes through the object store and records the
// returned public URL on the listing.
func (s *ListingService) AttachPhoto(ctx context.Context, userID, listingID, ext, caption string, data []byte) (*models.Photo, error) {
	if _, err := s.Get(ctx, userID, listingID); err != nil {
		return nil, err
	}

	url, err := s.objects.Put(ctx, ext, data)
	if err != nil {
		return nil, fmt.Errorf("failed to upload photo: %w", err)
	}

	photo := &models.Photo{
		ListingID: listingID,
		URL:       url,
		Caption:   caption,
	}
	if err := s.store.AddPhoto(ctx, photo); err != nil {
		return nil, fmt.Errorf("failed to record photo: %w", err)
	}
	return photo, nil
}
