// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/rgoyal/flipfolio/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Store defines the interface for Flipfolio's persistence operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// a hosted service, ...) without changing the service layer.
type Store interface {
	// CreateListing persists a new listing. The ID and timestamps are
	// populated by the store when unset.
	CreateListing(ctx context.Context, listing *models.Listing) error

	// GetListing retrieves a listing with its photos.
	// Returns ErrNotFound if it does not exist.
	GetListing(ctx context.Context, listingID string) (*models.Listing, error)

	// ListListings retrieves all listings owned by the given user, newest
	// first, photos included.
	ListListings(ctx context.Context, ownerID string) ([]*models.Listing, error)

	// UpdateListing updates an existing listing's editable fields.
	// Returns ErrNotFound if it does not exist.
	UpdateListing(ctx context.Context, listing *models.Listing) error

	// DeleteListing removes a listing along with its photos and saved
	// analysis. Returns ErrNotFound if it does not exist.
	DeleteListing(ctx context.Context, listingID string) error

	// AddPhoto records an uploaded photo for a listing.
	AddPhoto(ctx context.Context, photo *models.Photo) error

	// SaveAnalysis upserts the saved analysis for a listing. A listing has
	// at most one saved analysis; saving again replaces the inputs.
	SaveAnalysis(ctx context.Context, analysis *models.SavedAnalysis) error

	// GetAnalysis retrieves the saved analysis for a listing.
	// Returns ErrNotFound if the listing has none.
	GetAnalysis(ctx context.Context, listingID string) (*models.SavedAnalysis, error)

	// CreateUser persists a new user account.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email. Returns (nil, nil) when no
	// such user exists, so callers can distinguish absence from failure.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID. Returns (nil, nil) when no such
	// user exists.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Close releases any resources held by the store.
	Close() error
}
