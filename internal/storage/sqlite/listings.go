package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rgoyal/flipfolio/internal/models"
	"github.com/rgoyal/flipfolio/internal/storage"
)

// CreateListing persists a new listing, generating the ID and timestamps
// when unset.
func (s *SQLiteStore) CreateListing(ctx context.Context, listing *models.Listing) error {
	if listing.ID == "" {
		listing.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if listing.CreatedAt == 0 {
		listing.CreatedAt = now
	}
	listing.UpdatedAt = now

	query := `
		INSERT INTO listings (id, owner_id, title, address, asking_price, interior_sqft, rehab_duration_months, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		listing.ID,
		listing.OwnerID,
		listing.Title,
		listing.Address,
		listing.AskingPrice,
		listing.InteriorSqft,
		listing.RehabDurationMonths,
		listing.Notes,
		listing.CreatedAt,
		listing.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create listing: %w", err)
	}
	return nil
}

// GetListing retrieves a listing with its photos.
func (s *SQLiteStore) GetListing(ctx context.Context, listingID string) (*models.Listing, error) {
	query := `
		SELECT id, owner_id, title, address, asking_price, interior_sqft, rehab_duration_months, notes, created_at, updated_at
		FROM listings
		WHERE id = ?
	`
	listing := &models.Listing{}
	err := s.db.QueryRowContext(ctx, query, listingID).Scan(
		&listing.ID,
		&listing.OwnerID,
		&listing.Title,
		&listing.Address,
		&listing.AskingPrice,
		&listing.InteriorSqft,
		&listing.RehabDurationMonths,
		&listing.Notes,
		&listing.CreatedAt,
		&listing.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}

	photos, err := s.photosForListing(ctx, listing.ID)
	if err != nil {
		return nil, err
	}
	listing.Photos = photos
	return listing, nil
}

// ListListings retrieves all listings owned by the given user, newest
// first.
func (s *SQLiteStore) ListListings(ctx context.Context, ownerID string) ([]*models.Listing, error) {
	query := `
		SELECT id, owner_id, title, address, asking_price, interior_sqft, rehab_duration_months, notes, created_at, updated_at
		FROM listings
		WHERE owner_id = ?
		ORDER BY created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}
	defer rows.Close()

	var listings []*models.Listing
	for rows.Next() {
		listing := &models.Listing{}
		if err := rows.Scan(
			&listing.ID,
			&listing.OwnerID,
			&listing.Title,
			&listing.Address,
			&listing.AskingPrice,
			&listing.InteriorSqft,
			&listing.RehabDurationMonths,
			&listing.Notes,
			&listing.CreatedAt,
			&listing.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		listings = append(listings, listing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating listings: %w", err)
	}

	for _, listing := range listings {
		photos, err := s.photosForListing(ctx, listing.ID)
		if err != nil {
			return nil, err
		}
		listing.Photos = photos
	}
	return listings, nil
}

// UpdateListing updates a listing's editable fields.
func (s *SQLiteStore) UpdateListing(ctx context.Context, listing *models.Listing) error {
	listing.UpdatedAt = time.Now().Unix()

	query := `
		UPDATE listings
		SET title = ?, address = ?, asking_price = ?, interior_sqft = ?, rehab_duration_months = ?, notes = ?, updated_at = ?
		WHERE id = ?
	`
	res, err := s.db.ExecContext(ctx, query,
		listing.Title,
		listing.Address,
		listing.AskingPrice,
		listing.InteriorSqft,
		listing.RehabDurationMonths,
		listing.Notes,
		listing.UpdatedAt,
		listing.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update listing: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteListing removes a listing; photos and the saved analysis cascade.
func (s *SQLiteStore) DeleteListing(ctx context.Context, listingID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM listings WHERE id = ?`, listingID)
	if err != nil {
		return fmt.Errorf("failed to delete listing: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// AddPhoto records an uploaded photo for a listing.
func (s *SQLiteStore) AddPhoto(ctx context.Context, photo *models.Photo) error {
	if photo.ID == "" {
		photo.ID = uuid.New().String()
	}
	if photo.CreatedAt == 0 {
		photo.CreatedAt = time.Now().Unix()
	}

	query := `
		INSERT INTO photos (id, listing_id, url, caption, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		photo.ID,
		photo.ListingID,
		photo.URL,
		photo.Caption,
		photo.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to add photo: %w", err)
	}
	return nil
}

// photosForListing loads a listing's photos in upload order.
func (s *SQLiteStore) photosForListing(ctx context.Context, listingID string) ([]models.Photo, error) {
	query := `
		SELECT id, listing_id, url, caption, created_at
		FROM photos
		WHERE listing_id = ?
		ORDER BY created_at ASC
	`
	rows, err := s.db.QueryContext(ctx, query, listingID)
	if err != nil {
		return nil, fmt.Errorf("failed to get photos: %w", err)
	}
	defer rows.Close()

	var photos []models.Photo
	for rows.Next() {
		var photo models.Photo
		if err := rows.Scan(
			&photo.ID,
			&photo.ListingID,
			&photo.URL,
			&photo.Caption,
			&photo.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan photo: %w", err)
		}
		photos = append(photos, photo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating photos: %w", err)
	}
	return photos, nil
}
