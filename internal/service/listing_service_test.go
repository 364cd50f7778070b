package service

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/rgoyal/flipfolio/internal/cache"
	"github.com/rgoyal/flipfolio/internal/models"
	"github.com/rgoyal/flipfolio/internal/storage"
	"github.com/rgoyal/flipfolio/internal/storage/objectstore"
)

func newListingService(t *testing.T) (*ListingService, storage.Store) {
	t.Helper()

	store := newTestStore(t)

	uploadDir, err := os.MkdirTemp("", "flipfolio-uploads-*")
	if err != nil {
		t.Fatalf("failed to create upload dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(uploadDir) })

	objects, err := objectstore.NewLocalStore(uploadDir, "http://localhost:8080/uploads")
	if err != nil {
		t.Fatalf("failed to create object store: %v", err)
	}

	analyses := NewAnalysisService(store, cache.NewMemoryCache())
	return NewListingService(store, objects, analyses), store
}

func TestListingServiceCRUD(t *testing.T) {
	svc, store := newListingService(t)
	ctx := context.Background()

	user := models.NewUser("flipper@example.com", "Flipper", "hash")
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	listing := &models.Listing{Title: "Bungalow", AskingPrice: 180000}
	if err := svc.Create(ctx, user.ID, listing); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if listing.OwnerID != user.ID {
		t.Errorf("OwnerID = %q, want %q", listing.OwnerID, user.ID)
	}

	t.Run("Get enforces ownership", func(t *testing.T) {
		if _, err := svc.Get(ctx, "intruder", listing.ID); !errors.Is(err, ErrForbidden) {
			t.Errorf("expected ErrForbidden, got %v", err)
		}
		got, err := svc.Get(ctx, user.ID, listing.ID)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.Title != "Bungalow" {
			t.Errorf("Get returned %+v", got)
		}
	})

	t.Run("Update keeps ownership and creation time", func(t *testing.T) {
		edited := &models.Listing{ID: listing.ID, Title: "Bungalow (reduced)", AskingPrice: 175000}
		if err := svc.Update(ctx, user.ID, edited); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		got, err := svc.Get(ctx, user.ID, listing.ID)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.Title != "Bungalow (reduced)" || got.OwnerID != user.ID {
			t.Errorf("Update result %+v", got)
		}
		if got.CreatedAt != listing.CreatedAt {
			t.Errorf("CreatedAt changed from %d to %d", listing.CreatedAt, got.CreatedAt)
		}
	})

	t.Run("AttachPhoto uploads and records the URL", func(t *testing.T) {
		photo, err := svc.AttachPhoto(ctx, user.ID, listing.ID, ".jpg", "kitchen", []byte("jpeg-bytes"))
		if err != nil {
			t.Fatalf("AttachPhoto failed: %v", err)
		}
		if !strings.HasPrefix(photo.URL, "http://localhost:8080/uploads/") {
			t.Errorf("photo URL = %q, want public uploads URL", photo.URL)
		}
		if !strings.HasSuffix(photo.URL, ".jpg") {
			t.Errorf("photo URL = %q, want .jpg suffix", photo.URL)
		}

		got, err := svc.Get(ctx, user.ID, listing.ID)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if len(got.Photos) != 1 || got.Photos[0].Caption != "kitchen" {
			t.Errorf("photos = %+v", got.Photos)
		}
	})

	t.Run("Delete removes the listing", func(t *testing.T) {
		if err := svc.Delete(ctx, user.ID, listing.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, err := svc.Get(ctx, user.ID, listing.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
	})
}
