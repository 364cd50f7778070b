package service

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/rgoyal/flipfolio/internal/cache"
	"github.com/rgoyal/flipfolio/internal/engine"
	"github.com/rgoyal/flipfolio/internal/models"
	"github.com/rgoyal/flipfolio/internal/storage"
	"github.com/rgoyal/flipfolio/internal/storage/sqlite"
)

func newTestStore(t *testing.T) storage.Store {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "flipfolio-service-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func createOwnedListing(t *testing.T, store storage.Store) (*models.User, *models.Listing) {
	t.Helper()
	ctx := context.Background()

	user := models.NewUser("flipper@example.com", "Flipper", "hash")
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	listing := &models.Listing{
		OwnerID:             user.ID,
		Title:               "3BR ranch on Maple",
		AskingPrice:         250000,
		InteriorSqft:        1800,
		RehabDurationMonths: 3,
	}
	if err := store.CreateListing(ctx, listing); err != nil {
		t.Fatalf("CreateListing failed: %v", err)
	}
	return user, listing
}

func TestAnalysisServiceRun(t *testing.T) {
	store := newTestStore(t)
	svc := NewAnalysisService(store, cache.NewMemoryCache())
	ctx := context.Background()
	user, listing := createOwnedListing(t, store)

	t.Run("seeds from listing when inputs are empty", func(t *testing.T) {
		res, err := svc.Run(ctx, user.ID, listing.ID, engine.DealInputs{})
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}

		// Purchase price from the asking price, rehab from sqft at the
		// default $50/sqft.
		wantDown := 0.0 // no financing percentage set
		if res.DownPayment != wantDown {
			t.Errorf("DownPayment = %v, want %v", res.DownPayment, wantDown)
		}
		if res.CapitalNeeded != 250000 {
			t.Errorf("CapitalNeeded = %v, want seeded asking price 250000", res.CapitalNeeded)
		}
		if res.SeventyPercentRule.MaxPurchasePrice != -90000 {
			// 0.70*0 ARV - 90000 rehab: no ARV was seeded anywhere.
			t.Errorf("MaxPurchasePrice = %v, want -90000", res.SeventyPercentRule.MaxPurchasePrice)
		}

		// The flattened inputs were persisted for next time.
		saved, err := store.GetAnalysis(ctx, listing.ID)
		if err != nil {
			t.Fatalf("GetAnalysis failed: %v", err)
		}
		if saved.PurchasePrice != 250000 || saved.RehabCost != 90000 || saved.TaxRate != engine.DefaultTaxRate {
			t.Errorf("saved analysis = %+v", saved)
		}
	})

	t.Run("explicit inputs win over the seed", func(t *testing.T) {
		in := engine.DealInputs{
			PurchasePrice:    240000,
			ClosingCosts:     10000,
			RehabCost:        50000,
			AfterRepairValue: 350000,
			TaxRate:          0.25,
			MonthsHeld:       2,
		}
		res, err := svc.Run(ctx, user.ID, listing.ID, in)
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		if res.TotalInvestment != 250000 {
			t.Errorf("TotalInvestment = %v, want 250000", res.TotalInvestment)
		}
		// Annualized ROI runs on the listing's rehab duration (3 months).
		wantAnnualized := res.TotalROI * 4
		if math.Abs(res.AnnualizedROI-wantAnnualized) > 0.0001 {
			t.Errorf("AnnualizedROI = %v, want %v", res.AnnualizedROI, wantAnnualized)
		}

		saved, err := store.GetAnalysis(ctx, listing.ID)
		if err != nil {
			t.Fatalf("GetAnalysis failed: %v", err)
		}
		if saved.PurchasePrice != 240000 || saved.AfterRepairValue != 350000 {
			t.Errorf("saved analysis not replaced: %+v", saved)
		}
	})

	t.Run("saved analysis seeds the next run", func(t *testing.T) {
		res, err := svc.Run(ctx, user.ID, listing.ID, engine.DealInputs{MonthsHeld: 2})
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		// Same deal as the previous subtest, so the same profit.
		if math.Abs(res.TotalProfit-(329000-50000-250000)) > 0.01 {
			t.Errorf("TotalProfit = %v, want 29000", res.TotalProfit)
		}
	})

	t.Run("rejects other users", func(t *testing.T) {
		if _, err := svc.Run(ctx, "intruder", listing.ID, engine.DealInputs{}); !errors.Is(err, ErrForbidden) {
			t.Errorf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("unknown listing", func(t *testing.T) {
		if _, err := svc.Run(ctx, user.ID, "missing", engine.DealInputs{}); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestAnalysisServiceLatest(t *testing.T) {
	store := newTestStore(t)
	svc := NewAnalysisService(store, cache.NewMemoryCache())
	ctx := context.Background()
	user, listing := createOwnedListing(t, store)

	t.Run("miss before any run", func(t *testing.T) {
		_, ok, err := svc.Latest(ctx, user.ID, listing.ID)
		if err != nil {
			t.Fatalf("Latest failed: %v", err)
		}
		if ok {
			t.Error("expected a cache miss before the first run")
		}
	})

	t.Run("returns the last computed result", func(t *testing.T) {
		want, err := svc.Run(ctx, user.ID, listing.ID, engine.DealInputs{
			PurchasePrice:    250000,
			ClosingCosts:     10000,
			RehabCost:        50000,
			AfterRepairValue: 350000,
			MonthsHeld:       2,
		})
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}

		got, ok, err := svc.Latest(ctx, user.ID, listing.ID)
		if err != nil {
			t.Fatalf("Latest failed: %v", err)
		}
		if !ok {
			t.Fatal("expected a cache hit after Run")
		}
		if got != want {
			t.Errorf("cached result differs:\ngot  %+v\nwant %+v", got, want)
		}
	})

	t.Run("invalidate drops the entry", func(t *testing.T) {
		svc.Invalidate(ctx, listing.ID)
		_, ok, err := svc.Latest(ctx, user.ID, listing.ID)
		if err != nil {
			t.Fatalf("Latest failed: %v", err)
		}
		if ok {
			t.Error("expected a miss after Invalidate")
		}
	})
}
