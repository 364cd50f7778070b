// Package service implements Flipfolio's business logic on top of the
// storage, cache, and auth layers. Services are transport-agnostic; the
// api package adapts them to HTTP.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rgoyal/flipfolio/internal/cache"
	"github.com/rgoyal/flipfolio/internal/engine"
	"github.com/rgoyal/flipfolio/internal/models"
	"github.com/rgoyal/flipfolio/internal/storage"
)

// ErrForbidden is returned when a user touches a listing they do not own.
var ErrForbidden = errors.New("listing does not belong to user")

// AnalysisService runs the analysis engine for a listing: it seeds
// missing inputs from persisted state, recomputes, persists the flattened
// input subset, and caches the latest result for quick reads.
type AnalysisService struct {
	store storage.Store
	cache cache.Cache
}

// NewAnalysisService creates an AnalysisService.
func NewAnalysisService(store storage.Store, cache cache.Cache) *AnalysisService {
	return &AnalysisService{store: store, cache: cache}
}

// analysisCacheKey is the cache key for a listing's latest result.
func analysisCacheKey(listingID string) string {
	return "analysis:" + listingID
}

// Run recomputes the full analysis for the listing from the given inputs.
//
// Zero-valued core fields are seeded, in order of preference, from the
// listing's saved analysis and then from the listing record itself, so
// opening a listing with no edits reproduces the previously saved deal.
// The listing's rehab duration always overrides whatever the caller set;
// it is property data, not a user-editable input.
func (s *AnalysisService) Run(ctx context.Context, userID, listingID string, inputs engine.DealInputs) (engine.AnalysisResult, error) {
	listing, err := s.ownedListing(ctx, userID, listingID)
	if err != nil {
		return engine.AnalysisResult{}, err
	}

	s.seedInputs(ctx, listing, &inputs)
	result := engine.Recompute(inputs)

	// Persist the flattened input subset. Not critical: a failed save
	// loses the seed for next time, not the result we are returning.
	saved := &models.SavedAnalysis{
		ListingID:        listing.ID,
		PurchasePrice:    inputs.PurchasePrice,
		ClosingCosts:     inputs.ClosingCosts,
		RehabCost:        inputs.RehabCost,
		AfterRepairValue: inputs.AfterRepairValue,
		InteriorSqft:     inputs.InteriorSqft,
		TaxRate:          inputs.TaxRate,
	}
	if err := s.store.SaveAnalysis(ctx, saved); err != nil {
		slog.Warn("failed to save analysis inputs", "listing_id", listing.ID, "error", err)
	}

	if payload, err := json.Marshal(result); err == nil {
		if err := s.cache.Set(ctx, analysisCacheKey(listing.ID), string(payload)); err != nil {
			slog.Warn("failed to cache analysis result", "listing_id", listing.ID, "error", err)
		}
	}

	return result, nil
}

// Latest returns the cached result of the last Run for the listing. The
// second return value is false when nothing is cached.
func (s *AnalysisService) Latest(ctx context.Context, userID, listingID string) (engine.AnalysisResult, bool, error) {
	if _, err := s.ownedListing(ctx, userID, listingID); err != nil {
		return engine.AnalysisResult{}, false, err
	}

	payload, ok := s.cache.Get(ctx, analysisCacheKey(listingID))
	if !ok {
		return engine.AnalysisResult{}, false, nil
	}

	var result engine.AnalysisResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		// A corrupt entry is as good as a miss; drop it.
		_ = s.cache.Delete(ctx, analysisCacheKey(listingID))
		return engine.AnalysisResult{}, false, nil
	}
	return result, true, nil
}

// Invalidate drops the cached result for a listing.
func (s *AnalysisService) Invalidate(ctx context.Context, listingID string) {
	if err := s.cache.Delete(ctx, analysisCacheKey(listingID)); err != nil {
		slog.Warn("failed to invalidate analysis cache", "listing_id", listingID, "error", err)
	}
}

// seedInputs fills zero-valued core fields from the saved analysis, then
// from the listing record, then from the engine defaults.
func (s *AnalysisService) seedInputs(ctx context.Context, listing *models.Listing, inputs *engine.DealInputs) {
	saved, err := s.store.GetAnalysis(ctx, listing.ID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		slog.Warn("failed to load saved analysis", "listing_id", listing.ID, "error", err)
	}
	if saved != nil {
		if inputs.PurchasePrice == 0 {
			inputs.PurchasePrice = saved.PurchasePrice
		}
		if inputs.ClosingCosts == 0 {
			inputs.ClosingCosts = saved.ClosingCosts
		}
		if inputs.RehabCost == 0 {
			inputs.RehabCost = saved.RehabCost
		}
		if inputs.AfterRepairValue == 0 {
			inputs.AfterRepairValue = saved.AfterRepairValue
		}
		if inputs.InteriorSqft == 0 {
			inputs.InteriorSqft = saved.InteriorSqft
		}
		if inputs.TaxRate == 0 {
			inputs.TaxRate = saved.TaxRate
		}
	}

	if inputs.PurchasePrice == 0 {
		inputs.PurchasePrice = listing.AskingPrice
	}
	if inputs.InteriorSqft == 0 {
		inputs.InteriorSqft = listing.InteriorSqft
	}
	if inputs.RehabCost == 0 && inputs.InteriorSqft > 0 {
		inputs.RehabCost = engine.RehabCost(inputs.InteriorSqft, engine.DefaultRehabCostPerSqft)
	}
	if inputs.TaxRate == 0 {
		inputs.TaxRate = engine.DefaultTaxRate
	}

	// Property data, never user-editable here.
	inputs.RehabDurationMonths = listing.RehabDurationMonths
}

// ownedListing loads the listing and checks ownership.
func (s *AnalysisService) ownedListing(ctx context.Context, userID, listingID string) (*models.Listing, error) {
	listing, err := s.store.GetListing(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load listing: %w", err)
	}
	if listing.OwnerID != userID {
		return nil, ErrForbidden
	}
	return listing, nil
}
