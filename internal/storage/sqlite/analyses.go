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

// SaveAnalysis upserts the saved analysis for a listing. The listing_id
// unique constraint enforces at most one saved analysis per listing.
func (s *SQLiteStore) SaveAnalysis(ctx context.Context, analysis *models.SavedAnalysis) error {
	if analysis.ID == "" {
		analysis.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if analysis.CreatedAt == 0 {
		analysis.CreatedAt = now
	}
	analysis.UpdatedAt = now

	query := `
		INSERT INTO analyses (id, listing_id, purchase_price, closing_costs, rehab_cost, after_repair_value, interior_sqft, tax_rate, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(listing_id) DO UPDATE SET
			purchase_price = excluded.purchase_price,
			closing_costs = excluded.closing_costs,
			rehab_cost = excluded.rehab_cost,
			after_repair_value = excluded.after_repair_value,
			interior_sqft = excluded.interior_sqft,
			tax_rate = excluded.tax_rate,
			updated_at = excluded.updated_at
	`
	_, err := s.db.ExecContext(ctx, query,
		analysis.ID,
		analysis.ListingID,
		analysis.PurchasePrice,
		analysis.ClosingCosts,
		analysis.RehabCost,
		analysis.AfterRepairValue,
		analysis.InteriorSqft,
		analysis.TaxRate,
		analysis.CreatedAt,
		analysis.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	return nil
}

// GetAnalysis retrieves the saved analysis for a listing.
func (s *SQLiteStore) GetAnalysis(ctx context.Context, listingID string) (*models.SavedAnalysis, error) {
	query := `
		SELECT id, listing_id, purchase_price, closing_costs, rehab_cost, after_repair_value, interior_sqft, tax_rate, created_at, updated_at
		FROM analyses
		WHERE listing_id = ?
	`
	analysis := &models.SavedAnalysis{}
	err := s.db.QueryRowContext(ctx, query, listingID).Scan(
		&analysis.ID,
		&analysis.ListingID,
		&analysis.PurchasePrice,
		&analysis.ClosingCosts,
		&analysis.RehabCost,
		&analysis.AfterRepairValue,
		&analysis.InteriorSqft,
		&analysis.TaxRate,
		&analysis.CreatedAt,
		&analysis.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}
	return analysis, nil
}
