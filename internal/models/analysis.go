package models

// SavedAnalysis is the flattened subset of a financial analysis persisted
// per listing. It seeds the analysis engine's inputs the next time the
// listing is opened; everything else the engine derives is ephemeral
// display state and is recomputed, not stored.
type SavedAnalysis struct {
	// ID is the unique identifier for the saved analysis (UUID format).
	ID string

	// ListingID is the listing this analysis belongs to. One saved
	// analysis per listing; saving again replaces the previous one.
	ListingID string

	PurchasePrice    float64
	ClosingCosts     float64
	RehabCost        float64
	AfterRepairValue float64
	InteriorSqft     float64

	// TaxRate is a decimal fraction (0.25 = 25%).
	TaxRate float64

	// CreatedAt is the Unix timestamp when the analysis was first saved.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last recompute that saved.
	UpdatedAt int64
}
