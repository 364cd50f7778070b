package models

// Listing represents an off-market property a user is evaluating for a
// fix-and-flip purchase.
type Listing struct {
	// ID is the unique identifier for the listing (UUID format).
	ID string

	// OwnerID is the user who created the listing.
	OwnerID string

	// Title is a short human-readable label (e.g. "3BR ranch on Maple").
	Title string

	// Address is the street address of the property.
	Address string

	// AskingPrice is the seller's asking price.
	AskingPrice float64

	// InteriorSqft is the interior square footage, used to estimate rehab
	// cost when no explicit figure is available.
	InteriorSqft float64

	// RehabDurationMonths is the estimated renovation duration. The
	// analysis engine uses it to annualize ROI; it is independent of the
	// user-editable holding period.
	RehabDurationMonths float64

	// Notes is free-form text about the property's condition.
	Notes string

	// Photos are the uploaded photos for this listing, ordered by upload
	// time. Populated on reads, ignored on updates (use AttachPhoto).
	Photos []Photo

	// CreatedAt is the Unix timestamp when the listing was created.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last edit.
	UpdatedAt int64
}

// Photo represents one uploaded listing photo.
type Photo struct {
	// ID is the unique identifier for the photo (UUID format).
	ID string

	// ListingID is the listing this photo belongs to.
	ListingID string

	// URL is the public URL returned by the object store on upload.
	URL string

	// Caption is an optional description.
	Caption string

	// CreatedAt is the Unix timestamp when the photo was uploaded.
	CreatedAt int64
}
