package reports

import (
	"context"
)

// Repository fetches report rows.
type Repository interface {
	// FetchSummaryRows returns one row per (bundle, entry, batch) tuple
	// matching filters, ordered by posting date ascending.
	FetchSummaryRows(ctx context.Context, filters Filters) ([]Row, error)
}

// ItemLookup resolves the serial/batch tracking flags of an item.
// Implementations may cache; a missing item is an apperror NotFound.
type ItemLookup interface {
	GetItemTracking(ctx context.Context, itemCode string) (*ItemTracking, error)
}

// Translator localizes column labels. A nil Translator leaves labels as is.
type Translator interface {
	Translate(label string) string
}
