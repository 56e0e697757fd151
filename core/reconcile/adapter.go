package reconcile

import "context"

// Source extracts raw card fields from one website.
//
// Each display language has its own Source; everything downstream of Extract
// (numbering, catalog resolution, eligibility, pack vocabulary) is shared.
type Source interface {
	// Name returns the unique name of the source (e.g. "limitless").
	Name() string

	// Language returns the display language code of the source (e.g. "en").
	Language() string

	// Extract fetches and parses the card at a local number of a set.
	// An error counts as one extraction failure for the set.
	Extract(ctx context.Context, set SetDefinition, number int) (RawCard, error)
}
