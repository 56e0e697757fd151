package reconcile

import "errors"

// EveryPack is the pack assignment of a card found in every pack of its set.
const EveryPack = "Every pack"

// MaxConsecutiveFailures is the number of consecutive extraction failures a set
// tolerates. One more failure abandons the rest of the set.
const MaxConsecutiveFailures = 4

// ErrSetAbandoned is recorded on a SetResult whose remaining range was skipped
// after too many consecutive extraction failures.
var ErrSetAbandoned = errors.New("set abandoned after consecutive extraction failures")

// SetDefinition describes one expansion as configured for a run.
type SetDefinition struct {
	// Code is the short expansion code (e.g. "A3b").
	Code string `yaml:"code" json:"code"`

	// DisplayName is the English expansion name (e.g. "Eevee Grove").
	DisplayName string `yaml:"name" json:"name"`

	// MaxCardCount is the number of card positions in the set.
	MaxCardCount int `yaml:"max_cards" json:"max_cards"`

	// GlobalStartOffset is the global sequence id of the set's first card.
	GlobalStartOffset int `yaml:"start_offset" json:"start_offset"`

	// Slug is the path segment used by sources that address sets by name.
	Slug string `yaml:"slug,omitempty" json:"slug,omitempty"`

	// Promo marks promotional sets. Promo cards are never eligible.
	Promo bool `yaml:"promo,omitempty" json:"promo,omitempty"`

	// OffsetConfirmed marks a promo start offset as an assigned range rather
	// than a placeholder.
	OffsetConfirmed bool `yaml:"offset_confirmed,omitempty" json:"offset_confirmed,omitempty"`
}

// RawCard holds the fields a Source extracted from one card page.
type RawCard struct {
	Name        string
	ImageURL    string
	RarityText  string
	SetDetails  string
	PackText    string
	LocalNumber int
}

// CardRecord is the reconciled output for one scraped card.
type CardRecord struct {
	// GlobalSequenceID is the run-wide, gap-aware sequence number.
	GlobalSequenceID int `json:"id"`

	// LocalCardNumber is the 1-based number within the set.
	LocalCardNumber int `json:"id_set"`

	// Name is the card name as displayed by the source.
	Name string `json:"name"`

	// ImageURL is the card artwork URL on the source.
	ImageURL string `json:"image"`

	// RaritySymbol is a glyph string ("◊◊", "☆") or a named tier ("Crown Rare").
	RaritySymbol string `json:"rarity"`

	// SetDetails is the descriptive set text, e.g. "Eevee Grove (A3b)".
	SetDetails string `json:"set_details"`

	// SetCode is the expansion code used for lookup and classification.
	SetCode string `json:"set_code"`

	// PackAssignment is a canonical pack identifier or EveryPack.
	PackAssignment string `json:"set_subpack"`

	// CanonicalID is the catalog identifier, empty when unresolved.
	CanonicalID string `json:"id_ingame"`

	// Eligible reports whether the card is eligible for special distribution.
	Eligible bool `json:"wp_gp_eligible"`

	// Language is the display language of the source.
	Language string `json:"language"`
}

// SetResult collects the records of one set, in scrape order.
// AbandonedAt is the local number whose failure triggered abandonment.
// UnresolvedEligible counts eligible cards left out of RunResult.Eligible
// because they have no canonical id.
type SetResult struct {
	Set                SetDefinition `json:"set"`
	Records            []CardRecord  `json:"records"`
	Failures           int           `json:"failures"`
	Unresolved         int           `json:"unresolved"`
	UnresolvedEligible int           `json:"unresolved_eligible"`
	Abandoned          bool          `json:"abandoned"`
	AbandonedAt        int           `json:"abandoned_at,omitempty"`
	Err                error         `json:"-"`
}

// RunResult is the outcome of one engine run.
type RunResult struct {
	Language string              `json:"language"`
	Sets     []SetResult         `json:"sets"`
	Eligible map[string][]string `json:"eligible"`
}

// Records returns every record of the run in scrape order.
func (r *RunResult) Records() []CardRecord {
	var out []CardRecord
	for _, s := range r.Sets {
		out = append(out, s.Records...)
	}
	return out
}

// RunOptions restricts the range of positions scraped in each set.
type RunOptions struct {
	// Start is the first local number to scrape. Values below 1 mean 1.
	Start int

	// End is the last local number to scrape. Zero means the set's MaxCardCount.
	End int

	// Limit caps the number of positions per set. Zero means no cap.
	Limit int
}

// bounds returns the inclusive local number range for a set.
func (o RunOptions) bounds(set SetDefinition) (int, int) {
	start := o.Start
	if start < 1 {
		start = 1
	}
	end := set.MaxCardCount
	if o.End > 0 && o.End < end {
		end = o.End
	}
	if o.Limit > 0 && start+o.Limit-1 < end {
		end = start + o.Limit - 1
	}
	return start, end
}
