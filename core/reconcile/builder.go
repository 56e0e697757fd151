package reconcile

import (
	"strings"

	"go.uber.org/zap"
)

// Builder turns raw extracted fields into reconciled card records.
type Builder struct {
	tables     *Tables
	index      *Index
	classifier *Classifier
	packs      *PackNormalizer
	language   string
	logger     *zap.Logger
}

// NewBuilder wires the classifier, pack normalizer and catalog index of a run.
func NewBuilder(tables *Tables, index *Index, language string, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{
		tables:     tables,
		index:      index,
		classifier: NewClassifier(tables.ShinyThresholds, tables.EligibleRarities),
		packs:      NewPackNormalizer(tables),
		language:   language,
		logger:     logger,
	}
}

// Build composes one record. A catalog miss leaves CanonicalID empty; the record
// is still returned.
func (b *Builder) Build(set SetDefinition, globalID int, raw RawCard) CardRecord {
	rarity := strings.TrimSpace(raw.RarityText)
	setCode := b.ResolveSetCode(raw.SetDetails, set.Code)

	details := strings.TrimSpace(raw.SetDetails)
	if details == "" {
		details = set.DisplayName + " (" + set.Code + ")"
	}

	rec := CardRecord{
		GlobalSequenceID: globalID,
		LocalCardNumber:  raw.LocalNumber,
		Name:             strings.TrimSpace(raw.Name),
		ImageURL:         strings.TrimSpace(raw.ImageURL),
		RaritySymbol:     rarity,
		SetDetails:       details,
		SetCode:          setCode,
		PackAssignment:   b.packs.Normalize(raw.PackText, rarity),
		Language:         b.language,
	}

	if !b.isPromo(setCode, set) {
		rec.Eligible = b.classifier.Classify(setCode, raw.LocalNumber, rarity)
	}

	if id, ok := b.index.Lookup(setCode, raw.LocalNumber); ok {
		rec.CanonicalID = id
	} else {
		b.logger.Warn("Canonical id not found",
			zap.String("set", setCode),
			zap.Int("number", raw.LocalNumber),
			zap.Int("global_id", globalID),
		)
	}

	return rec
}

// ResolveSetCode reads the set code from descriptive set text such as
// "Eevee Grove (A3b)". Text without a code is matched against display names.
// The fallback is returned when neither works.
func (b *Builder) ResolveSetCode(details, fallback string) string {
	start := strings.Index(details, "(")
	end := strings.Index(details, ")")
	if start >= 0 && end > start+1 {
		return strings.TrimSpace(details[start+1 : end])
	}
	if code, ok := b.tables.CodeForName(details); ok {
		return code
	}
	return fallback
}

func (b *Builder) isPromo(code string, scraped SetDefinition) bool {
	if scraped.Promo {
		return true
	}
	if s, ok := b.tables.Set(code); ok {
		return s.Promo
	}
	return false
}
