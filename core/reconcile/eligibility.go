package reconcile

// Classifier decides special eligibility from rarity and set position.
type Classifier struct {
	thresholds map[string]int
	rarities   map[string]struct{}
}

// NewClassifier creates a classifier from the shiny thresholds and the
// rarity tiers that qualify.
func NewClassifier(thresholds map[string]int, rarities []string) *Classifier {
	c := &Classifier{
		thresholds: make(map[string]int, len(thresholds)),
		rarities:   make(map[string]struct{}, len(rarities)),
	}
	for code, n := range thresholds {
		c.thresholds[code] = n
	}
	for _, r := range rarities {
		c.rarities[r] = struct{}{}
	}
	return c
}

// Classify reports whether a card is eligible: its rarity must be one of the
// star tiers and it must sit below the set's shiny reprint range.
func (c *Classifier) Classify(setCode string, localNumber int, rarity string) bool {
	if _, ok := c.rarities[rarity]; !ok {
		return false
	}
	return !c.IsShiny(setCode, localNumber)
}

// IsShiny reports whether a local number falls in the set's shiny reprint range.
// Sets without a threshold have no such range.
func (c *Classifier) IsShiny(setCode string, localNumber int) bool {
	threshold, ok := c.thresholds[setCode]
	return ok && localNumber >= threshold
}
