package reconcile

import "strings"

// PackOptionSeparator separates pack names when a source lists several options.
const PackOptionSeparator = "|"

// Pack rules select where rarity glyphs force EveryPack.
const (
	// PackRuleRarityOrText checks both the rarity symbol and the pack text.
	PackRuleRarityOrText = "rarity_or_text"
	// PackRuleTextOnly checks the pack text only, as the card sites lay it out.
	PackRuleTextOnly = "text_only"
)

// PackNormalizer maps raw, possibly localized pack text to a canonical pack id.
type PackNormalizer struct {
	glyphs       []string
	textOnly     bool
	markers      []string
	canonical    map[string]string
	translations map[string]string
}

// NewPackNormalizer builds a normalizer from the tables.
func NewPackNormalizer(t *Tables) *PackNormalizer {
	n := &PackNormalizer{
		glyphs:       append([]string(nil), t.RarityGlyphs...),
		textOnly:     t.PackRule == PackRuleTextOnly,
		canonical:    make(map[string]string, len(t.CanonicalPacks)),
		translations: make(map[string]string, len(t.PackTranslations)),
	}
	for _, m := range t.MultiPackMarkers {
		n.markers = append(n.markers, strings.ToLower(m))
	}
	for _, p := range t.CanonicalPacks {
		n.canonical[strings.ToLower(p)] = p
	}
	for from, to := range t.PackTranslations {
		n.translations[from] = to
	}
	return n
}

// Normalize returns the canonical pack for a card. The first matching rule wins:
// a rarity glyph in the rarity symbol or the pack text (pack text only under
// PackRuleTextOnly) or a multi-pack marker, several options, an already
// canonical name, a translated trailing token, and finally "<token> pack".
func (n *PackNormalizer) Normalize(rawPackText, raritySymbol string) string {
	text := strings.Join(strings.Fields(rawPackText), " ")
	if text == "" {
		return EveryPack
	}

	if n.hasMarker(text, raritySymbol) {
		return EveryPack
	}

	if strings.Contains(text, PackOptionSeparator) {
		var options []string
		for _, o := range strings.Split(text, PackOptionSeparator) {
			if o = strings.TrimSpace(o); o != "" {
				options = append(options, o)
			}
		}
		if len(options) != 1 {
			return EveryPack
		}
		text = options[0]
	}

	if p, ok := n.canonical[strings.ToLower(text)]; ok {
		return p
	}

	token := trailingToken(text)
	if token == "" {
		return EveryPack
	}
	if p, ok := n.translations[token]; ok {
		return p
	}
	if p, ok := n.canonical[strings.ToLower(token+" pack")]; ok {
		return p
	}
	return token + " pack"
}

func (n *PackNormalizer) hasMarker(text, raritySymbol string) bool {
	r := strings.TrimSpace(raritySymbol)
	for _, g := range n.glyphs {
		if g == "" {
			continue
		}
		if strings.Contains(text, g) || (!n.textOnly && strings.Contains(r, g)) {
			return true
		}
	}
	if r != "" && strings.Contains(text, r) {
		return true
	}
	lower := strings.ToLower(text)
	for _, m := range n.markers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// trailingToken returns the last word of a pack name, ignoring a final "pack".
func trailingToken(text string) string {
	words := strings.Fields(text)
	if len(words) > 1 && strings.EqualFold(words[len(words)-1], "pack") {
		words = words[:len(words)-1]
	}
	if len(words) == 0 {
		return ""
	}
	return words[len(words)-1]
}
