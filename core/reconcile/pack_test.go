package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPackNormalizer_Normalize(t *testing.T) {
	n := NewPackNormalizer(loadTables(t))

	tests := []struct {
		name   string
		pack   string
		rarity string
		want   string
	}{
		{"English canonical", "Pikachu pack", "", "Pikachu pack"},
		{"English canonical case", "charizard Pack", "", "Charizard pack"},
		{"English two word canonical", "Mega Blaziken pack", "", "Mega Blaziken pack"},
		{"Diamond rarity", "Pikachu pack", "◊", EveryPack},
		{"Star rarity", "Pikachu pack", "☆☆", EveryPack},
		{"Crown rarity", "Pikachu pack", "Crown Rare", EveryPack},
		{"Crown glyph rarity", "Pikachu pack", "♛", EveryPack},
		{"Rarity without glyph", "Pikachu pack", "✦✦", "Pikachu pack"},
		{"Diamond glyph", "◊◊", "◊◊", EveryPack},
		{"Star glyph", "☆☆", "", EveryPack},
		{"Crown", "Crown Rare", "", EveryPack},
		{"Crown glyph", "♛", "", EveryPack},
		{"Rarity symbol in pack text", "Shiny ✦✦", "✦✦", EveryPack},
		{"Multi-pack marker", "Every pack", "", EveryPack},
		{"Multi-pack marker any case", "EVERY PACK", "", EveryPack},
		{"Several options", "Puissance Génétique Pikachu | Puissance Génétique Mewtwo", "", EveryPack},
		{"Single option with separator", "Puissance Génétique Pikachu |", "", "Pikachu pack"},
		{"Localized translated", "Puissance Génétique Dracaufeu", "", "Charizard pack"},
		{"Localized to every pack", "L'Île Fabuleuse Mew", "", EveryPack},
		{"Localized mega", "Méga-Ascension Méga-Léviator", "", "Mega Gyarados pack"},
		{"Localized matching canonical token", "Puissance Génétique Pikachu", "", "Pikachu pack"},
		{"Unknown token fallback", "Gardiens Astraux Lunala", "", "Lunala pack"},
		{"Unknown new pack", "Booster Zygarde", "", "Zygarde pack"},
		{"Empty text", "", "◊", EveryPack},
		{"Whitespace text", "   ", "", EveryPack},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Normalize(tt.pack, tt.rarity))
		})
	}
}

func TestPackNormalizer_TextOnlyRule(t *testing.T) {
	tables := loadTables(t)
	tables.PackRule = PackRuleTextOnly
	n := NewPackNormalizer(tables)

	tests := []struct {
		name   string
		pack   string
		rarity string
		want   string
	}{
		{"Diamond rarity keeps pack", "Pikachu pack", "◊", "Pikachu pack"},
		{"Star rarity keeps pack", "charizard Pack", "☆☆", "Charizard pack"},
		{"Crown rarity keeps pack", "Puissance Génétique Dracaufeu", "Crown Rare", "Charizard pack"},
		{"Glyph in pack text", "Pikachu pack ◊", "", EveryPack},
		{"Rarity repeated in pack text", "Shiny ✦✦", "✦✦", EveryPack},
		{"Multi-pack marker", "Every pack", "◊", EveryPack},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Normalize(tt.pack, tt.rarity))
		})
	}
}

func TestPackNormalizer_Idempotent(t *testing.T) {
	tables := loadTables(t)
	n := NewPackNormalizer(tables)

	textOnly := *tables
	textOnly.PackRule = PackRuleTextOnly
	nText := NewPackNormalizer(&textOnly)

	outputs := append([]string{EveryPack, "Zygarde pack"}, tables.CanonicalPacks...)
	for _, to := range tables.PackTranslations {
		outputs = append(outputs, to)
	}

	for _, out := range outputs {
		assert.Equal(t, out, n.Normalize(out, ""), "normalizing %q again", out)
		assert.Equal(t, out, nText.Normalize(out, "◊"), "normalizing %q again with a rarity", out)
	}
}

func TestPackNormalizer_GlyphAlwaysWins(t *testing.T) {
	tables := loadTables(t)
	n := NewPackNormalizer(tables)

	for _, g := range tables.RarityGlyphs {
		for _, p := range tables.CanonicalPacks {
			assert.Equal(t, EveryPack, n.Normalize(p+" "+g, ""))
			assert.Equal(t, EveryPack, n.Normalize(p, g+g))
		}
	}
}
