package reconcile

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed tables.yaml
var defaultTables []byte

// Gap is a permanent discontinuity in the global numbering.
// The boundary id is still assigned; the Size ids after it are never used.
type Gap struct {
	Boundary int `yaml:"boundary"`
	Size     int `yaml:"size"`
}

// Tables is the static configuration of the reconciliation engine.
// It is loaded once at startup and never mutated afterwards.
type Tables struct {
	Sets             []SetDefinition   `yaml:"sets"`
	Gaps             []Gap             `yaml:"gaps"`
	ShinyThresholds  map[string]int    `yaml:"shiny_thresholds"`
	EligibleRarities []string          `yaml:"eligible_rarities"`
	RarityGlyphs     []string          `yaml:"rarity_glyphs"`
	PackRule         string            `yaml:"pack_rule"`
	MultiPackMarkers []string          `yaml:"multi_pack_markers"`
	CanonicalPacks   []string          `yaml:"canonical_packs"`
	PackTranslations map[string]string `yaml:"pack_translations"`
	ExpansionAliases map[string]string `yaml:"expansion_aliases"`
}

// DefaultTables returns the embedded tables.
func DefaultTables() (*Tables, error) {
	return ParseTables(defaultTables)
}

// LoadTables reads tables from a YAML file, or the embedded defaults when path is empty.
func LoadTables(path string) (*Tables, error) {
	if path == "" {
		return DefaultTables()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tables %s: %w", path, err)
	}
	return ParseTables(data)
}

// ParseTables decodes YAML tables and sorts the gap table by boundary.
func ParseTables(data []byte) (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse tables: %w", err)
	}
	sort.Slice(t.Gaps, func(i, j int) bool {
		return t.Gaps[i].Boundary < t.Gaps[j].Boundary
	})
	return &t, nil
}

// Set returns the definition for a set code.
func (t *Tables) Set(code string) (SetDefinition, bool) {
	for _, s := range t.Sets {
		if s.Code == code {
			return s, true
		}
	}
	return SetDefinition{}, false
}

// CodeForName maps a display name to its set code. A ": " in the name is
// read as a plain space, the way some sources punctuate expansion names.
func (t *Tables) CodeForName(name string) (string, bool) {
	normalized := strings.TrimSpace(strings.ReplaceAll(name, ": ", " "))
	for _, s := range t.Sets {
		if strings.EqualFold(s.DisplayName, normalized) {
			return s.Code, true
		}
	}
	return "", false
}

// RegularSets returns every non-promotional set in declared order.
func (t *Tables) RegularSets() []SetDefinition {
	out := make([]SetDefinition, 0, len(t.Sets))
	for _, s := range t.Sets {
		if !s.Promo {
			out = append(out, s)
		}
	}
	return out
}

// PromoSets returns every promotional set in declared order.
func (t *Tables) PromoSets() []SetDefinition {
	var out []SetDefinition
	for _, s := range t.Sets {
		if s.Promo {
			out = append(out, s)
		}
	}
	return out
}

// SelectSets resolves set codes to definitions, keeping the declared table order.
func (t *Tables) SelectSets(codes []string) ([]SetDefinition, error) {
	wanted := make(map[string]bool, len(codes))
	for _, c := range codes {
		wanted[c] = true
	}

	var out []SetDefinition
	for _, s := range t.Sets {
		if wanted[s.Code] {
			out = append(out, s)
			delete(wanted, s.Code)
		}
	}

	if len(wanted) > 0 {
		unknown := make([]string, 0, len(wanted))
		for c := range wanted {
			unknown = append(unknown, c)
		}
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown sets: %s", strings.Join(unknown, ", "))
	}
	return out, nil
}

// Validate reports table values that look like mistakes. None of them stop a run;
// they are surfaced so an operator can confirm them.
func (t *Tables) Validate() []string {
	var warnings []string

	seen := make(map[string]bool)
	for _, s := range t.Sets {
		if seen[s.Code] {
			warnings = append(warnings, fmt.Sprintf("set %s is declared more than once", s.Code))
		}
		seen[s.Code] = true

		if s.Promo && !s.OffsetConfirmed {
			warnings = append(warnings, fmt.Sprintf("promo set %s start offset %d is not confirmed", s.Code, s.GlobalStartOffset))
		}
		if s.MaxCardCount <= 0 {
			warnings = append(warnings, fmt.Sprintf("set %s has no cards", s.Code))
		}
		for _, g := range t.Gaps {
			if s.GlobalStartOffset > g.Boundary && s.GlobalStartOffset <= g.Boundary+g.Size {
				warnings = append(warnings, fmt.Sprintf("set %s starts at %d inside the gap after %d", s.Code, s.GlobalStartOffset, g.Boundary))
			}
		}
	}

	for i, g := range t.Gaps {
		if g.Size < 0 {
			warnings = append(warnings, fmt.Sprintf("gap at %d has negative size %d", g.Boundary, g.Size))
		}
		if i > 0 {
			prev := t.Gaps[i-1]
			if g.Boundary <= prev.Boundary+prev.Size {
				warnings = append(warnings, fmt.Sprintf("gap at %d overlaps gap at %d", g.Boundary, prev.Boundary))
			}
		}
	}

	switch t.PackRule {
	case "", PackRuleRarityOrText, PackRuleTextOnly:
	default:
		warnings = append(warnings, fmt.Sprintf("unknown pack rule %q, using %s", t.PackRule, PackRuleRarityOrText))
	}

	for code := range t.ShinyThresholds {
		if !seen[code] {
			warnings = append(warnings, fmt.Sprintf("shiny threshold for undeclared set %s", code))
		}
	}

	sort.Strings(warnings)
	return warnings
}
