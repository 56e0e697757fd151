package publish

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"pocket-cards/core/reconcile"
)

// CardsFileName returns the name of the full card list of a language.
func CardsFileName(lang string) string {
	return fmt.Sprintf("pokemon_cards_%s.json", lang)
}

// EligibleFileName returns the name of the eligible id list of a language.
func EligibleFileName(lang string) string {
	return fmt.Sprintf("pokemon_cards_%s_eligible.json", lang)
}

// EncodeRecords writes records as an indented JSON array. Non-ASCII text such as
// rarity glyphs and accented names is written as is.
func EncodeRecords(w io.Writer, records []reconcile.CardRecord) error {
	if records == nil {
		records = []reconcile.CardRecord{}
	}
	return encode(w, records)
}

// EncodeEligible writes the eligible canonical ids grouped by set code.
func EncodeEligible(w io.Writer, eligible map[string][]string) error {
	if eligible == nil {
		eligible = map[string][]string{}
	}
	return encode(w, eligible)
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	return enc.Encode(v)
}

// WriteFiles writes the card list and the eligible list of a run into dir and
// returns the written paths.
func WriteFiles(dir, lang string, result *reconcile.RunResult) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output dir %s: %w", dir, err)
	}

	cardsPath := filepath.Join(dir, CardsFileName(lang))
	if err := writeFile(cardsPath, func(w io.Writer) error {
		return EncodeRecords(w, result.Records())
	}); err != nil {
		return nil, err
	}

	eligiblePath := filepath.Join(dir, EligibleFileName(lang))
	if err := writeFile(eligiblePath, func(w io.Writer) error {
		return EncodeEligible(w, result.Eligible)
	}); err != nil {
		return nil, err
	}

	return []string{cardsPath, eligiblePath}, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

// LoadRecords reads a card list written by WriteFiles.
func LoadRecords(path string) ([]reconcile.CardRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var records []reconcile.CardRecord
	if err := json.NewDecoder(f).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return records, nil
}
