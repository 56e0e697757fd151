package sources

import (
	"time"

	"pocket-cards/core/reconcile"
)

// pokekalosDelay keeps the French site from rate limiting a full run.
const pokekalosDelay = time.Second

// Languages returns the supported source languages.
func Languages() []string {
	return []string{LanguageEN, LanguageFR}
}

// SupportsPromo reports whether the source of a language serves the promo sets.
// The English card site addresses promos under its own codes.
func SupportsPromo(lang string) bool {
	return lang == LanguageFR
}

// New returns the source for the configured language.
func New(cfg Config) (reconcile.Source, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Language {
	case LanguageFR:
		return NewPokekalos(NewFetcher(cfg, pokekalosDelay)), nil
	default:
		return NewLimitless(NewFetcher(cfg, 0)), nil
	}
}
