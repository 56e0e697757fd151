package cards

import (
	"context"
	"fmt"
	"slices"

	"pocket-cards/core/reconcile"
	"pocket-cards/feature/sources"

	"go.uber.org/zap"
)

// Service exposes saved card records.
type Service struct {
	store  *Store
	logger *zap.Logger
}

// NewService creates a card service.
func NewService(store *Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

func checkLanguage(lang string) error {
	if !slices.Contains(sources.Languages(), lang) {
		return fmt.Errorf("unsupported language %q", lang)
	}
	return nil
}

// Save persists a run.
func (s *Service) Save(ctx context.Context, result *reconcile.RunResult) (string, int, error) {
	return s.store.SaveRun(ctx, result)
}

// ListSet returns the saved records of one set.
func (s *Service) ListSet(ctx context.Context, lang, set string) ([]reconcile.CardRecord, error) {
	if err := checkLanguage(lang); err != nil {
		return nil, err
	}
	return s.store.ListBySet(ctx, lang, set)
}

// Eligible returns the eligible canonical ids of a language by set.
func (s *Service) Eligible(ctx context.Context, lang string) (map[string][]string, error) {
	if err := checkLanguage(lang); err != nil {
		return nil, err
	}
	return s.store.Eligible(ctx, lang)
}

// Schema compares the cards table with the model.
func (s *Service) Schema(ctx context.Context) (*SchemaReport, error) {
	return s.store.CheckSchema(ctx)
}
