package reconcile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"pocket-cards/core/utils"

	"go.uber.org/zap"
)

// CatalogDocument is the master catalog as published by the game data mirror.
type CatalogDocument struct {
	CardEntryMap map[string]CatalogCard `json:"cardEntryMap"`
}

// CatalogCard is one entry of the catalog, keyed by its canonical id.
type CatalogCard struct {
	CollectionNums CollectionNums `json:"collectionNums"`
}

// CollectionNum places a card in one expansion.
type CollectionNum struct {
	Expansion *struct {
		ID string `json:"id"`
	} `json:"expansion"`
	// Num is a number in most documents and a string in some.
	Num any `json:"num"`
}

// CollectionNums accepts either a list of entries or a single entry.
type CollectionNums []CollectionNum

// UnmarshalJSON implements json.Unmarshaler.
func (c *CollectionNums) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*c = nil
		return nil
	}
	if trimmed[0] == '{' {
		var single CollectionNum
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return err
		}
		*c = CollectionNums{single}
		return nil
	}
	var list []CollectionNum
	if err := json.Unmarshal(trimmed, &list); err != nil {
		return err
	}
	*c = list
	return nil
}

// DecodeCatalog parses a catalog document.
func DecodeCatalog(r io.Reader) (*CatalogDocument, error) {
	var doc CatalogDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return &doc, nil
}

// CatalogKey addresses a card inside one expansion.
type CatalogKey struct {
	Expansion string
	Number    int
}

// CatalogEntry lists every key a canonical card is known under.
type CatalogEntry struct {
	CanonicalID string
	Keys        []CatalogKey
}

// Index maps (expansion, number) pairs to canonical card ids.
// It is read-only once built and may be shared between goroutines.
type Index struct {
	byKey   map[CatalogKey]string
	entries map[string]CatalogEntry
	aliases map[string]string
	skipped int
}

// BuildIndex indexes every collection entry of the document. Entries missing an
// expansion id or a number are skipped. When two cards claim the same key, the
// lowest canonical id wins so that repeated builds agree.
func BuildIndex(doc *CatalogDocument, aliases map[string]string, logger *zap.Logger) *Index {
	if logger == nil {
		logger = zap.NewNop()
	}

	idx := &Index{
		byKey:   make(map[CatalogKey]string),
		entries: make(map[string]CatalogEntry),
		aliases: make(map[string]string, len(aliases)),
	}
	for from, to := range aliases {
		idx.aliases[from] = to
	}
	if doc == nil {
		return idx
	}

	ids := make([]string, 0, len(doc.CardEntryMap))
	for id := range doc.CardEntryMap {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		card := doc.CardEntryMap[id]
		entry := CatalogEntry{CanonicalID: id}

		for _, c := range card.CollectionNums {
			expansion := ""
			if c.Expansion != nil {
				expansion = c.Expansion.ID
			}
			number := utils.ToInt(c.Num)
			if expansion == "" || number <= 0 {
				idx.skipped++
				logger.Debug("Skipping incomplete catalog entry",
					zap.String("canonical_id", id),
					zap.String("expansion", expansion),
					zap.String("num", utils.ToString(c.Num)),
				)
				continue
			}

			key := CatalogKey{Expansion: expansion, Number: number}
			if owner, taken := idx.byKey[key]; taken {
				logger.Warn("Catalog key claimed by several cards",
					zap.String("expansion", expansion),
					zap.Int("number", number),
					zap.String("kept", owner),
					zap.String("ignored", id),
				)
				continue
			}
			idx.byKey[key] = id
			entry.Keys = append(entry.Keys, key)
		}

		idx.entries[id] = entry
	}

	logger.Info("Catalog index built",
		zap.Int("cards", len(idx.entries)),
		zap.Int("keys", len(idx.byKey)),
		zap.Int("skipped", idx.skipped),
	)
	return idx
}

// Lookup returns the canonical id for a source expansion code and card number.
// Source codes are translated through the alias table first.
func (i *Index) Lookup(expansion string, number int) (string, bool) {
	if i == nil {
		return "", false
	}
	if alias, ok := i.aliases[expansion]; ok {
		expansion = alias
	}
	id, ok := i.byKey[CatalogKey{Expansion: expansion, Number: number}]
	return id, ok
}

// Entry returns the catalog entry of a canonical id.
func (i *Index) Entry(canonicalID string) (CatalogEntry, bool) {
	if i == nil {
		return CatalogEntry{}, false
	}
	e, ok := i.entries[canonicalID]
	return e, ok
}

// Len returns the number of indexed keys.
func (i *Index) Len() int {
	if i == nil {
		return 0
	}
	return len(i.byKey)
}

// Skipped returns the number of incomplete collection entries ignored at build time.
func (i *Index) Skipped() int {
	if i == nil {
		return 0
	}
	return i.skipped
}
