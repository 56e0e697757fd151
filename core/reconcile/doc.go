// Package reconcile reconciles cards scraped from per-language websites into
// records that share one identity across sources.
//
// The engine is made of four small parts wired together by Builder and Engine:
//
//  1. Allocator: a gap-aware running counter that gives every scraped card a
//     global sequence id. Declared gaps reproduce the unused slots of the
//     game's own numbering.
//
//  2. Index: built once per run from the master catalog document. It maps
//     (expansion, number) pairs to canonical card ids, translating source-side
//     aliases such as "PA" first.
//
//  3. Classifier: a pure function of set, local number and rarity that flags
//     star-rarity cards outside the set's shiny reprint range.
//
//  4. PackNormalizer: maps raw or localized pack names to one canonical pack
//     vocabulary so that grouping by pack does not depend on the source.
//
// All numeric offsets, gaps, thresholds and translations live in Tables
// (tables.yaml, embedded, overridable from a file) rather than in code.
//
// # Usage
//
//	tables, _ := reconcile.DefaultTables()
//	index := reconcile.BuildIndex(doc, tables.ExpansionAliases, logger)
//	engine := reconcile.NewEngine(tables, index, logger)
//	result, err := engine.Run(ctx, source, tables.RegularSets(), reconcile.RunOptions{})
//
// # Failure policy
//
// A catalog miss degrades a record (empty CanonicalID) but never stops a run.
// More than MaxConsecutiveFailures extraction failures in a row abandon the
// rest of a set. Missing table entries mean "no adjustment".
package reconcile
