// Package cards persists reconciled card records in the database and serves
// them over HTTP.
//
// Rows live in the "cards" table, one per (language, set, local number).
// Saving a run upserts its records, so the table always reflects the latest
// scrape of each card. CheckSchema compares the live table with CardRow and is
// used by the "cards schema" command and GET /cards/schema.
package cards
