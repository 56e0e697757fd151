// Package publish writes the outputs of a scrape run and pushes them to object
// storage.
//
// WriteFiles produces pokemon_cards_<lang>.json (every record, in scrape order)
// and pokemon_cards_<lang>_eligible.json (eligible canonical ids per set).
// Publisher uploads the same documents under cards/ and keeps the bucket
// layout in shape; ImageMirror copies card artwork under
// images/<set>/<set>_<nnn>_<LANG><ext>.
package publish
