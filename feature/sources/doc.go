// Package sources extracts raw card fields from the per-language card websites.
//
// Each source implements reconcile.Source and splits its work in two steps,
// Fetch and Parse. Fetching goes through a shared Fetcher (resty, bounded
// retries, politeness delay); parsing is a pure function of the page HTML,
// built on goquery selectors. Failures are returned as *FetchError so callers
// can tell a dead page from a changed layout.
//
//	limitless  (en)  https://pocket.limitlesstcg.com/cards/<set>/<n>
//	pokekalos  (fr)  https://www.pokekalos.fr/.../extensions/<slug>/cartes/<n>.html
package sources
