// Package catalog downloads the master card catalog and answers canonical id
// lookups against it.
//
// The Client fetches the catalog document with resty; the Service builds a
// reconcile.Index from it and keeps the index in a reconcile.CatalogCache so
// that API lookups and scrape runs share one download.
//
// # Routes
//
//	GET  /catalog                       index statistics
//	GET  /catalog/:expansion/:number    canonical id of one card
//	POST /catalog/refresh               drop the cached index
package catalog
