// Package utils provides small conversion helpers shared by the catalog decoder,
// the card page parsers and the image key builder.
package utils
