package sources

import (
	"net/url"
	"strings"
)

// normSpace trims s and collapses inner whitespace runs to one space.
func normSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// resolveURL makes ref absolute against the page it was found on.
func resolveURL(pageURL, ref string) string {
	ref = strings.TrimSpace(ref)
	base, err := url.Parse(pageURL)
	if err != nil {
		return ref
	}
	u, err := base.Parse(ref)
	if err != nil {
		return ref
	}
	return u.String()
}
