// Package url provides URL comparison helpers for slot matching.
package url

import (
	"net/url"
	"strings"
)

// Canonical reduces a URL to the form used to decide whether two tabs show
// the same page: lowercase scheme and host, no default port, no fragment,
// no trailing slash on the path. Query strings are significant.
// Unparseable input is returned trimmed.
func Canonical(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" {
		return raw
	}

	parsed.Scheme = strings.ToLower(parsed.Scheme)
	parsed.Host = strings.ToLower(parsed.Host)
	switch {
	case parsed.Scheme == "http" && strings.HasSuffix(parsed.Host, ":80"):
		parsed.Host = strings.TrimSuffix(parsed.Host, ":80")
	case parsed.Scheme == "https" && strings.HasSuffix(parsed.Host, ":443"):
		parsed.Host = strings.TrimSuffix(parsed.Host, ":443")
	}
	parsed.Fragment = ""
	parsed.RawFragment = ""
	parsed.Path = strings.TrimRight(parsed.Path, "/")
	parsed.RawPath = ""
	return parsed.String()
}

// SameDocument reports whether a and b canonicalize to the same non-empty URL.
func SameDocument(a, b string) bool {
	ca := Canonical(a)
	return ca != "" && ca == Canonical(b)
}

// restrictedPrefixes are pages where the browser refuses to run extension
// content scripts, so no scroll round trip can ever succeed.
var restrictedPrefixes = []string{
	"about:",
	"chrome:",
	"chrome-extension:",
	"edge:",
	"moz-extension:",
	"view-source:",
	"devtools:",
	"https://chrome.google.com/webstore",
	"https://chromewebstore.google.com",
	"https://addons.mozilla.org",
}

// IsRestricted reports whether raw is a page without a tab-side listener.
func IsRestricted(raw string) bool {
	lower := strings.ToLower(strings.TrimSpace(raw))
	if lower == "" {
		return true
	}
	for _, prefix := range restrictedPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}
