// utils/url.go - redirect and URL validation
package utils

import (
	"net/url"
	"strings"
)

// IsValidURL reports whether raw is an absolute http(s) URL.
func IsValidURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// ValidateReturnURL restricts post-auth redirect targets to same-origin
// relative paths. Returns the cleaned path, or "" when the input must not
// be used as a redirect target.
//
// Rejected: anything not starting with "/", protocol-relative "//" (and
// any double slash), backslashes, encoded nulls, CR/LF, and scheme
// prefixes like "javascript:".
func ValidateReturnURL(raw string) string {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return ""
	}
	if !strings.HasPrefix(candidate, "/") {
		return ""
	}
	if strings.Contains(candidate, "//") {
		return ""
	}
	if strings.Contains(candidate, "\\") {
		return ""
	}
	if strings.Contains(strings.ToLower(candidate), "%00") {
		return ""
	}
	if strings.ContainsAny(candidate, "\n\r\x00") {
		return ""
	}
	// A ":" before any "?" or "#" would let "/js:..." style paths smuggle
	// schemes through some clients; relative paths never need one.
	stop := len(candidate)
	if i := strings.IndexAny(candidate, "?#"); i >= 0 {
		stop = i
	}
	if strings.Contains(candidate[:stop], ":") {
		return ""
	}
	return candidate
}
