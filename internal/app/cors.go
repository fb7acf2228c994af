package app

import (
	"net/url"
	"strings"
)

// originAllowed reports whether a browser origin matches any configured
// pattern. Patterns match on "host[:port]": exact ("notes.example.com"),
// subdomain wildcard ("*.example.com"), or port wildcard ("localhost:*").
func originAllowed(patterns []string, origin string) bool {
	host := origin
	if u, err := url.Parse(origin); err == nil && u.Host != "" {
		host = u.Host
	}

	for _, pattern := range patterns {
		switch {
		case pattern == host:
			return true
		case strings.HasPrefix(pattern, "*."):
			if strings.HasSuffix(host, pattern[1:]) {
				return true
			}
		case strings.HasSuffix(pattern, ":*"):
			if strings.HasPrefix(host, strings.TrimSuffix(pattern, "*")) {
				return true
			}
		}
	}
	return false
}
