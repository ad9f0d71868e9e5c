package deeplinks

import (
	"net/url"
	"strings"
)

// Request is what a URL carries once matched: its path segments, host
// first, and its query parameters.
type Request struct {
	Segments   []string
	Parameters map[string]string
}

type extractor struct {
	canonicalizer Canonicalizer
}

// Extract splits the canonical form of u into segments and parameters.
// Empty path components are dropped. Query items are split on '&' only, so
// values may contain ';'. When a query key repeats, the last value wins.
func (e *extractor) Extract(u *url.URL) Request {
	u = canonicalURL(e.canonicalizer, u)

	segments := make([]string, 0, 4)
	if host := u.Hostname(); host != "" {
		segments = append(segments, host)
	}
	for _, item := range strings.Split(u.Path, "/") {
		if item != "" {
			segments = append(segments, item)
		}
	}

	return Request{Segments: segments, Parameters: queryItems(u.RawQuery)}
}

// queryItems folds a raw query into a map. Items that fail to unescape are
// kept as written.
func queryItems(rawQuery string) map[string]string {
	parameters := make(map[string]string)
	for _, item := range strings.Split(rawQuery, "&") {
		if item == "" {
			continue
		}
		key, value, _ := strings.Cut(item, "=")
		parameters[unescapeQuery(key)] = unescapeQuery(value)
	}
	return parameters
}

func unescapeQuery(s string) string {
	unescaped, err := url.QueryUnescape(s)
	if err != nil {
		return s
	}
	return unescaped
}
