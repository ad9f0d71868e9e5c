package deeplinks

import (
	"net/url"
	"strings"
)

// Canonicalizer rewrites a URL into the app's deeplink form, typically
// turning a universal (web) link into a scheme-prefixed deeplink.
// Returning nil keeps the original URL.
type Canonicalizer interface {
	Canonicalize(u *url.URL) *url.URL
}

// CanonicalizerFunc adapts a function to the Canonicalizer interface.
type CanonicalizerFunc func(u *url.URL) *url.URL

func (f CanonicalizerFunc) Canonicalize(u *url.URL) *url.URL {
	return f(u)
}

// RewriteTable maps exact URL strings to the deeplinks they stand for.
type RewriteTable map[string]string

func (t RewriteTable) Canonicalize(u *url.URL) *url.URL {
	target, ok := t[u.String()]
	if !ok {
		return nil
	}
	rewritten, err := url.Parse(target)
	if err != nil {
		return nil
	}
	return rewritten
}

// UniversalHosts rewrites http(s) links on the listed hosts into deeplinks
// by replacing scheme and host with Scheme. Path, query and fragment are kept:
// "https://example.com/item/42?ref=mail" becomes "app://item/42?ref=mail".
type UniversalHosts struct {
	Scheme string   // App scheme including "://", e.g. "app://"
	Hosts  []string // Hosts whose links are universal links, compared case-insensitively
}

func (h UniversalHosts) Canonicalize(u *url.URL) *url.URL {
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil
	}

	matched := false
	for _, host := range h.Hosts {
		if strings.EqualFold(host, u.Hostname()) {
			matched = true
			break
		}
	}
	if !matched {
		return nil
	}

	target := h.Scheme + strings.TrimPrefix(u.EscapedPath(), "/")
	if u.RawQuery != "" {
		target += "?" + u.RawQuery
	}
	if u.Fragment != "" {
		target += "#" + u.EscapedFragment()
	}

	rewritten, err := url.Parse(target)
	if err != nil {
		return nil
	}
	return rewritten
}

// Chain tries each canonicalizer in order and uses the first rewrite.
type Chain []Canonicalizer

func (c Chain) Canonicalize(u *url.URL) *url.URL {
	for _, canonicalizer := range c {
		if canonicalizer == nil {
			continue
		}
		if rewritten := canonicalizer.Canonicalize(u); rewritten != nil {
			return rewritten
		}
	}
	return nil
}

// canonicalURL applies c to u, falling back to u itself.
func canonicalURL(c Canonicalizer, u *url.URL) *url.URL {
	if c == nil {
		return u
	}
	if rewritten := c.Canonicalize(u); rewritten != nil {
		return rewritten
	}
	return u
}
