package deeplinks

import (
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"github.com/BrandonKowalski/deeplinks/pkg/deeplinks/internal"
)

// matcher tests URLs against deeplink paths. Compiled paths are cached;
// paths that fail to compile are compiled again on every call so the
// failure is reported each time.
type matcher struct {
	canonicalizer Canonicalizer
	syntax        Syntax
	scheme        string
	cache         *internal.PatternCache[*regexp.Regexp]
	logger        *slog.Logger
}

func newMatcher(canonicalizer Canonicalizer, syntax Syntax, scheme string, cacheSize int, logger *slog.Logger) *matcher {
	return &matcher{
		canonicalizer: canonicalizer,
		syntax:        syntax,
		scheme:        normalizeScheme(scheme),
		cache:         internal.NewPatternCache[*regexp.Regexp](cacheSize),
		logger:        logger,
	}
}

// Matches reports whether u, once canonicalized and stripped of the app
// scheme, matches the path. URLs with another scheme never match.
func (m *matcher) Matches(u *url.URL, path Path) (bool, error) {
	re, err := m.compile(path)
	if err != nil {
		return false, err
	}

	raw := canonicalURL(m.canonicalizer, u).String()
	if !strings.HasPrefix(raw, m.scheme) {
		return false, nil
	}

	return re.MatchString(raw[len(m.scheme):]), nil
}

// First returns the first deeplink, in order, whose path matches u.
// A path that fails to compile aborts the scan.
func (m *matcher) First(u *url.URL, links []Deeplink) (Deeplink, error) {
	for _, link := range links {
		ok, err := m.Matches(u, link.Path())
		if err != nil {
			m.logger.Error("deeplink path is broken", "path", link.Path().String(), "error", err)
			return nil, err
		}
		if ok {
			return link, nil
		}
	}
	return nil, nil
}

// normalizeScheme lower-cases the scheme name, the part before ':', since
// net/url does the same to every URL it parses.
func normalizeScheme(scheme string) string {
	i := strings.IndexByte(scheme, ':')
	if i < 0 {
		return scheme
	}
	return strings.ToLower(scheme[:i]) + scheme[i:]
}

func (m *matcher) compile(path Path) (*regexp.Regexp, error) {
	key := m.cacheKey(path)
	if re, ok := m.cache.Get(key); ok {
		return re, nil
	}

	re, err := Compile(path, m.syntax)
	if err != nil {
		return nil, err
	}

	m.cache.Set(key, re)
	return re, nil
}

func (m *matcher) cacheKey(path Path) string {
	var b strings.Builder
	b.WriteString(m.syntax.String())
	if path.Kind() == PathKindExpression {
		b.WriteString("\x00e\x00")
		b.WriteString(path.Expr())
		return b.String()
	}
	b.WriteString("\x00p")
	for _, p := range path.paths {
		b.WriteByte(0)
		b.WriteString(p)
	}
	return b.String()
}
