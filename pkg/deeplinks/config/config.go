// Package config loads deeplinks settings from a TOML file, with overrides
// from the environment and an optional .env file.
//
// A configuration file looks like:
//
//	scheme = "app://"
//	log_level = "info"
//
//	[syntax]
//	begin = "{"
//	end = "}"
//	optional = "?"
//
//	[universal]
//	hosts = ["example.com", "www.example.com"]
//
//	[rewrites]
//	"https://example.com/promo" = "app://offers/spring"
//
//	[[route]]
//	name = "item"
//	paths = ["item/{id}", "items/{id}"]
//	loader = true
//
//	[[route]]
//	name = "legacy"
//	expression = "^legacy/.*$"
//	root_reset = true
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/BrandonKowalski/deeplinks/pkg/deeplinks"
	"github.com/BrandonKowalski/deeplinks/pkg/deeplinks/constants"
	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

var (
	// ErrMissingScheme indicates no app scheme was configured.
	ErrMissingScheme = errors.New("config: scheme is required")

	// ErrInvalidSyntax indicates the parameter symbols are unusable.
	ErrInvalidSyntax = errors.New("config: invalid parameter syntax")

	// ErrInvalidRoute indicates a route declares no path or both kinds of path.
	ErrInvalidRoute = errors.New("config: invalid route")
)

type Config struct {
	Scheme    string            `toml:"scheme"`
	LogLevel  string            `toml:"log_level"`
	LogPath   string            `toml:"log_path"`
	CacheSize int               `toml:"cache_size"`
	Syntax    SyntaxConfig      `toml:"syntax"`
	Universal UniversalConfig   `toml:"universal"`
	Rewrites  map[string]string `toml:"rewrites"`
	Routes    []RouteConfig     `toml:"route"`
}

type SyntaxConfig struct {
	Begin    string `toml:"begin"`
	End      string `toml:"end"`
	Optional string `toml:"optional"`
}

type UniversalConfig struct {
	Hosts []string `toml:"hosts"`
}

// RouteConfig declares a route. Exactly one of Paths and Expression is set.
type RouteConfig struct {
	Name       string   `toml:"name"`
	Paths      []string `toml:"paths"`
	Expression string   `toml:"expression"`
	Loader     bool     `toml:"loader"`
	RootReset  bool     `toml:"root_reset"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		LogLevel:  constants.DefaultLogLevel,
		CacheSize: constants.DefaultPatternCacheSize,
		Syntax: SyntaxConfig{
			Begin:    string(constants.DefaultBeginSymbol),
			End:      string(constants.DefaultEndSymbol),
			Optional: string(constants.DefaultOptionalSymbol),
		},
	}
}

// Load reads the TOML file at path on top of the defaults, then applies
// environment overrides. A .env file in the working directory is loaded
// first if present. An empty path skips the file.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("config: decode %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse reads configuration from TOML text on top of the defaults. The
// environment is not consulted.
func Parse(data string) (*Config, error) {
	cfg := Default()
	if _, err := toml.Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Scheme = firstNonEmpty(strings.TrimSpace(os.Getenv(constants.SchemeEnvVar)), c.Scheme)
	c.LogLevel = firstNonEmpty(strings.TrimSpace(os.Getenv(constants.LogLevelEnvVar)), c.LogLevel)
	c.LogPath = firstNonEmpty(strings.TrimSpace(os.Getenv(constants.LogPathEnvVar)), c.LogPath)
}

// Validate checks the scheme, the parameter symbols and every route.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Scheme) == "" {
		return ErrMissingScheme
	}

	symbols := []string{c.Syntax.Begin, c.Syntax.End, c.Syntax.Optional}
	seen := make(map[rune]bool, len(symbols))
	for _, symbol := range symbols {
		if utf8.RuneCountInString(symbol) != 1 {
			return fmt.Errorf("%w: %q must be a single character", ErrInvalidSyntax, symbol)
		}
		r, _ := utf8.DecodeRuneInString(symbol)
		if seen[r] {
			return fmt.Errorf("%w: %q is used twice", ErrInvalidSyntax, symbol)
		}
		seen[r] = true
	}

	for i, route := range c.Routes {
		hasPaths := len(route.Paths) > 0
		hasExpression := route.Expression != ""
		if hasPaths == hasExpression {
			return fmt.Errorf("%w: route %d (%q) needs exactly one of paths and expression", ErrInvalidRoute, i, route.Name)
		}
	}
	return nil
}

// ParameterSyntax returns the configured parameter markers.
func (c *Config) ParameterSyntax() deeplinks.Syntax {
	begin, _ := utf8.DecodeRuneInString(c.Syntax.Begin)
	end, _ := utf8.DecodeRuneInString(c.Syntax.End)
	optional, _ := utf8.DecodeRuneInString(c.Syntax.Optional)
	return deeplinks.Syntax{Begin: begin, End: end, Optional: optional}
}

// Configuration returns the service configuration.
func (c *Config) Configuration() deeplinks.Configuration {
	return deeplinks.Configuration{
		Syntax:           c.ParameterSyntax(),
		Scheme:           c.Scheme,
		PatternCacheSize: c.CacheSize,
	}
}

// Canonicalizer returns the universal link translation the configuration
// describes: exact rewrites first, then universal hosts. Nil if neither is set.
func (c *Config) Canonicalizer() deeplinks.Canonicalizer {
	var chain deeplinks.Chain
	if len(c.Rewrites) > 0 {
		chain = append(chain, deeplinks.RewriteTable(c.Rewrites))
	}
	if len(c.Universal.Hosts) > 0 {
		chain = append(chain, deeplinks.UniversalHosts{Scheme: c.Scheme, Hosts: c.Universal.Hosts})
	}
	if len(chain) == 0 {
		return nil
	}
	return chain
}

// Path returns the deeplink path the route declares.
func (r RouteConfig) Path() deeplinks.Path {
	if r.Expression != "" {
		return deeplinks.Expression(r.Expression)
	}
	return deeplinks.Paths(r.Paths...)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
