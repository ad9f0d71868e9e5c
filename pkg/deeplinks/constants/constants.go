// Package constants defines shared constants and configuration defaults
// used throughout the deeplinks module.
package constants

import "os"

// Development is the environment variable value for development mode.
const Development = "DEV"

// Environment variable names read by the module.
const (
	DebugEnvVar    = "DEEPLINKS_DEBUG"     // Any non-empty value forces debug logging
	SchemeEnvVar   = "DEEPLINKS_SCHEME"    // Overrides the configured app scheme
	LogLevelEnvVar = "DEEPLINKS_LOG_LEVEL" // Overrides the configured log level
	LogPathEnvVar  = "DEEPLINKS_LOG_PATH"  // Overrides the configured log file path
)

// IsDevMode returns true if running in development mode (ENVIRONMENT=DEV).
func IsDevMode() bool {
	return os.Getenv("ENVIRONMENT") == Development
}

// IsDebug returns true if debug logging was requested through the environment.
func IsDebug() bool {
	return os.Getenv(DebugEnvVar) != "" || IsDevMode()
}

// Default parameter markers used in declarative paths, e.g. "item/{id}" or "search?{q?}".
const (
	DefaultBeginSymbol    = '{'
	DefaultEndSymbol      = '}'
	DefaultOptionalSymbol = '?'
)

// Default sizing and naming constants.
const (
	DefaultPatternCacheSize = 128      // Compiled patterns kept by a matcher
	DefaultLogLevel         = "error"  // Level used when nothing else is configured
	DefaultLoaderName       = "loader" // Scene name given to headless loader scenes
	DefaultRootName         = "root"   // Scene name of the headless navigation root
)
