// Package internal contains the infrastructure shared by the deeplinks packages:
// logging, single-fire completion guards and bounded caches.
// Types and functions in this package are not part of the public API.
package internal
