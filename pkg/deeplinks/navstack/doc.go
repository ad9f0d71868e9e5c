// Package navstack provides a headless presentation layer for deeplinks.
//
// A Navigator keeps a root scene, a stack of scenes shown in the primary
// context, one scene in the secondary (detail) context and one modal scene.
// It implements every presentation collaborator a deeplinks.Service needs,
// which makes it useful for command line tools, tests and platforms without
// a native navigation controller.
//
// # Basic Usage
//
//	nav := navstack.New()
//
//	service := deeplinks.New(cfg, deeplinks.Sources{
//	    Provider:   registry,
//	    Delegate:   nav,
//	    DataSource: nav,
//	})
//
//	service.Resolve(u, onError)
//	fmt.Println(nav.Transcript())
//	// present loader -> dismiss loader (animated) -> show item
//
// # Deferred Completions
//
// By default every completion callback runs before the call that triggered it
// returns. With WithDeferredCompletions, completions are queued instead and
// released one at a time with Step, or all at once with Drain. This mimics
// animations finishing on a UI event loop and exposes the ordering between
// interleaved deeplinks.
package navstack
