package deeplinks

import (
	"log/slog"
	"sync"

	"github.com/BrandonKowalski/deeplinks/pkg/deeplinks/internal"
)

// coordinator sequences the presentation side effects of a deeplink:
//
//	root reset (optional) -> loader settling -> handling -> action or error
//
// Every step waits for its collaborator's completion before the next one
// starts, except the loader dismissal after an error, which is not awaited.
// A collaborator that never calls back stalls its session for good; there
// are no timeouts.
//
// The coordinator is shared by all sessions of a Service. It records at most
// one loader scene: the reference is set when a loader is handed to the host
// and cleared as soon as that loader is dismissed or replaced.
type coordinator struct {
	delegate   NavigationDelegate
	dataSource DataSource

	mu     sync.Mutex
	loader Scene
}

type handleResult struct {
	action Action
	err    error
}

// Process runs one session for link. handle is invoked once the screen is
// prepared; onError receives the failure if handling fails.
func (c *coordinator) Process(link Deeplink, handle handleFunc, onError func(*ProcessingError), logger *slog.Logger) {
	c.prepare(link, logger, func() {
		logger.Debug("handling deeplink", "stage", "handle")

		finish := internal.OnceWith(logger, "handle", func(r handleResult) {
			if r.err != nil {
				c.Fail(link, newHandlerFailed(r.err), onError, logger)
				return
			}
			c.perform(r.action, logger)
		})

		handle(func(action Action, err error) {
			finish(handleResult{action: action, err: err})
		})
	})
}

// Fail reports err for link: the loader is dropped without waiting, the
// deeplink's Recover hook and onError run once each, then the recovery
// action, if any, is performed.
func (c *coordinator) Fail(link Deeplink, err *ProcessingError, onError func(*ProcessingError), logger *slog.Logger) {
	logger.Debug("deeplink failed", "stage", "failed", "kind", err.Kind.String(), "error", err)

	c.clearAfterError(logger)

	recovery := link.Recover(err)

	if onError != nil {
		onError(err)
	} else {
		logger.Error("deeplink failed without an error handler", "error", err)
	}

	if recovery != nil {
		c.perform(recovery, logger)
	}
}

// ActiveLoader returns the loader scene currently recorded, or nil.
func (c *coordinator) ActiveLoader() Scene {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loader
}

func (c *coordinator) prepare(link Deeplink, logger *slog.Logger, done func()) {
	c.resetToRootIfNeeded(link, logger, func() {
		c.dismissLoader(false, logger, func() {
			c.presentLoaderIfNeeded(link, logger, done)
		})
	})
}

func (c *coordinator) resetToRootIfNeeded(link Deeplink, logger *slog.Logger, done func()) {
	if !link.NeedsRootReset() {
		done()
		return
	}

	logger.Debug("resetting navigation to root", "stage", "root_reset")
	c.delegate.ResetToRoot(internal.Once(logger, "reset_to_root", done))
}

func (c *coordinator) dismissLoader(animated bool, logger *slog.Logger, done func()) {
	loader := c.takeLoader()
	if loader == nil {
		done()
		return
	}

	logger.Debug("dismissing loader", "stage", "loader", "animated", animated)
	loader.Dismiss(animated, internal.Once(logger, "dismiss_loader", done))
}

func (c *coordinator) presentLoaderIfNeeded(link Deeplink, logger *slog.Logger, done func()) {
	if !link.NeedsLoader() {
		done()
		return
	}

	loader := c.dataSource.LoaderScene()
	host := c.dataSource.PresentationHost()

	if replaced := c.swapLoader(loader); replaced != nil {
		// Another session recorded a loader in between; keep only ours.
		replaced.Dismiss(false, internal.Once(logger, "dismiss_replaced_loader", func() {}))
	}

	logger.Debug("presenting loader", "stage", "loader")
	host.Present(loader, false, internal.Once(logger, "present_loader", done))
}

// perform runs action once any loader on screen is gone.
func (c *coordinator) perform(action Action, logger *slog.Logger) {
	loader := c.takeLoader()
	if loader == nil || !loader.IsBeingPresented() {
		c.execute(action, logger)
		return
	}

	logger.Debug("dismissing loader before action", "stage", "loader", "animated", true)
	loader.Dismiss(true, internal.Once(logger, "dismiss_loader", func() {
		c.execute(action, logger)
	}))
}

func (c *coordinator) clearAfterError(logger *slog.Logger) {
	loader := c.takeLoader()
	if loader == nil {
		return
	}

	logger.Debug("dropping loader after error", "stage", "failed")
	loader.Dismiss(true, internal.Once(logger, "dismiss_loader_after_error", func() {}))
}

func (c *coordinator) execute(action Action, logger *slog.Logger) {
	switch a := action.(type) {
	case nil:
		logger.Debug("deeplink produced no action", "stage", "execute")
	case PresentAction:
		logger.Debug("presenting scene", "stage", "execute", "strategy", a.Strategy.String())
		host := c.dataSource.PresentationHost()
		switch a.Strategy {
		case StrategyPrimary:
			host.ShowPrimary(a.Scene)
		case StrategySecondary:
			host.ShowSecondary(a.Scene)
		default:
			logger.Warn("unknown presenting strategy", "strategy", int(a.Strategy))
		}
	case CustomAction:
		logger.Debug("running custom action", "stage", "execute")
		if a != nil {
			a()
		}
	case HostAction:
		logger.Debug("running custom action with host", "stage", "execute")
		if a != nil {
			a(c.dataSource.PresentationHost())
		}
	default:
		logger.Warn("unsupported action type", "stage", "execute")
	}
}

func (c *coordinator) takeLoader() Scene {
	c.mu.Lock()
	defer c.mu.Unlock()
	loader := c.loader
	c.loader = nil
	return loader
}

func (c *coordinator) swapLoader(loader Scene) Scene {
	c.mu.Lock()
	defer c.mu.Unlock()
	previous := c.loader
	c.loader = loader
	return previous
}
