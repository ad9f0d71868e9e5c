package deeplinks_test

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/BrandonKowalski/deeplinks/pkg/deeplinks"
)

const scheme = "example://"

// recorder collects side effects in the order they happen.
type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) add(event string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recorder) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

// sceneMock completes dismissals right away unless holdDismiss is set.
type sceneMock struct {
	name        string
	rec         *recorder
	presented   bool
	holdDismiss bool
	pending     []func()
	onDismiss   func(animated bool)
}

func (s *sceneMock) Dismiss(animated bool, done func()) {
	if s.rec != nil {
		if animated {
			s.rec.add("dismiss " + s.name + " animated")
		} else {
			s.rec.add("dismiss " + s.name)
		}
	}
	if s.onDismiss != nil {
		s.onDismiss(animated)
	}
	s.presented = false
	if s.holdDismiss {
		s.pending = append(s.pending, done)
		return
	}
	done()
}

func (s *sceneMock) IsBeingPresented() bool {
	return s.presented
}

func (s *sceneMock) String() string {
	return s.name
}

type hostMock struct {
	rec          *recorder
	onPresent    func(scene deeplinks.Scene)
	onShow       func(scene deeplinks.Scene)
	onShowDetail func(scene deeplinks.Scene)
}

func (h *hostMock) Present(scene deeplinks.Scene, animated bool, done func()) {
	if h.rec != nil {
		h.rec.add("present " + nameOf(scene))
	}
	if h.onPresent != nil {
		h.onPresent(scene)
	}
	if s, ok := scene.(*sceneMock); ok {
		s.presented = true
	}
	done()
}

func (h *hostMock) ShowPrimary(scene deeplinks.Scene) {
	if h.rec != nil {
		h.rec.add("show " + nameOf(scene))
	}
	if h.onShow != nil {
		h.onShow(scene)
	}
}

func (h *hostMock) ShowSecondary(scene deeplinks.Scene) {
	if h.rec != nil {
		h.rec.add("show-detail " + nameOf(scene))
	}
	if h.onShowDetail != nil {
		h.onShowDetail(scene)
	}
}

func nameOf(scene deeplinks.Scene) string {
	if s, ok := scene.(fmt.Stringer); ok {
		return s.String()
	}
	return "scene"
}

type dataSourceMock struct {
	loader func() deeplinks.Scene
	host   *hostMock
}

func (d *dataSourceMock) LoaderScene() deeplinks.Scene {
	if d.loader != nil {
		return d.loader()
	}
	return &sceneMock{name: "loader"}
}

func (d *dataSourceMock) PresentationHost() deeplinks.Host {
	if d.host == nil {
		d.host = &hostMock{}
	}
	return d.host
}

// delegateMock completes root resets right away unless hold is set, in
// which case the completion is kept in pending.
type delegateMock struct {
	rec     *recorder
	onReset func()
	hold    bool
	pending []func()
}

func (d *delegateMock) ResetToRoot(done func()) {
	if d.rec != nil {
		d.rec.add("reset")
	}
	if d.onReset != nil {
		d.onReset()
	}
	if d.hold {
		d.pending = append(d.pending, done)
		return
	}
	done()
}

// fixture bundles a service with its collaborators.
type fixture struct {
	service    *deeplinks.Service
	registry   *deeplinks.Registry
	delegate   *delegateMock
	dataSource *dataSourceMock
	logs       *bytes.Buffer
}

func newFixture(t *testing.T, canonicalizer deeplinks.Canonicalizer, links ...deeplinks.Deeplink) *fixture {
	t.Helper()

	f := &fixture{
		registry:   deeplinks.NewRegistry(links...),
		delegate:   &delegateMock{},
		dataSource: &dataSourceMock{host: &hostMock{}},
		logs:       &bytes.Buffer{},
	}
	f.service = deeplinks.New(deeplinks.Configuration{
		Syntax: deeplinks.DefaultSyntax(),
		Scheme: scheme,
	}, deeplinks.Sources{
		Provider:      f.registry,
		Delegate:      f.delegate,
		DataSource:    f.dataSource,
		Canonicalizer: canonicalizer,
		Logger:        slog.New(slog.NewTextHandler(f.logs, &slog.HandlerOptions{Level: slog.LevelDebug})),
	})
	return f
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// routeMock builds a route answering with action or err.
func routeMock(path deeplinks.Path, loader, rootReset bool, action deeplinks.Action, err error) *deeplinks.Route[deeplinks.EmptyParameters] {
	return &deeplinks.Route[deeplinks.EmptyParameters]{
		Pattern:   path,
		Loader:    loader,
		RootReset: rootReset,
		OnHandle: func(_ []string, _ deeplinks.EmptyParameters, done func(deeplinks.Action, error)) {
			done(action, err)
		},
	}
}

type sampleParameters struct {
	SampleParameter string `json:"sampleParameter"`
}

func (p sampleParameters) Validate() error {
	if p.SampleParameter == "" {
		return errMissingSample
	}
	return nil
}
