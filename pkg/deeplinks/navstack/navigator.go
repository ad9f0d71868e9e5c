package navstack

import (
	"fmt"
	"strings"
	"sync"

	"github.com/BrandonKowalski/deeplinks/pkg/deeplinks"
	"github.com/BrandonKowalski/deeplinks/pkg/deeplinks/constants"
	"go.uber.org/atomic"
)

// Scene is a named headless scene.
type Scene struct {
	Name string

	navigator *Navigator
	presented atomic.Bool
}

// Dismiss removes the scene if it is the presented modal scene.
func (s *Scene) Dismiss(animated bool, done func()) {
	s.navigator.dismiss(s, animated, done)
}

// IsBeingPresented reports whether the scene is the presented modal scene.
func (s *Scene) IsBeingPresented() bool {
	return s.presented.Load()
}

func (s *Scene) String() string {
	return s.Name
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithDeferredCompletions queues completion callbacks instead of calling
// them right away. Queued callbacks run through Step or Drain, which lets
// callers play the part of a UI event loop.
func WithDeferredCompletions() Option {
	return func(n *Navigator) {
		n.deferred = true
	}
}

// WithLoaderName sets the name given to loader scenes.
func WithLoaderName(name string) Option {
	return func(n *Navigator) {
		n.loaderName = name
	}
}

// Navigator is an in-memory presentation layer: a root scene, a primary
// stack above it, a secondary (detail) slot and a single modal slot. It
// records every navigation event so that the sequence can be inspected.
//
// Navigator implements deeplinks.Host, deeplinks.DataSource and
// deeplinks.NavigationDelegate.
type Navigator struct {
	mu         sync.Mutex
	root       *Scene
	stack      Stack
	detail     deeplinks.Scene
	modal      deeplinks.Scene
	events     []string
	pending    []func()
	deferred   bool
	loaderName string
	loaders    int
}

// New creates a Navigator showing only its root scene.
func New(opts ...Option) *Navigator {
	n := &Navigator{
		loaderName: constants.DefaultLoaderName,
	}
	n.root = &Scene{Name: constants.DefaultRootName, navigator: n}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// NewScene creates a scene owned by the navigator.
func (n *Navigator) NewScene(name string) *Scene {
	return &Scene{Name: name, navigator: n}
}

// Present shows scene in the modal slot.
func (n *Navigator) Present(scene deeplinks.Scene, animated bool, done func()) {
	n.mu.Lock()
	n.modal = scene
	if s, ok := scene.(*Scene); ok {
		s.presented.Store(true)
	}
	n.record("present", scene, animated)
	n.mu.Unlock()

	n.complete(done)
}

// ShowPrimary pushes scene on the primary stack.
func (n *Navigator) ShowPrimary(scene deeplinks.Scene) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stack.Push(scene)
	n.record("show", scene, false)
}

// ShowSecondary puts scene in the secondary slot.
func (n *Navigator) ShowSecondary(scene deeplinks.Scene) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.detail = scene
	n.record("show-detail", scene, false)
}

// Back pops the top scene of the primary stack and returns it, or nil if
// only the root is left.
func (n *Navigator) Back() deeplinks.Scene {
	n.mu.Lock()
	defer n.mu.Unlock()
	scene := n.stack.Pop()
	if scene == nil {
		return nil
	}
	n.record("back", scene, false)
	return scene
}

// LoaderScene creates a new loader scene.
func (n *Navigator) LoaderScene() deeplinks.Scene {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.loaders++
	return &Scene{Name: n.loaderName, navigator: n}
}

// PresentationHost returns the navigator itself.
func (n *Navigator) PresentationHost() deeplinks.Host {
	return n
}

// ResetToRoot drops the modal scene, the secondary scene and the stack.
func (n *Navigator) ResetToRoot(done func()) {
	n.mu.Lock()
	if s, ok := n.modal.(*Scene); ok {
		s.presented.Store(false)
	}
	n.modal = nil
	n.detail = nil
	n.stack.Truncate(0)
	n.events = append(n.events, "reset")
	n.mu.Unlock()

	n.complete(done)
}

func (n *Navigator) dismiss(s *Scene, animated bool, done func()) {
	n.mu.Lock()
	if n.modal == deeplinks.Scene(s) {
		n.modal = nil
	}
	s.presented.Store(false)
	n.record("dismiss", s, animated)
	n.mu.Unlock()

	n.complete(done)
}

// Top returns the scene currently on top: the modal scene, else the top of
// the stack, else the root.
func (n *Navigator) Top() deeplinks.Scene {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.modal != nil {
		return n.modal
	}
	if top := n.stack.Top(); top != nil {
		return top
	}
	return n.root
}

// Modal returns the presented modal scene, or nil.
func (n *Navigator) Modal() deeplinks.Scene {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.modal
}

// Detail returns the scene in the secondary slot, or nil.
func (n *Navigator) Detail() deeplinks.Scene {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.detail
}

// Depth returns the number of scenes pushed above the root.
func (n *Navigator) Depth() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.stack.Len()
}

// Scenes returns the primary stack above the root, bottom first.
func (n *Navigator) Scenes() []deeplinks.Scene {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.stack.Scenes()
}

// LoadersCreated returns how many loader scenes were handed out.
func (n *Navigator) LoadersCreated() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.loaders
}

// Events returns the recorded navigation events, oldest first, e.g.
// "present loader", "dismiss loader (animated)", "show item".
func (n *Navigator) Events() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.events...)
}

// Transcript returns the events joined by " -> ".
func (n *Navigator) Transcript() string {
	return strings.Join(n.Events(), " -> ")
}

// Pending returns the number of queued completions.
func (n *Navigator) Pending() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.pending)
}

// Step runs the oldest queued completion. Returns false if none was queued.
func (n *Navigator) Step() bool {
	n.mu.Lock()
	if len(n.pending) == 0 {
		n.mu.Unlock()
		return false
	}
	next := n.pending[0]
	n.pending = n.pending[1:]
	n.mu.Unlock()

	next()
	return true
}

// Drain runs queued completions, including ones queued while draining,
// until none is left.
func (n *Navigator) Drain() {
	for n.Step() {
	}
}

func (n *Navigator) complete(done func()) {
	if done == nil {
		return
	}

	n.mu.Lock()
	if n.deferred {
		n.pending = append(n.pending, done)
		n.mu.Unlock()
		return
	}
	n.mu.Unlock()

	done()
}

func (n *Navigator) record(kind string, scene deeplinks.Scene, animated bool) {
	event := kind + " " + sceneName(scene)
	if animated {
		event += " (animated)"
	}
	n.events = append(n.events, event)
}

func sceneName(scene deeplinks.Scene) string {
	if s, ok := scene.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", scene)
}
