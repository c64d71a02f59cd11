// Package exhibit wires the region layout, the navigation cursor and the
// autoplay controller into one application context.
//
// An [App] owns every engine component; there is no package-level state.
// Hosts drive it from a single goroutine: the terminal UI from its update
// loop, headless deployments through a [Loop]. Neither App nor its
// components lock.
//
// # Focus
//
// A region gains focus either automatically, when the autoplay phase ends,
// or manually, when a pointer lands on it. Both paths go through the same
// focus request so that logging and hooks see them alike.
//
// # Interaction and Idle
//
// Any manual action (pointer, navigation) pauses autoplay and re-arms the
// idle monitor. A pointer hit also moves the autoplay cycle onto the hit
// region, which fades in while autoplay stays paused. When the monitor's
// timeout passes without further input, autoplay resumes on its current
// region with a fresh phase. An explicit
// hold ([App.SetHold]) keeps autoplay paused regardless of idle time.
package exhibit

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/exhibit/pkg/autoplay"
	"github.com/matzehuels/exhibit/pkg/catalog"
	"github.com/matzehuels/exhibit/pkg/errors"
	"github.com/matzehuels/exhibit/pkg/layout"
	"github.com/matzehuels/exhibit/pkg/navigation"
	"github.com/matzehuels/exhibit/pkg/observability"
)

// =============================================================================
// Options
// =============================================================================

// Options configures an App.
type Options struct {
	// Width and Height are the initial viewport in pixels (or cells).
	Width  float64
	Height float64

	// Regions in declaration order. The autoplay cycle follows this order.
	Regions []layout.RegionDef

	AutoPlay autoplay.Options

	// IdleTimeout is the quiet time after which autoplay resumes.
	// Zero disables auto-resume.
	IdleTimeout time.Duration

	// SessionID overrides the generated run identifier.
	SessionID string

	Logger *log.Logger
}

// =============================================================================
// Focus Source
// =============================================================================

// Source says where a focus request came from.
type Source int

const (
	SourceAuto Source = iota
	SourceManual
)

func (s Source) String() string {
	switch s {
	case SourceAuto:
		return "auto"
	case SourceManual:
		return "manual"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Source) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Source) UnmarshalText(text []byte) error {
	switch string(text) {
	case "auto":
		*s = SourceAuto
	case "manual":
		*s = SourceManual
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown focus source %q", text)
	}
	return nil
}

// =============================================================================
// App
// =============================================================================

// App is the exhibit application context.
type App struct {
	id     string
	logger *log.Logger

	layout   *layout.Layout
	nav      *navigation.State
	auto     *autoplay.Controller
	idle     *IdleMonitor
	surfaces map[string]*layout.Surface

	focused     string
	focusSource Source
	held        bool

	navSub *navigation.Subscription
	closed bool
}

// New builds the engine for cat. A nil catalog is treated as empty.
// Construction errors carry the CONFIGURATION code.
func New(cat *catalog.Catalog, opts Options) (*App, error) {
	if cat == nil {
		cat = &catalog.Catalog{}
	}
	if opts.IdleTimeout < 0 {
		return nil, errors.New(errors.ErrCodeConfiguration, "idle timeout must not be negative, got %v", opts.IdleTimeout)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	id := opts.SessionID
	if id == "" {
		id = uuid.NewString()
	}

	l, err := layout.New(opts.Width, opts.Height, opts.Regions)
	if err != nil {
		return nil, err
	}

	a := &App{
		id:       id,
		logger:   logger.With("session", shortID(id)),
		layout:   l,
		nav:      navigation.New(cat.Artworks, cat.Critiques, cat.Personas),
		idle:     NewIdleMonitor(opts.IdleTimeout),
		surfaces: make(map[string]*layout.Surface),
	}

	ids := l.RegionIDs()
	a.auto, err = autoplay.New(ids, l, func(id string) { a.requestFocus(id, SourceAuto) }, opts.AutoPlay)
	if err != nil {
		return nil, err
	}

	floor := a.auto.Options().ProminenceFloor
	for i, id := range ids {
		level := floor
		if i == 0 {
			level = 1
		}
		s := layout.NewSurface(id, level)
		a.surfaces[id] = s
		// Region IDs come from the layout itself, so attach cannot fail.
		_ = l.AttachSubsystem(id, s)
	}

	a.navSub = a.nav.Subscribe(navigation.EventNavigate, a.onNavigate)
	a.requestFocus(ids[0], SourceAuto)

	a.logger.Debug("exhibit ready", "regions", len(ids), "artworks", a.nav.Len())
	return a, nil
}

// ID returns the run identifier.
func (a *App) ID() string { return a.id }

// Tick advances time by delta: idle detection first, then autoplay. While
// autoplay is paused the focused region keeps easing in.
// A negative delta returns an INVALID_ARGUMENT error and changes nothing.
func (a *App) Tick(delta time.Duration) error {
	if delta < 0 {
		return errors.New(errors.ErrCodeInvalidArgument, "negative tick delta %v", delta)
	}
	if a.idle.Tick(delta) && !a.held && !a.auto.Enabled() {
		a.logger.Debug("idle timeout, resuming autoplay", "quiet", a.idle.Quiet())
		a.setAutoPlay(true)
	}
	if err := a.auto.Update(delta); err != nil {
		return err
	}
	if !a.auto.Enabled() {
		a.auto.Ease()
	}
	return nil
}

// Pointer hit-tests a pointer position. On a hit the region gains manual
// focus, autoplay pauses on it and later ticks fade it in; a miss changes
// nothing.
func (a *App) Pointer(x, y float64) (string, bool) {
	id, ok := a.layout.HitTest(x, y)
	if !ok {
		return "", false
	}
	a.interact()
	// Hit-test results are layout region IDs, which autoplay also cycles.
	_ = a.auto.Focus(id)
	a.requestFocus(id, SourceManual)
	return id, true
}

// Next shows the next artwork.
func (a *App) Next() *catalog.Artwork {
	a.interact()
	return a.nav.Next()
}

// Prev shows the previous artwork.
func (a *App) Prev() *catalog.Artwork {
	a.interact()
	return a.nav.Prev()
}

// GoTo shows the artwork at index. Out-of-range indices return an
// INDEX_OUT_OF_RANGE error; the attempt still counts as interaction.
func (a *App) GoTo(index int) (*catalog.Artwork, error) {
	a.interact()
	return a.nav.GoTo(index)
}

// Show moves to the artwork with the given ID. An unknown ID returns a
// NOT_FOUND error and leaves the cursor where it was.
func (a *App) Show(id string) (*catalog.Artwork, error) {
	a.interact()
	index := a.nav.IndexOf(id)
	if index < 0 {
		return nil, errors.New(errors.ErrCodeNotFound, "artwork %q not in catalog", id)
	}
	return a.nav.GoTo(index)
}

// SetHold pins autoplay off (true) or releases it (false). Releasing
// resumes autoplay immediately with a fresh phase.
func (a *App) SetHold(held bool) {
	if a.held == held {
		return
	}
	a.held = held
	a.logger.Debug("autoplay hold", "held", held)
	if held {
		a.setAutoPlay(false)
		return
	}
	a.idle.Touch()
	a.setAutoPlay(true)
}

// ToggleHold flips the hold and returns the new state.
func (a *App) ToggleHold() bool {
	a.SetHold(!a.held)
	return a.held
}

// Held reports whether autoplay is pinned off.
func (a *App) Held() bool { return a.held }

// Resize recomputes region bounds for a new viewport.
func (a *App) Resize(width, height float64) error {
	return a.layout.Resize(width, height)
}

// Focused returns the focused region and where its focus came from.
func (a *App) Focused() (string, Source) { return a.focused, a.focusSource }

// Current returns the navigation snapshot for the artwork on screen.
func (a *App) Current() navigation.Snapshot { return a.nav.Snapshot() }

// Persona looks up a critique author.
func (a *App) Persona(id string) (*catalog.Persona, bool) { return a.nav.Persona(id) }

// Subscribe registers a navigation listener.
func (a *App) Subscribe(fn navigation.Listener) *navigation.Subscription {
	return a.nav.Subscribe(navigation.EventNavigate, fn)
}

// Unsubscribe removes a navigation listener.
func (a *App) Unsubscribe(sub *navigation.Subscription) bool {
	return a.nav.Unsubscribe(navigation.EventNavigate, sub)
}

// Close detaches every subsystem and listener. It is safe to call twice.
func (a *App) Close() {
	if a.closed {
		return
	}
	a.closed = true
	a.nav.Unsubscribe(navigation.EventNavigate, a.navSub)
	a.layout.Destroy()
	a.logger.Debug("exhibit closed")
}

// =============================================================================
// Internals
// =============================================================================

func (a *App) interact() {
	a.idle.Touch()
	a.setAutoPlay(false)
}

func (a *App) setAutoPlay(enabled bool) {
	if a.auto.Enabled() == enabled {
		return
	}
	if enabled {
		a.auto.Resume()
	} else {
		a.auto.Pause()
	}
	observability.Exhibit().OnAutoPlay(enabled)
}

// requestFocus is the single entry point for focus changes.
func (a *App) requestFocus(id string, src Source) {
	a.focused = id
	a.focusSource = src
	a.logger.Debug("focus", "region", id, "source", src)
	observability.Exhibit().OnFocus(id, src.String())
}

func (a *App) onNavigate(s navigation.Snapshot) {
	if s.Artwork == nil {
		return
	}
	a.logger.Debug("navigate", "index", s.Index, "artwork", s.Artwork.ID)
	observability.Exhibit().OnNavigate(s.Index, s.Artwork.ID)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
