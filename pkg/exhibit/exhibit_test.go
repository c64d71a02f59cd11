package exhibit

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/exhibit/pkg/autoplay"
	"github.com/matzehuels/exhibit/pkg/catalog"
	"github.com/matzehuels/exhibit/pkg/errors"
	"github.com/matzehuels/exhibit/pkg/layout"
	"github.com/matzehuels/exhibit/pkg/navigation"
	"github.com/matzehuels/exhibit/pkg/observability"
)

// =============================================================================
// Fixtures
// =============================================================================

func testCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		Artworks: []catalog.Artwork{
			{ID: "nighthawks", Title: "Nighthawks"},
			{ID: "automat", Title: "Automat"},
			{ID: "chop-suey", Title: "Chop Suey"},
		},
		Critiques: []catalog.Critique{
			{ID: "c1", ArtworkID: "automat", PersonaID: "curator", Text: "A cup held like a decision."},
		},
		Personas: []catalog.Persona{{ID: "curator", Name: "The Curator"}},
	}
}

// 800x600 split into four quadrants.
func testOptions() Options {
	return Options{
		Width:  800,
		Height: 600,
		Regions: []layout.RegionDef{
			{ID: "top-left", Bounds: layout.Rect{X: 0, Y: 0, W: 0.5, H: 0.5}},
			{ID: "top-right", Bounds: layout.Rect{X: 0.5, Y: 0, W: 0.5, H: 0.5}},
			{ID: "bottom-left", Bounds: layout.Rect{X: 0, Y: 0.5, W: 0.5, H: 0.5}},
			{ID: "bottom-right", Bounds: layout.Rect{X: 0.5, Y: 0.5, W: 0.5, H: 0.5}},
		},
		AutoPlay:    autoplay.Options{PhaseDuration: time.Second},
		IdleTimeout: 3 * time.Second,
		SessionID:   "test-session",
		Logger:      log.New(&bytes.Buffer{}),
	}
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	a, err := New(testCatalog(), testOptions())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	t.Cleanup(a.Close)
	return a
}

type event struct {
	kind string
	arg  string
}

type recordingHooks struct{ events []event }

func (r *recordingHooks) OnNavigate(_ int, id string) {
	r.events = append(r.events, event{"navigate", id})
}

func (r *recordingHooks) OnFocus(id, source string) {
	r.events = append(r.events, event{"focus", id + "/" + source})
}

func (r *recordingHooks) OnAutoPlay(enabled bool) {
	arg := "off"
	if enabled {
		arg = "on"
	}
	r.events = append(r.events, event{"autoplay", arg})
}

func recordHooks(t *testing.T) *recordingHooks {
	t.Helper()
	r := &recordingHooks{}
	observability.SetExhibitHooks(r)
	t.Cleanup(observability.Reset)
	return r
}

// =============================================================================
// Construction
// =============================================================================

func TestNew(t *testing.T) {
	a := newTestApp(t)

	if a.ID() != "test-session" {
		t.Errorf("ID() = %q", a.ID())
	}
	if id, src := a.Focused(); id != "top-left" || src != SourceAuto {
		t.Errorf("Focused() = %q, %v; want top-left, auto", id, src)
	}

	st := a.Status()
	if st.Total != 3 || st.Index != 0 || st.Artwork.ID != "nighthawks" {
		t.Errorf("Status() = %+v", st)
	}
	if !st.AutoPlay.Enabled || st.Held {
		t.Errorf("autoplay enabled = %v, held = %v", st.AutoPlay.Enabled, st.Held)
	}
	if len(st.Regions) != 4 || st.Regions[0].Prominence != 1 || !st.Regions[0].Focused {
		t.Errorf("regions = %+v", st.Regions)
	}
	if st.Regions[1].Prominence != autoplay.DefaultProminenceFloor {
		t.Errorf("unfocused start level = %v", st.Regions[1].Prominence)
	}
}

func TestNew_GeneratesSessionID(t *testing.T) {
	opts := testOptions()
	opts.SessionID = ""
	opts.Logger = nil
	a, err := New(nil, opts)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if len(a.ID()) != 36 {
		t.Errorf("ID() = %q, want a UUID", a.ID())
	}
	if a.Status().Total != 0 || a.Current().Artwork != nil {
		t.Error("nil catalog should behave as empty")
	}
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Options)
	}{
		{"zero width", func(o *Options) { o.Width = 0 }},
		{"no regions", func(o *Options) { o.Regions = nil }},
		{"bad fraction", func(o *Options) { o.Regions[0].Bounds.W = 2 }},
		{"negative phase", func(o *Options) { o.AutoPlay.PhaseDuration = -time.Second }},
		{"negative idle", func(o *Options) { o.IdleTimeout = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions()
			tt.modify(&opts)
			if _, err := New(testCatalog(), opts); !errors.Is(err, errors.ErrCodeConfiguration) {
				t.Errorf("New() error = %v, want CONFIGURATION", err)
			}
		})
	}
}

// =============================================================================
// Ticks, focus and idle
// =============================================================================

func TestTick_AutoFocus(t *testing.T) {
	hooks := recordHooks(t)
	a := newTestApp(t)
	hooks.events = nil

	if err := a.Tick(time.Second); err != nil {
		t.Fatal(err)
	}
	if id, src := a.Focused(); id != "top-right" || src != SourceAuto {
		t.Errorf("Focused() = %q, %v; want top-right, auto", id, src)
	}
	if len(hooks.events) != 1 || hooks.events[0] != (event{"focus", "top-right/auto"}) {
		t.Errorf("hook events = %v", hooks.events)
	}
}

func TestTick_NegativeDelta(t *testing.T) {
	a := newTestApp(t)
	a.Pointer(10, 10)

	before := a.Status()
	if err := a.Tick(-time.Millisecond); !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("Tick(-1ms) error = %v, want INVALID_ARGUMENT", err)
	}
	if a.Status().Quiet != before.Quiet {
		t.Error("negative delta advanced the idle monitor")
	}
}

func TestPointer(t *testing.T) {
	hooks := recordHooks(t)
	a := newTestApp(t)
	hooks.events = nil

	id, ok := a.Pointer(450, 100)
	if !ok || id != "top-right" {
		t.Fatalf("Pointer(450, 100) = %q, %v", id, ok)
	}
	if got, src := a.Focused(); got != "top-right" || src != SourceManual {
		t.Errorf("Focused() = %q, %v; want top-right, manual", got, src)
	}
	if a.Status().AutoPlay.Enabled {
		t.Error("pointer hit should pause autoplay")
	}

	want := []event{{"autoplay", "off"}, {"focus", "top-right/manual"}}
	if len(hooks.events) != len(want) {
		t.Fatalf("hook events = %v, want %v", hooks.events, want)
	}
	for i := range want {
		if hooks.events[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, hooks.events[i], want[i])
		}
	}
}

func TestPointer_Miss(t *testing.T) {
	a := newTestApp(t)
	if id, ok := a.Pointer(900, 100); ok || id != "" {
		t.Errorf("Pointer outside viewport = %q, %v", id, ok)
	}
	if !a.Status().AutoPlay.Enabled {
		t.Error("a miss must not pause autoplay")
	}
}

func TestIdleResume(t *testing.T) {
	a := newTestApp(t)
	a.Pointer(100, 400)

	// Paused: ticks neither advance focus nor resume before the timeout.
	for range 2 {
		_ = a.Tick(time.Second)
	}
	if a.Status().AutoPlay.Enabled {
		t.Fatal("autoplay resumed before idle timeout")
	}
	if id, _ := a.Focused(); id != "bottom-left" {
		t.Errorf("focus moved while paused: %q", id)
	}

	// Third second crosses the timeout; autoplay resumes with a fresh phase
	// on the clicked region and this same tick completes it.
	_ = a.Tick(time.Second)
	st := a.Status()
	if !st.AutoPlay.Enabled {
		t.Fatal("autoplay did not resume after idle timeout")
	}
	if id, src := a.Focused(); id != "bottom-right" || src != SourceAuto {
		t.Errorf("Focused() = %q, %v; want bottom-right, auto", id, src)
	}
}

func TestPointer_EasesFocusedRegion(t *testing.T) {
	a := newTestApp(t)
	a.Pointer(100, 400)

	for range 20 {
		_ = a.Tick(50 * time.Millisecond)
	}
	st := a.Status()
	if st.AutoPlay.CurrentRegion != "bottom-left" {
		t.Errorf("autoplay region = %q, want bottom-left", st.AutoPlay.CurrentRegion)
	}
	for _, r := range st.Regions {
		switch r.ID {
		case "bottom-left":
			if !r.Focused || r.Prominence <= autoplay.DefaultProminenceFloor {
				t.Errorf("bottom-left focused = %v, prominence = %.2f; want focused and rising", r.Focused, r.Prominence)
			}
		case "top-left":
			if r.Focused || r.Prominence >= 1 {
				t.Errorf("top-left focused = %v, prominence = %.2f; want unfocused and fading", r.Focused, r.Prominence)
			}
		}
	}
}

func TestIdleResume_Disabled(t *testing.T) {
	opts := testOptions()
	opts.IdleTimeout = 0
	a, err := New(testCatalog(), opts)
	if err != nil {
		t.Fatal(err)
	}
	a.Next()
	for range 100 {
		_ = a.Tick(time.Second)
	}
	if a.Status().AutoPlay.Enabled {
		t.Error("autoplay resumed with idle detection disabled")
	}
}

func TestHold(t *testing.T) {
	hooks := recordHooks(t)
	a := newTestApp(t)
	hooks.events = nil

	if !a.ToggleHold() {
		t.Fatal("ToggleHold() = false, want held")
	}
	for range 10 {
		_ = a.Tick(time.Second)
	}
	if a.Status().AutoPlay.Enabled {
		t.Error("idle timeout overrode the hold")
	}

	if a.ToggleHold() {
		t.Fatal("second ToggleHold() = true")
	}
	if !a.Status().AutoPlay.Enabled {
		t.Error("releasing the hold did not resume autoplay")
	}

	want := []event{{"autoplay", "off"}, {"autoplay", "on"}}
	if len(hooks.events) != 2 || hooks.events[0] != want[0] || hooks.events[1] != want[1] {
		t.Errorf("hook events = %v, want %v", hooks.events, want)
	}

	// Setting the same hold twice is a no-op.
	a.SetHold(false)
	if len(hooks.events) != 2 {
		t.Errorf("redundant SetHold emitted events: %v", hooks.events)
	}
}

// =============================================================================
// Navigation
// =============================================================================

func TestNavigation(t *testing.T) {
	hooks := recordHooks(t)
	a := newTestApp(t)
	hooks.events = nil

	if got := a.Next(); got.ID != "automat" {
		t.Errorf("Next() = %q", got.ID)
	}
	if a.Status().AutoPlay.Enabled {
		t.Error("navigation should pause autoplay")
	}
	cur := a.Current()
	if len(cur.Critiques) != 1 {
		t.Fatalf("critiques = %v", cur.Critiques)
	}
	if p, ok := a.Persona(cur.Critiques[0].PersonaID); !ok || p.Name != "The Curator" {
		t.Errorf("Persona() = %v, %v", p, ok)
	}

	if got := a.Prev(); got.ID != "nighthawks" {
		t.Errorf("Prev() = %q", got.ID)
	}
	if got := a.Prev(); got.ID != "chop-suey" {
		t.Errorf("Prev() wrap = %q", got.ID)
	}

	if _, err := a.GoTo(7); !errors.Is(err, errors.ErrCodeIndexOutOfRange) {
		t.Errorf("GoTo(7) error = %v", err)
	}
	if a.Status().Index != 2 {
		t.Errorf("index after failed GoTo = %d", a.Status().Index)
	}

	var navs []string
	for _, e := range hooks.events {
		if e.kind == "navigate" {
			navs = append(navs, e.arg)
		}
	}
	if len(navs) != 3 || navs[2] != "chop-suey" {
		t.Errorf("navigate hooks = %v", navs)
	}
}

func TestShow(t *testing.T) {
	a := newTestApp(t)

	got, err := a.Show("chop-suey")
	if err != nil || got.ID != "chop-suey" || a.Status().Index != 2 {
		t.Fatalf("Show(chop-suey) = %v, %v at %d", got, err, a.Status().Index)
	}
	if a.Status().AutoPlay.Enabled {
		t.Error("Show should pause autoplay")
	}

	if _, err := a.Show("missing"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Show(missing) error = %v, want NOT_FOUND", err)
	}
	if a.Status().Index != 2 {
		t.Errorf("failed Show moved the cursor to %d", a.Status().Index)
	}
}

func TestSubscribe(t *testing.T) {
	a := newTestApp(t)
	var got []int
	sub := a.Subscribe(func(s navigation.Snapshot) { got = append(got, s.Index) })

	a.Next()
	if !a.Unsubscribe(sub) {
		t.Error("Unsubscribe() = false")
	}
	a.Next()
	if len(got) != 1 || got[0] != 1 {
		t.Errorf("listener saw %v, want [1]", got)
	}
}

func TestResize(t *testing.T) {
	a := newTestApp(t)
	if err := a.Resize(80, 24); err != nil {
		t.Fatal(err)
	}
	st := a.Status()
	if st.Width != 80 || st.Height != 24 {
		t.Errorf("viewport = %vx%v", st.Width, st.Height)
	}
	if b := st.Regions[3].Bounds; b != (layout.Rect{X: 40, Y: 12, W: 40, H: 12}) {
		t.Errorf("bottom-right bounds = %v", b)
	}
	if err := a.Resize(0, 24); !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("Resize(0, 24) error = %v", err)
	}
}

func TestClose(t *testing.T) {
	hooks := recordHooks(t)
	a, err := New(testCatalog(), testOptions())
	if err != nil {
		t.Fatal(err)
	}
	a.Close()
	a.Close()
	hooks.events = nil

	// Navigation still works but no longer reaches the hooks.
	a.nav.Next()
	if len(hooks.events) != 0 {
		t.Errorf("closed app emitted %v", hooks.events)
	}
}

// =============================================================================
// Loop
// =============================================================================

func TestLoop(t *testing.T) {
	a := newTestApp(t)
	loop := NewLoop(a, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx, time.Millisecond) }()

	var id string
	err := loop.Do(ctx, func(a *App) error {
		a.Next()
		id = a.Current().Artwork.ID
		return nil
	})
	if err != nil || id != "automat" {
		t.Errorf("Do() = %v, artwork %q", err, id)
	}

	wantErr := errors.New(errors.ErrCodeNotFound, "nope")
	if err := loop.Do(ctx, func(*App) error { return wantErr }); err != wantErr {
		t.Errorf("Do() error = %v, want %v", err, wantErr)
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Run() = %v", err)
	}

	if err := loop.Do(context.Background(), func(*App) error { return nil }); !errors.Is(err, errors.ErrCodeInternal) {
		t.Errorf("Do() after stop = %v, want INTERNAL_ERROR", err)
	}
}

func TestLoop_DoContext(t *testing.T) {
	loop := NewLoop(newTestApp(t), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := loop.Do(ctx, func(*App) error { return nil }); err != context.Canceled {
		t.Errorf("Do() with cancelled ctx = %v", err)
	}
}

func TestIdleMonitor(t *testing.T) {
	m := NewIdleMonitor(time.Second)
	if m.Tick(500 * time.Millisecond) {
		t.Error("fired early")
	}
	if !m.Tick(500 * time.Millisecond) {
		t.Error("did not fire at timeout")
	}
	if m.Tick(time.Hour) {
		t.Error("fired twice without Touch")
	}
	m.Touch()
	if m.Quiet() != 0 {
		t.Errorf("Quiet() after Touch = %v", m.Quiet())
	}
	if !m.Tick(2 * time.Second) {
		t.Error("did not fire after re-arm")
	}

	off := NewIdleMonitor(0)
	if off.Tick(time.Hour) {
		t.Error("disabled monitor fired")
	}
}

func TestSourceString(t *testing.T) {
	if SourceAuto.String() != "auto" || SourceManual.String() != "manual" || Source(9).String() != "unknown" {
		t.Error("unexpected Source names")
	}
}

func TestSourceText(t *testing.T) {
	for _, src := range []Source{SourceAuto, SourceManual} {
		text, _ := src.MarshalText()
		var back Source
		if err := back.UnmarshalText(text); err != nil || back != src {
			t.Errorf("round trip %v = %v, %v", src, back, err)
		}
	}
	var s Source
	if err := s.UnmarshalText([]byte("telepathy")); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("UnmarshalText(telepathy) error = %v", err)
	}
}
