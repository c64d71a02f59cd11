// Package autoplay cycles focus through the regions of a layout and eases
// each region's prominence toward its target.
//
// The [Controller] owns no timer. The host calls [Controller.Update] once per
// frame with the time elapsed since the previous frame; the controller
// accumulates it and, once a full phase has passed, moves focus to the next
// region and invokes the focus callback. Every Update call then nudges the
// focused region's subsystems up by StepRate (capped at 1) and every other
// region's subsystems down by StepRate (floored at ProminenceFloor).
//
// The prominence step is applied per call, not per unit of time, so fading
// speed follows the host's frame rate.
//
// # Pausing
//
// [Controller.Pause] stops the cycle and discards the elapsed time, so a
// later [Controller.Resume] always starts a fresh, full phase on the same
// region. [Controller.Focus] moves the cycle onto a manually chosen region,
// and [Controller.Ease] fades toward it while the cycle is paused. Idle
// detection lives outside this package.
//
// A Controller is not safe for concurrent use.
package autoplay

import (
	"time"

	"github.com/matzehuels/exhibit/pkg/errors"
	"github.com/matzehuels/exhibit/pkg/layout"
)

// FocusFunc is called with the region that just gained automatic focus.
type FocusFunc func(regionID string)

// Surfaces resolves the subsystems attached to a region.
// *layout.Layout satisfies it.
type Surfaces interface {
	Subsystems(regionID string) []layout.Subsystem
}

// Status is a read-only snapshot for diagnostics.
type Status struct {
	Enabled       bool          `json:"enabled"`
	CurrentRegion string        `json:"current_region"`
	CurrentIndex  int           `json:"current_index"`
	Elapsed       time.Duration `json:"elapsed"`
	PhaseDuration time.Duration `json:"phase_duration"`
}

// Controller drives the automatic focus cycle.
type Controller struct {
	regions  []string
	surfaces Surfaces
	focus    FocusFunc
	opts     Options

	index   int
	elapsed time.Duration
	enabled bool
}

// New creates an enabled controller focused on regionIDs[0]. The focus
// callback is not invoked for the initial region.
func New(regionIDs []string, surfaces Surfaces, focus FocusFunc, opts Options) (*Controller, error) {
	if len(regionIDs) == 0 {
		return nil, errors.New(errors.ErrCodeConfiguration, "autoplay needs at least one region")
	}
	seen := make(map[string]bool, len(regionIDs))
	for _, id := range regionIDs {
		if seen[id] {
			return nil, errors.New(errors.ErrCodeConfiguration, "duplicate region %q in autoplay cycle", id)
		}
		seen[id] = true
	}
	if surfaces == nil {
		return nil, errors.New(errors.ErrCodeConfiguration, "autoplay surfaces are required")
	}
	if focus == nil {
		return nil, errors.New(errors.ErrCodeConfiguration, "autoplay focus callback is required")
	}

	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	return &Controller{
		regions:  append([]string(nil), regionIDs...),
		surfaces: surfaces,
		focus:    focus,
		opts:     opts,
		enabled:  true,
	}, nil
}

// Update advances the cycle by delta. A negative delta returns an
// INVALID_ARGUMENT error and changes nothing. While paused, Update does
// nothing.
//
// At most one region advance happens per call, however far elapsed
// overshoots the phase.
func (c *Controller) Update(delta time.Duration) error {
	if delta < 0 {
		return errors.New(errors.ErrCodeInvalidArgument, "negative tick delta %v", delta)
	}
	if !c.enabled {
		return nil
	}

	c.elapsed += delta
	if c.elapsed >= c.opts.PhaseDuration {
		c.index = (c.index + 1) % len(c.regions)
		c.elapsed = 0
		c.focus(c.regions[c.index])
	}

	c.Ease()
	return nil
}

// Ease applies one prominence step: the current region's subsystems rise by
// StepRate and every other region's fall toward the floor. Update eases on
// every enabled call; while paused the host calls Ease itself so a manually
// focused region still fades in.
func (c *Controller) Ease() {
	current := c.regions[c.index]
	for _, id := range c.regions {
		for _, s := range c.surfaces.Subsystems(id) {
			p := s.Prominence()
			if id == current {
				s.SetProminence(min(1, p+c.opts.StepRate))
			} else {
				s.SetProminence(max(c.opts.ProminenceFloor, p-c.opts.StepRate))
			}
		}
	}
}

// Focus moves the cycle onto regionID and resets the phase timer, so the
// next advance happens a full phase later and lands on the region after it.
// The focus callback is not invoked. An unknown region returns a NOT_FOUND
// error and changes nothing.
func (c *Controller) Focus(regionID string) error {
	for i, id := range c.regions {
		if id == regionID {
			c.index = i
			c.elapsed = 0
			return nil
		}
	}
	return errors.New(errors.ErrCodeNotFound, "region %q is not in the autoplay cycle", regionID)
}

// Pause stops the cycle and resets the phase timer.
func (c *Controller) Pause() {
	c.enabled = false
	c.elapsed = 0
}

// Resume restarts the cycle on the current region.
func (c *Controller) Resume() { c.enabled = true }

// Enabled reports whether the cycle is running.
func (c *Controller) Enabled() bool { return c.enabled }

// CurrentRegion returns the region holding automatic focus.
func (c *Controller) CurrentRegion() string { return c.regions[c.index] }

// Options returns the effective options after defaults.
func (c *Controller) Options() Options { return c.opts }

// Status returns a diagnostic snapshot.
func (c *Controller) Status() Status {
	return Status{
		Enabled:       c.enabled,
		CurrentRegion: c.regions[c.index],
		CurrentIndex:  c.index,
		Elapsed:       c.elapsed,
		PhaseDuration: c.opts.PhaseDuration,
	}
}
