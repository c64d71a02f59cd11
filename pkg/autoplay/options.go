package autoplay

import (
	"math"
	"time"

	"github.com/matzehuels/exhibit/pkg/errors"
)

// Default tuning values.
const (
	DefaultPhaseDuration   = 15 * time.Second
	DefaultStepRate        = 0.02
	DefaultProminenceFloor = 0.05
)

// Options tunes the cycle. Zero values take the defaults above.
type Options struct {
	// PhaseDuration is how long a region keeps focus before the next one
	// takes over.
	PhaseDuration time.Duration `json:"phase_duration,omitempty"`

	// StepRate is the prominence change applied per Update call.
	StepRate float64 `json:"step_rate,omitempty"`

	// ProminenceFloor is the lowest level an unfocused region fades to.
	ProminenceFloor float64 `json:"prominence_floor,omitempty"`
}

// SetDefaults fills zero fields with their defaults.
func (o *Options) SetDefaults() {
	if o.PhaseDuration == 0 {
		o.PhaseDuration = DefaultPhaseDuration
	}
	if o.StepRate == 0 {
		o.StepRate = DefaultStepRate
	}
	if o.ProminenceFloor == 0 {
		o.ProminenceFloor = DefaultProminenceFloor
	}
}

// Validate checks that every field is positive and the level-valued fields
// are at most 1. Call SetDefaults first if zero should mean "default".
func (o Options) Validate() error {
	if o.PhaseDuration <= 0 {
		return errors.New(errors.ErrCodeConfiguration, "phase duration must be positive, got %v", o.PhaseDuration)
	}
	if !inUnit(o.StepRate) {
		return errors.New(errors.ErrCodeConfiguration, "step rate must be in (0, 1], got %v", o.StepRate)
	}
	if !inUnit(o.ProminenceFloor) {
		return errors.New(errors.ErrCodeConfiguration, "prominence floor must be in (0, 1], got %v", o.ProminenceFloor)
	}
	return nil
}

func inUnit(v float64) bool {
	return !math.IsNaN(v) && v > 0 && v <= 1
}
