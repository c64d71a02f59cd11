package layout

// Subsystem is an opaque, host-owned visual handle attached to a region.
// The only thing the engine needs from it is a mutable prominence level in
// [0,1].
type Subsystem interface {
	Prominence() float64
	SetProminence(level float64)
}

// Surface is a minimal Subsystem: a label plus a prominence level.
type Surface struct {
	Label string
	Level float64
}

// NewSurface creates a surface starting at the given prominence level.
func NewSurface(label string, level float64) *Surface {
	return &Surface{Label: label, Level: level}
}

// Prominence returns the current level.
func (s *Surface) Prominence() float64 { return s.Level }

// SetProminence stores a new level.
func (s *Surface) SetProminence(level float64) { s.Level = level }

var _ Subsystem = (*Surface)(nil)
