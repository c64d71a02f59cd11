package layout

import (
	"math"

	"github.com/matzehuels/exhibit/pkg/errors"
)

// RegionDef declares one region: its identifier and fractional bounds.
type RegionDef struct {
	ID     string `json:"id" toml:"id"`
	Bounds Rect   `json:"bounds" toml:"bounds"`
}

// Region is a read-only view of a region's geometry.
type Region struct {
	ID       string
	Fraction Rect
	Bounds   Rect
}

type region struct {
	id         string
	fraction   Rect
	bounds     Rect
	subsystems []Subsystem
}

// Layout is a resizable spatial partition of a viewport into named regions.
type Layout struct {
	width, height float64
	regions       []*region // declaration order
	byID          map[string]*region
}

// New creates a layout for a width×height viewport.
//
// It returns a CONFIGURATION error if either dimension is not positive, if a
// region id is empty or repeated, or if any fractional rect has a negative
// size or reaches outside the unit square. No layout is returned on error.
func New(width, height float64, defs []RegionDef) (*Layout, error) {
	if err := checkViewport(width, height, errors.ErrCodeConfiguration); err != nil {
		return nil, err
	}

	l := &Layout{
		width:   width,
		height:  height,
		regions: make([]*region, 0, len(defs)),
		byID:    make(map[string]*region, len(defs)),
	}
	for _, def := range defs {
		if err := errors.ValidateID("region", def.ID); err != nil {
			return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "invalid region definition")
		}
		if _, dup := l.byID[def.ID]; dup {
			return nil, errors.New(errors.ErrCodeConfiguration, "duplicate region id %q", def.ID)
		}
		if problem := validFraction(def.Bounds); problem != "" {
			return nil, errors.New(errors.ErrCodeConfiguration, "region %q %s: %s", def.ID, problem, def.Bounds)
		}
		r := &region{id: def.ID, fraction: def.Bounds}
		l.regions = append(l.regions, r)
		l.byID[def.ID] = r
	}
	l.recompute()
	return l, nil
}

// ComputeBounds returns the pixel bounds of a region.
func (l *Layout) ComputeBounds(id string) (Rect, error) {
	r, err := l.lookup(id)
	if err != nil {
		return Rect{}, err
	}
	return r.bounds, nil
}

// HitTest returns the first region, in declaration order, whose pixel bounds
// contain (x, y). The boolean is false when no region contains the point.
func (l *Layout) HitTest(x, y float64) (string, bool) {
	for _, r := range l.regions {
		if r.bounds.Contains(x, y) {
			return r.id, true
		}
	}
	return "", false
}

// Resize recomputes every region's pixel bounds from its stored fractions.
// Prominence of attached subsystems is left untouched. Non-positive sizes
// are rejected with INVALID_ARGUMENT and leave the layout unchanged.
func (l *Layout) Resize(width, height float64) error {
	if err := checkViewport(width, height, errors.ErrCodeInvalidArgument); err != nil {
		return err
	}
	l.width, l.height = width, height
	l.recompute()
	return nil
}

// AttachSubsystem associates a visual handle with a region.
func (l *Layout) AttachSubsystem(id string, s Subsystem) error {
	r, err := l.lookup(id)
	if err != nil {
		return err
	}
	if s == nil {
		return errors.New(errors.ErrCodeInvalidArgument, "nil subsystem for region %q", id)
	}
	r.subsystems = append(r.subsystems, s)
	return nil
}

// Subsystems returns the handles attached to a region, or nil for an unknown
// id. The returned slice must not be modified.
func (l *Layout) Subsystems(id string) []Subsystem {
	if r, ok := l.byID[id]; ok {
		return r.subsystems
	}
	return nil
}

// RegionIDs returns region identifiers in declaration order.
func (l *Layout) RegionIDs() []string {
	ids := make([]string, len(l.regions))
	for i, r := range l.regions {
		ids[i] = r.id
	}
	return ids
}

// Regions returns a geometry snapshot of every region in declaration order.
func (l *Layout) Regions() []Region {
	out := make([]Region, len(l.regions))
	for i, r := range l.regions {
		out[i] = Region{ID: r.id, Fraction: r.fraction, Bounds: r.bounds}
	}
	return out
}

// Viewport returns the current viewport size.
func (l *Layout) Viewport() (width, height float64) {
	return l.width, l.height
}

// Destroy releases every subsystem association. The layout must not be used
// afterwards.
func (l *Layout) Destroy() {
	for _, r := range l.regions {
		r.subsystems = nil
	}
}

func (l *Layout) lookup(id string) (*region, error) {
	r, ok := l.byID[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "unknown region %q", id)
	}
	return r, nil
}

func (l *Layout) recompute() {
	for _, r := range l.regions {
		r.bounds = r.fraction.Scale(l.width, l.height)
	}
}

func checkViewport(width, height float64, code errors.Code) error {
	if !(width > 0) || math.IsInf(width, 0) {
		return errors.New(code, "viewport width must be positive, got %v", width)
	}
	if !(height > 0) || math.IsInf(height, 0) {
		return errors.New(code, "viewport height must be positive, got %v", height)
	}
	return nil
}
