package layout

import (
	"fmt"
	"math"
)

// epsilon absorbs float rounding when checking that X+W and Y+H stay within 1.
const epsilon = 1e-9

// Rect is an axis-aligned rectangle. Fractional rects use [0,1] units
// relative to the viewport; pixel rects use viewport units.
type Rect struct {
	X float64 `json:"x" toml:"x"`
	Y float64 `json:"y" toml:"y"`
	W float64 `json:"w" toml:"w"`
	H float64 `json:"h" toml:"h"`
}

// Contains reports whether (x, y) lies inside the half-open rectangle
// [X, X+W) × [Y, Y+H).
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Scale multiplies the horizontal components by w and the vertical ones by h.
func (r Rect) Scale(w, h float64) Rect {
	return Rect{X: r.X * w, Y: r.Y * h, W: r.W * w, H: r.H * h}
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

func (r Rect) String() string {
	return fmt.Sprintf("{x:%g y:%g w:%g h:%g}", r.X, r.Y, r.W, r.H)
}

// validFraction returns a description of the first problem with a fractional
// rect, or "" if it lies entirely within the unit square.
func validFraction(r Rect) string {
	for _, v := range []float64{r.X, r.Y, r.W, r.H} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return "contains a non-finite value"
		}
	}
	switch {
	case r.W < 0 || r.H < 0:
		return "has negative width or height"
	case r.X < 0 || r.Y < 0 || r.X > 1 || r.Y > 1:
		return "has an origin outside [0,1]"
	case r.W > 1 || r.H > 1:
		return "has a size outside [0,1]"
	case r.X+r.W > 1+epsilon || r.Y+r.H > 1+epsilon:
		return "extends past the viewport edge"
	}
	return ""
}
