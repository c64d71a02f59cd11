// Package layout partitions a display viewport into named regions.
//
// A [Layout] is built once per viewport session from an ordered list of
// [RegionDef] values. Each definition carries a fractional rectangle in
// [0,1] relative to the viewport; the layout derives pixel bounds from those
// fractions and recomputes them on [Layout.Resize]. Region identity and
// count never change for the lifetime of a layout.
//
// # Hit-Testing
//
// [Layout.HitTest] maps a pixel coordinate to the first region, in
// declaration order, whose bounds contain it. Bounds are half-open
// ([x, x+w) × [y, y+h)), so two regions sharing an edge never both claim a
// point on it. Points outside every region report no match; hit-testing
// never fails.
//
// # Subsystems
//
// Host rendering code attaches opaque [Subsystem] handles to regions. The
// layout only stores them; the autoplay controller reads and writes their
// prominence level each tick. [Surface] is a ready-made handle for hosts
// that have nothing richer to attach.
//
// # Concurrency
//
// A Layout is not safe for concurrent use. Hosts that call it from several
// goroutines must serialize access themselves.
//
// # Example
//
//	l, err := layout.New(800, 600, []layout.RegionDef{
//	    {ID: "left", Bounds: layout.Rect{X: 0, Y: 0, W: 0.5, H: 1}},
//	    {ID: "right", Bounds: layout.Rect{X: 0.5, Y: 0, W: 0.5, H: 1}},
//	})
//	if err != nil {
//	    return err
//	}
//	id, ok := l.HitTest(450, 100) // "right", true
package layout
