package exhibit

import (
	"time"

	"github.com/matzehuels/exhibit/pkg/autoplay"
	"github.com/matzehuels/exhibit/pkg/catalog"
	"github.com/matzehuels/exhibit/pkg/layout"
)

// RegionStatus describes one region for diagnostics and rendering.
type RegionStatus struct {
	ID         string      `json:"id"`
	Bounds     layout.Rect `json:"bounds"`
	Prominence float64     `json:"prominence"`
	Focused    bool        `json:"focused"`
}

// Status is a read-only snapshot of the whole exhibit.
type Status struct {
	SessionID   string           `json:"session_id"`
	Width       float64          `json:"width"`
	Height      float64          `json:"height"`
	Focused     string           `json:"focused"`
	FocusSource Source           `json:"focus_source"`
	Held        bool             `json:"held"`
	Quiet       time.Duration    `json:"quiet"`
	AutoPlay    autoplay.Status  `json:"autoplay"`
	Index       int              `json:"index"`
	Total       int              `json:"total"`
	Artwork     *catalog.Artwork `json:"artwork,omitempty"`
	Regions     []RegionStatus   `json:"regions"`
}

// Status returns a snapshot of the exhibit.
func (a *App) Status() Status {
	w, h := a.layout.Viewport()
	return Status{
		SessionID:   a.id,
		Width:       w,
		Height:      h,
		Focused:     a.focused,
		FocusSource: a.focusSource,
		Held:        a.held,
		Quiet:       a.idle.Quiet(),
		AutoPlay:    a.auto.Status(),
		Index:       a.nav.Index(),
		Total:       a.nav.Len(),
		Artwork:     a.nav.Current(),
		Regions:     a.Regions(),
	}
}

// Regions returns every region with its pixel bounds and prominence, in
// declaration order.
func (a *App) Regions() []RegionStatus {
	regions := a.layout.Regions()
	out := make([]RegionStatus, len(regions))
	for i, r := range regions {
		out[i] = RegionStatus{ID: r.ID, Bounds: r.Bounds, Focused: r.ID == a.focused}
		if s, ok := a.surfaces[r.ID]; ok {
			out[i].Prominence = s.Prominence()
		}
	}
	return out
}
