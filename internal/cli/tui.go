package cli

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/exhibit/pkg/errors"
	"github.com/matzehuels/exhibit/pkg/exhibit"
)

// footerHeight is the number of terminal rows below the region grid.
const footerHeight = 5

// =============================================================================
// Messages
// =============================================================================

// frameMsg drives the exhibit clock.
type frameMsg time.Time

// commandMsg carries a control API request into the update loop.
type commandMsg struct {
	fn    func(*exhibit.App) error
	reply chan error
}

// =============================================================================
// ExhibitModel - Full-screen exhibit host
// =============================================================================

// ExhibitModel hosts an exhibit.App inside bubbletea. Every call into the
// app happens in Update, so the app is never shared between goroutines.
// Terminal cells are the layout's pixels.
type ExhibitModel struct {
	app      *exhibit.App
	interval time.Duration
	debug    bool

	width  int
	height int
	last   time.Time
	notice string
}

// NewExhibitModel creates a model that ticks app every interval.
func NewExhibitModel(app *exhibit.App, interval time.Duration, debug bool) ExhibitModel {
	if interval <= 0 {
		interval = exhibit.DefaultTickInterval
	}
	return ExhibitModel{app: app, interval: interval, debug: debug}
}

func (m ExhibitModel) Init() tea.Cmd {
	return m.frame()
}

func (m ExhibitModel) frame() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m ExhibitModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if err := m.app.Resize(float64(m.width), float64(m.gridHeight())); err != nil {
			m.notice = errors.UserMessage(err)
		}
	case frameMsg:
		now := time.Time(msg)
		if !m.last.IsZero() {
			if err := m.app.Tick(now.Sub(m.last)); err != nil {
				m.notice = errors.UserMessage(err)
			}
		}
		m.last = now
		return m, m.frame()
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			// Hit-test the cell centre.
			m.app.Pointer(float64(msg.X)+0.5, float64(msg.Y)+0.5)
		}
	case tea.KeyMsg:
		return m.handleKey(msg)
	case commandMsg:
		msg.reply <- msg.fn(m.app)
	}
	return m, nil
}

func (m ExhibitModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""
	switch key := msg.String(); key {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "right", "l", "n":
		m.app.Next()
	case "left", "h", "p":
		m.app.Prev()
	case " ":
		if m.app.ToggleHold() {
			m.notice = "autoplay held"
		} else {
			m.notice = "autoplay released"
		}
	case "d":
		m.debug = !m.debug
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if _, err := m.app.GoTo(int(key[0] - '1')); err != nil {
				m.notice = errors.UserMessage(err)
			}
		}
	}
	return m, nil
}

func (m ExhibitModel) gridHeight() int {
	return max(1, m.height-footerHeight)
}

// =============================================================================
// View
// =============================================================================

func (m ExhibitModel) View() string {
	if m.width <= 0 {
		return ""
	}
	st := m.app.Status()
	return m.renderGrid(st) + "\n" + m.renderFooter(st)
}

// renderGrid paints every cell with the style of the region owning its
// centre, so what you see matches what a click hits.
func (m ExhibitModel) renderGrid(st exhibit.Status) string {
	w, h := m.width, m.gridHeight()

	owner := make([]int, w*h)
	cells := make([][]rune, h)
	for y := range h {
		cells[y] = []rune(strings.Repeat(" ", w))
		for x := range w {
			owner[y*w+x] = regionAt(st.Regions, float64(x)+0.5, float64(y)+0.5)
		}
	}

	styles := make([]lipgloss.Style, len(st.Regions))
	for i, r := range st.Regions {
		styles[i] = regionStyle(r)
		for line, text := range m.regionLabel(st, r) {
			x0, y0 := firstCell(r.Bounds.X), firstCell(r.Bounds.Y)+line
			writeLabel(cells, owner, w, h, i, x0+1, y0, text)
		}
	}

	var b strings.Builder
	for y := range h {
		for x := 0; x < w; {
			o := owner[y*w+x]
			end := x
			for end < w && owner[y*w+end] == o {
				end++
			}
			seg := string(cells[y][x:end])
			if o >= 0 {
				seg = styles[o].Render(seg)
			}
			b.WriteString(seg)
			x = end
		}
		if y < h-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// regionLabel returns the text lines drawn inside a region.
func (m ExhibitModel) regionLabel(st exhibit.Status, r exhibit.RegionStatus) []string {
	if m.debug {
		b := r.Bounds
		return []string{
			fmt.Sprintf("%s %.2f", r.ID, r.Prominence),
			fmt.Sprintf("%.0f,%.0f %.0fx%.0f", b.X, b.Y, b.W, b.H),
		}
	}
	if !r.Focused || st.Artwork == nil {
		return nil
	}
	lines := []string{st.Artwork.Title}
	if st.Artwork.Artist != "" {
		lines = append(lines, st.Artwork.Artist)
	}
	return lines
}

func (m ExhibitModel) renderFooter(st exhibit.Status) string {
	lines := make([]string, 0, footerHeight)

	if st.Artwork == nil {
		lines = append(lines, StyleDim.Render("No artworks in catalog"))
	} else {
		head := fmt.Sprintf("[%d/%d] %s", st.Index+1, st.Total, st.Artwork.Title)
		if st.Artwork.Artist != "" {
			head += " · " + st.Artwork.Artist
		}
		if st.Artwork.Year != 0 {
			head += ", " + strconv.Itoa(st.Artwork.Year)
		}
		lines = append(lines, StyleTitle.Render(truncate(head, m.width)))
	}

	lines = append(lines, m.critiqueLine())

	mode := StyleSuccess.Render("autoplay on")
	switch {
	case st.Held:
		mode = StyleWarning.Render("autoplay held")
	case !st.AutoPlay.Enabled:
		mode = StyleDim.Render("autoplay paused")
	}
	status := fmt.Sprintf("%s  focus %s (%s)", mode, StyleHighlight.Render(st.Focused), st.FocusSource)
	if m.debug {
		status += StyleDim.Render(fmt.Sprintf("  phase %s/%s  quiet %s",
			st.AutoPlay.Elapsed.Round(time.Millisecond), st.AutoPlay.PhaseDuration, st.Quiet.Round(time.Second)))
	}
	lines = append(lines, status)

	if m.notice != "" {
		lines = append(lines, styleError.Render(truncate(m.notice, m.width)))
	} else {
		lines = append(lines, "")
	}
	lines = append(lines, StyleDim.Render(truncate("←/→ navigate · 1-9 jump · click focus · space hold · d debug · q quit", m.width)))

	return strings.Join(lines, "\n")
}

func (m ExhibitModel) critiqueLine() string {
	snap := m.app.Current()
	if len(snap.Critiques) == 0 {
		return StyleDim.Render("no critiques")
	}
	c := snap.Critiques[0]
	line := "“" + c.Text + "”"
	if p, ok := m.app.Persona(c.PersonaID); ok {
		line += " (" + p.Name + ")"
	}
	if n := len(snap.Critiques); n > 1 {
		line += fmt.Sprintf(" +%d more", n-1)
	}
	return StyleValue.Render(truncate(line, m.width))
}

// =============================================================================
// Drawing Helpers
// =============================================================================

// regionAt mirrors the layout hit test: first region in declaration order.
func regionAt(regions []exhibit.RegionStatus, x, y float64) int {
	for i, r := range regions {
		if r.Bounds.Contains(x, y) {
			return i
		}
	}
	return -1
}

// regionStyle shades a region on the 24-step grayscale ramp by prominence.
func regionStyle(r exhibit.RegionStatus) lipgloss.Style {
	level := 232 + int(math.Round(r.Prominence*23))
	fg := colorWhite
	if r.Prominence > 0.5 {
		fg = lipgloss.Color("16")
	}
	s := lipgloss.NewStyle().Background(lipgloss.Color(strconv.Itoa(level))).Foreground(fg)
	if r.Focused {
		s = s.Bold(true)
	}
	return s
}

// firstCell returns the first cell index whose centre is at or past v.
func firstCell(v float64) int {
	return int(math.Ceil(v - 0.5))
}

// writeLabel writes text into row y starting at x, only over cells owned by
// region.
func writeLabel(cells [][]rune, owner []int, w, h, region, x, y int, text string) {
	if y < 0 || y >= h {
		return
	}
	for _, r := range text {
		if x < 0 || x >= w || owner[y*w+x] != region {
			return
		}
		cells[y][x] = r
		x++
	}
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 0 || len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}

// =============================================================================
// Dispatcher
// =============================================================================

// programDispatcher forwards control API requests into a running program.
type programDispatcher struct {
	program *tea.Program
	done    <-chan struct{}
}

func (d *programDispatcher) Do(ctx context.Context, fn func(*exhibit.App) error) error {
	select {
	case <-d.done:
		return errors.New(errors.ErrCodeInternal, "terminal UI stopped")
	default:
	}

	reply := make(chan error, 1)
	// Send blocks until the program reads the message or exits.
	go d.program.Send(commandMsg{fn: fn, reply: reply})

	select {
	case err := <-reply:
		return err
	case <-d.done:
		return errors.New(errors.ErrCodeInternal, "terminal UI stopped")
	case <-ctx.Done():
		return ctx.Err()
	}
}
