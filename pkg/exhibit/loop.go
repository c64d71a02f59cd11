package exhibit

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/exhibit/pkg/errors"
)

// DefaultTickInterval is roughly one frame at 30 fps.
const DefaultTickInterval = 33 * time.Millisecond

// Loop hosts an App without a terminal. Ticks and commands run on the
// goroutine that called Run, so the App is never touched concurrently.
type Loop struct {
	app    *App
	logger *log.Logger
	cmds   chan command
	done   chan struct{}
}

type command struct {
	fn    func(*App) error
	reply chan error
}

// NewLoop creates a loop for app. Call Run to start it.
func NewLoop(app *App, logger *log.Logger) *Loop {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Loop{
		app:    app,
		logger: logger,
		cmds:   make(chan command),
		done:   make(chan struct{}),
	}
}

// Run ticks the app every interval with the measured wall-clock delta and
// executes queued commands in between. It returns when ctx is cancelled.
// Run must be called at most once.
func (l *Loop) Run(ctx context.Context, interval time.Duration) error {
	defer close(l.done)
	if interval <= 0 {
		interval = DefaultTickInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			delta := now.Sub(last)
			last = now
			if err := l.app.Tick(delta); err != nil {
				l.logger.Warn("tick failed", "delta", delta, "error", err)
			}
		case cmd := <-l.cmds:
			cmd.reply <- cmd.fn(l.app)
		}
	}
}

// Do runs fn on the loop goroutine and returns its error. It fails with
// ctx's error if ctx ends first, or with an INTERNAL_ERROR once the loop has
// stopped.
func (l *Loop) Do(ctx context.Context, fn func(*App) error) error {
	cmd := command{fn: fn, reply: make(chan error, 1)}
	select {
	case l.cmds <- cmd:
	case <-l.done:
		return errors.New(errors.ErrCodeInternal, "exhibit loop stopped")
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-cmd.reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
