package cli

import (
	"context"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/exhibit/pkg/config"
	"github.com/matzehuels/exhibit/pkg/exhibit"
	"github.com/matzehuels/exhibit/pkg/server"
	"github.com/matzehuels/exhibit/pkg/session"
)

// runOptions holds the flags of the run command.
type runOptions struct {
	catalog  string
	listen   string
	width    float64
	height   float64
	interval time.Duration
	name     string
	logFile  string
	headless bool
	debug    bool
	noCache  bool
	refresh  bool
}

// apply lets flags override values from the config file.
func (o runOptions) apply(cfg *config.Config) {
	if o.catalog != "" {
		cfg.Catalog.Source = o.catalog
	}
	if o.listen != "" {
		cfg.Server.Listen = o.listen
	}
	if o.width > 0 {
		cfg.Viewport.Width = o.width
	}
	if o.height > 0 {
		cfg.Viewport.Height = o.height
	}
}

// runCommand creates the run command.
func (c *CLI) runCommand() *cobra.Command {
	opts := runOptions{name: session.DefaultName}

	cmd := &cobra.Command{
		Use:   "run [catalog]",
		Short: "Run the exhibit",
		Long: `Run the exhibit in the terminal, or headless with --headless.

The catalog may be a TOML or JSON file, an http(s) URL, or a mongodb:// URI.
Focus cycles between regions on its own until a visitor clicks a region or
navigates; after the idle timeout the cycle resumes.

While it runs, the exhibit is registered under --name so that
"exhibit session list" can find its control API.`,
		Example: `  exhibit run gallery.toml
  exhibit run https://example.org/catalog.json --listen :8080
  exhibit run --headless --listen 127.0.0.1:8080 --name lobby`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.catalog = args[0]
			}
			return c.runExhibit(cmd.Context(), opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.catalog, "catalog", "", "catalog source (overrides [catalog] source)")
	f.StringVar(&opts.listen, "listen", "", "serve the control API on this address")
	f.Float64Var(&opts.width, "width", 0, "initial viewport width (headless)")
	f.Float64Var(&opts.height, "height", 0, "initial viewport height (headless)")
	f.DurationVar(&opts.interval, "interval", exhibit.DefaultTickInterval, "tick interval")
	f.StringVar(&opts.name, "name", session.DefaultName, "name this run registers under")
	f.StringVar(&opts.logFile, "log-file", "", "write logs here while the terminal UI runs")
	f.BoolVar(&opts.headless, "headless", false, "run without the terminal UI")
	f.BoolVar(&opts.debug, "debug", false, "start with the region overlay visible")
	f.BoolVar(&opts.noCache, "no-cache", false, "disable the catalog cache")
	f.BoolVar(&opts.refresh, "refresh", false, "refetch remote catalogs")

	return cmd
}

func (c *CLI) runExhibit(ctx context.Context, opts runOptions) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	opts.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	cat, err := c.loadCatalog(ctx, cfg, "", opts.noCache, opts.refresh, opts.headless)
	if err != nil {
		return err
	}

	app, err := exhibit.New(cat, exhibit.Options{
		Width:       cfg.Viewport.Width,
		Height:      cfg.Viewport.Height,
		Regions:     cfg.RegionDefs(),
		AutoPlay:    cfg.AutoPlayOptions(),
		IdleTimeout: cfg.Idle.Timeout.Duration,
		Logger:      c.Logger,
	})
	if err != nil {
		return err
	}
	defer app.Close()

	var (
		dispatch server.Dispatcher
		host     func() error
	)
	if opts.headless {
		loop := exhibit.NewLoop(app, c.Logger)
		dispatch = loop
		host = func() error {
			st := app.Status()
			c.Logger.Info("exhibit running headless", "session", st.SessionID, "artworks", st.Total, "regions", len(st.Regions))
			return loop.Run(ctx, opts.interval)
		}
	} else {
		restore, err := redirectLog(c.Logger, opts.logFile)
		if err != nil {
			return err
		}
		defer restore()

		p := tea.NewProgram(
			NewExhibitModel(app, opts.interval, opts.debug),
			tea.WithAltScreen(),
			tea.WithMouseCellMotion(),
			tea.WithContext(ctx),
		)
		done := make(chan struct{})
		dispatch = &programDispatcher{program: p, done: done}
		host = func() error {
			_, err := p.Run()
			close(done)
			if ctx.Err() != nil {
				// Interrupted by a signal: a normal shutdown.
				return nil
			}
			return err
		}
	}

	listen := ""
	if cfg.Server.Listen != "" {
		srv, err := server.New(server.Config{Addr: cfg.Server.Listen}, dispatch, c.Logger)
		if err != nil {
			return err
		}
		if err := srv.Start(ctx); err != nil {
			return err
		}
		defer srv.Close()
		listen = srv.Addr()
	}

	sess := session.New(opts.name, app.ID(), session.DefaultTTL)
	sess.Listen = listen
	sess.Catalog = cfg.Catalog.Source
	sess.Headless = opts.headless
	sess.PID = os.Getpid()
	sess.Host, _ = os.Hostname()
	defer c.register(ctx, cfg, sess)()

	return host()
}

// register announces sess in the session store and refreshes it every
// heartbeat until the returned function is called. Store failures only warn:
// an unregistered exhibit still runs.
func (c *CLI) register(ctx context.Context, cfg *config.Config, sess *session.Session) (unregister func()) {
	store, err := newSessionStore(ctx, cfg)
	if err != nil {
		c.Logger.Warn("session store unavailable, run not registered", "error", err)
		return func() {}
	}
	if prev, err := store.Get(ctx, sess.Name); err == nil && prev != nil && prev.RunID != sess.RunID {
		c.Logger.Warn("replacing live registration", "name", sess.Name, "pid", prev.PID, "host", prev.Host)
	}
	if err := store.Set(ctx, sess); err != nil {
		c.Logger.Warn("could not register run", "name", sess.Name, "error", err)
		store.Close()
		return func() {}
	}
	c.Logger.Debug("registered run", "name", sess.Name, "listen", sess.Listen)

	beatCtx, cancel := context.WithCancel(ctx)
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		ticker := time.NewTicker(session.HeartbeatInterval)
		defer ticker.Stop()
		for {
			select {
			case <-beatCtx.Done():
				return
			case <-ticker.C:
				sess.Touch(session.DefaultTTL)
				if err := store.Set(beatCtx, sess); err != nil {
					c.Logger.Debug("heartbeat failed", "name", sess.Name, "error", err)
				}
			}
		}
	}()

	return func() {
		cancel()
		<-stopped
		c.unregister(context.WithoutCancel(ctx), store, sess)
		store.Close()
	}
}

// unregister deletes the entry unless another run has taken the name over.
func (c *CLI) unregister(ctx context.Context, store session.Store, sess *session.Session) {
	current, err := store.Get(ctx, sess.Name)
	if err == nil && current != nil && current.RunID != sess.RunID {
		return
	}
	if err := store.Delete(ctx, sess.Name); err != nil {
		c.Logger.Warn("could not unregister run", "name", sess.Name, "error", err)
	}
}
