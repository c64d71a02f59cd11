// Package config loads the exhibit configuration file.
//
// The file is TOML. Every section is optional; missing values fall back to
// [Default]. Unknown keys are rejected so that a typo does not silently
// leave a setting at its default.
//
//	[viewport]
//	width = 1920.0
//	height = 1080.0
//
//	[[regions]]
//	id = "left"
//	x = 0.0
//	y = 0.0
//	w = 0.5
//	h = 1.0
//
//	[autoplay]
//	phase = "15s"
//	step = 0.02
//	floor = 0.05
//
//	[idle]
//	timeout = "30s"
//
//	[catalog]
//	source = "https://example.org/gallery.toml"
//	cache_ttl = "24h"
//
//	[cache]
//	redis_addr = "localhost:6379"
//
//	[server]
//	listen = ":8080"
//
//	[session]
//	dir = "/var/lib/exhibit/sessions"
package config

import (
	"bytes"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/exhibit/pkg/autoplay"
	"github.com/matzehuels/exhibit/pkg/errors"
	"github.com/matzehuels/exhibit/pkg/layout"
)

// Defaults for values not covered by other packages.
const (
	DefaultWidth       = 1920
	DefaultHeight      = 1080
	DefaultIdleTimeout = 30 * time.Second
	DefaultCacheTTL    = 24 * time.Hour
	DefaultRedisPrefix = "exhibit:"
)

// =============================================================================
// Duration
// =============================================================================

// Duration is a time.Duration written as a Go duration string ("15s").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// =============================================================================
// Sections
// =============================================================================

// Config is the full exhibit configuration.
type Config struct {
	Viewport Viewport `toml:"viewport"`
	Regions  []Region `toml:"regions"`
	AutoPlay AutoPlay `toml:"autoplay"`
	Idle     Idle     `toml:"idle"`
	Catalog  Catalog  `toml:"catalog"`
	Cache    Cache    `toml:"cache"`
	Server   Server   `toml:"server"`
	Session  Session  `toml:"session"`
}

// Viewport is the initial display size in pixels. Terminal hosts replace it
// with the real window size on the first resize.
type Viewport struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// Region declares one fractional region. Declaration order matters: it is
// the hit-test priority and the autoplay cycle order.
type Region struct {
	ID string  `toml:"id"`
	X  float64 `toml:"x"`
	Y  float64 `toml:"y"`
	W  float64 `toml:"w"`
	H  float64 `toml:"h"`
}

// AutoPlay tunes the focus cycle. Omitted keys keep the autoplay defaults;
// every value must be positive.
type AutoPlay struct {
	Phase Duration `toml:"phase"`
	Step  float64  `toml:"step"`
	Floor float64  `toml:"floor"`
}

// Idle controls when autoplay resumes after manual interaction.
// A zero timeout disables auto-resume.
type Idle struct {
	Timeout Duration `toml:"timeout"`
}

// Catalog names where artworks come from: a file path, an http(s) URL or a
// mongodb:// URI.
type Catalog struct {
	Source   string   `toml:"source"`
	CacheTTL Duration `toml:"cache_ttl"`
}

// Cache selects the backend for remote catalog bodies. An empty RedisAddr
// means the local file cache.
type Cache struct {
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	RedisPrefix   string `toml:"redis_prefix"`
}

// Server configures the HTTP control API. An empty Listen disables it.
type Server struct {
	Listen string `toml:"listen"`
}

// Session configures where running exhibits register themselves.
// An empty Dir uses the default state directory; RedisAddr, when set, takes
// precedence over files and reuses the cache's Redis credentials.
type Session struct {
	Dir       string `toml:"dir"`
	RedisAddr string `toml:"redis_addr"`
}

// =============================================================================
// Construction
// =============================================================================

// DefaultRegions is a 2x2 grid of quadrants.
func DefaultRegions() []Region {
	return []Region{
		{ID: "top-left", X: 0, Y: 0, W: 0.5, H: 0.5},
		{ID: "top-right", X: 0.5, Y: 0, W: 0.5, H: 0.5},
		{ID: "bottom-left", X: 0, Y: 0.5, W: 0.5, H: 0.5},
		{ID: "bottom-right", X: 0.5, Y: 0.5, W: 0.5, H: 0.5},
	}
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Viewport: Viewport{Width: DefaultWidth, Height: DefaultHeight},
		Regions:  DefaultRegions(),
		AutoPlay: AutoPlay{
			Phase: Duration{autoplay.DefaultPhaseDuration},
			Step:  autoplay.DefaultStepRate,
			Floor: autoplay.DefaultProminenceFloor,
		},
		Idle:    Idle{Timeout: Duration{DefaultIdleTimeout}},
		Catalog: Catalog{CacheTTL: Duration{DefaultCacheTTL}},
		Cache:   Cache{RedisPrefix: DefaultRedisPrefix},
	}
}

// Load reads path on top of [Default] and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeNotFound, "config file %s does not exist", path)
		}
		return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "read config %s", path)
	}
	return Parse(data)
}

// Parse decodes TOML data on top of [Default] and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	// Regions replace the default grid wholesale rather than merging by index.
	cfg.Regions = nil

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeConfiguration, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if !md.IsDefined("regions") {
		cfg.Regions = DefaultRegions()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the parts of the configuration that can be checked without
// building the engine. Region geometry is validated by layout.New.
func (c *Config) Validate() error {
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return errors.New(errors.ErrCodeConfiguration, "viewport must be positive, got %vx%v", c.Viewport.Width, c.Viewport.Height)
	}
	if len(c.Regions) == 0 {
		return errors.New(errors.ErrCodeConfiguration, "at least one region is required")
	}
	for _, r := range c.Regions {
		if err := errors.ValidateID("region", r.ID); err != nil {
			return errors.Wrap(errors.ErrCodeConfiguration, err, "invalid region")
		}
	}
	if c.Idle.Timeout.Duration < 0 {
		return errors.New(errors.ErrCodeConfiguration, "idle timeout must not be negative, got %v", c.Idle.Timeout)
	}
	if c.Catalog.CacheTTL.Duration < 0 {
		return errors.New(errors.ErrCodeConfiguration, "catalog cache_ttl must not be negative, got %v", c.Catalog.CacheTTL)
	}
	// Default fills the autoplay section, so a zero here was written
	// explicitly and is rejected rather than replaced by a default.
	return c.AutoPlayOptions().Validate()
}

// RegionDefs converts the region table for layout.New.
func (c *Config) RegionDefs() []layout.RegionDef {
	defs := make([]layout.RegionDef, len(c.Regions))
	for i, r := range c.Regions {
		defs[i] = layout.RegionDef{ID: r.ID, Bounds: layout.Rect{X: r.X, Y: r.Y, W: r.W, H: r.H}}
	}
	return defs
}

// RegionIDs lists region IDs in declaration order.
func (c *Config) RegionIDs() []string {
	ids := make([]string, len(c.Regions))
	for i, r := range c.Regions {
		ids[i] = r.ID
	}
	return ids
}

// AutoPlayOptions converts the autoplay section.
func (c *Config) AutoPlayOptions() autoplay.Options {
	return autoplay.Options{
		PhaseDuration:   c.AutoPlay.Phase.Duration,
		StepRate:        c.AutoPlay.Step,
		ProminenceFloor: c.AutoPlay.Floor,
	}
}

// Encode renders the configuration as TOML.
func (c *Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	return buf.Bytes(), nil
}

// Write saves the configuration to path, refusing to overwrite unless force
// is set.
func (c *Config) Write(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.New(errors.ErrCodeInvalidPath, "%s already exists", path)
		}
	}
	data, err := c.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}
