package catalog

import (
	"context"
	stderrors "errors"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/exhibit/pkg/cache"
	"github.com/matzehuels/exhibit/pkg/errors"
	"github.com/matzehuels/exhibit/pkg/httputil"
)

// DefaultTTL is how long a fetched remote catalog stays cached.
const DefaultTTL = 24 * time.Hour

const fetchAttempts = 3

// Loader loads catalogs from files, HTTP(S) URLs and MongoDB.
type Loader struct {
	// Cache stores raw remote catalog bodies. Nil disables caching.
	Cache cache.Cache

	// Client fetches remote catalogs. Nil uses a default client.
	Client *httputil.Client

	// TTL for cached remote catalogs. Zero uses DefaultTTL.
	TTL time.Duration

	// RetryDelay is the initial backoff between fetch attempts. Zero uses
	// one second.
	RetryDelay time.Duration

	// Refresh bypasses the cache for reads (results are still written).
	Refresh bool

	// Logger receives progress messages. Nil uses log.Default().
	Logger *log.Logger
}

// Load reads a catalog from source. The returned catalog is sorted by
// artwork position and validated.
func (l *Loader) Load(ctx context.Context, source string) (*Catalog, error) {
	source = strings.TrimSpace(source)
	switch {
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return l.loadRemote(ctx, source)
	case strings.HasPrefix(source, "mongodb://"), strings.HasPrefix(source, "mongodb+srv://"):
		return (&MongoSource{URI: source}).Load(ctx)
	default:
		return l.loadFile(source)
	}
}

func (l *Loader) loadFile(p string) (*Catalog, error) {
	if err := errors.ValidatePath(p); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "catalog file %s", p)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read catalog %s", p)
	}
	c, err := Decode(data, FormatFor(filepath.Ext(p)))
	if err != nil {
		return nil, err
	}
	l.logger().Debug("Loaded catalog", "path", p, "artworks", len(c.Artworks), "critiques", len(c.Critiques))
	return c, nil
}

func (l *Loader) loadRemote(ctx context.Context, url string) (*Catalog, error) {
	if err := errors.ValidateURL(url); err != nil {
		return nil, err
	}
	format := FormatFor(path.Ext(strings.SplitN(url, "?", 2)[0]))
	key := cache.CatalogKey(url)
	logger := l.logger()

	if l.Cache != nil && !l.Refresh {
		data, ok, err := l.Cache.Get(ctx, key)
		if err != nil {
			logger.Warn("Catalog cache read failed", "err", err)
		}
		if ok {
			if c, err := Decode(data, format); err == nil {
				logger.Debug("Catalog served from cache", "url", url)
				return c, nil
			}
			_ = l.Cache.Delete(ctx, key)
		}
	}

	client := l.Client
	if client == nil {
		client = httputil.NewClient(map[string]string{"Accept": "application/json, application/toml"})
	}

	delay := l.RetryDelay
	if delay == 0 {
		delay = time.Second
	}

	var data []byte
	err := httputil.Retry(ctx, fetchAttempts, delay, func() error {
		var err error
		data, err = client.Get(ctx, url)
		return err
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if stderrors.Is(err, httputil.ErrNotFound) {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "catalog %s", url)
		}
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "fetch catalog %s", url)
	}

	c, err := Decode(data, format)
	if err != nil {
		return nil, err
	}

	if l.Cache != nil {
		ttl := l.TTL
		if ttl == 0 {
			ttl = DefaultTTL
		}
		if err := l.Cache.Set(ctx, key, data, ttl); err != nil {
			logger.Warn("Catalog cache write failed", "err", err)
		}
	}
	logger.Debug("Fetched catalog", "url", url, "bytes", len(data))
	return c, nil
}

func (l *Loader) logger() *log.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return log.Default()
}

// FormatFor maps a file extension to a catalog format. Anything other than
// ".toml" is treated as JSON.
func FormatFor(ext string) string {
	if strings.EqualFold(ext, ".toml") {
		return FormatTOML
	}
	return FormatJSON
}
