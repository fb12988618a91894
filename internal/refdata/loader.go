package refdata

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/onflyair/cargofit/internal/feasibility"
)

// DefaultCacheTTL is how long a fetched URL source is reused.
const DefaultCacheTTL = 10 * time.Minute

const cacheFileName = "sources.gob"

func init() {
	gob.Register([]byte(nil))
}

// Loader reads fleet and parts sheets from local files (.csv, .xlsx) or
// http(s) URLs serving CSV, such as a published Google Sheet. Downloaded
// URL sources are cached for the TTL and, with WithCacheDir, kept on disk so
// later runs skip the download. Local files are always read fresh.
// A Loader is safe for concurrent use.
type Loader struct {
	cache     *cache.Cache
	ttl       time.Duration
	cacheFile string
	mu        sync.Mutex // serializes writes of cacheFile
	client    *http.Client
	log       *zap.SugaredLogger
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(l *Loader) {
		l.log = log
	}
}

// WithHTTPClient sets the client used for URL sources.
func WithHTTPClient(c *http.Client) Option {
	return func(l *Loader) {
		l.client = c
	}
}

// WithCacheTTL sets how long downloaded sources are kept.
func WithCacheTTL(ttl time.Duration) Option {
	return func(l *Loader) {
		l.ttl = ttl
	}
}

// WithCacheDir persists downloaded sources under dir between runs.
func WithCacheDir(dir string) Option {
	return func(l *Loader) {
		if dir != "" {
			l.cacheFile = filepath.Join(dir, cacheFileName)
		}
	}
}

// NewLoader creates a loader with a DefaultCacheTTL cache.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		ttl:    DefaultCacheTTL,
		client: &http.Client{Timeout: 30 * time.Second},
		log:    zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.cache = cache.NewFrom(l.ttl, 2*l.ttl, l.restore())
	return l
}

// restore reads cached sources saved by an earlier run. Expired entries are
// loaded too; the cache treats them as misses.
func (l *Loader) restore() map[string]cache.Item {
	items := make(map[string]cache.Item)
	if l.cacheFile == "" {
		return items
	}
	f, err := os.Open(l.cacheFile)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			l.log.Warnw("Cannot open source cache", "path", l.cacheFile, "error", err)
		}
		return items
	}
	defer f.Close()

	if err := gob.NewDecoder(f).Decode(&items); err != nil {
		l.log.Warnw("Discarding unreadable source cache", "path", l.cacheFile, "error", err)
		return make(map[string]cache.Item)
	}
	l.log.Debugw("Source cache restored", "path", l.cacheFile, "entries", len(items))
	return items
}

// persist writes the live cache entries to cacheFile. Failures are logged,
// not returned.
func (l *Loader) persist() {
	if l.cacheFile == "" {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	dir := filepath.Dir(l.cacheFile)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		l.log.Warnw("Cannot create source cache directory", "path", dir, "error", err)
		return
	}
	tmp, err := os.CreateTemp(dir, cacheFileName+".*")
	if err != nil {
		l.log.Warnw("Cannot write source cache", "path", l.cacheFile, "error", err)
		return
	}
	err = gob.NewEncoder(tmp).Encode(l.cache.Items())
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmp.Name(), l.cacheFile)
	}
	if err != nil {
		os.Remove(tmp.Name())
		l.log.Warnw("Cannot write source cache", "path", l.cacheFile, "error", err)
	}
}

// Load reads both sources concurrently and builds a catalog. An empty source
// yields an empty list rather than an error.
func (l *Loader) Load(ctx context.Context, aircraftSrc, partsSrc string) (*Catalog, error) {
	var (
		aircraft []feasibility.AircraftSpec
		parts    []feasibility.CargoItem
	)

	g, ctx := errgroup.WithContext(ctx)
	if aircraftSrc != "" {
		g.Go(func() error {
			t, err := l.table(ctx, aircraftSrc)
			if err != nil {
				return fmt.Errorf("aircraft data: %w", err)
			}
			aircraft, err = aircraftFromTable(t)
			if err != nil {
				return fmt.Errorf("aircraft data %s: %w", aircraftSrc, err)
			}
			return nil
		})
	}
	if partsSrc != "" {
		g.Go(func() error {
			t, err := l.table(ctx, partsSrc)
			if err != nil {
				return fmt.Errorf("parts data: %w", err)
			}
			parts, err = partsFromTable(t)
			if err != nil {
				return fmt.Errorf("parts data %s: %w", partsSrc, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	l.log.Debugw("Reference data loaded",
		"aircraft_source", aircraftSrc,
		"aircraft", len(aircraft),
		"parts_source", partsSrc,
		"parts", len(parts),
	)
	return NewCatalog(aircraft, parts), nil
}

// Invalidate drops a cached source so the next Load downloads it again.
func (l *Loader) Invalidate(src string) {
	if _, ok := l.cache.Get(src); !ok {
		return
	}
	l.cache.Delete(src)
	l.persist()
}

func (l *Loader) table(ctx context.Context, src string) (*table, error) {
	data, err := l.source(ctx, src)
	if err != nil {
		return nil, err
	}

	var t *table
	if isWorkbook(src) {
		t, err = readXLSX(bytes.NewReader(data))
	} else {
		t, err = readCSV(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src, err)
	}
	l.log.Debugw("Reference data parsed", "source", src, "rows", len(t.rows))
	return t, nil
}

// source returns the raw sheet, from the cache for URL sources when fresh.
func (l *Loader) source(ctx context.Context, src string) ([]byte, error) {
	if !isURL(src) {
		return l.fetch(ctx, src)
	}
	if cached, ok := l.cache.Get(src); ok {
		if data, ok := cached.([]byte); ok {
			l.log.Debugw("Reference data cache hit", "source", src)
			return data, nil
		}
	}

	data, err := l.fetch(ctx, src)
	if err != nil {
		return nil, err
	}
	l.cache.Set(src, data, cache.DefaultExpiration)
	l.persist()
	return data, nil
}

func (l *Loader) fetch(ctx context.Context, src string) ([]byte, error) {
	if !isURL(src) {
		data, err := os.ReadFile(src)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", src, err)
		}
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid source URL %s: %w", src, err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", src, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: status %d", src, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", src, err)
	}
	return data, nil
}

func isURL(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

func isWorkbook(src string) bool {
	p := src
	if isURL(src) {
		if u, err := url.Parse(src); err == nil {
			p = u.Path
		}
	}
	switch strings.ToLower(filepath.Ext(p)) {
	case ".xlsx", ".xlsm":
		return true
	}
	return false
}
