// Package assetcache serves a fixed set of static assets from memory,
// falling back to the origin handler for everything else. It mirrors the
// terminals' offline asset cache: assets are captured once at install time
// and served as-is afterwards, with no revalidation and no caching of
// misses.
package assetcache

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"path"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
)

// entry is one cached response.
type entry struct {
	body        []byte
	contentType string
}

// Cache is a cache-first http.Handler wrapping an origin handler.
type Cache struct {
	origin http.Handler

	mu      sync.RWMutex
	entries map[string]entry
}

// New creates an empty cache in front of the given origin handler. Until
// Install runs, every request passes straight through.
func New(origin http.Handler) *Cache {
	return &Cache{
		origin:  origin,
		entries: make(map[string]entry),
	}
}

// Install captures the named URL paths from the origin into the cache.
// Patterns containing glob metacharacters are expanded against staticFS and
// served under /static/. Install is atomic: if any asset cannot be
// captured, the existing cache is left untouched.
func (c *Cache) Install(ctx context.Context, staticFS fs.FS, manifest []string) error {
	paths, err := expandManifest(staticFS, manifest)
	if err != nil {
		return err
	}

	captured := make(map[string]entry, len(paths))
	for _, p := range paths {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, p, nil)
		if err != nil {
			return fmt.Errorf("building install request for %s: %w", p, err)
		}
		rec := newRecorder()
		c.origin.ServeHTTP(rec, req)

		if rec.status != http.StatusOK {
			return fmt.Errorf("installing %s: origin returned %d", p, rec.status)
		}
		captured[p] = entry{
			body:        rec.body.Bytes(),
			contentType: rec.header.Get("Content-Type"),
		}
	}

	c.mu.Lock()
	c.entries = captured
	c.mu.Unlock()
	return nil
}

// expandManifest turns the manifest into concrete URL paths. Literal
// entries pass through; glob patterns are matched against staticFS.
func expandManifest(staticFS fs.FS, manifest []string) ([]string, error) {
	var out []string
	for _, m := range manifest {
		if !isPattern(m) {
			out = append(out, m)
			continue
		}
		if staticFS == nil {
			return nil, fmt.Errorf("glob %q in manifest but no static filesystem given", m)
		}
		matches, err := doublestar.Glob(staticFS, m)
		if err != nil {
			return nil, fmt.Errorf("expanding glob %q: %w", m, err)
		}
		for _, match := range matches {
			out = append(out, path.Join("/static", match))
		}
	}
	return out, nil
}

func isPattern(s string) bool {
	for _, r := range s {
		switch r {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}

// ServeHTTP serves a cached copy when one exists, otherwise hands the
// request to the origin. Responses fetched on a miss are not added to the
// cache.
func (c *Cache) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		c.mu.RLock()
		e, ok := c.entries[r.URL.Path]
		c.mu.RUnlock()
		if ok {
			if e.contentType != "" {
				w.Header().Set("Content-Type", e.contentType)
			}
			w.WriteHeader(http.StatusOK)
			w.Write(e.body)
			return
		}
	}
	c.origin.ServeHTTP(w, r)
}

// recorder captures one origin response during Install.
type recorder struct {
	header http.Header
	body   bytes.Buffer
	status int
}

func newRecorder() *recorder {
	return &recorder{header: make(http.Header), status: http.StatusOK}
}

func (r *recorder) Header() http.Header         { return r.header }
func (r *recorder) WriteHeader(status int)      { r.status = status }
func (r *recorder) Write(p []byte) (int, error) { return r.body.Write(p) }

// Cached reports whether the path is currently held in the cache.
func (c *Cache) Cached(p string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[p]
	return ok
}

// Len returns the number of cached assets.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
