package reconcile

import (
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// cachedReport is a finished report with the time it was built.
type cachedReport struct {
	report *Report
	built  time.Time
}

// ReportCache holds finished reports for a TTL. Concurrent builds of the same key are
// collapsed into one. Cached reports are shared and must not be modified.
type ReportCache struct {
	mu      sync.RWMutex
	entries map[string]*cachedReport
	sf      singleflight.Group
	ttl     time.Duration
}

// NewReportCache creates a cache. A zero TTL disables caching, although concurrent
// builds of the same key are still collapsed.
func NewReportCache(ttl time.Duration) *ReportCache {
	return &ReportCache{
		entries: make(map[string]*cachedReport),
		ttl:     ttl,
	}
}

// CacheKey joins the parameters identifying a comparison.
func CacheKey(parts ...string) string {
	return strings.Join(parts, "|")
}

func (c *ReportCache) fresh(e *cachedReport) bool {
	if c.ttl == 0 {
		return false
	}
	return time.Since(e.built) <= c.ttl
}

// GetOrBuild returns the cached report for key, or builds and stores a new one if it
// is absent or expired. The boolean reports whether the result came from the cache.
func (c *ReportCache) GetOrBuild(key string, build func() (*Report, error)) (*Report, bool, error) {
	// Fast path: check if a fresh report exists
	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if exists && c.fresh(entry) {
		return entry.report, true, nil
	}

	// Slow path: build using singleflight to prevent stampedes
	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		c.mu.RLock()
		entry, exists := c.entries[key]
		c.mu.RUnlock()

		if exists && c.fresh(entry) {
			return entry.report, nil
		}

		report, err := build()
		if err != nil {
			return nil, err
		}

		if c.ttl > 0 {
			c.mu.Lock()
			c.entries[key] = &cachedReport{report: report, built: time.Now()}
			c.mu.Unlock()
		}
		return report, nil
	})
	if err != nil {
		return nil, false, err
	}

	return result.(*Report), false, nil
}

// Invalidate removes the report stored under key.
func (c *ReportCache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Len returns the number of stored reports, fresh or not.
func (c *ReportCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
