package reconcile

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportCache_GetOrBuild(t *testing.T) {
	cache := NewReportCache(time.Minute)
	key := CacheKey("inputs/before.csv", "inputs/after.csv", "eid")

	builds := 0
	build := func() (*Report, error) {
		builds++
		return &Report{Left: "before.csv", Right: "after.csv"}, nil
	}

	first, cached, err := cache.GetOrBuild(key, build)
	require.NoError(t, err)
	assert.False(t, cached)

	second, cached, err := cache.GetOrBuild(key, build)
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Same(t, first, second)
	assert.Equal(t, 1, builds)

	cache.Invalidate(key)
	_, cached, err = cache.GetOrBuild(key, build)
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, 2, builds)
}

func TestReportCache_Disabled(t *testing.T) {
	cache := NewReportCache(0)

	builds := 0
	build := func() (*Report, error) {
		builds++
		return &Report{}, nil
	}

	for i := 0; i < 3; i++ {
		_, cached, err := cache.GetOrBuild("k", build)
		require.NoError(t, err)
		assert.False(t, cached)
	}
	assert.Equal(t, 3, builds)
	assert.Equal(t, 0, cache.Len())
}

func TestReportCache_Expired(t *testing.T) {
	cache := NewReportCache(time.Minute)
	cache.entries["k"] = &cachedReport{report: &Report{Left: "stale"}, built: time.Now().Add(-time.Hour)}

	report, cached, err := cache.GetOrBuild("k", func() (*Report, error) {
		return &Report{Left: "fresh"}, nil
	})
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, "fresh", report.Left)
}

func TestReportCache_ErrorNotCached(t *testing.T) {
	cache := NewReportCache(time.Minute)

	_, _, err := cache.GetOrBuild("k", func() (*Report, error) {
		return nil, assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 0, cache.Len())
}

func TestReportCache_Concurrent(t *testing.T) {
	cache := NewReportCache(time.Minute)

	var mu sync.Mutex
	builds := 0
	build := func() (*Report, error) {
		mu.Lock()
		builds++
		mu.Unlock()
		time.Sleep(10 * time.Millisecond)
		return &Report{}, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := cache.GetOrBuild("k", build)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, builds)
}
