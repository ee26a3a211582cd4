package pptx

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fredcamaral/mdpptx/internal/domain/entities"
)

func TestPartCache_GetSet(t *testing.T) {
	cache := NewPartCache(10, time.Hour)

	cache.Set(entities.ThemeDefault, "theme1", []byte("<a:theme/>"))

	body, found := cache.Get(entities.ThemeDefault, "theme1")
	assert.True(t, found)
	assert.Equal(t, []byte("<a:theme/>"), body)

	// same part name under another template is a different entry
	_, found = cache.Get(entities.ThemeModern, "theme1")
	assert.False(t, found)
}

func TestPartCache_TTLExpiration(t *testing.T) {
	cache := NewPartCache(10, 50*time.Millisecond)
	cache.Set(entities.ThemeDefault, "theme1", []byte("x"))

	_, found := cache.Get(entities.ThemeDefault, "theme1")
	assert.True(t, found)

	time.Sleep(80 * time.Millisecond)

	_, found = cache.Get(entities.ThemeDefault, "theme1")
	assert.False(t, found)
}

func TestPartCache_LRUEviction(t *testing.T) {
	cache := NewPartCache(3, 0)

	cache.Set(entities.ThemeDefault, "a", []byte("a"))
	time.Sleep(time.Millisecond)
	cache.Set(entities.ThemeDefault, "b", []byte("b"))
	time.Sleep(time.Millisecond)
	cache.Set(entities.ThemeDefault, "c", []byte("c"))
	time.Sleep(time.Millisecond)

	cache.Get(entities.ThemeDefault, "a")
	time.Sleep(time.Millisecond)
	cache.Get(entities.ThemeDefault, "b")
	time.Sleep(time.Millisecond)

	cache.Set(entities.ThemeDefault, "d", []byte("d"))

	for _, name := range []string{"a", "b", "d"} {
		_, found := cache.Get(entities.ThemeDefault, name)
		assert.True(t, found, name)
	}
	_, found := cache.Get(entities.ThemeDefault, "c")
	assert.False(t, found)
	assert.Equal(t, int64(1), cache.Stats().Evictions)
}

func TestPartCache_GetOrRender(t *testing.T) {
	cache := NewPartCache(0, 0)
	calls := 0
	render := func() []byte {
		calls++
		return []byte("body")
	}

	assert.Equal(t, []byte("body"), cache.GetOrRender(entities.ThemeMinimal, "layout/Blank", render))
	assert.Equal(t, []byte("body"), cache.GetOrRender(entities.ThemeMinimal, "layout/Blank", render))
	assert.Equal(t, 1, calls)

	stats := cache.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.InDelta(t, 0.5, stats.HitRate, 0.001)
}

func TestPartCache_Clear(t *testing.T) {
	cache := NewPartCache(10, 0)
	cache.Set(entities.ThemeDefault, "a", []byte("a"))
	cache.Set(entities.ThemeDefault, "b", []byte("b"))

	cache.Clear()

	stats := cache.Stats()
	assert.Equal(t, 0, stats.Size)
	assert.Equal(t, 10, stats.MaxSize)
}

func TestPartCache_Concurrent(t *testing.T) {
	cache := NewPartCache(100, time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			name := fmt.Sprintf("part%d", id%10)
			cache.GetOrRender(entities.ThemeDefault, name, func() []byte { return []byte(name) })
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, cache.Stats().Size)
}
