package directions

import (
	"context"
	"sync"

	"github.com/mmcloughlin/geohash"

	"gravemap/internal/geom"
)

// cacheKeyChars is the geohash length used for keys (~5 m cells).
const cacheKeyChars = 9

// Cache memoizes another Router by origin/destination geohash. Entries are
// evicted oldest-first once size is reached. Errors are not cached.
type Cache struct {
	next Router
	size int

	mu      sync.Mutex
	entries map[string]Route
	order   []string
}

func NewCache(next Router, size int) *Cache {
	if size <= 0 {
		size = 1
	}
	return &Cache{next: next, size: size, entries: make(map[string]Route)}
}

func cacheKey(from, to geom.LatLng) string {
	return geohash.EncodeWithPrecision(from.Lat, from.Lng, cacheKeyChars) + ":" +
		geohash.EncodeWithPrecision(to.Lat, to.Lng, cacheKeyChars)
}

func (c *Cache) Route(ctx context.Context, from, to geom.LatLng) (Route, error) {
	key := cacheKey(from, to)
	c.mu.Lock()
	if r, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return r, nil
	}
	c.mu.Unlock()

	r, err := c.next.Route(ctx, from, to)
	if err != nil {
		return Route{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; !ok {
		c.order = append(c.order, key)
	}
	c.entries[key] = r
	for len(c.order) > c.size {
		delete(c.entries, c.order[0])
		c.order = c.order[1:]
	}
	return r, nil
}

// Len returns the number of cached routes.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
