package mvt

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// TileKey identifies one tile by its slippy-map coordinates, the natural
// cache key for decoded layers: the same physical tile is requested
// repeatedly as a viewport pans and zooms.
type TileKey struct {
	Z, X, Y int
	Layer   string
}

func (k TileKey) String() string {
	return fmt.Sprintf("%d/%d/%d/%s", k.Z, k.X, k.Y, k.Layer)
}

// GeometryCache memoizes decoded layers by TileKey under an LRU eviction
// policy, so a server re-requested for the same tile does not re-run the
// geometry decoder on every request. It wraps hashicorp/golang-lru's
// generic Cache rather than the teacher's hand-rolled container/list LRU,
// since the eviction policy itself needs no tile-specific bookkeeping
// (unlike the teacher's memory-weighted chart cache, entries here are
// uniform DecodedLayer values and a plain capacity bound is sufficient).
type GeometryCache struct {
	cache *lru.Cache[TileKey, *DecodedLayer]
}

// NewGeometryCache creates a cache holding at most size decoded layers.
// size must be positive.
func NewGeometryCache(size int) (*GeometryCache, error) {
	c, err := lru.New[TileKey, *DecodedLayer](size)
	if err != nil {
		return nil, fmt.Errorf("geometry cache: %w", err)
	}
	return &GeometryCache{cache: c}, nil
}

// Get returns the cached layer for key, loading and caching it via load on
// a miss. load is only called when key is absent from the cache.
func (c *GeometryCache) Get(key TileKey, load func() (*DecodedLayer, error)) (*DecodedLayer, error) {
	if dl, ok := c.cache.Get(key); ok {
		return dl, nil
	}
	dl, err := load()
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, dl)
	return dl, nil
}

// Purge evicts every entry from the cache.
func (c *GeometryCache) Purge() {
	c.cache.Purge()
}

// Len reports the number of layers currently cached.
func (c *GeometryCache) Len() int {
	return c.cache.Len()
}
