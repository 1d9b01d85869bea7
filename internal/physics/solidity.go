package physics

import (
	"sync/atomic"

	"github.com/annel0/zoneworld/internal/logging"
	"github.com/dgraph-io/ristretto"
)

// Диапазоны координат, которые упаковываются в ключ кэша без потерь
const (
	horizontalBits = 24
	verticalBits   = 16
	horizontalMax  = 1<<(horizontalBits-1) - 1
	verticalMax    = 1<<(verticalBits-1) - 1
)

// CacheStats содержит счётчики обращений к кэшу твёрдости
type CacheStats struct {
	Hits   uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
	Clears uint64 `json:"clears"`
}

// CachedSolidity запоминает результаты предиката твёрдости на короткое время.
// Мир неизменяем, поэтому кэш влияет только на скорость, но не на результат.
type CachedSolidity struct {
	inner  Solidity
	cache  *ristretto.Cache
	hits   atomic.Uint64
	misses atomic.Uint64
	clears atomic.Uint64
}

// NewCachedSolidity создаёт кэш поверх предиката.
// Если кэш не удалось создать, возвращает исходный предикат и пишет предупреждение.
func NewCachedSolidity(inner Solidity, maxEntries int64) Solidity {
	c, err := newCachedSolidity(inner, maxEntries)
	if err != nil {
		logging.GetPhysicsLogger().Warn("Кэш твёрдости отключён: %v", err)
		return inner
	}
	return c
}

func newCachedSolidity(inner Solidity, maxEntries int64) (*CachedSolidity, error) {
	if maxEntries <= 0 {
		maxEntries = 1 << 14
	}
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: maxEntries * 10,
		MaxCost:     maxEntries,
		BufferItems: 64,
		// Стоимость записи равна 1, MaxCost считает записи, а не байты
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, err
	}
	return &CachedSolidity{inner: inner, cache: cache}, nil
}

// IsSolid возвращает значение из кэша или вычисляет его
func (c *CachedSolidity) IsSolid(x, y, z int) bool {
	key, ok := cacheKey(x, y, z)
	if !ok {
		return c.inner.IsSolid(x, y, z)
	}
	if v, found := c.cache.Get(key); found {
		c.hits.Add(1)
		return v.(bool)
	}
	c.misses.Add(1)
	solid := c.inner.IsSolid(x, y, z)
	c.cache.Set(key, solid, 1)
	return solid
}

// Clear сбрасывает содержимое кэша
func (c *CachedSolidity) Clear() {
	c.cache.Clear()
	c.clears.Add(1)
}

// Wait дожидается применения отложенных записей
func (c *CachedSolidity) Wait() {
	c.cache.Wait()
}

// Stats возвращает счётчики обращений
func (c *CachedSolidity) Stats() CacheStats {
	return CacheStats{Hits: c.hits.Load(), Misses: c.misses.Load(), Clears: c.clears.Load()}
}

// Close освобождает ресурсы кэша
func (c *CachedSolidity) Close() {
	c.cache.Close()
}

// cacheKey упаковывает координаты в uint64 без коллизий.
// Координаты вне диапазона в кэш не попадают.
func cacheKey(x, y, z int) (uint64, bool) {
	if x < -horizontalMax || x > horizontalMax || z < -horizontalMax || z > horizontalMax ||
		y < -verticalMax || y > verticalMax {
		return 0, false
	}
	const hMask = 1<<horizontalBits - 1
	const vMask = 1<<verticalBits - 1
	return uint64(x)&hMask<<(horizontalBits+verticalBits) |
		uint64(z)&hMask<<verticalBits |
		uint64(y)&vMask, true
}
