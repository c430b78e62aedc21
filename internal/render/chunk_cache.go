package render

import "sync"

// Параметры кэша чанков по умолчанию
const (
	DefaultCacheCapacity   = 256
	DefaultCacheTTLSeconds = 3.0
)

// ChunkKey - координаты логического чанка
type ChunkKey struct {
	X, Y, Z int
}

// ChunkCacheEntry - запись о недавно нужном чанке
type ChunkCacheEntry struct {
	Key      ChunkKey
	LastSeen float64 // Игровое время последнего обновления, секунды
	InView   bool
}

// CacheObserver получает события вытеснения и истечения записей
type CacheObserver interface {
	ChunkEvicted()
	ChunksExpired(n int)
}

// ChunkCache - ограниченный список недавно нужных чанков с линейным поиском.
// Игровое время двигает владелец через Advance.
type ChunkCache struct {
	mu       sync.Mutex
	entries  []ChunkCacheEntry
	capacity int
	ttl      float64
	now      float64
	observer CacheObserver
}

// NewChunkCache создаёт кэш. Неположительные параметры заменяются значениями по умолчанию.
func NewChunkCache(capacity int, ttlSeconds float64, observer CacheObserver) *ChunkCache {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	if ttlSeconds <= 0 {
		ttlSeconds = DefaultCacheTTLSeconds
	}
	return &ChunkCache{
		entries:  make([]ChunkCacheEntry, 0, capacity),
		capacity: capacity,
		ttl:      ttlSeconds,
		observer: observer,
	}
}

// Advance продвигает игровое время на dt секунд. Отрицательный шаг игнорируется.
func (c *ChunkCache) Advance(dt float64) {
	if dt <= 0 {
		return
	}
	c.mu.Lock()
	c.now += dt
	c.mu.Unlock()
}

// Now возвращает текущее игровое время
func (c *ChunkCache) Now() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Capacity возвращает максимальное число записей
func (c *ChunkCache) Capacity() int {
	return c.capacity
}

// Len возвращает число записей
func (c *ChunkCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Entries возвращает копию записей
func (c *ChunkCache) Entries() []ChunkCacheEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]ChunkCacheEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// IsChunkLoaded проверяет наличие чанка в кэше
func (c *ChunkCache) IsChunkLoaded(x, y, z int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.find(ChunkKey{x, y, z}) >= 0
}

func (c *ChunkCache) find(key ChunkKey) int {
	for i := range c.entries {
		if c.entries[i].Key == key {
			return i
		}
	}
	return -1
}

// Update обновляет запись чанка или добавляет новую.
// При переполнении вытесняется запись вне обзора, среди равных самая старая.
func (c *ChunkCache) Update(x, y, z int, inView bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := ChunkKey{x, y, z}
	if i := c.find(key); i >= 0 {
		c.entries[i].LastSeen = c.now
		c.entries[i].InView = inView
		return
	}

	entry := ChunkCacheEntry{Key: key, LastSeen: c.now, InView: inView}
	if len(c.entries) < c.capacity {
		c.entries = append(c.entries, entry)
		return
	}

	c.entries[c.victim()] = entry
	if c.observer != nil {
		c.observer.ChunkEvicted()
	}
}

// victim выбирает первую минимальную запись по ключу (в обзоре, время)
func (c *ChunkCache) victim() int {
	best := 0
	for i := 1; i < len(c.entries); i++ {
		a, b := c.entries[i], c.entries[best]
		if a.InView != b.InView {
			if !a.InView {
				best = i
			}
			continue
		}
		if a.LastSeen < b.LastSeen {
			best = i
		}
	}
	return best
}

// Cleanup удаляет записи, не обновлявшиеся дольше TTL. Возвращает число удалённых.
func (c *ChunkCache) Cleanup() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.entries[:0]
	for _, e := range c.entries {
		if c.now-e.LastSeen > c.ttl {
			continue
		}
		kept = append(kept, e)
	}
	removed := len(c.entries) - len(kept)
	c.entries = kept

	if removed > 0 && c.observer != nil {
		c.observer.ChunksExpired(removed)
	}
	return removed
}

// Reset очищает кэш и сбрасывает игровое время
func (c *ChunkCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = c.entries[:0]
	c.now = 0
}
