package cache

import (
	"container/list"
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

const DefaultValueLimitedSizeRatio = 0.3

type memoryEntry struct {
	key   string
	value Value
	size  int64
}

// LruMemoryCache keeps values in memory up to MaxSize bytes, evicting the
// least recently used entries first.
type LruMemoryCache struct {
	lock    sync.Mutex
	entries map[string]*list.Element
	order   *list.List

	size             int64
	maxSize          int64
	valueLimitedSize int64

	keyLocks *KeyLocks
	logger   logrus.FieldLogger
}

var _ MemoryCache = (*LruMemoryCache)(nil)

func NewLruMemoryCache(maxSize int64, logger logrus.FieldLogger) *LruMemoryCache {
	return &LruMemoryCache{
		entries:          map[string]*list.Element{},
		order:            list.New(),
		maxSize:          maxSize,
		valueLimitedSize: int64(float64(maxSize) * DefaultValueLimitedSizeRatio),
		keyLocks:         NewKeyLocks(DefaultKeyLocksPoolSize),
		logger:           logger.WithField("component", "memoryCache"),
	}
}

// Put stores value under key unless the key is already cached or the value
// is larger than the per-value limit.
func (c *LruMemoryCache) Put(key string, value Value) PutResult {
	c.lock.Lock()
	defer c.lock.Unlock()

	if _, exists := c.entries[key]; exists {
		return PutExists
	}

	size := chargeOf(value)
	if size > c.valueLimitedSize {
		c.logger.WithFields(logrus.Fields{"key": key, "size": size, "limit": c.valueLimitedSize}).Debug("value too large for memory cache")
		return PutTooLarge
	}

	c.entries[key] = c.order.PushFront(&memoryEntry{key: key, value: value, size: size})
	c.size += size
	c.trimLocked(c.maxSize)

	return PutOK
}

func (c *LruMemoryCache) Get(key string) (Value, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()

	element, ok := c.validElementLocked(key)
	if !ok {
		return nil, false
	}

	c.order.MoveToFront(element)
	return element.Value.(*memoryEntry).value, true
}

func (c *LruMemoryCache) Exist(key string) bool {
	c.lock.Lock()
	defer c.lock.Unlock()

	_, ok := c.validElementLocked(key)
	return ok
}

func (c *LruMemoryCache) Remove(key string) bool {
	c.lock.Lock()
	defer c.lock.Unlock()

	element, ok := c.entries[key]
	if !ok {
		return false
	}

	c.removeElementLocked(element)
	return true
}

// Trim evicts least recently used entries until the cache size is at most
// targetSize.
func (c *LruMemoryCache) Trim(targetSize int64) {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.trimLocked(targetSize)
}

func (c *LruMemoryCache) Clear() {
	c.Trim(0)
}

func (c *LruMemoryCache) Size() int64 {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.size
}

func (c *LruMemoryCache) MaxSize() int64 {
	return c.maxSize
}

// Keys returns the cached keys, most recently used first.
func (c *LruMemoryCache) Keys() []string {
	c.lock.Lock()
	defer c.lock.Unlock()

	keys := make([]string, 0, len(c.entries))
	for element := c.order.Front(); element != nil; element = element.Next() {
		keys = append(keys, element.Value.(*memoryEntry).key)
	}

	return keys
}

func (c *LruMemoryCache) WithLock(ctx context.Context, key string, fn func() error) error {
	return c.keyLocks.WithLock(ctx, key, fn)
}

func (c *LruMemoryCache) validElementLocked(key string) (*list.Element, bool) {
	element, ok := c.entries[key]
	if !ok {
		return nil, false
	}

	if !element.Value.(*memoryEntry).value.IsValid() {
		c.logger.WithField("key", key).Debug("dropping invalid memory cache value")
		c.removeElementLocked(element)
		return nil, false
	}

	return element, true
}

func (c *LruMemoryCache) trimLocked(targetSize int64) {
	for c.size > targetSize {
		oldest := c.order.Back()
		if oldest == nil {
			return
		}

		c.logger.WithField("key", oldest.Value.(*memoryEntry).key).Debug("evicting memory cache value")
		c.removeElementLocked(oldest)
	}
}

func (c *LruMemoryCache) removeElementLocked(element *list.Element) {
	entry := c.order.Remove(element).(*memoryEntry)
	delete(c.entries, entry.key)
	c.size -= entry.size
}

func chargeOf(value Value) int64 {
	if size := value.Size(); size > 1 {
		return size
	}

	return 1
}
