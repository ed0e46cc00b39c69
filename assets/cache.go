package assets

import "sync"

// Cache remembers which asset names already exist so repeat uploads of
// the same derived filename reuse the stored URL instead of hitting the
// store again. Lifetime is process uptime; there is no eviction.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]string
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]string)}
}

func cacheKey(folder, name string) string {
	return folder + "/" + name
}

func (c *Cache) Get(folder, name string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	url, ok := c.entries[cacheKey(folder, name)]
	return url, ok
}

func (c *Cache) Put(folder, name, url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey(folder, name)] = url
}

func (c *Cache) Forget(folder, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, cacheKey(folder, name))
}

// Reset drops every entry. Tests use this between cases.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]string)
}
