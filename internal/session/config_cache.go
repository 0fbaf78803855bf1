package session

import (
	"sync"
	"time"
)

// defaultCacheTTL is how long a cached configuration is considered valid
// before getCurrentConfig issues a fresh show-config command.
const defaultCacheTTL = 5 * time.Minute

// configCache holds the raw running-config text retrieved by
// getCurrentConfig, so repeated calls inside a single operation (or a
// pooled session reused across operations) don't re-read the device. Any
// successful sendConfig invalidates it.
type configCache struct {
	mu         sync.RWMutex
	content    string
	validUntil time.Time
	valid      bool
}

func newConfigCache() *configCache {
	return &configCache{}
}

// get returns the cached configuration and whether it is still within TTL.
func (c *configCache) get() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.valid || time.Now().After(c.validUntil) {
		return "", false
	}
	return c.content, true
}

// set stores content with the default TTL.
func (c *configCache) set(content string) {
	c.setWithTTL(content, defaultCacheTTL)
}

func (c *configCache) setWithTTL(content string, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.content = content
	c.validUntil = time.Now().Add(ttl)
	c.valid = true
}

// invalidate clears the cache; called after any config-mutating operation.
func (c *configCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.content = ""
	c.valid = false
	c.validUntil = time.Time{}
}
