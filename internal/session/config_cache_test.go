package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigCache_MissThenHit(t *testing.T) {
	c := newConfigCache()

	_, ok := c.get()
	assert.False(t, ok, "new cache should miss")

	c.set("interface eth0\n no shutdown")
	got, ok := c.get()
	require.True(t, ok)
	assert.Equal(t, "interface eth0\n no shutdown", got)
}

func TestConfigCache_ExpiresAfterTTL(t *testing.T) {
	c := newConfigCache()
	c.setWithTTL("stale config", 1*time.Millisecond)
	time.Sleep(5 * time.Millisecond)

	_, ok := c.get()
	assert.False(t, ok, "entry past its TTL should miss")
}

func TestConfigCache_Invalidate(t *testing.T) {
	c := newConfigCache()
	c.set("some config")
	c.invalidate()

	_, ok := c.get()
	assert.False(t, ok, "invalidated entry should miss")
}
