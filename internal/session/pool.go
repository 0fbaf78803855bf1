package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sh1/netsession/internal/logging"
)

// poolKey identifies one exclusive pooled session slot: the same device,
// reached as the same user, driven by the same vendor plugin (I5 - at most
// one live PoolEntry per key).
type poolKey struct {
	host       string
	port       int
	username   string
	deviceType string
}

func makePoolKey(creds Credentials) poolKey {
	creds = creds.WithPort()
	return poolKey{
		host:       creds.Host,
		port:       creds.Port,
		username:   creds.Username,
		deviceType: creds.DeviceType,
	}
}

// PoolEntry wraps one connected, prepared BaseSession together with the
// pool bookkeeping needed to reuse or reap it.
type PoolEntry struct {
	id        uuid.UUID
	key       poolKey
	sess      *BaseSession
	inUse     bool
	createdAt time.Time
	lastUsed  time.Time
	useCount  int
}

// Session returns the pooled BaseSession. Callers must Release the entry
// (not close the session directly) when done.
func (e *PoolEntry) Session() *BaseSession { return e.sess }

// ID returns the entry's pool-lifetime identifier, used to correlate log
// lines for one pooled connection across Acquire/Release/reap events
// without an integer counter that would collide across process restarts.
func (e *PoolEntry) ID() uuid.UUID { return e.id }

// SessionFactory builds and prepares a new BaseSession for creds, used by
// the Pool when no reusable entry exists for a key. This is the Dispatcher's
// seam: it supplies a factory bound to the vendor Hooks resolved for
// creds.DeviceType.
type SessionFactory func(ctx context.Context, creds Credentials, opts AdvancedOptions) (*BaseSession, error)

// PoolConfig configures a Pool (§4.8).
type PoolConfig struct {
	IdleTimeout    time.Duration
	AcquireTimeout time.Duration
	ReapInterval   time.Duration
}

// DefaultPoolConfig returns the documented defaults.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		IdleTimeout:    10 * time.Minute,
		AcquireTimeout: 30 * time.Second,
		ReapInterval:   1 * time.Minute,
	}
}

// Pool keys one live connected session per (host, port, username,
// deviceType), releasing it back for reuse rather than closing it, and
// reaping entries idle past IdleTimeout. Used when AdvancedOptions.
// ConnectionPooling is set.
type Pool struct {
	mu      sync.Mutex
	cond    *sync.Cond
	cfg     PoolConfig
	factory SessionFactory
	entries map[poolKey]*PoolEntry
	closed  bool

	skipReap bool
}

// PoolOption configures a Pool at construction, mainly for tests.
type PoolOption func(*Pool)

// WithoutReaper disables the background idle-reaping goroutine.
func WithoutReaper() PoolOption {
	return func(p *Pool) { p.skipReap = true }
}

// NewPool creates a Pool that builds sessions via factory.
func NewPool(factory SessionFactory, cfg PoolConfig, opts ...PoolOption) *Pool {
	p := &Pool{
		cfg:     cfg,
		factory: factory,
		entries: make(map[poolKey]*PoolEntry),
	}
	p.cond = sync.NewCond(&p.mu)
	for _, opt := range opts {
		opt(p)
	}
	if !p.skipReap {
		go p.reapLoop()
	}
	return p
}

// acquire returns the existing entry for creds's key if idle, or creates
// one via factory. An in-use entry yields ErrBusy rather than blocking,
// since a session mid-command cannot safely be shared.
func (p *Pool) Acquire(ctx context.Context, creds Credentials, opts AdvancedOptions) (*PoolEntry, error) {
	key := makePoolKey(creds)

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, fmt.Errorf("%w: pool closed", ErrNotConnected)
	}
	if entry, ok := p.entries[key]; ok {
		if entry.inUse {
			p.mu.Unlock()
			return nil, ErrBusy
		}
		entry.inUse = true
		entry.lastUsed = time.Now()
		entry.useCount++
		p.mu.Unlock()
		return entry, nil
	}
	p.mu.Unlock()

	sess, err := p.factory(ctx, creds, opts)
	if err != nil {
		return nil, err
	}

	entry := &PoolEntry{
		id:        uuid.New(),
		key:       key,
		sess:      sess,
		inUse:     true,
		createdAt: time.Now(),
		lastUsed:  time.Now(),
		useCount:  1,
	}
	if err := p.insert(entry); err != nil {
		sess.Disconnect(ctx)
		return nil, err
	}
	logging.Global().Debug().Str("pool_id", entry.id.String()).Str("host", key.host).Str("device_type", key.deviceType).Msg("pooled session created")
	return entry, nil
}

// insert registers a freshly created entry, failing with ErrPoolKeyExists
// if a concurrent acquire already won the race for this key (I5).
func (p *Pool) insert(entry *PoolEntry) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.entries[entry.key]; exists {
		return ErrPoolKeyExists
	}
	p.entries[entry.key] = entry
	return nil
}

// release returns entry to the pool for reuse, signaling any waiter.
func (p *Pool) Release(entry *PoolEntry) {
	p.mu.Lock()
	defer p.mu.Unlock()

	entry.inUse = false
	entry.lastUsed = time.Now()
	p.cond.Broadcast()
}

// discard removes entry from the pool and closes its session, used when a
// command on the entry failed in a way that makes the session unsafe to reuse.
func (p *Pool) Discard(ctx context.Context, entry *PoolEntry) {
	p.mu.Lock()
	delete(p.entries, entry.key)
	p.mu.Unlock()
	entry.sess.Disconnect(ctx)
}

// reapLoop periodically closes entries idle past IdleTimeout.
func (p *Pool) reapLoop() {
	interval := p.cfg.ReapInterval
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		if p.reap() {
			return
		}
	}
}

// reap closes idle, not-in-use entries past IdleTimeout. Returns true once
// the pool has been closed, so reapLoop can stop.
func (p *Pool) reap() bool {
	logger := logging.Global()
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return true
	}
	now := time.Now()
	var toClose []*PoolEntry
	for key, entry := range p.entries {
		if !entry.inUse && now.Sub(entry.lastUsed) > p.cfg.IdleTimeout {
			toClose = append(toClose, entry)
			delete(p.entries, key)
		}
	}
	p.mu.Unlock()

	for _, entry := range toClose {
		logger.Debug().Str("pool_id", entry.id.String()).Str("host", entry.key.host).Str("device_type", entry.key.deviceType).Msg("reaping idle pooled session")
		entry.sess.Disconnect(context.Background())
	}
	return false
}

// forceCleanup closes every entry regardless of idle state and marks the
// pool closed, used on shutdown.
func (p *Pool) ForceCleanup() {
	p.mu.Lock()
	p.closed = true
	entries := p.entries
	p.entries = make(map[poolKey]*PoolEntry)
	p.cond.Broadcast()
	p.mu.Unlock()

	for _, entry := range entries {
		entry.sess.Disconnect(context.Background())
	}
}

// PoolStats reports current pool occupancy.
type PoolStats struct {
	Total int
	InUse int
}

func (p *Pool) Stats() PoolStats {
	p.mu.Lock()
	defer p.mu.Unlock()

	stats := PoolStats{Total: len(p.entries)}
	for _, e := range p.entries {
		if e.inUse {
			stats.InUse++
		}
	}
	return stats
}
