// Package dispatch resolves a device-type tag to a concrete vendor Session
// and wraps it in the Jump-Host decorator when the credentials call for it
// (§4.9). It is the one place that imports both internal/session and
// internal/session/vendor, keeping vendor's Hooks implementations (which
// import internal/session themselves) free of an import cycle back through
// here.
package dispatch

import (
	"context"
	"strings"
	"time"

	"github.com/sh1/netsession/internal/session"
	"github.com/sh1/netsession/internal/session/vendor"
)

// Dispatcher builds not-yet-connected Sessions from credentials and, when
// asked, reuses a Pool of already-connected ones.
type Dispatcher struct {
	pool *session.Pool
}

// New creates a Dispatcher with connection pooling disabled.
func New() *Dispatcher {
	return &Dispatcher{}
}

// NewWithPool creates a Dispatcher backed by a Pool, consulted whenever a
// request's AdvancedOptions.ConnectionPooling is set.
func NewWithPool(cfg session.PoolConfig) *Dispatcher {
	d := &Dispatcher{}
	d.pool = session.NewPool(d.buildAndConnect, cfg)
	return d
}

// resolve looks up creds.DeviceType in the vendor registry.
func resolve(deviceType string) (vendor.Factory, error) {
	tag := strings.ToLower(deviceType)
	factory, ok := vendor.Registry[tag]
	if !ok {
		return nil, &session.UnsupportedDeviceError{Tag: deviceType, Supported: vendor.SupportedTags()}
	}
	return factory, nil
}

// Build resolves creds.DeviceType and constructs the vendor Session,
// wrapping it in the Jump-Host decorator when creds carries a complete
// jump-host block. The returned Session is not yet connected.
func (d *Dispatcher) Build(creds session.Credentials, opts session.AdvancedOptions) (session.Session, error) {
	factory, err := resolve(creds.DeviceType)
	if err != nil {
		return nil, err
	}

	base := session.NewBaseSession(creds, opts, factory())

	if creds.JumpHost.Complete() {
		return session.WrapWithJumpHost(*creds.JumpHost, creds, opts, base), nil
	}
	return base, nil
}

// buildAndConnect is the session.SessionFactory handed to the Pool: build
// the vendor BaseSession for creds and run it through Connect +
// SessionPreparation before handing it back for pooling.
func (d *Dispatcher) buildAndConnect(ctx context.Context, creds session.Credentials, opts session.AdvancedOptions) (*session.BaseSession, error) {
	factory, err := resolve(creds.DeviceType)
	if err != nil {
		return nil, err
	}
	base := session.NewBaseSession(creds, opts, factory())
	if err := connectAndPrepare(ctx, base, opts); err != nil {
		return nil, err
	}
	return base, nil
}

// connectAndPrepare drives Connect then SessionPreparation, retrying
// Connect up to opts.ConnectionRetryCount times with the configured delay.
// Algorithm fallback inside Connect is not itself a retry (§4.1); this loop
// is the connectionRetryCount-bounded one the component design calls for.
func connectAndPrepare(ctx context.Context, sess session.Session, opts session.AdvancedOptions) error {
	strategy := session.NewLinearBackoff(opts.RetryDelay, opts.ConnectionRetryCount)
	var lastErr error
	for attempt := 0; ; attempt++ {
		if err := sess.Connect(ctx); err != nil {
			lastErr = err
			delay, giveUp := strategy.Next(attempt)
			if giveUp {
				return lastErr
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			continue
		}
		return sess.SessionPreparation(ctx)
	}
}

// Open builds and connects a Session for creds, consulting the Pool first
// when opts.ConnectionPooling is set. A busy pool entry falls back to an
// unpooled, freshly connected Session rather than failing the caller - an
// explicit exclusive acquire is the only path that surfaces BusyError (§4.8).
func (d *Dispatcher) Open(ctx context.Context, creds session.Credentials, opts session.AdvancedOptions) (session.Session, error) {
	if opts.ConnectionPooling && d.pool != nil && creds.JumpHost == nil {
		if entry, err := d.pool.Acquire(ctx, creds, opts); err == nil {
			return &pooledSession{entry: entry, pool: d.pool}, nil
		} else if err != session.ErrBusy {
			return nil, err
		}
	}

	sess, err := d.Build(creds, opts)
	if err != nil {
		return nil, err
	}
	if err := connectAndPrepare(ctx, sess, opts); err != nil {
		return nil, err
	}
	return sess, nil
}

// Close releases the Dispatcher's pool, if any.
func (d *Dispatcher) Close() {
	if d.pool != nil {
		d.pool.ForceCleanup()
	}
}

// pooledSession adapts a *session.PoolEntry back to the Session interface:
// every operation delegates to the underlying BaseSession, but Disconnect
// returns the entry to the pool instead of closing the transport.
type pooledSession struct {
	entry *session.PoolEntry
	pool  *session.Pool
}

func (p *pooledSession) Connect(ctx context.Context) error             { return nil }
func (p *pooledSession) SessionPreparation(ctx context.Context) error   { return nil }
func (p *pooledSession) SendCommand(ctx context.Context, c string) (session.CommandResult, error) {
	return p.entry.Session().SendCommand(ctx, c)
}
func (p *pooledSession) SendConfig(ctx context.Context, lines []string) (session.CommandResult, error) {
	return p.entry.Session().SendConfig(ctx, lines)
}
func (p *pooledSession) SendConfigExpectingDrop(ctx context.Context, lines []string) (session.CommandResult, error) {
	return p.entry.Session().SendConfigExpectingDrop(ctx, lines)
}
func (p *pooledSession) GetCurrentConfig(ctx context.Context) (session.CommandResult, error) {
	return p.entry.Session().GetCurrentConfig(ctx)
}
func (p *pooledSession) SaveConfig(ctx context.Context) (session.CommandResult, error) {
	return p.entry.Session().SaveConfig(ctx)
}
func (p *pooledSession) RebootDevice(ctx context.Context) (session.CommandResult, error) {
	return p.entry.Session().RebootDevice(ctx)
}
func (p *pooledSession) Authorize(ctx context.Context, secret string) error {
	return p.entry.Session().Authorize(ctx, secret)
}
func (p *pooledSession) Disconnect(ctx context.Context) error {
	p.pool.Release(p.entry)
	return nil
}
