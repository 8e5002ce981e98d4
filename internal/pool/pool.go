// Package pool implements a bounded, health-checked connection pool for one
// PostgreSQL endpoint — spec.md §4.2. Acquire/release/close mutate state
// only under a single mutex; no network I/O is ever performed while that
// mutex is held, which is what lets probing happen safely after a
// connection has already been removed from the idle set.
package pool

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pgEdge/schemadiff/internal/apperrors"
	"github.com/pgEdge/schemadiff/internal/applog"
)

const (
	DefaultMaxConnections     = 5
	HardMaxConnections        = 20
	DefaultAcquireTimeout     = 10 * time.Second
	DefaultIdleTimeout        = 10 * time.Minute
	DefaultMaxLifetime        = 30 * time.Minute
	DefaultHealthCheckPeriod  = 60 * time.Second

	// factoryRetryAttempts bounds how many times Acquire retries a transient
	// factory failure (ConnectionFailed/QueryTimeout) before giving up, per
	// spec.md §4.10/§7.
	factoryRetryAttempts = 3
)

// Factory opens one new connection. Satisfied by dbconn.Build.
type Factory func(ctx context.Context) (*pgx.Conn, error)

// Options configures a Pool. Zero values fall back to the defaults above;
// MaxConnections is clamped to HardMaxConnections.
type Options struct {
	MaxConnections      int
	AcquireTimeout      time.Duration
	IdleTimeout         time.Duration
	MaxLifetime         time.Duration
	HealthCheckInterval time.Duration
	Logger              *applog.Logger
}

func (o Options) withDefaults() Options {
	if o.MaxConnections <= 0 {
		o.MaxConnections = DefaultMaxConnections
	}
	if o.MaxConnections > HardMaxConnections {
		o.MaxConnections = HardMaxConnections
	}
	if o.AcquireTimeout <= 0 {
		o.AcquireTimeout = DefaultAcquireTimeout
	}
	if o.IdleTimeout <= 0 {
		o.IdleTimeout = DefaultIdleTimeout
	}
	if o.MaxLifetime <= 0 {
		o.MaxLifetime = DefaultMaxLifetime
	}
	if o.HealthCheckInterval <= 0 {
		o.HealthCheckInterval = DefaultHealthCheckPeriod
	}
	if o.Logger == nil {
		o.Logger = applog.Nop()
	}
	return o
}

// Pool owns at most MaxConnections live connections for one endpoint.
type Pool struct {
	factory Factory
	opts    Options
	log     *applog.Logger

	mu       sync.Mutex
	all      []*pooledConnection
	idle     []*pooledConnection
	count    int
	shutdown bool
	// released fires (non-blocking, best-effort) whenever a slot frees up —
	// a connection is returned, destroyed, or the pool is closed — waking
	// any acquirer parked in the wait loop below. This is the idiomatic Go
	// stand-in for the bounded condition variable of spec.md §4.2.
	released chan struct{}

	sweeperStop chan struct{}
	sweeperDone chan struct{}

	stats atomicStats
}

// New constructs a Pool bound to one Factory and starts its background
// sweeper. Call Close to stop the sweeper and destroy all connections.
func New(factory Factory, opts Options) *Pool {
	opts = opts.withDefaults()
	p := &Pool{
		factory:     factory,
		opts:        opts,
		log:         opts.Logger,
		released:    make(chan struct{}, 1),
		sweeperStop: make(chan struct{}),
		sweeperDone: make(chan struct{}),
	}
	go p.runSweeper()
	return p
}

// Lease grants temporary exclusive use of a pooled connection to the
// borrower; Release returns it to the Pool.
type Lease struct {
	pc   *pooledConnection
	pool *Pool
}

// Conn returns the underlying connection for use by the borrower.
func (l *Lease) Conn() *pgx.Conn {
	return l.pc.conn
}

func (p *Pool) signalReleased() {
	select {
	case p.released <- struct{}{}:
	default:
	}
}

// Acquire borrows a connection, waiting up to timeout for one to become
// available. It tries an idle connection first (probing it after removal
// from the idle set — never while holding the mutex); failing that, it
// creates a new connection if under the cap; failing that, it waits for a
// release or the timeout, whichever comes first. The wait honors the
// remaining budget across iterations rather than restarting a full
// timeout window each time (spec.md §9, "pool recursion on timeout").
func (p *Pool) Acquire(ctx context.Context, timeout time.Duration) (*Lease, error) {
	deadline := time.Now().Add(timeout)

	for {
		p.mu.Lock()
		if p.shutdown {
			p.mu.Unlock()
			return nil, apperrors.Database(apperrors.CodePoolShutdown, "pool is shut down", nil)
		}

		if n := len(p.idle); n > 0 {
			pc := p.idle[n-1]
			p.idle = p.idle[:n-1]
			p.mu.Unlock()

			if probeHealthy(ctx, pc) {
				pc.markBorrowed()
				atomic.AddInt64(&p.stats.borrowed, 1)
				return &Lease{pc: pc, pool: p}, nil
			}
			p.destroy(pc)
			continue
		}

		if p.count < p.opts.MaxConnections {
			p.count++
			p.mu.Unlock()

			var conn *pgx.Conn
			err := apperrors.Retry(ctx, factoryRetryAttempts, func(ctx context.Context) error {
				c, ferr := p.factory(ctx)
				if ferr != nil {
					// A typed error keeps its own code and Retriable flag, so
					// a config or validation failure is not retried.
					var appErr *apperrors.Error
					if errors.As(ferr, &appErr) {
						return ferr
					}
					return apperrors.Database(apperrors.CodeConnectionFailed, "create pooled connection", ferr)
				}
				conn = c
				return nil
			})
			if err != nil {
				p.mu.Lock()
				p.count--
				p.mu.Unlock()
				return nil, err
			}

			pc := newPooledConnection(conn)
			p.mu.Lock()
			p.all = append(p.all, pc)
			p.mu.Unlock()

			pc.markBorrowed()
			atomic.AddInt64(&p.stats.created, 1)
			atomic.AddInt64(&p.stats.borrowed, 1)
			p.log.Debug("created pooled connection", "id", pc.id, "total", p.count)
			return &Lease{pc: pc, pool: p}, nil
		}
		p.mu.Unlock()

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, apperrors.Database(apperrors.CodePoolTimeout, "timed out waiting for a connection", nil)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-p.released:
		case <-time.After(remaining):
		}
	}
}

// probeHealthy runs a trivial query to test a candidate connection outside
// the pool mutex, as spec.md §4.2 requires.
func probeHealthy(ctx context.Context, pc *pooledConnection) bool {
	var one int
	err := pc.conn.QueryRow(ctx, "SELECT 1").Scan(&one)
	return err == nil && one == 1
}

// Release returns a connection to the pool. It is infallible: an unhealthy
// connection is destroyed rather than re-queued, and a release against a
// full idle queue (a normal steady-state condition once the sweeper has
// shrunk the pool) also destroys the connection.
func (p *Pool) Release(ctx context.Context, lease *Lease) {
	pc := lease.pc
	pc.markReturned()

	if !probeHealthy(ctx, pc) {
		p.destroy(pc)
		return
	}

	p.mu.Lock()
	if p.shutdown || len(p.idle) >= p.opts.MaxConnections {
		p.mu.Unlock()
		p.destroy(pc)
		return
	}
	p.idle = append(p.idle, pc)
	p.mu.Unlock()

	atomic.AddInt64(&p.stats.returned, 1)
	p.signalReleased()
}

// destroy closes a connection and removes its bookkeeping from the pool.
func (p *Pool) destroy(pc *pooledConnection) {
	_ = pc.conn.Close(context.Background())

	p.mu.Lock()
	for i, c := range p.all {
		if c == pc {
			p.all = append(p.all[:i], p.all[i+1:]...)
			break
		}
	}
	p.count--
	p.mu.Unlock()

	atomic.AddInt64(&p.stats.destroyed, 1)
	p.signalReleased()
}

// HealthCheck probes every idle connection, destroying any that fail, and
// returns the resulting pool-wide health snapshot.
func (p *Pool) HealthCheck(ctx context.Context) Health {
	p.mu.Lock()
	idleSnapshot := append([]*pooledConnection(nil), p.idle...)
	p.mu.Unlock()

	failed := 0
	for _, pc := range idleSnapshot {
		atomic.AddInt64(&p.stats.healthChecks, 1)
		if !probeHealthy(ctx, pc) {
			failed++
			atomic.AddInt64(&p.stats.healthFailures, 1)
			p.removeIdle(pc)
			p.destroy(pc)
		}
	}

	p.mu.Lock()
	total := p.count
	idleCount := len(p.idle)
	var totalLived time.Duration
	for _, pc := range p.all {
		totalLived += time.Since(pc.createdAt)
	}
	p.mu.Unlock()

	avg := 0.0
	if total > 0 {
		avg = totalLived.Seconds() / float64(total)
	}

	return Health{
		Total:            total,
		Active:           total - idleCount,
		Idle:             idleCount,
		Max:              p.opts.MaxConnections,
		Healthy:          total - failed,
		Failed:           failed,
		AverageLivedSecs: avg,
		LastCheck:        time.Now(),
	}
}

func (p *Pool) removeIdle(pc *pooledConnection) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, c := range p.idle {
		if c == pc {
			p.idle = append(p.idle[:i], p.idle[i+1:]...)
			return
		}
	}
}

// SweepStale drops idle connections that have expired (exceeded
// MaxLifetime) or sat idle too long (exceeded IdleTimeout), returning the
// count removed.
func (p *Pool) SweepStale() int {
	p.mu.Lock()
	var stale []*pooledConnection
	var keep []*pooledConnection
	for _, pc := range p.idle {
		if pc.isExpired(p.opts.MaxLifetime) || pc.isIdleTooLong(p.opts.IdleTimeout) {
			stale = append(stale, pc)
		} else {
			keep = append(keep, pc)
		}
	}
	p.idle = keep
	p.mu.Unlock()

	for _, pc := range stale {
		p.destroy(pc)
	}
	if len(stale) > 0 {
		p.log.Debug("swept stale connections", "count", len(stale))
	}
	return len(stale)
}

// Stats returns a copy of the pool's lifetime counters.
func (p *Pool) Stats() Stats {
	return p.stats.snapshot()
}

// AcquireTimeout returns the timeout a caller should pass to Acquire when it
// has no more specific deadline of its own.
func (p *Pool) AcquireTimeout() time.Duration {
	return p.opts.AcquireTimeout
}

// Close forbids further acquires and destroys every connection, idle or
// borrowed. Close is idempotent.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.shutdown {
		p.mu.Unlock()
		return
	}
	p.shutdown = true
	all := append([]*pooledConnection(nil), p.all...)
	p.all = nil
	p.idle = nil
	p.count = 0
	p.mu.Unlock()

	close(p.sweeperStop)
	<-p.sweeperDone

	for _, pc := range all {
		_ = pc.conn.Close(context.Background())
		atomic.AddInt64(&p.stats.destroyed, 1)
	}
	p.signalReleased()
}

func (p *Pool) runSweeper() {
	defer close(p.sweeperDone)
	ticker := time.NewTicker(p.opts.HealthCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-p.sweeperStop:
			return
		case <-ticker.C:
			p.HealthCheck(context.Background())
			p.SweepStale()
		}
	}
}
