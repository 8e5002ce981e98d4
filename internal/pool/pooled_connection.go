package pool

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// pooledConnection wraps one live connection with the bookkeeping the Pool
// needs to age it out: creation time, last-used time, in-use flag, and use
// count. Every pooledConnection carries its own fine-grained lock guarding
// in-use and last-used, separate from the Pool's own mutex — the pool lock
// is never held across a network operation.
type pooledConnection struct {
	id        string
	conn      *pgx.Conn
	createdAt time.Time

	mu       sync.Mutex
	lastUsed time.Time
	inUse    bool
	useCount int
}

func newPooledConnection(conn *pgx.Conn) *pooledConnection {
	now := time.Now()
	return &pooledConnection{
		id:        uuid.NewString(),
		conn:      conn,
		createdAt: now,
		lastUsed:  now,
	}
}

func (p *pooledConnection) markBorrowed() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastUsed = time.Now()
	p.inUse = true
	p.useCount++
}

func (p *pooledConnection) markReturned() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastUsed = time.Now()
	p.inUse = false
}

func (p *pooledConnection) isInUse() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inUse
}

// isExpired reports whether the connection has lived longer than
// maxLifetime since creation.
func (p *pooledConnection) isExpired(maxLifetime time.Duration) bool {
	return time.Since(p.createdAt) > maxLifetime
}

// isIdleTooLong reports whether the connection has sat unused longer than
// idleTimeout.
func (p *pooledConnection) isIdleTooLong(idleTimeout time.Duration) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return time.Since(p.lastUsed) > idleTimeout
}
