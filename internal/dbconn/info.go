package dbconn

import (
	"time"

	"github.com/google/uuid"
)

// Permissions records what the connecting role can do, per spec.md §3: the
// six booleans plus the schemas it may USAGE.
type Permissions struct {
	Connect         bool
	ReadSchema      bool
	ReadTables      bool
	ReadViews       bool
	ReadConstraints bool
	ReadIndexes     bool
	UsableSchemas   []string
}

// HasRequired reports spec.md §3's has-required predicate: the first five
// booleans all true. UsableSchemas is not part of the predicate — a role can
// satisfy it while being scoped to a single schema.
func (p Permissions) HasRequired() bool {
	return p.Connect && p.ReadSchema && p.ReadTables && p.ReadViews && p.ReadConstraints
}

// Status is a ConnectionInfo's lifecycle state.
type Status string

const (
	StatusConnecting   Status = "Connecting"
	StatusConnected    Status = "Connected"
	StatusDisconnected Status = "Disconnected"
	StatusError        Status = "Error"
)

// ConnectionInfo is the observable record of one logical connection, per
// spec.md §3: identity, endpoint, status, optional version/permissions, and
// timestamps. The Manager and Pool update it as a connection's lifecycle
// progresses; it is never used to drive behavior, only to report it.
type ConnectionInfo struct {
	ID             string
	Endpoint       string
	Status         Status
	Version        string
	Permissions    *Permissions
	OpenedAt       time.Time
	LastActivityAt time.Time
	LastError      error
}

// NewConnectionInfo starts a ConnectionInfo in the Connecting state.
func NewConnectionInfo(endpoint string) *ConnectionInfo {
	now := time.Now()
	return &ConnectionInfo{
		ID:             uuid.NewString(),
		Endpoint:       endpoint,
		Status:         StatusConnecting,
		OpenedAt:       now,
		LastActivityAt: now,
	}
}

func (c *ConnectionInfo) touch() {
	c.LastActivityAt = time.Now()
}

// MarkConnected records a successful handshake.
func (c *ConnectionInfo) MarkConnected(version string, perms Permissions) {
	c.Status = StatusConnected
	c.Version = version
	c.Permissions = &perms
	c.touch()
}

// MarkDisconnected records an orderly close.
func (c *ConnectionInfo) MarkDisconnected() {
	c.Status = StatusDisconnected
	c.touch()
}

// MarkError records a failure, keeping the connection's last known state
// inspectable alongside the cause.
func (c *ConnectionInfo) MarkError(err error) {
	c.Status = StatusError
	c.LastError = err
	c.touch()
}
