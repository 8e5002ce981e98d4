// Package collector reads one PostgreSQL schema into a schema.Snapshot: the
// Schema Collector of spec.md §4.4. Every query runs against
// information_schema and pg_catalog over a single leased connection for the
// duration of one Collect call, in deterministic name order so two
// successive collections of an unchanged schema produce byte-identical
// snapshots.
package collector

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pgEdge/schemadiff/internal/apperrors"
	"github.com/pgEdge/schemadiff/internal/applog"
	"github.com/pgEdge/schemadiff/internal/schema"
)

// cacheTTL is how long a memoized snapshot is served before the next
// Collect call re-queries the database.
const cacheTTL = 5 * time.Minute

type cacheKey struct {
	role   schema.Role
	schema string
}

type cacheEntry struct {
	snapshot *schema.Snapshot
	at       time.Time
}

// Collector collects snapshots over a caller-supplied *pgx.Conn. It does not
// itself own a pool — the caller leases a connection for the duration of
// one Collect call and releases it afterward.
type Collector struct {
	log *applog.Logger

	mu    sync.Mutex
	cache map[cacheKey]cacheEntry
}

// New builds a Collector. log may be nil.
func New(log *applog.Logger) *Collector {
	if log == nil {
		log = applog.Nop()
	}
	return &Collector{log: log, cache: make(map[cacheKey]cacheEntry)}
}

// ClearCache discards every memoized snapshot.
func (c *Collector) ClearCache() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[cacheKey]cacheEntry)
}

// Collect reads the named schema over conn, returning a fully-populated
// Snapshot. When allowCache is true and a snapshot for (role, schemaName)
// was collected within the last five minutes, that cached copy is returned
// instead of re-querying.
func (c *Collector) Collect(ctx context.Context, conn *pgx.Conn, role schema.Role, schemaName string, allowCache bool) (*schema.Snapshot, error) {
	key := cacheKey{role: role, schema: schemaName}

	if allowCache {
		c.mu.Lock()
		entry, ok := c.cache[key]
		c.mu.Unlock()
		if ok && time.Since(entry.at) < cacheTTL {
			return entry.snapshot, nil
		}
	}

	var usable bool
	if err := conn.QueryRow(ctx,
		`SELECT has_schema_privilege(current_user, $1, 'USAGE')`, schemaName,
	).Scan(&usable); err != nil {
		return nil, wrapErr(role, schemaName, "check schema usage", err)
	}
	if !usable {
		return nil, apperrors.Database(apperrors.CodeSchemaAccessDenied,
			"connecting role lacks USAGE on schema", nil).
			WithDetail("schema", schemaName).
			WithDetail("role", string(role))
	}

	start := time.Now()
	snap := &schema.Snapshot{
		SchemaName:  schemaName,
		Role:        role,
		CollectedAt: start,
	}

	tables, err := collectTables(ctx, conn, schemaName)
	if err != nil {
		return nil, wrapErr(role, schemaName, "collect tables", err)
	}
	if err := attachColumns(ctx, conn, schemaName, tables); err != nil {
		return nil, wrapErr(role, schemaName, "collect columns", err)
	}
	if err := attachConstraints(ctx, conn, schemaName, tables); err != nil {
		return nil, wrapErr(role, schemaName, "collect constraints", err)
	}
	if err := attachIndexes(ctx, conn, schemaName, tables); err != nil {
		return nil, wrapErr(role, schemaName, "collect indexes", err)
	}
	if err := attachTriggers(ctx, conn, schemaName, tables); err != nil {
		return nil, wrapErr(role, schemaName, "collect triggers", err)
	}
	snap.Tables = tables

	views, err := collectViews(ctx, conn, schemaName)
	if err != nil {
		return nil, wrapErr(role, schemaName, "collect views", err)
	}
	if err := attachViewColumns(ctx, conn, schemaName, views); err != nil {
		return nil, wrapErr(role, schemaName, "collect view columns", err)
	}
	snap.Views = views

	sequences, err := collectSequences(ctx, conn, schemaName)
	if err != nil {
		return nil, wrapErr(role, schemaName, "collect sequences", err)
	}
	snap.Sequences = sequences

	functions, err := collectFunctions(ctx, conn, schemaName)
	if err != nil {
		return nil, wrapErr(role, schemaName, "collect functions", err)
	}
	snap.Functions = functions

	c.log.Debug("collected schema snapshot", "role", role, "schema", schemaName,
		"tables", len(snap.Tables), "views", len(snap.Views),
		"sequences", len(snap.Sequences), "functions", len(snap.Functions),
		"elapsed", time.Since(start))

	c.mu.Lock()
	c.cache[key] = cacheEntry{snapshot: snap, at: time.Now()}
	c.mu.Unlock()

	return snap, nil
}

func wrapErr(role schema.Role, schemaName, stage string, cause error) error {
	return apperrors.Processing(apperrors.CodeSchemaCollectFailed, stage, cause).
		WithDetail("role", string(role)).
		WithDetail("schema", schemaName)
}
