package pool

import (
	"testing"
	"time"
)

// Acquire/Release/HealthCheck all drive a live *pgx.Conn (probeHealthy runs
// a real "SELECT 1"), so the pool-under-contention scenario needs a real
// Postgres backend and is left to integration testing rather than tested
// here; see DESIGN.md. The pieces below are pure and safe to unit test.

func TestOptionsWithDefaultsFillsZeroValues(t *testing.T) {
	o := Options{}.withDefaults()

	if o.MaxConnections != DefaultMaxConnections {
		t.Errorf("expected MaxConnections %d, got %d", DefaultMaxConnections, o.MaxConnections)
	}
	if o.AcquireTimeout != DefaultAcquireTimeout {
		t.Errorf("expected AcquireTimeout %v, got %v", DefaultAcquireTimeout, o.AcquireTimeout)
	}
	if o.IdleTimeout != DefaultIdleTimeout {
		t.Errorf("expected IdleTimeout %v, got %v", DefaultIdleTimeout, o.IdleTimeout)
	}
	if o.MaxLifetime != DefaultMaxLifetime {
		t.Errorf("expected MaxLifetime %v, got %v", DefaultMaxLifetime, o.MaxLifetime)
	}
	if o.HealthCheckInterval != DefaultHealthCheckPeriod {
		t.Errorf("expected HealthCheckInterval %v, got %v", DefaultHealthCheckPeriod, o.HealthCheckInterval)
	}
	if o.Logger == nil {
		t.Error("expected a non-nil fallback Logger")
	}
}

func TestOptionsWithDefaultsClampsAboveHardMax(t *testing.T) {
	o := Options{MaxConnections: HardMaxConnections + 50}.withDefaults()
	if o.MaxConnections != HardMaxConnections {
		t.Errorf("expected MaxConnections clamped to %d, got %d", HardMaxConnections, o.MaxConnections)
	}
}

func TestOptionsWithDefaultsPreservesExplicitValues(t *testing.T) {
	o := Options{MaxConnections: 3, AcquireTimeout: 2 * time.Second}.withDefaults()
	if o.MaxConnections != 3 {
		t.Errorf("expected explicit MaxConnections 3 preserved, got %d", o.MaxConnections)
	}
	if o.AcquireTimeout != 2*time.Second {
		t.Errorf("expected explicit AcquireTimeout preserved, got %v", o.AcquireTimeout)
	}
}

func TestHealthIsHealthyRequiresNoFailures(t *testing.T) {
	h := Health{Total: 5, Active: 1, Max: 5, Failed: 1}
	if h.IsHealthy() {
		t.Error("expected a pool with any failed connections to be unhealthy")
	}
}

func TestHealthIsHealthyRequiresUtilizationBelow90Percent(t *testing.T) {
	h := Health{Active: 9, Max: 10}
	if h.IsHealthy() {
		t.Error("expected 90% utilization to be unhealthy (not below the threshold)")
	}

	h = Health{Active: 8, Max: 10}
	if !h.IsHealthy() {
		t.Error("expected 80% utilization to be healthy")
	}
}

func TestHealthIsHealthyTreatsZeroMaxAsHealthy(t *testing.T) {
	h := Health{Max: 0, Failed: 0}
	if !h.IsHealthy() {
		t.Error("expected a zero-max pool (no connections configured yet) to be healthy")
	}
}

func TestPooledConnectionExpiryAndIdleTracking(t *testing.T) {
	pc := &pooledConnection{createdAt: time.Now().Add(-2 * time.Hour), lastUsed: time.Now().Add(-2 * time.Hour)}

	if !pc.isExpired(time.Hour) {
		t.Error("expected a connection created 2h ago to be expired against a 1h max lifetime")
	}
	if pc.isExpired(3 * time.Hour) {
		t.Error("expected a connection created 2h ago to not be expired against a 3h max lifetime")
	}
	if !pc.isIdleTooLong(time.Hour) {
		t.Error("expected a connection idle for 2h to exceed a 1h idle timeout")
	}
	if pc.isIdleTooLong(3 * time.Hour) {
		t.Error("expected a connection idle for 2h to not exceed a 3h idle timeout")
	}
}

func TestPooledConnectionBorrowedReturnedTracksInUse(t *testing.T) {
	pc := newPooledConnection(nil)

	if pc.isInUse() {
		t.Error("expected a freshly created connection to not be in use")
	}
	pc.markBorrowed()
	if !pc.isInUse() {
		t.Error("expected markBorrowed to set in-use")
	}
	if pc.useCount != 1 {
		t.Errorf("expected useCount 1 after one borrow, got %d", pc.useCount)
	}
	pc.markReturned()
	if pc.isInUse() {
		t.Error("expected markReturned to clear in-use")
	}
}

func TestStatsSnapshotReflectsAtomicCounters(t *testing.T) {
	var s atomicStats
	s.created = 3
	s.borrowed = 5
	snap := s.snapshot()
	if snap.Created != 3 || snap.Borrowed != 5 {
		t.Errorf("expected snapshot to mirror counters, got %+v", snap)
	}
}
