package pool

import (
	"sync/atomic"
	"time"
)

// Stats are the atomically-updated lifetime counters of spec.md §4.2:
// created, destroyed, borrowed, returned, health-checks, health-failures.
type Stats struct {
	Created        int64
	Destroyed      int64
	Borrowed       int64
	Returned       int64
	HealthChecks   int64
	HealthFailures int64
}

type atomicStats struct {
	created, destroyed, borrowed, returned int64
	healthChecks, healthFailures           int64
}

func (s *atomicStats) snapshot() Stats {
	return Stats{
		Created:        atomic.LoadInt64(&s.created),
		Destroyed:      atomic.LoadInt64(&s.destroyed),
		Borrowed:       atomic.LoadInt64(&s.borrowed),
		Returned:       atomic.LoadInt64(&s.returned),
		HealthChecks:   atomic.LoadInt64(&s.healthChecks),
		HealthFailures: atomic.LoadInt64(&s.healthFailures),
	}
}

// Health is the point-in-time view of spec.md §4.2: totals, average lived
// seconds, and the last health-check timestamp. A pool is considered
// healthy when no connections are failed and utilization is below 90%.
type Health struct {
	Total            int
	Active           int
	Idle             int
	Max              int
	Healthy          int
	Failed           int
	AverageLivedSecs float64
	LastCheck        time.Time
}

// IsHealthy reports spec.md §3's healthiness predicate: no failed
// connections and utilization below 90%.
func (h Health) IsHealthy() bool {
	if h.Failed > 0 {
		return false
	}
	if h.Max == 0 {
		return true
	}
	utilization := float64(h.Active) / float64(h.Max)
	return utilization < 0.9
}
