// Package dbmanager owns the source and target connection pools for one
// comparison run: the Database Manager of spec.md §4.3. It is the only
// component that knows both sides exist at once.
package dbmanager

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/pgEdge/schemadiff/internal/apperrors"
	"github.com/pgEdge/schemadiff/internal/applog"
	"github.com/pgEdge/schemadiff/internal/dbconn"
	"github.com/pgEdge/schemadiff/internal/pgversion"
	"github.com/pgEdge/schemadiff/internal/pool"
)

// Side identifies which of the two endpoints a call concerns.
type Side string

const (
	Source Side = "source"
	Target Side = "target"
)

// Manager owns exactly two pools, one per side, and the ConnectionInfo
// tracking each. It is constructed already initialized: New performs the
// init sequence of spec.md §4.3 (lease, probe, version, permissions,
// release) for both sides before returning, tearing down both pools if
// either side fails.
type Manager struct {
	log *applog.Logger

	sourcePool *pool.Pool
	targetPool *pool.Pool

	sourceCfg dbconn.Config
	targetCfg dbconn.Config

	sourceInfo *dbconn.ConnectionInfo
	targetInfo *dbconn.ConnectionInfo

	sourceVersion pgversion.Version
	targetVersion pgversion.Version
}

// New builds both pools and runs the init sequence. On any failure it tears
// down whatever pools it already created and returns a ManagerInitFailed
// error wrapping the cause.
func New(ctx context.Context, sourceCfg, targetCfg dbconn.Config, opts pool.Options, log *applog.Logger) (*Manager, error) {
	if log == nil {
		log = applog.Nop()
	}

	m := &Manager{
		log:        log,
		sourceCfg:  sourceCfg,
		targetCfg:  targetCfg,
		sourceInfo: dbconn.NewConnectionInfo(endpoint(sourceCfg)),
		targetInfo: dbconn.NewConnectionInfo(endpoint(targetCfg)),
	}

	m.sourcePool = pool.New(func(ctx context.Context) (*pgx.Conn, error) {
		return dbconn.Build(ctx, sourceCfg)
	}, opts)
	m.targetPool = pool.New(func(ctx context.Context) (*pgx.Conn, error) {
		return dbconn.Build(ctx, targetCfg)
	}, opts)

	if err := m.initSide(ctx, Source); err != nil {
		m.teardown()
		return nil, wrapInit(err, "source")
	}
	if err := m.initSide(ctx, Target); err != nil {
		m.teardown()
		return nil, wrapInit(err, "target")
	}

	return m, nil
}

func wrapInit(cause error, side string) *apperrors.Error {
	return apperrors.Database(apperrors.CodeManagerInitFailed, "initialize "+side+" connection", cause).
		WithDetail("side", side)
}

func endpoint(cfg dbconn.Config) string {
	return cfg.Host + ":" + strconv.Itoa(cfg.Port) + "/" + cfg.Database
}

// initSide runs one side's init sequence: lease, probe SELECT 1, read
// version, verify minimum, verify permissions, release.
func (m *Manager) initSide(ctx context.Context, side Side) error {
	p, cfg, info := m.sideState(side)

	lease, err := p.Acquire(ctx, p.AcquireTimeout())
	if err != nil {
		info.MarkError(err)
		return err
	}

	var one int
	if err := lease.Conn().QueryRow(ctx, "SELECT 1").Scan(&one); err != nil {
		p.Release(ctx, lease)
		probeErr := apperrors.Database(apperrors.CodeConnectionFailed, "probe "+string(side), err)
		info.MarkError(probeErr)
		return probeErr
	}

	raw, err := dbconn.Version(ctx, lease.Conn())
	if err != nil {
		p.Release(ctx, lease)
		info.MarkError(err)
		return err
	}

	v, err := pgversion.Parse(raw)
	if err != nil {
		p.Release(ctx, lease)
		info.MarkError(err)
		return err
	}
	if !v.MeetsMinimum() {
		p.Release(ctx, lease)
		verErr := apperrors.Database(apperrors.CodeVersionUnsupported,
			"server version below supported minimum", nil).
			WithDetail("version", v.Raw).
			WithDetail("minimum", pgversion.Minimum.Raw)
		info.MarkError(verErr)
		return verErr
	}

	perms, err := dbconn.CheckPermissions(ctx, lease.Conn(), cfg.Schema)
	if err != nil {
		p.Release(ctx, lease)
		info.MarkError(err)
		return err
	}
	if !perms.HasRequired() {
		p.Release(ctx, lease)
		permErr := apperrors.Database(apperrors.CodeInsufficientPrivs,
			"connecting role lacks required privileges", nil).
			WithDetail("permissions", perms)
		info.MarkError(permErr)
		return permErr
	}

	p.Release(ctx, lease)
	info.MarkConnected(v.Raw, perms)
	m.setVersion(side, v)
	m.log.Info("initialized connection", "side", side, "version", v.Raw)
	return nil
}

func (m *Manager) sideState(side Side) (*pool.Pool, dbconn.Config, *dbconn.ConnectionInfo) {
	if side == Source {
		return m.sourcePool, m.sourceCfg, m.sourceInfo
	}
	return m.targetPool, m.targetCfg, m.targetInfo
}

func (m *Manager) setVersion(side Side, v pgversion.Version) {
	if side == Source {
		m.sourceVersion = v
	} else {
		m.targetVersion = v
	}
}

// GetSource leases a source connection.
func (m *Manager) GetSource(ctx context.Context) (*pool.Lease, error) {
	return m.sourcePool.Acquire(ctx, m.sourcePool.AcquireTimeout())
}

// GetTarget leases a target connection.
func (m *Manager) GetTarget(ctx context.Context) (*pool.Lease, error) {
	return m.targetPool.Acquire(ctx, m.targetPool.AcquireTimeout())
}

// ReleaseSource returns a source lease.
func (m *Manager) ReleaseSource(ctx context.Context, lease *pool.Lease) {
	m.sourcePool.Release(ctx, lease)
}

// ReleaseTarget returns a target lease.
func (m *Manager) ReleaseTarget(ctx context.Context, lease *pool.Lease) {
	m.targetPool.Release(ctx, lease)
}

// Verify re-checks connectivity on both sides with a fresh SELECT 1.
func (m *Manager) Verify(ctx context.Context) error {
	for _, side := range []Side{Source, Target} {
		p, _, info := m.sideState(side)
		lease, err := p.Acquire(ctx, p.AcquireTimeout())
		if err != nil {
			info.MarkError(err)
			return err
		}
		var one int
		err = lease.Conn().QueryRow(ctx, "SELECT 1").Scan(&one)
		p.Release(ctx, lease)
		if err != nil {
			verErr := apperrors.Database(apperrors.CodeConnectionFailed, "verify "+string(side), err)
			info.MarkError(verErr)
			return verErr
		}
	}
	return nil
}

// Versions returns the parsed versions recorded during init.
func (m *Manager) Versions() (source, target pgversion.Version) {
	return m.sourceVersion, m.targetVersion
}

// PoolHealth returns both pools' current health snapshots.
func (m *Manager) PoolHealth(ctx context.Context) (source, target pool.Health) {
	return m.sourcePool.HealthCheck(ctx), m.targetPool.HealthCheck(ctx)
}

// CleanupStale sweeps both pools for connections past their idle timeout or
// lifetime, returning the total removed.
func (m *Manager) CleanupStale() int {
	return m.sourcePool.SweepStale() + m.targetPool.SweepStale()
}

// ConnectionInfo returns the current observable state for one side.
func (m *Manager) ConnectionInfo(side Side) *dbconn.ConnectionInfo {
	_, _, info := m.sideState(side)
	return info
}

// Close tears down both pools. Idempotent: safe to call from a deferred
// guard after an abnormal exit as well as on the normal success path.
func (m *Manager) Close() {
	m.teardown()
}

func (m *Manager) teardown() {
	if m.sourcePool != nil {
		m.sourcePool.Close()
	}
	if m.targetPool != nil {
		m.targetPool.Close()
	}
	m.sourceInfo.MarkDisconnected()
	m.targetInfo.MarkDisconnected()
}

