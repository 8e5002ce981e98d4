// Package engine orchestrates one comparison run: the Engine of spec.md
// §4.9. It wires the Database Manager, Schema Collector, Differencing
// Engine, Grouping Transformer, and Report Renderer together, and is the
// only core component that calls the progress reporter.
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/pgEdge/schemadiff/internal/apperrors"
	"github.com/pgEdge/schemadiff/internal/applog"
	"github.com/pgEdge/schemadiff/internal/collector"
	"github.com/pgEdge/schemadiff/internal/config"
	"github.com/pgEdge/schemadiff/internal/dbmanager"
	"github.com/pgEdge/schemadiff/internal/diff"
	"github.com/pgEdge/schemadiff/internal/progress"
	"github.com/pgEdge/schemadiff/internal/report"
	"github.com/pgEdge/schemadiff/internal/schema"
)

// Result is everything one Compare call produces: the raw diff, the
// rendered report bytes per format, and the snapshot versions the reporter
// metadata is stamped with.
type Result struct {
	Diff          diff.DiffResult
	Outputs       []report.Output
	SourceVersion string
	TargetVersion string
}

// Engine holds the long-lived collaborators a single process reuses across
// runs: one Database Manager (and therefore two pools), one Collector (with
// its own snapshot cache), and a logger.
type Engine struct {
	log       *applog.Logger
	manager   *dbmanager.Manager
	collector *collector.Collector
}

// New builds the Database Manager (which performs its own init sequence —
// lease, version probe, permission check — for both sides) and a fresh
// Collector. Close must be called to release both pools.
func New(ctx context.Context, cfg *config.AppConfig, log *applog.Logger) (*Engine, error) {
	if log == nil {
		log = applog.Nop()
	}

	sourceCfg, err := cfg.Source.ToDBConfig()
	if err != nil {
		return nil, err
	}
	targetCfg, err := cfg.Target.ToDBConfig()
	if err != nil {
		return nil, err
	}

	mgr, err := dbmanager.New(ctx, sourceCfg, targetCfg, cfg.PoolOptions(), log)
	if err != nil {
		return nil, err
	}

	return &Engine{
		log:       log,
		manager:   mgr,
		collector: collector.New(log),
	}, nil
}

// Close releases both pools. Safe to call once after the Engine is done.
func (e *Engine) Close() {
	e.manager.Close()
}

// Compare runs the full pipeline of spec.md §4.9: collect both snapshots
// concurrently, diff them, optionally group, and render every configured
// format. progress reports the fixed stage boundaries; a nil reporter is
// replaced with a no-op.
func (e *Engine) Compare(ctx context.Context, cfg *config.AppConfig, reporter progress.Reporter) (*Result, error) {
	if reporter == nil {
		reporter = progress.NullReporter{}
	}

	reporter.Show(progress.StageInit, 0)
	sourceVer, targetVer := e.manager.Versions()
	reporter.Status("verifying endpoints")
	if err := e.manager.Verify(ctx); err != nil {
		reporter.Error(err.Error())
		return nil, wrap(err, "", "", "init")
	}
	reporter.Show(progress.StageInit, 100)

	sourceSchema := cfg.Source.Schema
	targetSchema := cfg.Target.Schema

	var (
		sourceSnap, targetSnap *schema.Snapshot
		sourceErr, targetErr   error
		wg                     sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		reporter.Show(progress.StageCollectSource, 0)
		sourceSnap, sourceErr = e.collectSide(ctx, dbmanager.Source, schema.RoleSource, sourceSchema)
		reporter.Show(progress.StageCollectSource, 100)
	}()
	go func() {
		defer wg.Done()
		reporter.Show(progress.StageCollectTarget, 0)
		targetSnap, targetErr = e.collectSide(ctx, dbmanager.Target, schema.RoleTarget, targetSchema)
		reporter.Show(progress.StageCollectTarget, 100)
	}()
	wg.Wait()

	if sourceErr != nil {
		reporter.Error(sourceErr.Error())
		return nil, wrap(sourceErr, "source", sourceSchema, "collect")
	}
	if targetErr != nil {
		reporter.Error(targetErr.Error())
		return nil, wrap(targetErr, "target", targetSchema, "collect")
	}

	reporter.Show(progress.StageDiff, 0)
	result := diff.Diff(sourceSnap, targetSnap)
	result = applyComparisonScope(result, cfg.Comparison)
	reporter.Show(progress.StageDiff, 100)

	reporter.Show(progress.StageRender, 0)
	meta := report.Metadata{
		SourceSchema:  sourceSchema,
		TargetSchema:  targetSchema,
		SourceVersion: sourceVer.Raw,
		TargetVersion: targetVer.Raw,
		GeneratedAt:   time.Now(),
		ToolVersion:   ToolVersion,
		GroupByTable:  cfg.Output.GroupByTable,
	}
	outputs := report.RenderAll(selectedFormats(cfg.Output.Formats), result, meta)
	reporter.Show(progress.StageRender, 100)

	for _, out := range outputs {
		if out.Err != nil {
			reporter.Warning(out.Err.Error())
		}
	}

	return &Result{
		Diff:          result,
		Outputs:       outputs,
		SourceVersion: sourceVer.Raw,
		TargetVersion: targetVer.Raw,
	}, nil
}

func (e *Engine) collectSide(ctx context.Context, side dbmanager.Side, role schema.Role, schemaName string) (*schema.Snapshot, error) {
	lease, err := e.acquire(ctx, side)
	if err != nil {
		return nil, err
	}
	defer e.release(ctx, side, lease)

	return e.collector.Collect(ctx, lease.Conn(), role, schemaName, false)
}

func wrap(cause error, side, schemaName, stage string) error {
	wrapped := apperrors.Processing(apperrors.CodeComparisonFailed, "comparison failed", cause)
	if side != "" {
		wrapped = wrapped.WithDetail("side", side)
	}
	if schemaName != "" {
		wrapped = wrapped.WithDetail("schema", schemaName)
	}
	return wrapped.WithDetail("stage", stage)
}
