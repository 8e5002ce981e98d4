package engine

import (
	"context"

	"github.com/pgEdge/schemadiff/internal/dbmanager"
	"github.com/pgEdge/schemadiff/internal/pool"
)

func (e *Engine) acquire(ctx context.Context, side dbmanager.Side) (*pool.Lease, error) {
	if side == dbmanager.Source {
		return e.manager.GetSource(ctx)
	}
	return e.manager.GetTarget(ctx)
}

func (e *Engine) release(ctx context.Context, side dbmanager.Side, lease *pool.Lease) {
	if side == dbmanager.Source {
		e.manager.ReleaseSource(ctx, lease)
		return
	}
	e.manager.ReleaseTarget(ctx, lease)
}
