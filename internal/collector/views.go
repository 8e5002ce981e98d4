package collector

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/pgEdge/schemadiff/internal/schema"
)

// collectViews returns every plain (non-materialized) view in schemaName,
// ordered by name.
func collectViews(ctx context.Context, conn *pgx.Conn, schemaName string) ([]schema.View, error) {
	const q = `
		SELECT
			v.table_name,
			COALESCE(v.view_definition, ''),
			(v.is_updatable = 'YES'),
			(v.is_insertable_into = 'YES')
		FROM information_schema.views v
		WHERE v.table_schema = $1
		ORDER BY v.table_name`

	rows, err := conn.Query(ctx, q, schemaName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []schema.View
	for rows.Next() {
		var v schema.View
		if err := rows.Scan(&v.Name, &v.Definition, &v.IsUpdatable, &v.IsInsertableInto); err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, rows.Err()
}
