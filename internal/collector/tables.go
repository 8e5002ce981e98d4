package collector

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/pgEdge/schemadiff/internal/schema"
)

// collectTables returns every base table, foreign table, and materialized
// view in schemaName, ordered by name for determinism. Size and row-count
// columns come from pg_catalog, which information_schema does not expose.
func collectTables(ctx context.Context, conn *pgx.Conn, schemaName string) ([]schema.Table, error) {
	const q = `
		SELECT
			c.relname,
			CASE c.relkind
				WHEN 'r' THEN 'BASE TABLE'
				WHEN 'f' THEN 'FOREIGN'
				WHEN 'm' THEN 'MATERIALIZED VIEW'
				ELSE c.relkind::text
			END AS table_type,
			COALESCE(obj_description(c.oid, 'pg_class'), ''),
			COALESCE(c.reltuples, 0)::bigint,
			pg_size_pretty(pg_total_relation_size(c.oid))
		FROM pg_catalog.pg_class c
		JOIN pg_catalog.pg_namespace n ON n.oid = c.relnamespace
		WHERE n.nspname = $1
		  AND c.relkind IN ('r', 'f', 'm')
		ORDER BY c.relname`

	rows, err := conn.Query(ctx, q, schemaName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []schema.Table
	for rows.Next() {
		var t schema.Table
		if err := rows.Scan(&t.Name, &t.Type, &t.Comment, &t.EstimatedRows, &t.PrettySize); err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, rows.Err()
}

// tableIndex returns the position of the table named name within tables, or
// -1 if absent. Tables are few enough per schema that a linear scan per
// attach call is simpler than building a map.
func tableIndex(tables []schema.Table, name string) int {
	for i := range tables {
		if tables[i].Name == name {
			return i
		}
	}
	return -1
}
