package collector

import (
	"context"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/pgEdge/schemadiff/internal/schema"
)

// attachIndexes populates Indexes on each table in tables in place.
func attachIndexes(ctx context.Context, conn *pgx.Conn, schemaName string, tables []schema.Table) error {
	const q = `
		SELECT
			t.relname,
			i.relname,
			am.amname,
			ix.indisunique,
			ix.indisprimary,
			COALESCE(ARRAY(
				SELECT a.attname FROM unnest(ix.indkey) WITH ORDINALITY AS k(attnum, ord)
				JOIN pg_catalog.pg_attribute a ON a.attrelid = ix.indrelid AND a.attnum = k.attnum
				ORDER BY k.ord
			), ARRAY[]::text[]),
			pg_get_indexdef(ix.indexrelid)
		FROM pg_catalog.pg_index ix
		JOIN pg_catalog.pg_class t ON t.oid = ix.indrelid
		JOIN pg_catalog.pg_class i ON i.oid = ix.indexrelid
		JOIN pg_catalog.pg_am am ON am.oid = i.relam
		JOIN pg_catalog.pg_namespace n ON n.oid = t.relnamespace
		WHERE n.nspname = $1
		ORDER BY t.relname, i.relname`

	rows, err := conn.Query(ctx, q, schemaName)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var tableName string
		var idx schema.Index
		if err := rows.Scan(&tableName, &idx.Name, &idx.Method, &idx.IsUnique,
			&idx.IsPrimary, &idx.ColumnNames, &idx.Definition); err != nil {
			return err
		}
		idx.TableName = tableName
		if i := tableIndex(tables, tableName); i >= 0 {
			tables[i].Indexes = append(tables[i].Indexes, idx)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range tables {
		sort.Slice(tables[i].Indexes, func(a, b int) bool {
			return tables[i].Indexes[a].Name < tables[i].Indexes[b].Name
		})
	}
	return nil
}
