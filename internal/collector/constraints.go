package collector

import (
	"context"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/pgEdge/schemadiff/internal/schema"
)

// attachConstraints populates Constraints on each table in tables in place.
// Column lists are built from pg_constraint.conkey against pg_attribute
// rather than information_schema.key_column_usage, which loses ordering for
// composite keys; the column list here preserves the constraint's declared
// order.
func attachConstraints(ctx context.Context, conn *pgx.Conn, schemaName string, tables []schema.Table) error {
	const q = `
		SELECT
			t.relname,
			con.conname,
			CASE con.contype
				WHEN 'p' THEN 'PRIMARY KEY'
				WHEN 'f' THEN 'FOREIGN KEY'
				WHEN 'u' THEN 'UNIQUE'
				WHEN 'c' THEN 'CHECK'
				WHEN 'n' THEN 'NOT NULL'
				ELSE con.contype::text
			END,
			COALESCE(ARRAY(
				SELECT a.attname FROM unnest(con.conkey) WITH ORDINALITY AS k(attnum, ord)
				JOIN pg_catalog.pg_attribute a ON a.attrelid = con.conrelid AND a.attnum = k.attnum
				ORDER BY k.ord
			), ARRAY[]::text[]),
			COALESCE(ft.relname, ''),
			COALESCE((
				SELECT a.attname FROM unnest(con.confkey) WITH ORDINALITY AS k(attnum, ord)
				JOIN pg_catalog.pg_attribute a ON a.attrelid = con.confrelid AND a.attnum = k.attnum
				ORDER BY k.ord LIMIT 1
			), ''),
			COALESCE(pg_get_constraintdef(con.oid), '')
		FROM pg_catalog.pg_constraint con
		JOIN pg_catalog.pg_class t ON t.oid = con.conrelid
		JOIN pg_catalog.pg_namespace n ON n.oid = t.relnamespace
		LEFT JOIN pg_catalog.pg_class ft ON ft.oid = con.confrelid
		WHERE n.nspname = $1
		ORDER BY t.relname, con.conname`

	rows, err := conn.Query(ctx, q, schemaName)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var tableName string
		var c schema.Constraint
		if err := rows.Scan(&tableName, &c.Name, &c.Kind, &c.ColumnNames,
			&c.ForeignTable, &c.ForeignColumn, &c.CheckClause); err != nil {
			return err
		}
		c.TableName = tableName
		if i := tableIndex(tables, tableName); i >= 0 {
			tables[i].Constraints = append(tables[i].Constraints, c)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range tables {
		sort.Slice(tables[i].Constraints, func(a, b int) bool {
			return tables[i].Constraints[a].Name < tables[i].Constraints[b].Name
		})
	}
	return nil
}
