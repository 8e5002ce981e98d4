package collector

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/pgEdge/schemadiff/internal/schema"
)

const columnsQuery = `
	SELECT
		c.table_name,
		c.column_name,
		c.ordinal_position,
		c.data_type,
		(c.is_nullable = 'YES'),
		COALESCE(c.column_default, ''),
		c.character_maximum_length,
		c.numeric_precision,
		c.numeric_scale,
		COALESCE(c.udt_name, ''),
		COALESCE(col_description(
			(quote_ident(c.table_schema) || '.' || quote_ident(c.table_name))::regclass::oid,
			c.ordinal_position), '')
	FROM information_schema.columns c
	WHERE c.table_schema = $1
	ORDER BY c.table_name, c.ordinal_position`

// attachColumns populates Columns on each table in tables in place.
func attachColumns(ctx context.Context, conn *pgx.Conn, schemaName string, tables []schema.Table) error {
	rows, err := conn.Query(ctx, columnsQuery, schemaName)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var tableName string
		var col schema.Column
		if err := rows.Scan(&tableName, &col.Name, &col.OrdinalPosition, &col.DataType,
			&col.IsNullable, &col.ColumnDefault, &col.CharacterMaximumLength,
			&col.NumericPrecision, &col.NumericScale, &col.UDTName, &col.Comment); err != nil {
			return err
		}
		if i := tableIndex(tables, tableName); i >= 0 {
			tables[i].Columns = append(tables[i].Columns, col)
		}
	}
	return rows.Err()
}

// attachViewColumns populates Columns on each view in views in place, using
// the same column shape as tables so the two can be compared structurally.
func attachViewColumns(ctx context.Context, conn *pgx.Conn, schemaName string, views []schema.View) error {
	rows, err := conn.Query(ctx, columnsQuery, schemaName)
	if err != nil {
		return err
	}
	defer rows.Close()

	byName := make(map[string]int, len(views))
	for i := range views {
		byName[views[i].Name] = i
	}

	for rows.Next() {
		var viewName string
		var col schema.Column
		if err := rows.Scan(&viewName, &col.Name, &col.OrdinalPosition, &col.DataType,
			&col.IsNullable, &col.ColumnDefault, &col.CharacterMaximumLength,
			&col.NumericPrecision, &col.NumericScale, &col.UDTName, &col.Comment); err != nil {
			return err
		}
		if i, ok := byName[viewName]; ok {
			views[i].Columns = append(views[i].Columns, col)
		}
	}
	return rows.Err()
}
