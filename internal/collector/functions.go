package collector

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/pgEdge/schemadiff/internal/schema"
)

// collectFunctions returns every function and procedure in schemaName,
// ordered by (name, argument types) so that overloaded functions sort
// deterministically by signature. pg_proc, not information_schema.routines,
// is used here because only pg_proc's pg_get_function_identity_arguments gives the
// ordered argument type list a Function's identity depends on.
func collectFunctions(ctx context.Context, conn *pgx.Conn, schemaName string) ([]schema.Function, error) {
	const q = `
		SELECT
			p.proname,
			CASE p.prokind WHEN 'p' THEN 'PROCEDURE' ELSE 'FUNCTION' END,
			COALESCE(pg_catalog.format_type(p.prorettype, NULL), ''),
			COALESCE(string_to_array(NULLIF(pg_get_function_identity_arguments(p.oid), ''), ', '), ARRAY[]::text[]),
			COALESCE(pg_get_functiondef(p.oid), '')
		FROM pg_catalog.pg_proc p
		JOIN pg_catalog.pg_namespace n ON n.oid = p.pronamespace
		WHERE n.nspname = $1
		ORDER BY p.proname, pg_get_function_identity_arguments(p.oid)`

	rows, err := conn.Query(ctx, q, schemaName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var functions []schema.Function
	for rows.Next() {
		var f schema.Function
		if err := rows.Scan(&f.Name, &f.Kind, &f.ReturnType, &f.ArgumentTypes, &f.Definition); err != nil {
			return nil, err
		}
		functions = append(functions, f)
	}
	return functions, rows.Err()
}
