package dbconn

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/pgEdge/schemadiff/internal/apperrors"
)

// CheckPermissions probes the privileges spec.md §3 requires against the
// target schema using has_schema_privilege/has_table_privilege against
// information_schema, rather than inspecting pg_roles directly — this
// reflects what the connecting role can actually see, which is what matters
// for a later Collector run.
func CheckPermissions(ctx context.Context, conn *pgx.Conn, schemaName string) (Permissions, error) {
	perms := Permissions{Connect: true}

	if err := conn.QueryRow(ctx,
		`SELECT has_schema_privilege(current_user, $1, 'USAGE')`, schemaName,
	).Scan(&perms.ReadSchema); err != nil {
		return perms, apperrors.Database(apperrors.CodeQueryFailed, "check schema usage privilege", err)
	}

	rows, err := conn.Query(ctx,
		`SELECT nspname FROM pg_catalog.pg_namespace
		 WHERE has_schema_privilege(current_user, nspname, 'USAGE')
		   AND nspname NOT LIKE 'pg\_%' AND nspname <> 'information_schema'
		 ORDER BY nspname`)
	if err != nil {
		return perms, apperrors.Database(apperrors.CodeQueryFailed, "list usable schemas", err)
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return perms, apperrors.Database(apperrors.CodeQueryFailed, "scan usable schema", err)
		}
		perms.UsableSchemas = append(perms.UsableSchemas, name)
	}
	if err := rows.Err(); err != nil {
		return perms, apperrors.Database(apperrors.CodeQueryFailed, "iterate usable schemas", err)
	}

	var anyTable, anyView bool
	if err := conn.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.table_privileges
			WHERE grantee = current_user AND table_schema = $1 AND privilege_type = 'SELECT' AND table_name NOT IN (
				SELECT table_name FROM information_schema.views WHERE table_schema = $1
			)
		)`, schemaName).Scan(&anyTable); err != nil {
		return perms, apperrors.Database(apperrors.CodeQueryFailed, "check table select privilege", err)
	}
	if err := conn.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.table_privileges tp
			JOIN information_schema.views v ON v.table_schema = tp.table_schema AND v.table_name = tp.table_name
			WHERE tp.grantee = current_user AND tp.table_schema = $1 AND tp.privilege_type = 'SELECT'
		)`, schemaName).Scan(&anyView); err != nil {
		return perms, apperrors.Database(apperrors.CodeQueryFailed, "check view select privilege", err)
	}

	// Column/index/constraint metadata rides on the same catalog views that
	// table SELECT privilege already gates for a non-superuser role; no
	// separate probe exists in information_schema for them.
	perms.ReadTables = anyTable
	perms.ReadViews = anyView
	perms.ReadConstraints = anyTable
	perms.ReadIndexes = anyTable

	return perms, nil
}
