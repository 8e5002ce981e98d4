package collector

import (
	"context"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/pgEdge/schemadiff/internal/schema"
)

// attachTriggers populates Triggers on each table in tables in place.
// pg_trigger stores one row per trigger with a bitmask of firing events
// (tgtype), which is decoded here into the ordered Events list rather than
// read from information_schema.triggers, which expands multi-event
// triggers into one row per event.
func attachTriggers(ctx context.Context, conn *pgx.Conn, schemaName string, tables []schema.Table) error {
	const q = `
		SELECT
			t.relname,
			tg.tgname,
			CASE WHEN tg.tgtype & 2 > 0 THEN 'BEFORE'
			     WHEN tg.tgtype & 64 > 0 THEN 'INSTEAD OF'
			     ELSE 'AFTER' END,
			tg.tgtype,
			p.proname,
			pg_get_triggerdef(tg.oid)
		FROM pg_catalog.pg_trigger tg
		JOIN pg_catalog.pg_class t ON t.oid = tg.tgrelid
		JOIN pg_catalog.pg_namespace n ON n.oid = t.relnamespace
		JOIN pg_catalog.pg_proc p ON p.oid = tg.tgfoid
		WHERE n.nspname = $1 AND NOT tg.tgisinternal
		ORDER BY t.relname, tg.tgname`

	rows, err := conn.Query(ctx, q, schemaName)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var tableName, name, timing, function, definition string
		var tgtype int32
		if err := rows.Scan(&tableName, &name, &timing, &tgtype, &function, &definition); err != nil {
			return err
		}
		i := tableIndex(tables, tableName)
		if i < 0 {
			continue
		}
		tables[i].Triggers = append(tables[i].Triggers, schema.Trigger{
			Name:       name,
			TableName:  tableName,
			Timing:     timing,
			Events:     decodeTriggerEvents(tgtype),
			Function:   function,
			Definition: definition,
		})
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range tables {
		sort.Slice(tables[i].Triggers, func(a, b int) bool {
			return tables[i].Triggers[a].Name < tables[i].Triggers[b].Name
		})
	}
	return nil
}

// decodeTriggerEvents decodes pg_trigger.tgtype's event bits (4=INSERT,
// 8=DELETE, 16=UPDATE, 32=TRUNCATE) into an ordered event list.
func decodeTriggerEvents(tgtype int32) []string {
	var events []string
	if tgtype&4 != 0 {
		events = append(events, "INSERT")
	}
	if tgtype&8 != 0 {
		events = append(events, "DELETE")
	}
	if tgtype&16 != 0 {
		events = append(events, "UPDATE")
	}
	if tgtype&32 != 0 {
		events = append(events, "TRUNCATE")
	}
	return events
}
