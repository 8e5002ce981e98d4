package diff

import "github.com/pgEdge/schemadiff/internal/schema"

// diffTable recurses into a table's owned children, producing the
// per-table breakdown the Grouping Transformer consumes. A table's own
// fields never by themselves classify it as modified: modification is
// defined purely through child recursion, matching the authoritative
// field list's silence on Table.
func diffTable(a, b schema.Table) *TableDiff {
	td := &TableDiff{TableName: b.Name}
	td.Columns = diffColumns(a.Columns, b.Columns)
	td.Constraints = diffConstraints(a.Constraints, b.Constraints)
	td.Indexes = diffIndexes(a.Indexes, b.Indexes)
	td.Triggers = diffTriggers(a.Triggers, b.Triggers)
	return td
}
