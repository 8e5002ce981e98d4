// Package group implements the Grouping Transformer of spec.md §4.7: it
// re-pivots a change-type-oriented diff.DiffResult into a table-oriented
// GroupedDiff, suppressing child changes already implied by a wholly
// added/removed parent table.
package group

import (
	"sort"

	"github.com/pgEdge/schemadiff/internal/diff"
	"github.com/pgEdge/schemadiff/internal/schema"
)

// TableGroup is one table's grouped view: its change type, the table
// itself (present for added/removed; the post-state for modified), and its
// child changes keyed by bucket name ("columns_added",
// "constraints_modified", ...).
type TableGroup struct {
	TableName    string
	ChangeType   string // added, removed, modified
	Table        schema.Table
	Children     map[string]any
	TotalChanges int
}

// GroupedDiff is the table-oriented view spec.md §3 defines.
type GroupedDiff struct {
	Added    []TableGroup
	Removed  []TableGroup
	Modified []TableGroup
}

// Group transforms r into a GroupedDiff. Tables in tables.added/removed
// seed GroupedDiff.Added/Removed directly; their child changes are never
// routed into the modified set, regardless of what the flat buckets
// contain, satisfying spec.md §8's grouping invariant by construction.
func Group(r diff.DiffResult) GroupedDiff {
	var g GroupedDiff

	for _, t := range r.Tables.Added {
		g.Added = append(g.Added, TableGroup{
			TableName:    t.Name,
			ChangeType:   "added",
			Table:        t,
			TotalChanges: 1,
		})
	}
	sort.Slice(g.Added, func(i, j int) bool { return g.Added[i].TableName < g.Added[j].TableName })

	for _, t := range r.Tables.Removed {
		g.Removed = append(g.Removed, TableGroup{
			TableName:    t.Name,
			ChangeType:   "removed",
			Table:        t,
			TotalChanges: 1,
		})
	}
	sort.Slice(g.Removed, func(i, j int) bool { return g.Removed[i].TableName < g.Removed[j].TableName })

	implied := make(map[string]bool, len(r.Tables.Added)+len(r.Tables.Removed))
	for _, t := range r.Tables.Added {
		implied[t.Key()] = true
	}
	for _, t := range r.Tables.Removed {
		implied[t.Key()] = true
	}

	var names []string
	for name := range r.TableDiffs {
		if implied[name] {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		td := r.TableDiffs[name]
		children := map[string]any{}
		putIfNonEmpty(children, "columns_added", td.Columns.Added)
		putIfNonEmpty(children, "columns_removed", td.Columns.Removed)
		putIfNonEmpty(children, "columns_modified", td.Columns.Modified)
		putIfNonEmpty(children, "constraints_added", td.Constraints.Added)
		putIfNonEmpty(children, "constraints_removed", td.Constraints.Removed)
		putIfNonEmpty(children, "constraints_modified", td.Constraints.Modified)
		putIfNonEmpty(children, "indexes_added", td.Indexes.Added)
		putIfNonEmpty(children, "indexes_removed", td.Indexes.Removed)
		putIfNonEmpty(children, "indexes_modified", td.Indexes.Modified)
		putIfNonEmpty(children, "triggers_added", td.Triggers.Added)
		putIfNonEmpty(children, "triggers_removed", td.Triggers.Removed)
		putIfNonEmpty(children, "triggers_modified", td.Triggers.Modified)

		total := td.Columns.TotalChanges() + td.Constraints.TotalChanges() +
			td.Indexes.TotalChanges() + td.Triggers.TotalChanges()

		grp := TableGroup{
			TableName:    name,
			ChangeType:   "modified",
			Children:     children,
			TotalChanges: total,
		}
		for _, m := range r.Tables.Modified {
			if m.Item.Key() == name {
				grp.Table = m.Item
				break
			}
		}
		g.Modified = append(g.Modified, grp)
	}

	return g
}

func putIfNonEmpty[T any](m map[string]any, key string, items []T) {
	if len(items) > 0 {
		m[key] = items
	}
}
