// Package diff implements the Differencing Engine of spec.md §4.6: a pure,
// deterministic comparison of two schema.Snapshots. Nothing in this package
// performs I/O, logs, or retains state between calls — Diff is a function
// in the mathematical sense.
package diff

import "github.com/pgEdge/schemadiff/internal/schema"

// Change records one field's before/after values inside a Modified entry.
type Change struct {
	From any
	To   any
}

// Modified[T] pairs the post-state object with the map of fields that
// changed to produce it.
type Modified[T any] struct {
	Item    T
	Changes map[string]Change
}

// Bucket holds one entity kind's added/removed/modified classification.
type Bucket[T any] struct {
	Added    []T
	Removed  []T
	Modified []Modified[T]
}

func (b Bucket[T]) TotalChanges() int {
	return len(b.Added) + len(b.Removed) + len(b.Modified)
}

// ColumnEntry attaches the owning table name to a column change. Column
// itself carries no table reference (spec.md §3's Column has no tableName
// field, unlike Constraint/Index/Trigger), so the flat top-level Columns
// bucket needs this wrapper to report which table each entry belongs to.
type ColumnEntry struct {
	TableName string
	Column    schema.Column
}

// TableDiff is the per-table breakdown the Grouping Transformer consumes:
// a modified table's owned children's changes. A table has no own-field
// entry here — modification is defined purely through child recursion.
type TableDiff struct {
	TableName   string
	Columns     Bucket[schema.Column]
	Constraints Bucket[schema.Constraint]
	Indexes     Bucket[schema.Index]
	Triggers    Bucket[schema.Trigger]
}

// DiffResult is the full structural delta between two snapshots: eight
// parallel buckets plus the per-table breakdowns modified tables need for
// grouping.
type DiffResult struct {
	Tables      Bucket[schema.Table]
	Columns     Bucket[ColumnEntry]
	Constraints Bucket[schema.Constraint]
	Indexes     Bucket[schema.Index]
	Triggers    Bucket[schema.Trigger]
	Views       Bucket[schema.View]
	Sequences   Bucket[schema.Sequence]
	Functions   Bucket[schema.Function]

	TableDiffs map[string]*TableDiff
}

// Summary is the derived {added, removed, modified, total_changes} count
// set; it must always agree with the lengths of DiffResult's lists.
type Summary struct {
	Tables       BucketCounts
	Columns      BucketCounts
	Constraints  BucketCounts
	Indexes      BucketCounts
	Triggers     BucketCounts
	Views        BucketCounts
	Sequences    BucketCounts
	Functions    BucketCounts
	TotalChanges int
}

// BucketCounts is one entity kind's {added, removed, modified} counts.
type BucketCounts struct {
	Added    int
	Removed  int
	Modified int
}

// Summarize derives a Summary from r. Recomputed on demand rather than
// carried on DiffResult so the two can never disagree.
func Summarize(r DiffResult) Summary {
	s := Summary{
		Tables:      countsOf(r.Tables),
		Columns:     countsOf(r.Columns),
		Constraints: countsOf(r.Constraints),
		Indexes:     countsOf(r.Indexes),
		Triggers:    countsOf(r.Triggers),
		Views:       countsOf(r.Views),
		Sequences:   countsOf(r.Sequences),
		Functions:   countsOf(r.Functions),
	}
	s.TotalChanges = r.Tables.TotalChanges() + r.Columns.TotalChanges() +
		r.Constraints.TotalChanges() + r.Indexes.TotalChanges() +
		r.Triggers.TotalChanges() + r.Views.TotalChanges() +
		r.Sequences.TotalChanges() + r.Functions.TotalChanges()
	return s
}

func countsOf[T any](b Bucket[T]) BucketCounts {
	return BucketCounts{Added: len(b.Added), Removed: len(b.Removed), Modified: len(b.Modified)}
}

// Diff computes the structural delta from a to b. Pure: calling it twice
// with the same inputs produces equal results, and neither snapshot is
// mutated.
func Diff(a, b *schema.Snapshot) DiffResult {
	var r DiffResult
	r.TableDiffs = make(map[string]*TableDiff)

	aTables := indexTables(a.Tables)
	bTables := indexTables(b.Tables)

	for _, name := range sortedKeys(aTables, bTables) {
		at, aok := aTables[name]
		bt, bok := bTables[name]
		switch {
		case !aok:
			r.Tables.Added = append(r.Tables.Added, bt)
			for _, c := range bt.Columns {
				r.Columns.Added = append(r.Columns.Added, ColumnEntry{TableName: bt.Name, Column: c})
			}
			r.Constraints.Added = append(r.Constraints.Added, bt.Constraints...)
			r.Indexes.Added = append(r.Indexes.Added, bt.Indexes...)
			r.Triggers.Added = append(r.Triggers.Added, bt.Triggers...)
		case !bok:
			r.Tables.Removed = append(r.Tables.Removed, at)
			for _, c := range at.Columns {
				r.Columns.Removed = append(r.Columns.Removed, ColumnEntry{TableName: at.Name, Column: c})
			}
			r.Constraints.Removed = append(r.Constraints.Removed, at.Constraints...)
			r.Indexes.Removed = append(r.Indexes.Removed, at.Indexes...)
			r.Triggers.Removed = append(r.Triggers.Removed, at.Triggers...)
		default:
			td := diffTable(at, bt)
			if td.Columns.TotalChanges() > 0 || td.Constraints.TotalChanges() > 0 ||
				td.Indexes.TotalChanges() > 0 || td.Triggers.TotalChanges() > 0 {
				r.Tables.Modified = append(r.Tables.Modified, Modified[schema.Table]{Item: bt})
				r.TableDiffs[name] = td
				mergeColumns(&r.Columns, name, td.Columns)
				mergeInto(&r.Constraints, td.Constraints)
				mergeInto(&r.Indexes, td.Indexes)
				mergeInto(&r.Triggers, td.Triggers)
			}
		}
	}

	r.Views = diffViews(a.Views, b.Views)
	r.Sequences = diffSequences(a.Sequences, b.Sequences)
	r.Functions = diffFunctions(a.Functions, b.Functions)

	return r
}

func mergeInto[T any](dst *Bucket[T], src Bucket[T]) {
	dst.Added = append(dst.Added, src.Added...)
	dst.Removed = append(dst.Removed, src.Removed...)
	dst.Modified = append(dst.Modified, src.Modified...)
}

func mergeColumns(dst *Bucket[ColumnEntry], tableName string, src Bucket[schema.Column]) {
	for _, c := range src.Added {
		dst.Added = append(dst.Added, ColumnEntry{TableName: tableName, Column: c})
	}
	for _, c := range src.Removed {
		dst.Removed = append(dst.Removed, ColumnEntry{TableName: tableName, Column: c})
	}
	for _, m := range src.Modified {
		dst.Modified = append(dst.Modified, Modified[ColumnEntry]{
			Item:    ColumnEntry{TableName: tableName, Column: m.Item},
			Changes: m.Changes,
		})
	}
}

func indexTables(tables []schema.Table) map[string]schema.Table {
	m := make(map[string]schema.Table, len(tables))
	for _, t := range tables {
		m[t.Key()] = t
	}
	return m
}
