package engine

import (
	"github.com/pgEdge/schemadiff/internal/config"
	"github.com/pgEdge/schemadiff/internal/diff"
	"github.com/pgEdge/schemadiff/internal/report"
	"github.com/pgEdge/schemadiff/internal/schema"
)

// ToolVersion is stamped into every rendered report's metadata.
const ToolVersion = "0.1.0"

// selectedFormats maps the configured format names to their report.Format
// implementations, preserving report.Formats' fixed render order.
func selectedFormats(names []string) []report.Format {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}

	var out []report.Format
	for _, f := range report.Formats() {
		if want[formatName(f)] {
			out = append(out, f)
		}
	}
	return out
}

func formatName(f report.Format) string {
	switch f.(type) {
	case report.JSONFormat:
		return "json"
	case report.XMLFormat:
		return "xml"
	case report.MarkdownFormat:
		return "markdown"
	case report.HTMLFormat:
		return "html"
	default:
		return ""
	}
}

// applyComparisonScope narrows a DiffResult per the comparison section of
// spec.md §6: entity kinds the config excludes are dropped, named tables
// and columns are filtered out of every bucket, and each bucket is capped
// at max_diff_items (0 means unlimited).
func applyComparisonScope(result diff.DiffResult, c config.ComparisonConfig) diff.DiffResult {
	excludedTables := toSet(c.ExcludeTables)
	excludedColumns := toSet(c.ExcludeColumns)

	result.Tables = filterTables(result.Tables, excludedTables)
	result.Columns = filterColumns(result.Columns, excludedTables, excludedColumns)

	if c.IncludeConstraints {
		result.Constraints = filterByTableName(result.Constraints, excludedTables, func(x schema.Constraint) string { return x.TableName })
	} else {
		result.Constraints = diff.Bucket[schema.Constraint]{}
	}
	if c.IncludeIndexes {
		result.Indexes = filterByTableName(result.Indexes, excludedTables, func(x schema.Index) string { return x.TableName })
	} else {
		result.Indexes = diff.Bucket[schema.Index]{}
	}
	if c.IncludeTriggers {
		result.Triggers = filterByTableName(result.Triggers, excludedTables, func(x schema.Trigger) string { return x.TableName })
	} else {
		result.Triggers = diff.Bucket[schema.Trigger]{}
	}
	if !c.IncludeFunctions {
		result.Functions = diff.Bucket[schema.Function]{}
	}
	if !c.IncludeViews {
		result.Views = diff.Bucket[schema.View]{}
	}

	for name, td := range result.TableDiffs {
		if excludedTables[name] {
			delete(result.TableDiffs, name)
			continue
		}
		keepColumn := func(c schema.Column) bool { return !excludedColumns[c.Name] }
		td.Columns = diff.Bucket[schema.Column]{
			Added:    filterSlice(td.Columns.Added, keepColumn),
			Removed:  filterSlice(td.Columns.Removed, keepColumn),
			Modified: filterModified(td.Columns.Modified, keepColumn),
		}
		if !c.IncludeConstraints {
			td.Constraints = diff.Bucket[schema.Constraint]{}
		}
		if !c.IncludeIndexes {
			td.Indexes = diff.Bucket[schema.Index]{}
		}
		if !c.IncludeTriggers {
			td.Triggers = diff.Bucket[schema.Trigger]{}
		}
	}

	if c.MaxDiffItems > 0 {
		result.Tables = capTableBucket(result.Tables, c.MaxDiffItems)
		result.Columns = capColumnBucket(result.Columns, c.MaxDiffItems)
		result.Constraints = capBucket(result.Constraints, c.MaxDiffItems)
		result.Indexes = capBucket(result.Indexes, c.MaxDiffItems)
		result.Triggers = capBucket(result.Triggers, c.MaxDiffItems)
		result.Views = capBucket(result.Views, c.MaxDiffItems)
		result.Sequences = capBucket(result.Sequences, c.MaxDiffItems)
		result.Functions = capBucket(result.Functions, c.MaxDiffItems)
	}

	return result
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, it := range items {
		set[it] = true
	}
	return set
}

func filterTables(b diff.Bucket[schema.Table], excluded map[string]bool) diff.Bucket[schema.Table] {
	return diff.Bucket[schema.Table]{
		Added:   filterSlice(b.Added, func(t schema.Table) bool { return !excluded[t.Name] }),
		Removed: filterSlice(b.Removed, func(t schema.Table) bool { return !excluded[t.Name] }),
		Modified: filterModified(b.Modified, func(t schema.Table) bool { return !excluded[t.Name] }),
	}
}

func filterColumns(b diff.Bucket[diff.ColumnEntry], excludedTables, excludedColumns map[string]bool) diff.Bucket[diff.ColumnEntry] {
	keep := func(c diff.ColumnEntry) bool {
		return !excludedTables[c.TableName] && !excludedColumns[c.Column.Name]
	}
	return diff.Bucket[diff.ColumnEntry]{
		Added:    filterSlice(b.Added, keep),
		Removed:  filterSlice(b.Removed, keep),
		Modified: filterModified(b.Modified, keep),
	}
}

func filterByTableName[T any](b diff.Bucket[T], excluded map[string]bool, tableOf func(T) string) diff.Bucket[T] {
	keep := func(x T) bool { return !excluded[tableOf(x)] }
	return diff.Bucket[T]{
		Added:    filterSlice(b.Added, keep),
		Removed:  filterSlice(b.Removed, keep),
		Modified: filterModified(b.Modified, keep),
	}
}

func filterSlice[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

func filterModified[T any](items []diff.Modified[T], keep func(T) bool) []diff.Modified[T] {
	out := make([]diff.Modified[T], 0, len(items))
	for _, m := range items {
		if keep(m.Item) {
			out = append(out, m)
		}
	}
	return out
}

func capBucket[T any](b diff.Bucket[T], max int) diff.Bucket[T] {
	return diff.Bucket[T]{
		Added:    capSlice(b.Added, max),
		Removed:  capSlice(b.Removed, max),
		Modified: capModified(b.Modified, max),
	}
}

func capTableBucket(b diff.Bucket[schema.Table], max int) diff.Bucket[schema.Table] {
	return capBucket(b, max)
}

func capColumnBucket(b diff.Bucket[diff.ColumnEntry], max int) diff.Bucket[diff.ColumnEntry] {
	return capBucket(b, max)
}

func capSlice[T any](items []T, max int) []T {
	if len(items) <= max {
		return items
	}
	return items[:max]
}

func capModified[T any](items []diff.Modified[T], max int) []diff.Modified[T] {
	if len(items) <= max {
		return items
	}
	return items[:max]
}
