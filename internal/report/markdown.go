package report

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/pgEdge/schemadiff/internal/diff"
	"github.com/pgEdge/schemadiff/internal/group"
)

// MarkdownFormat renders a DiffResult as a readable Markdown document:
// a summary table followed by one section per entity kind, or, in grouped
// mode, one section per table.
type MarkdownFormat struct{}

func (MarkdownFormat) FileExtension() string { return ".md" }
func (MarkdownFormat) MimeType() string      { return "text/markdown" }

func (MarkdownFormat) Generate(result diff.DiffResult, grouped *group.GroupedDiff, meta Metadata) ([]byte, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "# Schema Diff Report\n\n")
	fmt.Fprintf(&b, "- Source: `%s` (%s)\n", meta.SourceSchema, meta.SourceVersion)
	fmt.Fprintf(&b, "- Target: `%s` (%s)\n", meta.TargetSchema, meta.TargetVersion)
	fmt.Fprintf(&b, "- Generated: %s\n\n", meta.GeneratedAt.UTC().Format("2006-01-02 15:04:05 UTC"))

	summary := diff.Summarize(result)
	fmt.Fprintf(&b, "## Summary\n\n")
	fmt.Fprintf(&b, "| Entity | Added | Removed | Modified |\n|---|---|---|---|\n")
	writeSummaryRow(&b, "Tables", summary.Tables)
	writeSummaryRow(&b, "Columns", summary.Columns)
	writeSummaryRow(&b, "Constraints", summary.Constraints)
	writeSummaryRow(&b, "Indexes", summary.Indexes)
	writeSummaryRow(&b, "Triggers", summary.Triggers)
	writeSummaryRow(&b, "Views", summary.Views)
	writeSummaryRow(&b, "Sequences", summary.Sequences)
	writeSummaryRow(&b, "Functions", summary.Functions)
	fmt.Fprintf(&b, "\n**Total changes: %d**\n\n", summary.TotalChanges)

	if grouped != nil {
		writeGroupedMarkdown(&b, *grouped)
	} else {
		writeFlatMarkdown(&b, result)
	}

	return []byte(b.String()), nil
}

// Validate reports whether data looks like a Markdown document this
// renderer produced: it must open with the fixed top-level heading.
func (MarkdownFormat) Validate(data []byte) bool {
	return strings.HasPrefix(string(data), "# Schema Diff Report")
}

func writeSummaryRow(b *strings.Builder, label string, c diff.BucketCounts) {
	fmt.Fprintf(b, "| %s | %d | %d | %d |\n", label, c.Added, c.Removed, c.Modified)
}

func writeFlatMarkdown(b *strings.Builder, result diff.DiffResult) {
	fmt.Fprintf(b, "## Tables\n\n")
	for _, t := range result.Tables.Added {
		fmt.Fprintf(b, "- **added** `%s`\n", t.Name)
	}
	for _, t := range result.Tables.Removed {
		fmt.Fprintf(b, "- **removed** `%s`\n", t.Name)
	}
	for _, m := range result.Tables.Modified {
		fmt.Fprintf(b, "- **modified** `%s` (%s)\n", m.Item.Name, formatChanges(m.Changes))
	}

	fmt.Fprintf(b, "\n## Columns\n\n")
	for _, c := range result.Columns.Added {
		fmt.Fprintf(b, "- **added** `%s.%s`\n", c.TableName, c.Column.Name)
	}
	for _, c := range result.Columns.Removed {
		fmt.Fprintf(b, "- **removed** `%s.%s`\n", c.TableName, c.Column.Name)
	}
	for _, m := range result.Columns.Modified {
		fmt.Fprintf(b, "- **modified** `%s.%s` (%s)\n", m.Item.TableName, m.Item.Column.Name, formatChanges(m.Changes))
	}
}

func writeGroupedMarkdown(b *strings.Builder, g group.GroupedDiff) {
	fmt.Fprintf(b, "## Added tables\n\n")
	for _, t := range g.Added {
		fmt.Fprintf(b, "- `%s`\n", t.TableName)
	}

	fmt.Fprintf(b, "\n## Removed tables\n\n")
	for _, t := range g.Removed {
		fmt.Fprintf(b, "- `%s`\n", t.TableName)
	}

	fmt.Fprintf(b, "\n## Modified tables\n\n")
	for _, t := range g.Modified {
		fmt.Fprintf(b, "### `%s` (%d changes)\n\n", t.TableName, t.TotalChanges)
		for key, items := range t.Children {
			fmt.Fprintf(b, "- %s: %d\n", key, childLen(items))
		}
		b.WriteString("\n")
	}
}

// childLen reports the length of a grouped TableGroup child slice without
// the caller needing to know its concrete element type.
func childLen(items any) int {
	v := reflect.ValueOf(items)
	if v.Kind() != reflect.Slice {
		return 0
	}
	return v.Len()
}

func formatChanges(changes map[string]diff.Change) string {
	if len(changes) == 0 {
		return "no field changes"
	}
	parts := make([]string, 0, len(changes))
	for field, c := range changes {
		parts = append(parts, fmt.Sprintf("%s: %v → %v", field, c.From, c.To))
	}
	return strings.Join(parts, "; ")
}
