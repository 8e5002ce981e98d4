package report

import (
	"fmt"
	"html"
	"strings"

	"github.com/pgEdge/schemadiff/internal/diff"
	"github.com/pgEdge/schemadiff/internal/group"
)

const reportCSS = `
body {
	font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
	margin: 0; padding: 24px; color: #1f2937; background: #f9fafb;
}
h1 { font-size: 1.4em; margin-bottom: 4px; }
h2 { font-size: 1.1em; margin-top: 28px; border-bottom: 1px solid #e5e7eb; padding-bottom: 6px; }
.meta { color: #6b7280; font-size: 0.9em; margin-bottom: 16px; }
table { border-collapse: collapse; width: 100%; margin: 8px 0 20px; }
th, td { text-align: left; padding: 6px 10px; border-bottom: 1px solid #e5e7eb; font-size: 0.9em; }
th { background: #f3f4f6; }
.tag { display: inline-block; padding: 1px 8px; border-radius: 10px; font-size: 0.75em; font-weight: 600; }
.tag-added { background: #dcfce7; color: #166534; }
.tag-removed { background: #fee2e2; color: #991b1b; }
.tag-modified { background: #fef3c7; color: #92400e; }
`

// HTMLFormat renders a DiffResult as a standalone HTML document with
// inline CSS, mirroring the teacher's built-in template-string approach
// rather than a templating library.
type HTMLFormat struct{}

func (HTMLFormat) FileExtension() string { return ".html" }
func (HTMLFormat) MimeType() string      { return "text/html" }

func (HTMLFormat) Generate(result diff.DiffResult, grouped *group.GroupedDiff, meta Metadata) ([]byte, error) {
	var b strings.Builder

	b.WriteString("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\">")
	b.WriteString("<title>Schema Diff Report</title><style>")
	b.WriteString(reportCSS)
	b.WriteString("</style></head><body>\n")

	fmt.Fprintf(&b, "<h1>Schema Diff Report</h1>\n")
	fmt.Fprintf(&b, "<div class=\"meta\">%s (%s) &rarr; %s (%s) &middot; generated %s</div>\n",
		html.EscapeString(meta.SourceSchema), html.EscapeString(meta.SourceVersion),
		html.EscapeString(meta.TargetSchema), html.EscapeString(meta.TargetVersion),
		meta.GeneratedAt.UTC().Format("2006-01-02 15:04:05 UTC"))

	summary := diff.Summarize(result)
	b.WriteString("<h2>Summary</h2>\n<table><tr><th>Entity</th><th>Added</th><th>Removed</th><th>Modified</th></tr>\n")
	writeHTMLSummaryRow(&b, "Tables", summary.Tables)
	writeHTMLSummaryRow(&b, "Columns", summary.Columns)
	writeHTMLSummaryRow(&b, "Constraints", summary.Constraints)
	writeHTMLSummaryRow(&b, "Indexes", summary.Indexes)
	writeHTMLSummaryRow(&b, "Triggers", summary.Triggers)
	writeHTMLSummaryRow(&b, "Views", summary.Views)
	writeHTMLSummaryRow(&b, "Sequences", summary.Sequences)
	writeHTMLSummaryRow(&b, "Functions", summary.Functions)
	b.WriteString("</table>\n")
	fmt.Fprintf(&b, "<p><strong>Total changes: %d</strong></p>\n", summary.TotalChanges)

	if grouped != nil {
		writeHTMLGrouped(&b, *grouped)
	} else {
		writeHTMLFlat(&b, result)
	}

	b.WriteString("</body></html>\n")
	return []byte(b.String()), nil
}

func writeHTMLSummaryRow(b *strings.Builder, label string, c diff.BucketCounts) {
	fmt.Fprintf(b, "<tr><td>%s</td><td>%d</td><td>%d</td><td>%d</td></tr>\n", label, c.Added, c.Removed, c.Modified)
}

func writeHTMLFlat(b *strings.Builder, result diff.DiffResult) {
	b.WriteString("<h2>Tables</h2>\n<table><tr><th>Change</th><th>Name</th><th>Details</th></tr>\n")
	for _, t := range result.Tables.Added {
		fmt.Fprintf(b, "<tr><td><span class=\"tag tag-added\">added</span></td><td>%s</td><td></td></tr>\n", html.EscapeString(t.Name))
	}
	for _, t := range result.Tables.Removed {
		fmt.Fprintf(b, "<tr><td><span class=\"tag tag-removed\">removed</span></td><td>%s</td><td></td></tr>\n", html.EscapeString(t.Name))
	}
	for _, m := range result.Tables.Modified {
		fmt.Fprintf(b, "<tr><td><span class=\"tag tag-modified\">modified</span></td><td>%s</td><td>%s</td></tr>\n",
			html.EscapeString(m.Item.Name), html.EscapeString(formatChanges(m.Changes)))
	}
	b.WriteString("</table>\n")

	b.WriteString("<h2>Columns</h2>\n<table><tr><th>Change</th><th>Table</th><th>Column</th><th>Details</th></tr>\n")
	for _, c := range result.Columns.Added {
		fmt.Fprintf(b, "<tr><td><span class=\"tag tag-added\">added</span></td><td>%s</td><td>%s</td><td></td></tr>\n",
			html.EscapeString(c.TableName), html.EscapeString(c.Column.Name))
	}
	for _, c := range result.Columns.Removed {
		fmt.Fprintf(b, "<tr><td><span class=\"tag tag-removed\">removed</span></td><td>%s</td><td>%s</td><td></td></tr>\n",
			html.EscapeString(c.TableName), html.EscapeString(c.Column.Name))
	}
	for _, m := range result.Columns.Modified {
		fmt.Fprintf(b, "<tr><td><span class=\"tag tag-modified\">modified</span></td><td>%s</td><td>%s</td><td>%s</td></tr>\n",
			html.EscapeString(m.Item.TableName), html.EscapeString(m.Item.Column.Name), html.EscapeString(formatChanges(m.Changes)))
	}
	b.WriteString("</table>\n")
}

func writeHTMLGrouped(b *strings.Builder, g group.GroupedDiff) {
	b.WriteString("<h2>Added tables</h2>\n<ul>\n")
	for _, t := range g.Added {
		fmt.Fprintf(b, "<li>%s</li>\n", html.EscapeString(t.TableName))
	}
	b.WriteString("</ul>\n<h2>Removed tables</h2>\n<ul>\n")
	for _, t := range g.Removed {
		fmt.Fprintf(b, "<li>%s</li>\n", html.EscapeString(t.TableName))
	}
	b.WriteString("</ul>\n<h2>Modified tables</h2>\n<ul>\n")
	for _, t := range g.Modified {
		fmt.Fprintf(b, "<li>%s — %d changes</li>\n", html.EscapeString(t.TableName), t.TotalChanges)
	}
	b.WriteString("</ul>\n")
}

// Validate reports whether data looks like a document this renderer
// produced: a well-formed HTML skeleton with our closing tag.
func (HTMLFormat) Validate(data []byte) bool {
	s := string(data)
	return strings.HasPrefix(s, "<!DOCTYPE html>") && strings.Contains(s, "</html>")
}
