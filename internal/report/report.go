// Package report implements the Report Renderer of spec.md §4.8: a
// format-polymorphic view over a diff.DiffResult (or its grouped form),
// producing bytes for the boundary to write. Nothing in this package
// performs file I/O.
package report

import (
	"time"

	"github.com/pgEdge/schemadiff/internal/diff"
	"github.com/pgEdge/schemadiff/internal/group"
)

// Metadata carries the run context a report's header needs: which
// databases were compared, when, and under what tool version.
type Metadata struct {
	SourceSchema  string
	TargetSchema  string
	SourceVersion string
	TargetVersion string
	GeneratedAt   time.Time
	ToolVersion   string
	GroupByTable  bool
}

// Format is implemented once per output variant (HTML, Markdown, JSON,
// XML). Generate receives the flat DiffResult always and the grouped view
// only when Metadata.GroupByTable is set — renderers that don't support
// grouping may ignore it.
type Format interface {
	FileExtension() string
	MimeType() string
	Generate(result diff.DiffResult, grouped *group.GroupedDiff, meta Metadata) ([]byte, error)
	Validate(data []byte) bool
}

// Formats is the full built-in variant set of spec.md §4.8, in the fixed
// order reports are generated.
func Formats() []Format {
	return []Format{
		JSONFormat{},
		XMLFormat{},
		MarkdownFormat{},
		HTMLFormat{},
	}
}

// Output is one format's render result: either bytes or the error that
// stopped it.
type Output struct {
	Format Format
	Bytes  []byte
	Err    error
}

// RenderAll runs every requested format independently: one format's
// failure is recorded and does not prevent the others from completing, per
// spec.md §7's renderer robustness rule.
func RenderAll(formats []Format, result diff.DiffResult, meta Metadata) []Output {
	var grouped *group.GroupedDiff
	if meta.GroupByTable {
		g := group.Group(result)
		grouped = &g
	}

	outputs := make([]Output, 0, len(formats))
	for _, f := range formats {
		data, err := f.Generate(result, grouped, meta)
		outputs = append(outputs, Output{Format: f, Bytes: data, Err: err})
	}
	return outputs
}
