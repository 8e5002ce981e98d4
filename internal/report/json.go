package report

import (
	"bytes"
	"encoding/json"

	"github.com/pgEdge/schemadiff/internal/diff"
	"github.com/pgEdge/schemadiff/internal/group"
)

// JSONFormat renders a DiffResult as a single JSON object with
// report_metadata, summary, and per-bucket change lists, per spec.md §6.
type JSONFormat struct{}

func (JSONFormat) FileExtension() string { return ".json" }
func (JSONFormat) MimeType() string      { return "application/json" }

type jsonReportMetadata struct {
	SourceSchema  string `json:"source_schema"`
	TargetSchema  string `json:"target_schema"`
	SourceVersion string `json:"source_version"`
	TargetVersion string `json:"target_version"`
	GeneratedAt   string `json:"generated_at"`
	ToolVersion   string `json:"tool_version"`
	GroupByTable  bool   `json:"group_by_table"`
}

type jsonDocument struct {
	ReportMetadata jsonReportMetadata `json:"report_metadata"`
	Summary        diff.Summary       `json:"summary"`
	Tables         any                `json:"tables"`
	Columns        any                `json:"columns"`
	Constraints    any                `json:"constraints"`
	Indexes        any                `json:"indexes"`
	Triggers       any                `json:"triggers"`
	Views          any                `json:"views"`
	Sequences      any                `json:"sequences"`
	Functions      any                `json:"functions"`
	Grouped        *jsonGrouped       `json:"grouped,omitempty"`
}

type jsonGrouped struct {
	Added    []group.TableGroup `json:"added"`
	Removed  []group.TableGroup `json:"removed"`
	Modified []group.TableGroup `json:"modified"`
}

func (JSONFormat) Generate(result diff.DiffResult, grouped *group.GroupedDiff, meta Metadata) ([]byte, error) {
	doc := jsonDocument{
		ReportMetadata: jsonReportMetadata{
			SourceSchema:  meta.SourceSchema,
			TargetSchema:  meta.TargetSchema,
			SourceVersion: meta.SourceVersion,
			TargetVersion: meta.TargetVersion,
			GeneratedAt:   meta.GeneratedAt.UTC().Format("2006-01-02T15:04:05Z"),
			ToolVersion:   meta.ToolVersion,
			GroupByTable:  meta.GroupByTable,
		},
		Summary:     diff.Summarize(result),
		Tables:      result.Tables,
		Columns:     result.Columns,
		Constraints: result.Constraints,
		Indexes:     result.Indexes,
		Triggers:    result.Triggers,
		Views:       result.Views,
		Sequences:   result.Sequences,
		Functions:   result.Functions,
	}
	if grouped != nil {
		doc.Grouped = &jsonGrouped{Added: grouped.Added, Removed: grouped.Removed, Modified: grouped.Modified}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (JSONFormat) Validate(data []byte) bool {
	return json.Valid(data)
}
