package report

import (
	"strings"
	"testing"
	"time"

	"github.com/pgEdge/schemadiff/internal/diff"
	"github.com/pgEdge/schemadiff/internal/group"
	"github.com/pgEdge/schemadiff/internal/schema"
)

func sampleResult() diff.DiffResult {
	return diff.DiffResult{
		Tables: diff.Bucket[schema.Table]{
			Added: []schema.Table{{Name: "comments"}},
		},
		Columns: diff.Bucket[diff.ColumnEntry]{
			Added: []diff.ColumnEntry{{TableName: "comments", Column: schema.Column{Name: "id"}}},
			Modified: []diff.Modified[diff.ColumnEntry]{
				{
					Item:    diff.ColumnEntry{TableName: "users", Column: schema.Column{Name: "name"}},
					Changes: map[string]diff.Change{"data_type": {From: "text", To: "varchar"}},
				},
			},
		},
		TableDiffs: map[string]*diff.TableDiff{},
	}
}

func sampleMeta() Metadata {
	return Metadata{
		SourceSchema:  "public",
		TargetSchema:  "public",
		SourceVersion: "16.3",
		TargetVersion: "16.4",
		GeneratedAt:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		ToolVersion:   "0.1.0",
	}
}

func TestFormatsReturnsFixedOrderSet(t *testing.T) {
	names := []string{}
	for _, f := range Formats() {
		names = append(names, f.FileExtension())
	}
	want := []string{".json", ".xml", ".md", ".html"}
	if len(names) != len(want) {
		t.Fatalf("expected %d formats, got %d: %v", len(want), len(names), names)
	}
	for i, ext := range want {
		if names[i] != ext {
			t.Errorf("expected format %d to have extension %q, got %q", i, ext, names[i])
		}
	}
}

func TestEveryFormatGeneratesValidatableOutput(t *testing.T) {
	result := sampleResult()
	meta := sampleMeta()

	for _, f := range Formats() {
		data, err := f.Generate(result, nil, meta)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", f.MimeType(), err)
			continue
		}
		if len(data) == 0 {
			t.Errorf("%s: expected non-empty output", f.MimeType())
			continue
		}
		if !f.Validate(data) {
			t.Errorf("%s: Validate rejected its own Generate output", f.MimeType())
		}
	}
}

func TestEveryFormatAcceptsGroupedInput(t *testing.T) {
	result := sampleResult()
	g := group.Group(result)
	meta := sampleMeta()
	meta.GroupByTable = true

	for _, f := range Formats() {
		data, err := f.Generate(result, &g, meta)
		if err != nil {
			t.Errorf("%s: unexpected error with grouped input: %v", f.MimeType(), err)
			continue
		}
		if !f.Validate(data) {
			t.Errorf("%s: Validate rejected grouped output", f.MimeType())
		}
	}
}

func TestJSONFormatIsDeterministic(t *testing.T) {
	result := sampleResult()
	meta := sampleMeta()
	jsonFmt := JSONFormat{}

	first, err := jsonFmt.Generate(result, nil, meta)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := jsonFmt.Generate(result, nil, meta)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(first) != string(second) {
		t.Error("expected two Generate calls with identical input to produce byte-identical output")
	}
}

func TestRenderAllIsolatesPerFormatFailures(t *testing.T) {
	result := sampleResult()
	meta := sampleMeta()

	outputs := RenderAll(Formats(), result, meta)
	if len(outputs) != len(Formats()) {
		t.Fatalf("expected one Output per format, got %d", len(outputs))
	}
	for _, o := range outputs {
		if o.Err != nil {
			t.Errorf("%s: unexpected error: %v", o.Format.MimeType(), o.Err)
		}
	}
}

func TestRenderAllBuildsGroupedViewOnlyWhenRequested(t *testing.T) {
	result := sampleResult()
	meta := sampleMeta()
	meta.GroupByTable = true

	outputs := RenderAll(Formats(), result, meta)
	for _, o := range outputs {
		if o.Err != nil {
			t.Errorf("%s: unexpected error rendering with GroupByTable set: %v", o.Format.MimeType(), o.Err)
		}
	}

	jsonOnly := []Format{JSONFormat{}}
	grouped := RenderAll(jsonOnly, result, meta)
	if !strings.Contains(string(grouped[0].Bytes), `"grouped"`) {
		t.Error("expected the grouped view in the JSON output when GroupByTable is set")
	}
	meta.GroupByTable = false
	flat := RenderAll(jsonOnly, result, meta)
	if strings.Contains(string(flat[0].Bytes), `"grouped"`) {
		t.Error("expected no grouped view in the JSON output when GroupByTable is unset")
	}
}
