package cmd

import (
	"testing"

	"github.com/pgEdge/schemadiff/internal/report"
)

func TestRenderFilenameSubstitutesPlaceholders(t *testing.T) {
	got := renderFilename("schema_diff_{timestamp}_{format}", "json", "20260730T120000")
	want := "schema_diff_20260730T120000_json"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRenderFilenameLeavesUnknownPlaceholdersAlone(t *testing.T) {
	got := renderFilename("report-{format}-{host}", "xml", "ignored")
	if got != "report-xml-{host}" {
		t.Errorf("expected 'report-xml-{host}', got %q", got)
	}
}

func TestTimestampLayoutDefaultsWhenUnconfigured(t *testing.T) {
	if got := timestampLayout(""); got != "20060102T150405" {
		t.Errorf("expected the default layout, got %q", got)
	}
}

func TestTimestampLayoutHonorsConfiguredValue(t *testing.T) {
	if got := timestampLayout("2006-01-02"); got != "2006-01-02" {
		t.Errorf("expected the configured layout passed through, got %q", got)
	}
}

func TestFormatNameMapsEachBuiltinFormat(t *testing.T) {
	cases := []struct {
		f    report.Format
		want string
	}{
		{report.JSONFormat{}, "json"},
		{report.XMLFormat{}, "xml"},
		{report.MarkdownFormat{}, "markdown"},
		{report.HTMLFormat{}, "html"},
	}
	for _, c := range cases {
		if got := formatName(c.f); got != c.want {
			t.Errorf("formatName(%T) = %q, want %q", c.f, got, c.want)
		}
	}
}
