package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pgEdge/schemadiff/internal/config"
	"github.com/pgEdge/schemadiff/internal/report"
)

// writeOutputs renders the filename template once per format and writes the
// bytes that format produced, honoring the configured overwrite policy.
// Mirrors the teacher's writeOutput/MakeOutputPath split: path construction
// stays separate from the actual file write so it can be tested without
// touching disk.
func writeOutputs(outputs []report.Output, out config.OutputConfig) error {
	if err := os.MkdirAll(out.Directory, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	ts := time.Now().Format(timestampLayout(out.TimestampFormat))

	for _, o := range outputs {
		if o.Err != nil {
			fmt.Fprintf(os.Stderr, "skipping %s: %v\n", o.Format.FileExtension(), o.Err)
			continue
		}

		name := formatName(o.Format)
		path := filepath.Join(out.Directory, renderFilename(out.FilenameTemplate, name, ts)+o.Format.FileExtension())

		if out.OverwritePolicy != "overwrite" {
			if _, err := os.Stat(path); err == nil {
				if out.OverwritePolicy == "skip" {
					fmt.Fprintf(os.Stderr, "skipping existing file %s\n", path)
					continue
				}
				return fmt.Errorf("output file already exists: %s (overwrite_policy is %q)", path, out.OverwritePolicy)
			}
		}

		if err := os.WriteFile(path, o.Bytes, 0o644); err != nil {
			return fmt.Errorf("write %s report: %w", name, err)
		}
		fmt.Fprintf(os.Stderr, "Report written to %s\n", path)
	}

	return nil
}

// renderFilename substitutes {timestamp} and {format} into the configured
// filename template.
func renderFilename(tmpl, format, ts string) string {
	r := strings.NewReplacer("{timestamp}", ts, "{format}", format)
	return r.Replace(tmpl)
}

func timestampLayout(configured string) string {
	if configured == "" {
		return "20060102T150405"
	}
	return configured
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
		return "report"
	}
}
