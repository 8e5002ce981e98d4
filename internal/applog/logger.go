// Package applog provides the structured logger shared by the Pool, the
// Database Manager, the Schema Collector, and the Engine. It wraps
// charmbracelet/log rather than hand-rolling level filtering and field
// formatting.
package applog

import (
	"io"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/charmbracelet/lipgloss"
)

// Logger is the subset of charmlog.Logger the core components depend on.
type Logger = charmlog.Logger

// New builds a Logger writing to w at the given level ("debug", "info",
// "warn", "error"; unrecognized values fall back to "info"). Callers pass a
// prefix so log lines are attributable to the emitting component ("pool",
// "manager", "collector", "engine").
func New(w io.Writer, level, prefix string) *Logger {
	if w == nil {
		w = os.Stderr
	}
	l := charmlog.NewWithOptions(w, charmlog.Options{
		Level:           parseLevel(level),
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	l.SetStyles(schemaDiffStyles())
	return l
}

// schemaDiffStyles recolors the default level badges and bolds the side
// field key, so a source/target pair (the one field present on nearly every
// line this package emits) stands out against the rest.
func schemaDiffStyles() *charmlog.Styles {
	styles := charmlog.DefaultStyles()
	styles.Levels[charmlog.WarnLevel] = lipgloss.NewStyle().
		SetString("WARN").
		Bold(true).
		Foreground(lipgloss.Color("192"))
	styles.Levels[charmlog.ErrorLevel] = lipgloss.NewStyle().
		SetString("ERROR").
		Bold(true).
		Foreground(lipgloss.Color("204"))
	styles.Keys["side"] = lipgloss.NewStyle().Bold(true)
	return styles
}

// Nop returns a logger that discards everything, used by components under
// test that don't want log noise.
func Nop() *Logger {
	return New(io.Discard, "error", "")
}

func parseLevel(level string) charmlog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return charmlog.DebugLevel
	case "warn", "warning":
		return charmlog.WarnLevel
	case "error":
		return charmlog.ErrorLevel
	default:
		return charmlog.InfoLevel
	}
}
