package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/pgEdge/schemadiff/internal/applog"
	"github.com/pgEdge/schemadiff/internal/config"
	"github.com/pgEdge/schemadiff/internal/diff"
	"github.com/pgEdge/schemadiff/internal/engine"
	"github.com/pgEdge/schemadiff/internal/progress"
)

// dbFlags mirrors the teacher's connFlags, duplicated once per side since a
// comparison always has two independent endpoints.
type dbFlags struct {
	Host     string
	Port     int
	DBName   string
	User     string
	Password string
	Schema   string
}

var (
	sourceFlags  dbFlags
	targetFlags  dbFlags
	cfgFile      string
	formatsFlag  string
	outputDir    string
	groupByTable bool
	noProgress   bool
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare two PostgreSQL schemas and write a diff report",
	RunE:  runCompare,
}

func init() {
	addDBFlags(compareCmd, "source", &sourceFlags)
	addDBFlags(compareCmd, "target", &targetFlags)
	compareCmd.Flags().StringVarP(&cfgFile, "config", "c", "", "Path to a schemadiff YAML config file")
	compareCmd.Flags().StringVarP(&formatsFlag, "format", "f", "", "Comma-separated report formats (json,xml,markdown,html)")
	compareCmd.Flags().StringVarP(&outputDir, "output", "o", "", "Directory to write reports into")
	compareCmd.Flags().BoolVar(&groupByTable, "group-by-table", false, "Render the table-oriented grouped view")
	compareCmd.Flags().BoolVar(&noProgress, "no-progress", false, "Disable the progress spinner (implied when stdout isn't a terminal)")
}

func addDBFlags(cmd *cobra.Command, side string, f *dbFlags) {
	cmd.Flags().StringVar(&f.Host, side+"-host", "", side+" database host")
	cmd.Flags().IntVar(&f.Port, side+"-port", 0, side+" database port (default 5432, or as configured)")
	cmd.Flags().StringVar(&f.DBName, side+"-dbname", "", side+" database name")
	cmd.Flags().StringVar(&f.User, side+"-user", "", side+" database user")
	cmd.Flags().StringVar(&f.Password, side+"-password", "", side+" database password")
	cmd.Flags().StringVar(&f.Schema, side+"-schema", "", side+" schema name (default public, or as configured)")
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	applyFlagOverrides(cfg)

	log := applog.New(os.Stderr, cfg.System.LogLevel, "schemadiff")

	eng, err := engine.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer eng.Close()

	reporter := buildReporter()

	result, err := eng.Compare(ctx, cfg, reporter)
	if err != nil {
		return err
	}

	if sr, ok := reporter.(*progress.SpinnerReporter); ok {
		sr.Done(fmt.Sprintf("%d total changes found", summaryTotal(result)))
	}

	return writeOutputs(result.Outputs, cfg.Output)
}

func buildReporter() progress.Reporter {
	if noProgress || !isatty.IsTerminal(os.Stdout.Fd()) {
		return progress.NullReporter{}
	}
	return progress.NewSpinnerReporter()
}

func applyFlagOverrides(cfg *config.AppConfig) {
	applyDBFlagOverrides(&cfg.Source, sourceFlags)
	applyDBFlagOverrides(&cfg.Target, targetFlags)

	if formatsFlag != "" {
		cfg.Output.Formats = splitComma(formatsFlag)
	}
	if outputDir != "" {
		cfg.Output.Directory = outputDir
	}
	if groupByTable {
		cfg.Output.GroupByTable = true
	}
}

func applyDBFlagOverrides(c *config.DatabaseConfig, f dbFlags) {
	if f.Host != "" {
		c.Host = f.Host
	}
	if f.Port != 0 {
		c.Port = f.Port
	}
	if f.DBName != "" {
		c.Database = f.DBName
	}
	if f.User != "" {
		c.User = f.User
	}
	if f.Password != "" {
		c.Password = f.Password
	}
	if f.Schema != "" {
		c.Schema = f.Schema
	}
}

func splitComma(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func summaryTotal(r *engine.Result) int {
	if r == nil {
		return 0
	}
	return diff.Summarize(r.Diff).TotalChanges
}
