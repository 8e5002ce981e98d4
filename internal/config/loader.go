package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "SCHEMADIFF"

// configSearchPaths mirrors the search order used elsewhere in the pack:
// system-wide, user-specific, then current directory, lowest to highest
// precedence.
func configSearchPaths() []string {
	paths := []string{filepath.Join("/etc", "schemadiff")}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "schemadiff"))
	}
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, cwd)
	}
	return paths
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("schemadiff")
	v.SetConfigType("yaml")
	// viper reads the first path that holds a config file, so paths are
	// added highest precedence first.
	paths := configSearchPaths()
	for i := len(paths) - 1; i >= 0; i-- {
		v.AddConfigPath(paths[i])
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

func setDefaults(v *viper.Viper, d AppConfig) {
	v.SetDefault("output.formats", d.Output.Formats)
	v.SetDefault("output.directory", d.Output.Directory)
	v.SetDefault("output.filename_template", d.Output.FilenameTemplate)
	v.SetDefault("output.timestamp_format", d.Output.TimestampFormat)
	v.SetDefault("output.overwrite_policy", d.Output.OverwritePolicy)
	v.SetDefault("output.group_by_table", d.Output.GroupByTable)
	v.SetDefault("output.include_metadata", d.Output.IncludeMetadata)
	v.SetDefault("output.include_summary", d.Output.IncludeSummary)
	v.SetDefault("output.include_details", d.Output.IncludeDetails)

	v.SetDefault("comparison.include_views", d.Comparison.IncludeViews)
	v.SetDefault("comparison.include_functions", d.Comparison.IncludeFunctions)
	v.SetDefault("comparison.include_constraints", d.Comparison.IncludeConstraints)
	v.SetDefault("comparison.include_indexes", d.Comparison.IncludeIndexes)
	v.SetDefault("comparison.include_triggers", d.Comparison.IncludeTriggers)
	v.SetDefault("comparison.ignore_case", d.Comparison.IgnoreCase)
	v.SetDefault("comparison.max_diff_items", d.Comparison.MaxDiffItems)

	v.SetDefault("system.log_level", d.System.LogLevel)
	v.SetDefault("system.timezone", d.System.Timezone)
	v.SetDefault("system.max_connections", d.System.MaxConnections)
	v.SetDefault("system.worker_threads", d.System.WorkerThreads)
	v.SetDefault("system.memory_limit_mb", d.System.MemoryLimitMB)

	v.SetDefault("postgres.minimum_version", d.Postgres.MinimumVersion)
	v.SetDefault("postgres.version_check", d.Postgres.VersionCheck)

	v.SetDefault("source.port", 5432)
	v.SetDefault("source.connect_timeout", "10s")
	v.SetDefault("source.ssl_mode", "prefer")
	v.SetDefault("source.schema", "public")
	v.SetDefault("target.port", 5432)
	v.SetDefault("target.connect_timeout", "10s")
	v.SetDefault("target.ssl_mode", "prefer")
	v.SetDefault("target.schema", "public")
}

// Load resolves an AppConfig from the given file (if non-empty) layered
// with environment variables and the package defaults, then interpolates
// ${VAR}/${VAR:default} references and validates the result.
func Load(cfgFile string) (*AppConfig, error) {
	v := newViper()
	setDefaults(v, Defaults())

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	interpolate(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
