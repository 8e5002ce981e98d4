// Package config resolves the AppConfig shape of spec.md §6 from YAML
// layered with environment variables, and hands a fully-validated,
// interpolated object to internal/engine. Nothing downstream of this
// package re-reads the environment or a file.
package config

import "time"

// DatabaseConfig is the boundary-facing mirror of dbconn.Config: plain
// strings/ints as they come off YAML/env, before ${VAR} interpolation and
// type coercion.
type DatabaseConfig struct {
	Host           string        `mapstructure:"host" yaml:"host"`
	Port           int           `mapstructure:"port" yaml:"port"`
	Database       string        `mapstructure:"database" yaml:"database"`
	User           string        `mapstructure:"user" yaml:"user"`
	Password       string        `mapstructure:"password" yaml:"password"`
	Schema         string        `mapstructure:"schema" yaml:"schema"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout" yaml:"connect_timeout"`
	SSLMode        string        `mapstructure:"ssl_mode" yaml:"ssl_mode"`
	SSLCertPath    string        `mapstructure:"ssl_cert_path" yaml:"ssl_cert_path"`
	SSLKeyPath     string        `mapstructure:"ssl_key_path" yaml:"ssl_key_path"`
	SSLCAPath      string        `mapstructure:"ssl_ca_path" yaml:"ssl_ca_path"`
}

// OutputConfig controls the Report Renderer's boundary: which formats to
// write, where, and under what overwrite policy.
type OutputConfig struct {
	Formats         []string `mapstructure:"formats" yaml:"formats"`
	Directory       string   `mapstructure:"directory" yaml:"directory"`
	FilenameTemplate string  `mapstructure:"filename_template" yaml:"filename_template"`
	TimestampFormat string   `mapstructure:"timestamp_format" yaml:"timestamp_format"`
	OverwritePolicy string   `mapstructure:"overwrite_policy" yaml:"overwrite_policy"`
	GroupByTable    bool     `mapstructure:"group_by_table" yaml:"group_by_table"`
	IncludeMetadata bool     `mapstructure:"include_metadata" yaml:"include_metadata"`
	IncludeSummary  bool     `mapstructure:"include_summary" yaml:"include_summary"`
	IncludeDetails  bool     `mapstructure:"include_details" yaml:"include_details"`
}

// ComparisonConfig scopes what the Differencing Engine considers.
type ComparisonConfig struct {
	IncludeViews       bool     `mapstructure:"include_views" yaml:"include_views"`
	IncludeFunctions   bool     `mapstructure:"include_functions" yaml:"include_functions"`
	IncludeConstraints bool     `mapstructure:"include_constraints" yaml:"include_constraints"`
	IncludeIndexes     bool     `mapstructure:"include_indexes" yaml:"include_indexes"`
	IncludeTriggers    bool     `mapstructure:"include_triggers" yaml:"include_triggers"`
	IgnoreCase         bool     `mapstructure:"ignore_case" yaml:"ignore_case"`
	ExcludeTables      []string `mapstructure:"exclude_tables" yaml:"exclude_tables"`
	ExcludeColumns     []string `mapstructure:"exclude_columns" yaml:"exclude_columns"`
	MaxDiffItems       int      `mapstructure:"max_diff_items" yaml:"max_diff_items"`
}

// SystemConfig controls ambient resource and logging behavior.
type SystemConfig struct {
	LogLevel      string `mapstructure:"log_level" yaml:"log_level"`
	Timezone      string `mapstructure:"timezone" yaml:"timezone"`
	MaxConnections int   `mapstructure:"max_connections" yaml:"max_connections"`
	WorkerThreads int    `mapstructure:"worker_threads" yaml:"worker_threads"`
	MemoryLimitMB int    `mapstructure:"memory_limit_mb" yaml:"memory_limit_mb"`
	TempDir       string `mapstructure:"temp_dir" yaml:"temp_dir"`
}

// PostgresConfig gates server-version-sensitive behavior.
type PostgresConfig struct {
	MinimumVersion string `mapstructure:"minimum_version" yaml:"minimum_version"`
	VersionCheck   bool   `mapstructure:"version_check" yaml:"version_check"`
}

// AppConfig is the fully-resolved configuration object spec.md §6 hands to
// the core. Everything downstream treats it as read-only.
type AppConfig struct {
	Source     DatabaseConfig   `mapstructure:"source" yaml:"source"`
	Target     DatabaseConfig   `mapstructure:"target" yaml:"target"`
	Output     OutputConfig     `mapstructure:"output" yaml:"output"`
	Comparison ComparisonConfig `mapstructure:"comparison" yaml:"comparison"`
	System     SystemConfig     `mapstructure:"system" yaml:"system"`
	Postgres   PostgresConfig   `mapstructure:"postgres" yaml:"postgres"`
}

// Defaults returns the configuration spec.md expects when a key is absent
// from both the file and the environment.
func Defaults() AppConfig {
	return AppConfig{
		Output: OutputConfig{
			Formats:          []string{"json"},
			Directory:        ".",
			FilenameTemplate: "schema_diff_{timestamp}_{format}",
			TimestampFormat:  "20060102T150405",
			OverwritePolicy:  "fail",
			IncludeMetadata:  true,
			IncludeSummary:   true,
			IncludeDetails:   true,
		},
		Comparison: ComparisonConfig{
			IncludeViews:       true,
			IncludeFunctions:   true,
			IncludeConstraints: true,
			IncludeIndexes:     true,
			IncludeTriggers:    true,
			MaxDiffItems:       0,
		},
		System: SystemConfig{
			LogLevel:       "info",
			Timezone:       "UTC",
			MaxConnections: 5,
			WorkerThreads:  2,
			MemoryLimitMB:  0,
			TempDir:        "",
		},
		Postgres: PostgresConfig{
			MinimumVersion: "13.0",
			VersionCheck:   true,
		},
	}
}
