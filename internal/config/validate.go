package config

import (
	"github.com/pgEdge/schemadiff/internal/apperrors"
)

var validFormats = map[string]bool{"json": true, "xml": true, "markdown": true, "html": true}
var validOverwritePolicies = map[string]bool{"fail": true, "overwrite": true, "skip": true}

// Validate checks the cross-field invariants Load cannot express through
// viper defaults alone: required database fields, a known format list, and
// a known overwrite policy. Per-connection detail (port range, SSL mode) is
// left to dbconn.Config.Validate, run again once ToDBConfig has converted
// each side.
func Validate(cfg *AppConfig) error {
	var missing []string
	if cfg.Source.Host == "" {
		missing = append(missing, "source.host")
	}
	if cfg.Source.Database == "" {
		missing = append(missing, "source.database")
	}
	if cfg.Source.User == "" {
		missing = append(missing, "source.user")
	}
	if cfg.Target.Host == "" {
		missing = append(missing, "target.host")
	}
	if cfg.Target.Database == "" {
		missing = append(missing, "target.database")
	}
	if cfg.Target.User == "" {
		missing = append(missing, "target.user")
	}
	if len(missing) > 0 {
		return apperrors.MissingConfig(missing)
	}

	if len(cfg.Output.Formats) == 0 {
		return apperrors.InvalidConfig("output.formats", cfg.Output.Formats, "at least one of json|xml|markdown|html")
	}
	for _, f := range cfg.Output.Formats {
		if !validFormats[f] {
			return apperrors.InvalidConfig("output.formats", f, "one of json|xml|markdown|html")
		}
	}

	if !validOverwritePolicies[cfg.Output.OverwritePolicy] {
		return apperrors.InvalidConfig("output.overwrite_policy", cfg.Output.OverwritePolicy, "one of fail|overwrite|skip")
	}

	if cfg.Comparison.MaxDiffItems < 0 {
		return apperrors.InvalidConfig("comparison.max_diff_items", cfg.Comparison.MaxDiffItems, ">= 0")
	}

	if cfg.System.MaxConnections < 0 {
		return apperrors.InvalidConfig("system.max_connections", cfg.System.MaxConnections, ">= 0")
	}

	return nil
}
