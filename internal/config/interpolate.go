package config

import (
	"os"
	"regexp"
)

// varPattern matches ${VAR} and ${VAR:default}.
var varPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:([^}]*))?\}`)

// expand resolves every ${VAR} / ${VAR:default} reference in s against the
// process environment. A variable with no default and no environment value
// resolves to the empty string, matching the boundary contract of spec.md
// §6 ("the core sees resolved strings").
func expand(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		groups := varPattern.FindStringSubmatch(match)
		name, def := groups[1], groups[3]
		if v, ok := os.LookupEnv(name); ok {
			return v
		}
		return def
	})
}

// interpolate walks every string-valued configuration field that can
// plausibly carry a ${VAR} reference (credentials, paths, hostnames) and
// resolves it in place.
func interpolate(cfg *AppConfig) {
	interpolateDatabase(&cfg.Source)
	interpolateDatabase(&cfg.Target)

	cfg.Output.Directory = expand(cfg.Output.Directory)
	cfg.System.TempDir = expand(cfg.System.TempDir)
}

func interpolateDatabase(d *DatabaseConfig) {
	d.Host = expand(d.Host)
	d.Database = expand(d.Database)
	d.User = expand(d.User)
	d.Password = expand(d.Password)
	d.Schema = expand(d.Schema)
	d.SSLCertPath = expand(d.SSLCertPath)
	d.SSLKeyPath = expand(d.SSLKeyPath)
	d.SSLCAPath = expand(d.SSLCAPath)
}
