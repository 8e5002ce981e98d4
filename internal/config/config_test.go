package config

import (
	"os"
	"testing"
)

func TestExpandResolvesEnvAndDefault(t *testing.T) {
	os.Setenv("SCHEMADIFF_TEST_HOST", "db.internal")
	defer os.Unsetenv("SCHEMADIFF_TEST_HOST")

	got := expand("${SCHEMADIFF_TEST_HOST}")
	if got != "db.internal" {
		t.Errorf("expected db.internal, got %q", got)
	}

	got = expand("${SCHEMADIFF_TEST_MISSING:fallback}")
	if got != "fallback" {
		t.Errorf("expected fallback, got %q", got)
	}

	got = expand("${SCHEMADIFF_TEST_MISSING}")
	if got != "" {
		t.Errorf("expected empty string for unset var with no default, got %q", got)
	}
}

func TestInterpolateDatabaseRewritesAllStringFields(t *testing.T) {
	os.Setenv("SCHEMADIFF_TEST_PW", "s3cret")
	defer os.Unsetenv("SCHEMADIFF_TEST_PW")

	d := DatabaseConfig{
		Host:     "${SCHEMADIFF_TEST_HOST:localhost}",
		Password: "${SCHEMADIFF_TEST_PW}",
	}
	interpolateDatabase(&d)

	if d.Host != "localhost" {
		t.Errorf("expected localhost, got %q", d.Host)
	}
	if d.Password != "s3cret" {
		t.Errorf("expected s3cret, got %q", d.Password)
	}
}

func TestValidateRequiresSourceAndTargetFields(t *testing.T) {
	cfg := Defaults()
	err := Validate(&cfg)
	if err == nil {
		t.Fatal("expected MissingConfig error for empty source/target, got nil")
	}
}

func TestValidateAcceptsWellFormedConfig(t *testing.T) {
	cfg := Defaults()
	cfg.Source = DatabaseConfig{Host: "localhost", Database: "app", User: "app"}
	cfg.Target = DatabaseConfig{Host: "localhost", Database: "app_v2", User: "app"}

	if err := Validate(&cfg); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestValidateRejectsUnknownFormat(t *testing.T) {
	cfg := Defaults()
	cfg.Source = DatabaseConfig{Host: "localhost", Database: "app", User: "app"}
	cfg.Target = DatabaseConfig{Host: "localhost", Database: "app_v2", User: "app"}
	cfg.Output.Formats = []string{"yaml"}

	if err := Validate(&cfg); err == nil {
		t.Fatal("expected InvalidConfig error for unknown format, got nil")
	}
}

func TestValidateRejectsUnknownOverwritePolicy(t *testing.T) {
	cfg := Defaults()
	cfg.Source = DatabaseConfig{Host: "localhost", Database: "app", User: "app"}
	cfg.Target = DatabaseConfig{Host: "localhost", Database: "app_v2", User: "app"}
	cfg.Output.OverwritePolicy = "clobber"

	if err := Validate(&cfg); err == nil {
		t.Fatal("expected InvalidConfig error for unknown overwrite policy, got nil")
	}
}

func TestToDBConfigRejectsOutOfRangePort(t *testing.T) {
	d := DatabaseConfig{Host: "localhost", Database: "app", User: "app", Port: 70000, ConnectTimeout: 0}
	if _, err := d.ToDBConfig(); err == nil {
		t.Fatal("expected an error for an out-of-range port, got nil")
	}
}
