package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestConfigCommandPrintsResolvedConfigAsYAML(t *testing.T) {
	// Load validates the required source/target fields, so the command
	// needs a config file that supplies them.
	path := filepath.Join(t.TempDir(), "schemadiff.yaml")
	yamlCfg := "source:\n  host: localhost\n  database: app\n  user: app\n" +
		"target:\n  host: localhost\n  database: app_v2\n  user: app\n"
	if err := os.WriteFile(path, []byte(yamlCfg), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	configCfgFile = path
	defer func() { configCfgFile = "" }()

	var buf bytes.Buffer
	configCmd.SetOut(&buf)
	configCmd.SetArgs([]string{})

	if err := configCmd.RunE(configCmd, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if out == "" {
		t.Fatal("expected non-empty YAML output")
	}
	if !bytes.Contains(buf.Bytes(), []byte("source:")) {
		t.Errorf("expected the resolved config's source section in the YAML output, got:\n%s", out)
	}
}
