package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "korvin.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadRuntimeConfig(t *testing.T) {
	path := writeConfig(t, `
user = "operator"
entry = "({say:hi} io.term)"
`)
	cfg, err := loadRuntimeConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.User != "operator" {
		t.Fatalf("user %q", cfg.User)
	}
	if cfg.Entry != "({say:hi} io.term)" {
		t.Fatalf("entry %q", cfg.Entry)
	}
}

func TestLoadRuntimeConfigDefaults(t *testing.T) {
	cfg, err := loadRuntimeConfig(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	def := defaultRuntimeConfig()
	if cfg != def {
		t.Fatalf("got %+v, want defaults %+v", cfg, def)
	}
}

func TestLoadRuntimeConfigBlankValuesKeepDefaults(t *testing.T) {
	cfg, err := loadRuntimeConfig(writeConfig(t, `
user = "  "
entry = ""
`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	def := defaultRuntimeConfig()
	if cfg.User != def.User || cfg.Entry != def.Entry {
		t.Fatalf("got %+v", cfg)
	}
}

func TestLoadRuntimeConfigMissingFile(t *testing.T) {
	if _, err := loadRuntimeConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatal("missing file must error")
	}
}
