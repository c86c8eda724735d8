package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/larsivik/snomed-catalog/internal/domain"
)

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
input:
  dir: "/data/releases"
  expected_dependency_version: "20240401"

pipeline:
  limit: 1000
  id_filter: "10000006,20000004"
  allow_version_mismatch: true

database:
  dsn: "postgres://u:p@localhost:5432/testdb"
  max_conns: 5
  min_conns: 1

log:
  level: "debug"
  format: "text"
`

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Input
	if cfg.Input.Dir != "/data/releases" {
		t.Errorf("input.dir = %q, want %q", cfg.Input.Dir, "/data/releases")
	}
	if cfg.Input.ExpectedDependencyVersion != "20240401" {
		t.Errorf("input.expected_dependency_version = %q, want %q",
			cfg.Input.ExpectedDependencyVersion, "20240401")
	}

	// Pipeline
	if cfg.Pipeline.Limit != 1000 {
		t.Errorf("pipeline.limit = %d, want 1000", cfg.Pipeline.Limit)
	}
	if !cfg.Pipeline.AllowVersionMismatch {
		t.Error("pipeline.allow_version_mismatch should be true")
	}
	if len(cfg.Pipeline.IDFilter) != 2 {
		t.Fatalf("pipeline.id_filter len = %d, want 2", len(cfg.Pipeline.IDFilter))
	}
	if cfg.Pipeline.IDFilter[0] != 10000006 {
		t.Errorf("pipeline.id_filter[0] = %d, want 10000006", cfg.Pipeline.IDFilter[0])
	}

	// Database
	if cfg.Database.DSN != "postgres://u:p@localhost:5432/testdb" {
		t.Errorf("database.dsn = %q", cfg.Database.DSN)
	}
	if cfg.Database.MaxConns != 5 {
		t.Errorf("database.max_conns = %d, want 5", cfg.Database.MaxConns)
	}

	// Log
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want %q", cfg.Log.Level, "debug")
	}
	if cfg.Log.Format != "text" {
		t.Errorf("log.format = %q, want %q", cfg.Log.Format, "text")
	}
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("PIPELINE_LIMIT", "50")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Pipeline.Limit != 50 {
		t.Errorf("pipeline.limit = %d, want 50 (ENV override)", cfg.Pipeline.Limit)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log.level = %q, want %q (ENV override)", cfg.Log.Level, "warn")
	}
}

func TestLoad_NoFile_ENVOnly(t *testing.T) {
	t.Setenv("INPUT_DIR", "/data/releases")
	t.Setenv("CONFIG_PATH", "")
	// Set working dir to a temp dir with no config.yaml
	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Pipeline.Limit != 0 {
		t.Errorf("pipeline.limit = %d, want 0 (default)", cfg.Pipeline.Limit)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("log.format = %q, want %q (default)", cfg.Log.Format, "json")
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, `{{{invalid yaml`)
	t.Setenv("CONFIG_PATH", path)

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestValidate_NegativeLimit(t *testing.T) {
	cfg := validConfig()
	cfg.Pipeline.Limit = -1

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative limit")
	}
}

func TestValidate_BadIDFilter(t *testing.T) {
	cfg := validConfig()
	cfg.Pipeline.IDFilterRaw = "10000006,not-an-id"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for malformed id filter")
	}
}

func TestValidate_BadLogFormat(t *testing.T) {
	cfg := validConfig()
	cfg.Log.Format = "xml"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unsupported log format")
	}
}

func TestParseIDFilter_Valid(t *testing.T) {
	ids, err := ParseIDFilter("10000006,20000004")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("len = %d, want 2", len(ids))
	}
	if ids[0] != 10000006 {
		t.Errorf("[0] = %d, want 10000006", ids[0])
	}
	if ids[1] != 20000004 {
		t.Errorf("[1] = %d, want 20000004", ids[1])
	}
}

func TestParseIDFilter_WithSpaces(t *testing.T) {
	ids, err := ParseIDFilter(" 10000006 , 20000004 , 30000002 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 3 {
		t.Fatalf("len = %d, want 3", len(ids))
	}
	if ids[2] != domain.SCTID(30000002) {
		t.Errorf("[2] = %d, want 30000002", ids[2])
	}
}

func TestParseIDFilter_Empty(t *testing.T) {
	ids, err := ParseIDFilter("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ids != nil {
		t.Errorf("expected nil, got %v", ids)
	}
}

func TestParseIDFilter_Invalid(t *testing.T) {
	_, err := ParseIDFilter("10000006,abc")
	if err == nil {
		t.Fatal("expected error for non-numeric identifier")
	}
}

// validConfig returns a Config that passes all validation checks.
func validConfig() Config {
	return Config{
		Input: InputConfig{Dir: "/data/releases"},
		Log:   LogConfig{Level: "info", Format: "json"},
	}
}
