package config

import (
	"time"

	"github.com/larsivik/snomed-catalog/internal/domain"
)

// Config is the root application configuration.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
}

// InputConfig locates the snapshot release packages on disk.
type InputConfig struct {
	// Dir is scanned recursively for both the international and the national
	// package; file names decide which package a snapshot belongs to.
	Dir string `yaml:"dir" env:"INPUT_DIR" env-required:"true"`

	// ExpectedDependencyVersion is the international release date stamp the
	// national extension was built against. Empty skips the dependency check.
	ExpectedDependencyVersion string `yaml:"expected_dependency_version" env:"INPUT_EXPECTED_DEPENDENCY_VERSION"`
}

// PipelineConfig holds run-shaping settings.
type PipelineConfig struct {
	// Limit caps rows read per snapshot table. Zero reads everything.
	Limit int `yaml:"limit" env:"PIPELINE_LIMIT" env-default:"0"`

	// IDFilterRaw is a comma-separated list of concept identifiers to
	// restrict the run to. Parsed into IDFilter during validation.
	IDFilterRaw string `yaml:"id_filter" env:"PIPELINE_ID_FILTER"`

	// AllowVersionMismatch downgrades a failed dependency check from a fatal
	// error to a logged warning.
	AllowVersionMismatch bool `yaml:"allow_version_mismatch" env:"PIPELINE_ALLOW_VERSION_MISMATCH" env-default:"false"`

	// IDFilter is parsed from IDFilterRaw during validation.
	IDFilter []domain.SCTID `yaml:"-" env:"-"`
}

// DatabaseConfig holds PostgreSQL connection settings. Only the catalog-load
// command connects to a database; DSN stays optional so the file-to-file
// pipeline runs without one.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
