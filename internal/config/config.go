package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/gyeh/medseed/internal/db"
	"github.com/gyeh/medseed/internal/model"
	"github.com/gyeh/medseed/internal/seederr"
)

// Config holds all runtime configuration for a medseed run.
type Config struct {
	DSN       string `yaml:"dsn"`
	LogFormat string `yaml:"log_format"` // "text" or "json"

	Facilities        int `yaml:"facilities"`
	Departments       int `yaml:"departments"`
	Providers         int `yaml:"providers"`
	Patients          int `yaml:"patients"`
	RecordsPerPatient int `yaml:"records_per_patient"`

	MaxRowsPerChunk int    `yaml:"max_rows_per_chunk"`
	RecordWorkers   int    `yaml:"record_workers"`
	AtomicBatches   bool   `yaml:"atomic_batches"` // one transaction per batch instead of per chunk
	Seed            uint64 `yaml:"seed"`           // 0 picks a time based seed
	MaxConns        int32  `yaml:"max_conns"`
	ProgressEvery   int    `yaml:"progress_every"` // log record progress every N patients

	ExportPath string `yaml:"export_path"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		LogFormat:         "text",
		Facilities:        10,
		Departments:       20,
		Providers:         50,
		Patients:          100,
		RecordsPerPatient: 1000,
		MaxRowsPerChunk:   1000,
		RecordWorkers:     1,
		ProgressEvery:     10,
	}
}

// LoadFromFile reads a YAML config file and merges its values into Config.
// Keys absent from the file keep their current value; unknown keys are
// rejected.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return seederr.Wrap(seederr.ErrConfiguration, fmt.Errorf("read config file: %w", err))
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return seederr.Wrap(seederr.ErrConfiguration, fmt.Errorf("parse config file: %w", err))
	}
	return nil
}

// envKeys maps config keys to the environment variables that set them.
var envKeys = map[string][]string{
	"dsn":                 {"MEDSEED_DSN", "DATABASE_URL"},
	"log_format":          {"MEDSEED_LOG_FORMAT"},
	"facilities":          {"MEDSEED_FACILITIES"},
	"departments":         {"MEDSEED_DEPARTMENTS"},
	"providers":           {"MEDSEED_PROVIDERS"},
	"patients":            {"MEDSEED_PATIENTS"},
	"records_per_patient": {"MEDSEED_RECORDS_PER_PATIENT"},
	"max_rows_per_chunk":  {"MEDSEED_MAX_ROWS_PER_CHUNK"},
	"record_workers":      {"MEDSEED_RECORD_WORKERS"},
	"atomic_batches":      {"MEDSEED_ATOMIC_BATCHES"},
	"seed":                {"MEDSEED_SEED"},
	"max_conns":           {"MEDSEED_MAX_CONNS"},
	"progress_every":      {"MEDSEED_PROGRESS_EVERY"},
	"export_path":         {"MEDSEED_EXPORT_PATH"},
}

// LoadFromEnv overrides fields whose environment variable is set.
func (c *Config) LoadFromEnv() error {
	v := viper.New()
	for key, names := range envKeys {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if v.IsSet("dsn") {
		c.DSN = v.GetString("dsn")
	}
	if v.IsSet("log_format") {
		c.LogFormat = v.GetString("log_format")
	}
	for key, dst := range map[string]*int{
		"facilities":          &c.Facilities,
		"departments":         &c.Departments,
		"providers":           &c.Providers,
		"patients":            &c.Patients,
		"records_per_patient": &c.RecordsPerPatient,
		"max_rows_per_chunk":  &c.MaxRowsPerChunk,
		"record_workers":      &c.RecordWorkers,
		"progress_every":      &c.ProgressEvery,
	} {
		if v.IsSet(key) {
			*dst = v.GetInt(key)
		}
	}
	if v.IsSet("atomic_batches") {
		c.AtomicBatches = v.GetBool("atomic_batches")
	}
	if v.IsSet("seed") {
		c.Seed = v.GetUint64("seed")
	}
	if v.IsSet("max_conns") {
		c.MaxConns = v.GetInt32("max_conns")
	}
	if v.IsSet("export_path") {
		c.ExportPath = v.GetString("export_path")
	}
	return nil
}

// TotalRecords is the number of medical_records rows a run produces.
func (c *Config) TotalRecords() int64 {
	return int64(c.Patients) * int64(c.RecordsPerPatient)
}

// Validate checks counts and batching limits. Every failure wraps
// seederr.ErrConfiguration.
func (c *Config) Validate() error {
	for _, f := range []struct {
		name string
		v    int
	}{
		{"facilities", c.Facilities},
		{"departments", c.Departments},
		{"providers", c.Providers},
		{"patients", c.Patients},
		{"records-per-patient", c.RecordsPerPatient},
		{"max-rows-per-chunk", c.MaxRowsPerChunk},
		{"record-workers", c.RecordWorkers},
	} {
		if f.v <= 0 {
			return seederr.Configf("--%s must be positive, got %d", f.name, f.v)
		}
	}
	if c.Departments > len(model.DepartmentNames) {
		return seederr.Configf("--departments %d exceeds the %d department names available",
			c.Departments, len(model.DepartmentNames))
	}
	for _, t := range model.AllTables {
		if err := db.CheckChunkSize(t, c.MaxRowsPerChunk); err != nil {
			return err
		}
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return seederr.Configf("--log-format must be text or json, got %q", c.LogFormat)
	}
	if c.MaxConns < 0 {
		return seederr.Configf("--max-conns must not be negative, got %d", c.MaxConns)
	}
	return nil
}

// ValidateWithDSN checks the configuration and requires a DSN.
func (c *Config) ValidateWithDSN() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.DSN == "" {
		return seederr.Configf("--dsn or DATABASE_URL is required")
	}
	return nil
}
