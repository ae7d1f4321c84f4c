// Package config loads the application configuration from environment
// variables (prefix YH) merged over an optional YAML file, and validates the
// result before anything else starts.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config is the complete application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Data      DataConfig      `yaml:"data" envconfig:"DATA"`
	RateLimit RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" validate:"gt=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" validate:"gt=0"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" validate:"gt=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" validate:"gt=0"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=stdout file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// DataConfig locates the source datasets. The base results workbook is
// required; the applications workbook, the cohort CSV and the boundary file
// are optional collaborators whose absence degrades the matching features.
type DataConfig struct {
	Dir string `yaml:"dir" envconfig:"DIR" validate:"required"`

	ResultsFile  string `yaml:"results_file" envconfig:"RESULTS_FILE" validate:"required"`
	ResultsSheet string `yaml:"results_sheet" envconfig:"RESULTS_SHEET" validate:"required"`

	ApplicationsFile  string `yaml:"applications_file" envconfig:"APPLICATIONS_FILE"`
	ApplicationsSheet string `yaml:"applications_sheet" envconfig:"APPLICATIONS_SHEET"`

	CohortFile     string `yaml:"cohort_file" envconfig:"COHORT_FILE"`
	CohortEncoding string `yaml:"cohort_encoding" envconfig:"COHORT_ENCODING" validate:"oneof=latin1 utf8"`

	BoundaryFile string `yaml:"boundary_file" envconfig:"BOUNDARY_FILE"`

	// EnrichmentSuffix renames applications columns that collide with base
	// column names during the join.
	EnrichmentSuffix string `yaml:"enrichment_suffix" envconfig:"ENRICHMENT_SUFFIX"`
}

// RateLimitConfig contains request rate limiting configuration.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" validate:"gt=0"`
	Burst   int     `yaml:"burst" envconfig:"BURST" validate:"gt=0"`
}

// Load reads the optional YAML file, overlays environment variables and
// validates the result.
func Load() (*Config, error) {
	cfg := Default()

	if path := configFilePath(); path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	// Environment takes precedence over the file.
	if err := envconfig.Process("YH", cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// ResultsPath returns the resolved path of the base results workbook.
func (c *Config) ResultsPath() string { return filepath.Join(c.Data.Dir, c.Data.ResultsFile) }

// ApplicationsPath returns the resolved path of the applications workbook.
func (c *Config) ApplicationsPath() string {
	return filepath.Join(c.Data.Dir, c.Data.ApplicationsFile)
}

// CohortPath returns the resolved path of the admitted-students CSV.
func (c *Config) CohortPath() string { return filepath.Join(c.Data.Dir, c.Data.CohortFile) }

// BoundaryPath returns the resolved path of the region boundary file.
func (c *Config) BoundaryPath() string { return filepath.Join(c.Data.Dir, c.Data.BoundaryFile) }

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func configFilePath() string {
	locations := []string{"config.yaml", "configs/config.yaml"}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}
	return ""
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "stdout",
			FilePath: "logs/yhstat.log",
		},
		Data: DataConfig{
			Dir:               "data",
			ResultsFile:       "resultat-2025-for-kurser-inom-yh.xlsx",
			ResultsSheet:      "Lista ansökningar",
			ApplicationsFile:  "ansokningar-2025-for-kurser-inom-yh.xlsx",
			ApplicationsSheet: "Lista ansökningar",
			CohortFile:        "antal-antagna-som-paborjat-studier.csv",
			CohortEncoding:    "latin1",
			BoundaryFile:      "swedish_regions.geojson",
			EnrichmentSuffix:  " (ansökningar)",
		},
		RateLimit: RateLimitConfig{
			Enabled: true,
			RPS:     100,
			Burst:   50,
		},
	}
}
