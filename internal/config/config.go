// Package config provides configuration management for agentsync.
// It layers a YAML configuration file and environment variables over defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/klauern/agentsync/internal/logging"
	"github.com/klauern/agentsync/internal/mapping"
	"github.com/klauern/agentsync/internal/model"
	"github.com/klauern/agentsync/internal/schema"
	"github.com/klauern/agentsync/internal/sync"
	"github.com/klauern/agentsync/internal/util"
)

// Config represents the complete agentsync configuration.
type Config struct {
	// Mappings replaces the built-in mapping table when non-empty
	Mappings []model.Mapping `yaml:"mappings,omitempty" json:"mappings,omitempty"`

	// MappingFile points at a TOML mapping table; it takes precedence over Mappings
	MappingFile string `yaml:"mapping_file,omitempty" json:"mapping_file,omitempty"`

	// Sync configures the sync engine
	Sync SyncConfig `yaml:"sync" json:"sync"`

	// Validation configures the validator engine and schema
	Validation ValidationConfig `yaml:"validation" json:"validation"`

	// Output configures display preferences
	Output OutputConfig `yaml:"output" json:"output"`

	// Logging configures diagnostic logging
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// SyncConfig holds synchronization settings.
type SyncConfig struct {
	// Mode is replace or incremental
	Mode string `yaml:"mode" json:"mode"`
	// Extensions selects document files
	Extensions []string `yaml:"extensions" json:"extensions"`
	// Verify re-scans targets after every sync
	Verify bool `yaml:"verify" json:"verify"`
}

// ValidationConfig holds validator settings.
type ValidationConfig struct {
	// Patterns are the globs scanned when no arguments are given
	Patterns []string `yaml:"patterns" json:"patterns"`
	// MinBodyLength is the thin-content warning threshold
	MinBodyLength int `yaml:"min_body_length" json:"min_body_length"`
	// RequiredSections are the body markers that should be present
	RequiredSections []string `yaml:"required_sections" json:"required_sections"`
	// ExtraFrameworks extends the known framework vocabulary
	ExtraFrameworks []string `yaml:"extra_frameworks,omitempty" json:"extra_frameworks,omitempty"`
	// Workers bounds concurrent document validation
	Workers int `yaml:"workers" json:"workers"`
	// Strict treats warnings as failures
	Strict bool `yaml:"strict" json:"strict"`
}

// OutputConfig holds display preferences.
type OutputConfig struct {
	// Format is the report format (text, json, yaml)
	Format string `yaml:"format" json:"format"`
	// Color controls color output (auto, always, never)
	Color string `yaml:"color" json:"color"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	// Level is debug, info, warn, or error
	Level string `yaml:"level" json:"level"`
	// JSON switches to JSON log lines
	JSON bool `yaml:"json" json:"json"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Sync: SyncConfig{
			Mode:       string(sync.ModeReplace),
			Extensions: sync.DefaultExtensions(),
		},
		Validation: ValidationConfig{
			Patterns: []string{
				"agents/**/*.md",
				"plugins/*/agents/*.md",
			},
			MinBodyLength:    schema.DefaultMinBodyLength,
			RequiredSections: schema.DefaultSections(),
			Workers:          1,
		},
		Output: OutputConfig{
			Format: "text",
			Color:  "auto",
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// configFileName is the name of the config file.
const configFileName = "config.yaml"

// FilePath returns the path to the user config file.
func FilePath() string {
	return filepath.Join(util.AgentsyncConfigPath(), configFileName)
}

// Exists returns true if the user config file exists.
func Exists() bool {
	_, err := os.Stat(FilePath())
	return err == nil
}

// Load loads the configuration from the user config file, merging with
// defaults. A missing file yields the defaults with environment overrides.
func Load() (*Config, error) {
	cfg := Default()

	// #nosec G304 - path is constructed from the agentsync config directory
	data, err := os.ReadFile(FilePath())
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvironment()
			return cfg, cfg.Validate()
		}
		return nil, err
	}
	return cfg.merge(data, FilePath())
}

// LoadFromPath loads configuration from a specific path.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	// #nosec G304 - path is provided by caller
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return cfg.merge(data, path)
}

func (c *Config) merge(data []byte, path string) (*Config, error) {
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	c.applyEnvironment()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	logging.Debug("loaded config", logging.Path(path))
	return c, nil
}

// Save writes the configuration to the user config file.
func (c *Config) Save() error {
	return c.SaveToPath(FilePath())
}

// SaveToPath writes the configuration to a specific path.
func (c *Config) SaveToPath(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	// #nosec G306 - config file should be readable by user
	return os.WriteFile(path, data, 0o644)
}

var extensionPattern = regexp.MustCompile(`^\.[A-Za-z0-9]+$`)

// Validate checks every section.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.Sync),
		validation.Field(&c.Validation),
		validation.Field(&c.Output),
		validation.Field(&c.Logging),
	)
	if err != nil {
		return err
	}
	return mapping.Table(c.Mappings).Validate()
}

// Validate checks the sync section.
func (s SyncConfig) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Mode, validation.In(syncModes()...)),
		validation.Field(&s.Extensions, validation.Each(validation.Required, validation.Match(extensionPattern))),
	)
}

func syncModes() []any {
	modes := sync.AllModes()
	out := make([]any, len(modes))
	for i, m := range modes {
		out[i] = string(m)
	}
	return out
}

// Validate checks the validation section.
func (v ValidationConfig) Validate() error {
	return validation.ValidateStruct(&v,
		validation.Field(&v.Patterns, validation.Each(validation.Required)),
		validation.Field(&v.MinBodyLength, validation.Min(0)),
		validation.Field(&v.Workers, validation.Min(0), validation.Max(64)),
	)
}

// Validate checks the output section.
func (o OutputConfig) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Format, validation.In("text", "json", "yaml")),
		validation.Field(&o.Color, validation.In("auto", "always", "never")),
	)
}

// Validate checks the logging section.
func (l LoggingConfig) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Level, validation.In("debug", "info", "warn", "error")),
	)
}

// applyEnvironment applies environment variable overrides.
// Environment variables follow the pattern AGENTSYNC_<SECTION>_<KEY>.
func (c *Config) applyEnvironment() {
	if v := os.Getenv("AGENTSYNC_MAPPING_FILE"); v != "" {
		c.MappingFile = v
	}

	// Sync settings
	if v := os.Getenv("AGENTSYNC_SYNC_MODE"); v != "" {
		c.Sync.Mode = v
	}
	if v := os.Getenv("AGENTSYNC_SYNC_EXTENSIONS"); v != "" {
		c.Sync.Extensions = splitList(v)
	}
	if v := os.Getenv("AGENTSYNC_SYNC_VERIFY"); v != "" {
		c.Sync.Verify = parseBool(v)
	}

	// Validation settings
	if v := os.Getenv("AGENTSYNC_VALIDATION_PATTERNS"); v != "" {
		c.Validation.Patterns = splitList(v)
	}
	if v := os.Getenv("AGENTSYNC_VALIDATION_MIN_BODY_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.Validation.MinBodyLength = n
		}
	}
	if v := os.Getenv("AGENTSYNC_VALIDATION_EXTRA_FRAMEWORKS"); v != "" {
		c.Validation.ExtraFrameworks = splitList(v)
	}
	if v := os.Getenv("AGENTSYNC_VALIDATION_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Validation.Workers = n
		}
	}
	if v := os.Getenv("AGENTSYNC_VALIDATION_STRICT"); v != "" {
		c.Validation.Strict = parseBool(v)
	}

	// Output settings
	if v := os.Getenv("AGENTSYNC_OUTPUT_FORMAT"); v != "" {
		c.Output.Format = v
	}
	if v := os.Getenv("AGENTSYNC_OUTPUT_COLOR"); v != "" {
		c.Output.Color = v
	}

	// Logging settings
	if v := os.Getenv("AGENTSYNC_LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv("AGENTSYNC_LOG_JSON"); v != "" {
		c.Logging.JSON = parseBool(v)
	}
}

// parseBool parses a boolean from common string representations.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}

// splitList splits a comma-separated string, dropping empty segments.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// MappingTable returns the effective mapping table with paths resolved
// against baseDir. A mapping file wins over inline mappings, which win over
// the built-in table.
func (c *Config) MappingTable(baseDir string) (mapping.Table, error) {
	var table mapping.Table
	switch {
	case c.MappingFile != "":
		t, err := mapping.LoadTOML(util.ExpandPath(c.MappingFile, baseDir))
		if err != nil {
			return nil, err
		}
		table = t
	case len(c.Mappings) > 0:
		table = mapping.Table(c.Mappings)
	default:
		table = mapping.Default()
	}
	return table.Resolve(baseDir), nil
}

// Schema builds the document schema from the validation section.
func (c *Config) Schema() *schema.Schema {
	s := schema.Default()
	s.MinBodyLength = c.Validation.MinBodyLength
	s.Sections = append([]string(nil), c.Validation.RequiredSections...)
	s.Frameworks.Register(c.Validation.ExtraFrameworks...)
	return s
}

// SyncOptions builds sync engine options from the sync section.
func (c *Config) SyncOptions() sync.Options {
	mode, err := sync.ParseMode(c.Sync.Mode)
	if err != nil {
		mode = sync.ModeReplace
	}
	opts := sync.DefaultOptions()
	opts.Mode = mode
	if len(c.Sync.Extensions) > 0 {
		opts.Extensions = append([]string(nil), c.Sync.Extensions...)
	}
	return opts
}
