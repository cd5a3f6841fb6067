// Package config holds the settings of the dataio command.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Config holds all dataio configuration.
type Config struct {
	// OutputDirectory receives result files written by --save.
	OutputDirectory string `yaml:"output_directory"`

	Logging LoggingConfig `yaml:"logging"`
	Tabular TabularConfig `yaml:"tabular"`
	Records RecordsConfig `yaml:"records"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console, json
	File   string `yaml:"file"`
}

// TabularConfig sets defaults for delimited matrix files.
type TabularConfig struct {
	// Delimiter overrides the per-format default when set.
	Delimiter string `yaml:"delimiter"`
	Comment   string `yaml:"comment"`
	SkipRows  int    `yaml:"skip_rows"`
	Lenient   bool   `yaml:"lenient"`
}

// RecordsConfig sets defaults for JSON-lines files.
type RecordsConfig struct {
	KeepBlank   bool   `yaml:"keep_blank"`
	FailMissing bool   `yaml:"fail_missing"`
	Order       string `yaml:"order"` // first-seen, count
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		OutputDirectory: "results",
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
		Records: RecordsConfig{
			Order: "first-seen",
		},
	}
}

// Load loads configuration from a YAML file, then applies DATAIO_*
// environment overrides and validates the result. An empty path or a
// missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if v, ok := os.LookupEnv("DATAIO_OUTPUT"); ok {
		c.OutputDirectory = v
	}
	if v, ok := os.LookupEnv("DATAIO_LOGS"); ok {
		c.Logging.File = v
	}
	if v, ok := os.LookupEnv("DATAIO_LOG_LEVEL"); ok {
		c.Logging.Level = v
	}
	if v, ok := os.LookupEnv("DATAIO_LOG_FORMAT"); ok {
		c.Logging.Format = v
	}
	if v, ok := os.LookupEnv("DATAIO_DELIMITER"); ok {
		c.Tabular.Delimiter = v
	}
	if v, ok := os.LookupEnv("DATAIO_LENIENT"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid DATAIO_LENIENT %q: %w", v, err)
		}
		c.Tabular.Lenient = b
	}
	return nil
}

// ValidLevels lists the accepted logging levels.
var ValidLevels = []string{"debug", "info", "warn", "error"}

// ValidFormats lists the accepted logging encodings.
var ValidFormats = []string{"console", "json"}

// ValidOrders lists the accepted tally orders.
var ValidOrders = []string{"first-seen", "count"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if !contains(ValidLevels, c.Logging.Level) {
		return fmt.Errorf("invalid log level: %s (valid: %v)", c.Logging.Level, ValidLevels)
	}
	if !contains(ValidFormats, c.Logging.Format) {
		return fmt.Errorf("invalid log format: %s (valid: %v)", c.Logging.Format, ValidFormats)
	}
	if !contains(ValidOrders, c.Records.Order) {
		return fmt.Errorf("invalid records order: %s (valid: %v)", c.Records.Order, ValidOrders)
	}
	if c.Tabular.Delimiter != "" {
		if _, err := singleRune("delimiter", c.Tabular.Delimiter); err != nil {
			return err
		}
	}
	if c.Tabular.Comment != "" {
		if _, err := singleRune("comment", c.Tabular.Comment); err != nil {
			return err
		}
	}
	if c.Tabular.SkipRows < 0 {
		return fmt.Errorf("invalid skip_rows: %d", c.Tabular.SkipRows)
	}
	if c.OutputDirectory == "" {
		return fmt.Errorf("output directory not configured")
	}
	return nil
}

// DelimiterRune returns the configured delimiter, or 0 if unset. The tab
// escape "\t" is accepted in YAML and the environment.
func (t TabularConfig) DelimiterRune() rune {
	if t.Delimiter == "" {
		return 0
	}
	r, _ := singleRune("delimiter", t.Delimiter)
	return r
}

// CommentRune returns the configured comment character, or 0 if unset.
func (t TabularConfig) CommentRune() rune {
	if t.Comment == "" {
		return 0
	}
	r, _ := singleRune("comment", t.Comment)
	return r
}

func singleRune(name, s string) (rune, error) {
	if s == `\t` {
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if s == "" || r == utf8.RuneError || size != len(s) {
		return 0, fmt.Errorf("invalid %s %q: must be a single character", name, s)
	}
	return r, nil
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
