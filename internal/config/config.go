package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix namespaces every environment variable read by Load (EDA_INPUT_PATH, ...)
const EnvPrefix = "EDA"

// Config represents the complete application configuration.
// Leaf fields carry no envconfig tag: envconfig falls back to a bare tag as a
// variable name, so a tag such as PATH would read the process PATH. Keys are
// derived from field names instead (EDA_INPUT_PATH, EDA_OUTPUT_TOP_N, ...).
type Config struct {
	Input     InputConfig     `yaml:"input" envconfig:"INPUT"`
	Output    OutputConfig    `yaml:"output" envconfig:"OUTPUT"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// InputConfig describes the sales sample and how it is normalized
type InputConfig struct {
	Path              string `yaml:"path" validate:"required"`
	TimestampColumn   string `yaml:"timestamp_column" split_words:"true" validate:"required"`
	TimestampLayout   string `yaml:"timestamp_layout" split_words:"true" validate:"required"`
	DropLeadingColumn bool   `yaml:"drop_leading_column" split_words:"true"`
}

// OutputConfig controls where and what the report writes
type OutputConfig struct {
	Dir          string  `yaml:"dir" validate:"required"`
	Figures      bool    `yaml:"figures"`
	Workbook     bool    `yaml:"workbook"`
	TopN         int     `yaml:"top_n" split_words:"true" validate:"min=1,max=1000"`
	FigureWidth  float64 `yaml:"figure_width" split_words:"true" validate:"gt=0"`
	FigureHeight float64 `yaml:"figure_height" split_words:"true" validate:"gt=0"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" split_words:"true"`
}

// TelemetryConfig toggles tracing and metrics for a run
type TelemetryConfig struct {
	EnableTracing bool    `yaml:"enable_tracing" split_words:"true"`
	EnableMetrics bool    `yaml:"enable_metrics" split_words:"true"`
	Environment   string  `yaml:"environment"`
	SampleRatio   float64 `yaml:"sample_ratio" split_words:"true" validate:"gte=0,lte=1"`
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Input: InputConfig{
			TimestampColumn:   "timestamp",
			TimestampLayout:   "2006-01-02 15:04:05",
			DropLeadingColumn: true,
		},
		Output: OutputConfig{
			Dir:          DefaultOutputDir,
			Figures:      true,
			Workbook:     true,
			TopN:         DefaultTopN,
			FigureWidth:  8,
			FigureHeight: 5,
		},
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Format:   DefaultLogFormat,
			Output:   "console",
			FilePath: DefaultLogFile,
		},
		Telemetry: TelemetryConfig{
			Environment: "development",
			SampleRatio: 1.0,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file and the
// environment, in increasing order of precedence. A .env file in the working
// directory is loaded into the environment first when present. An empty
// configFile searches the usual locations.
func Load(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := Default()

	if configFile == "" {
		configFile = getConfigFilePath()
	}
	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// Fields carry no envconfig defaults, so unset variables leave file values alone
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	cfg.normalize()
	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks the configuration once command line overrides are applied
func (c *Config) Validate() error {
	c.normalize()
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("config validation failed: %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// normalize applies the fixed logging rules
func (c *Config) normalize() {
	// Always JSON
	c.Logging.Format = DefaultLogFormat
	c.Logging.Level = strings.ToLower(c.Logging.Level)
	c.Logging.Output = strings.ToLower(c.Logging.Output)
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = DefaultLogFile
	}
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	locations := []string{
		"eda.yaml",
		"configs/eda.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return ""
}
