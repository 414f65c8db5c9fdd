package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "timestamp", cfg.Input.TimestampColumn)
	assert.Equal(t, "2006-01-02 15:04:05", cfg.Input.TimestampLayout)
	assert.True(t, cfg.Input.DropLeadingColumn)
	assert.Equal(t, DefaultOutputDir, cfg.Output.Dir)
	assert.Equal(t, DefaultTopN, cfg.Output.TopN)
	assert.True(t, cfg.Output.Figures)
	assert.True(t, cfg.Output.Workbook)
	assert.Equal(t, DefaultLogLevel, cfg.Logging.Level)
	assert.Equal(t, DefaultLogFormat, cfg.Logging.Format)
	assert.False(t, cfg.Telemetry.EnableTracing)
	assert.Equal(t, 1.0, cfg.Telemetry.SampleRatio)
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		fileContent string
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "defaults with no env vars and no file",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "reports", cfg.Output.Dir)
				assert.Equal(t, "console", cfg.Logging.Output)
			},
		},
		{
			name: "environment overrides defaults",
			env: map[string]string{
				"EDA_INPUT_PATH":                "data/sample.csv",
				"EDA_OUTPUT_TOP_N":              "25",
				"EDA_OUTPUT_FIGURES":            "false",
				"EDA_LOGGING_LEVEL":             "DEBUG",
				"EDA_TELEMETRY_ENABLE_TRACING":  "true",
				"EDA_INPUT_DROP_LEADING_COLUMN": "false",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "data/sample.csv", cfg.Input.Path)
				assert.Equal(t, 25, cfg.Output.TopN)
				assert.False(t, cfg.Output.Figures)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.True(t, cfg.Telemetry.EnableTracing)
				assert.False(t, cfg.Input.DropLeadingColumn)
				// untouched fields keep defaults
				assert.Equal(t, "timestamp", cfg.Input.TimestampColumn)
			},
		},
		{
			name: "file overrides defaults",
			fileContent: `
input:
  path: from-file.csv
output:
  dir: out
  top_n: 5
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "from-file.csv", cfg.Input.Path)
				assert.Equal(t, "out", cfg.Output.Dir)
				assert.Equal(t, 5, cfg.Output.TopN)
				assert.Equal(t, "2006-01-02 15:04:05", cfg.Input.TimestampLayout)
				assert.True(t, cfg.Output.Workbook)
			},
		},
		{
			name: "environment wins over file",
			env:  map[string]string{"EDA_OUTPUT_DIR": "env-out"},
			fileContent: `
output:
  dir: file-out
  top_n: 7
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "env-out", cfg.Output.Dir)
				assert.Equal(t, 7, cfg.Output.TopN)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			configFile := ""
			if tt.fileContent != "" {
				configFile = filepath.Join(t.TempDir(), "eda.yaml")
				require.NoError(t, os.WriteFile(configFile, []byte(tt.fileContent), 0644))
			}

			cfg, err := Load(configFile)
			require.NoError(t, err)
			tt.validateCfg(t, cfg)
		})
	}
}

// unsetEnv removes a variable for the duration of the test
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestLoad_FileSurvivesUnrelatedEnvironment(t *testing.T) {
	for _, key := range []string{"EDA_INPUT_PATH", "EDA_OUTPUT_DIR", "EDA_LOGGING_LEVEL", "EDA_LOGGING_OUTPUT", "EDA_TELEMETRY_ENVIRONMENT"} {
		unsetEnv(t, key)
	}
	t.Setenv("PATH", "/usr/local/bin:/usr/bin")
	t.Setenv("DIR", "/somewhere")
	t.Setenv("LEVEL", "warn")
	t.Setenv("OUTPUT", "file")
	t.Setenv("FORMAT", "text")
	t.Setenv("ENVIRONMENT", "production")

	configFile := filepath.Join(t.TempDir(), "eda.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte(`
input:
  path: from-file.csv
output:
  dir: file-out
logging:
  level: error
telemetry:
  environment: staging
`), 0644))

	cfg, err := Load(configFile)
	require.NoError(t, err)
	assert.Equal(t, "from-file.csv", cfg.Input.Path)
	assert.Equal(t, "file-out", cfg.Output.Dir)
	assert.Equal(t, "error", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Output)
	assert.Equal(t, "staging", cfg.Telemetry.Environment)
}

func TestLoad_NoInputFailsValidation(t *testing.T) {
	unsetEnv(t, "EDA_INPUT_PATH")
	t.Setenv("PATH", "/usr/local/bin:/usr/bin")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, cfg.Input.Path)

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Config.Input.Path")
}

func TestLoad_InvalidFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "eda.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("output: [not a map"), 0644))

	_, err := Load(configFile)
	assert.Error(t, err)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(c *Config) { c.Input.Path = "sample.csv" },
		},
		{
			name:    "missing input path",
			mutate:  func(c *Config) {},
			wantErr: "Config.Input.Path",
		},
		{
			name: "top n out of range",
			mutate: func(c *Config) {
				c.Input.Path = "sample.csv"
				c.Output.TopN = 0
			},
			wantErr: "Config.Output.TopN",
		},
		{
			name: "unknown log output",
			mutate: func(c *Config) {
				c.Input.Path = "sample.csv"
				c.Logging.Output = "syslog"
			},
			wantErr: "Config.Logging.Output",
		},
		{
			name: "sample ratio above one",
			mutate: func(c *Config) {
				c.Input.Path = "sample.csv"
				c.Telemetry.SampleRatio = 1.5
			},
			wantErr: "Config.Telemetry.SampleRatio",
		},
		{
			name: "format is forced to json",
			mutate: func(c *Config) {
				c.Input.Path = "sample.csv"
				c.Logging.Format = "text"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "json", cfg.Logging.Format)
		})
	}
}
