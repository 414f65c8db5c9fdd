// Package config provides configuration loading and report path management
// for the sales EDA command.
//
// # Configuration Sources
//
// Configuration is assembled in increasing order of precedence:
//
//	1. Default values (Default)
//	2. A YAML file (eda.yaml or configs/eda.yaml, or an explicit path)
//	3. Environment variables, optionally preloaded from a .env file
//
// Command line flags applied by the caller win over all three; call
// Validate once they are in place.
//
// # Environment Variables
//
// All environment variables follow the pattern EDA_*:
//
//	EDA_INPUT_PATH=data/sample_sales_data.csv
//	EDA_INPUT_TIMESTAMP_LAYOUT="2006-01-02 15:04:05"
//	EDA_OUTPUT_DIR=reports
//	EDA_OUTPUT_TOP_N=10
//	EDA_LOGGING_LEVEL=debug
//	EDA_TELEMETRY_ENABLE_TRACING=true
//
// # Path Management
//
// Paths derives every report file from the output directory:
//
//	paths, err := config.NewPaths(cfg.Output.Dir)
//	figure := paths.DistributionFigurePath("unit_price")
package config
