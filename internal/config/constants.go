package config

import "saleseda/pkg/contracts"

// Application constants
const (
	// Application Info
	AppName    = "Sales EDA"
	AppVersion = contracts.Version

	// Report defaults
	DefaultOutputDir = "reports"
	DefaultLogFile   = "logs/eda.log"
	DefaultTopN      = 10

	// Log Settings
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)
