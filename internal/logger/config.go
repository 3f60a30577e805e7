package logger

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds logging configuration
type Config struct {
	Level          string `yaml:"level"`
	ConsoleEnabled bool   `yaml:"console_enabled"`
	ConsoleFormat  string `yaml:"console_format"`
	FileEnabled    bool   `yaml:"file_enabled"`
	FilePath       string `yaml:"file_path"`
	FileFormat     string `yaml:"file_format"`
	FileMaxSizeMB  int    `yaml:"file_max_size_mb"`
	FileMaxBackups int    `yaml:"file_max_backups"`
	FileMaxAgeDays int    `yaml:"file_max_age_days"`
}

// LoggingConfig wraps Config for YAML parsing under a "logging:" key
type LoggingConfig struct {
	Logging Config `yaml:"logging"`
}

// LoadConfig loads logging configuration from a YAML file and applies
// environment variable overrides. A missing or unparseable file silently
// yields the defaults.
func LoadConfig(configPath string) (Config, error) {
	config := Config{
		Level:          "INFO",
		ConsoleEnabled: true,
		ConsoleFormat:  "text",
		FileEnabled:    false,
		FilePath:       "logs/server.log",
		FileFormat:     "text",
		FileMaxSizeMB:  10,
		FileMaxBackups: 5,
		FileMaxAgeDays: 30,
	}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err == nil {
			var loggingConfig LoggingConfig
			if err := yaml.Unmarshal(data, &loggingConfig); err == nil {
				loaded := loggingConfig.Logging
				if loaded.Level != "" {
					config.Level = loaded.Level
				}
				// Booleans from YAML always win over defaults
				config.ConsoleEnabled = loaded.ConsoleEnabled
				config.FileEnabled = loaded.FileEnabled
				if loaded.ConsoleFormat != "" {
					config.ConsoleFormat = loaded.ConsoleFormat
				}
				if loaded.FilePath != "" {
					config.FilePath = loaded.FilePath
				}
				if loaded.FileFormat != "" {
					config.FileFormat = loaded.FileFormat
				}
				if loaded.FileMaxSizeMB > 0 {
					config.FileMaxSizeMB = loaded.FileMaxSizeMB
				}
				if loaded.FileMaxBackups > 0 {
					config.FileMaxBackups = loaded.FileMaxBackups
				}
				if loaded.FileMaxAgeDays > 0 {
					config.FileMaxAgeDays = loaded.FileMaxAgeDays
				}
			}
		}
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		config.Level = logLevel
	}
	if consoleFormat := os.Getenv("LOG_CONSOLE_FORMAT"); consoleFormat != "" {
		config.ConsoleFormat = consoleFormat
	}
	if fileEnabled := os.Getenv("LOG_FILE_ENABLED"); fileEnabled != "" {
		if enabled, err := strconv.ParseBool(fileEnabled); err == nil {
			config.FileEnabled = enabled
		}
	}
	if filePath := os.Getenv("LOG_FILE_PATH"); filePath != "" {
		config.FilePath = filePath
	}

	return config, nil
}
