package app

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/factmap/pkg/logging"
)

// NewLogger creates a logger configured from the application config.
// Precedence for the level: explicit log_level, then verbose, then quiet,
// then the logging package default.
func NewLogger(cfg *Config) zerolog.Logger {
	logCfg := logging.DefaultConfig()

	logCfg.Level = determineLogLevel(cfg)

	if cfg.LogFormat != "" {
		logCfg.Format = cfg.LogFormat
	}
	if cfg.LogOutput != "" {
		logCfg.Output = cfg.LogOutput
	}
	logCfg.NoColor = cfg.NoColor

	return logging.NewLoggerFromConfig(logCfg)
}

func determineLogLevel(cfg *Config) string {
	if cfg.LogLevel != "" {
		return cfg.LogLevel
	}
	if cfg.Verbose {
		return "debug"
	}
	if cfg.Quiet {
		return "error"
	}
	return "info"
}
