// Package app provides configuration loading and logger construction for
// the factmap CLI.
package app

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from config files,
// environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Output  string

	// Config file
	ConfigFile string

	// Ingestion configuration
	CSVDelimiter  string
	CSVEncoding   string
	LiveLookups   bool
	EGRULBaseURL  string
	EGRULInterval time.Duration

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.factmap.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	loadEnvFiles()

	viper.AutomaticEnv()
	viper.SetEnvPrefix("factmap")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	configFile := viper.GetString("config")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.AddConfigPath(".")
			viper.SetConfigType("yaml")
			viper.SetConfigName(".factmap")
		}
	}

	// Missing config files are fine; only flags and env are required.
	_ = viper.ReadInConfig()

	setDefaults()

	return &Config{
		Verbose: viper.GetBool("verbose"),
		Quiet:   viper.GetBool("quiet"),
		NoColor: viper.GetBool("no-color"),
		Output:  viper.GetString("output"),

		ConfigFile: viper.ConfigFileUsed(),

		CSVDelimiter:  viper.GetString("csv_delimiter"),
		CSVEncoding:   viper.GetString("csv_encoding"),
		LiveLookups:   viper.GetBool("live_lookups"),
		EGRULBaseURL:  viper.GetString("egrul_base_url"),
		EGRULInterval: viper.GetDuration("egrul_interval"),

		LogLevel:  viper.GetString("log_level"),
		LogFormat: viper.GetString("log_format"),
		LogOutput: viper.GetString("log_output"),
	}, nil
}

// setDefaults registers configuration defaults with viper.
func setDefaults() {
	viper.SetDefault("output", "table")
	viper.SetDefault("csv_delimiter", ",")
	viper.SetDefault("csv_encoding", "utf-8")
	viper.SetDefault("egrul_interval", time.Second)
}

// loadEnvFiles loads .env files from the working directory if present.
func loadEnvFiles() {
	for _, name := range []string{".env", ".env.local"} {
		path := filepath.Join(".", name)
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
		}
	}
}
