package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the application configuration. It is loaded once at
// startup and treated as immutable afterwards.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig contains server-specific configuration.
type ServerConfig struct {
	Port       int    `mapstructure:"port"`
	BasePath   string `mapstructure:"base_path"`
	MaxResults int    `mapstructure:"max_results"`
}

// LLMConfig configures the external model used for tool selection.
type LLMConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	Host           string `mapstructure:"host"`
	Model          string `mapstructure:"model"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// TelemetryConfig contains telemetry configuration.
type TelemetryConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
}

// LogConfig contains logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// Load loads the configuration from viper.
func Load() (*Config, error) {
	cfg := &Config{}

	setDefaults()

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}

	if err := postProcess(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults() {
	// Server defaults
	viper.SetDefault("server.port", 5001)
	viper.SetDefault("server.max_results", 100)

	// Model defaults: a local Ollama instance running a model with
	// function-calling support
	viper.SetDefault("llm.enabled", true)
	viper.SetDefault("llm.host", "http://localhost:11434")
	viper.SetDefault("llm.model", "llama3.1:8b")
	viper.SetDefault("llm.timeout_seconds", 10)

	// Telemetry defaults
	viper.SetDefault("telemetry.enabled", true)

	// Log defaults
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.json", false)

	// Environment variable mappings
	viper.BindEnv("server.base_path", "FILEMAN_BASE_PATH")
	viper.BindEnv("llm.host", "OLLAMA_HOST")
	viper.BindEnv("llm.model", "FILEMAN_MODEL")
	viper.BindEnv("telemetry.endpoint", "OTEL_EXPORTER_OTLP_ENDPOINT")
}

func postProcess(cfg *Config) error {
	// Default the sandbox root to the user's home directory
	if cfg.Server.BasePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		cfg.Server.BasePath = home
	}

	if !filepath.IsAbs(cfg.Server.BasePath) {
		abs, err := filepath.Abs(cfg.Server.BasePath)
		if err != nil {
			return err
		}
		cfg.Server.BasePath = abs
	}

	return nil
}
