package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App      App      `mapstructure:"app"`
	AI       AI       `mapstructure:"ai"`
	Database Database `mapstructure:"database"`
	FTP      FTP      `mapstructure:"ftp"`
	Fetch    Fetch    `mapstructure:"fetch"`
	Imaging  Imaging  `mapstructure:"imaging"`
	Server   Server   `mapstructure:"server"`
}

// App holds general application configuration.
type App struct {
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
}

// AI holds AI/LLM configuration.
type AI struct {
	Gemini GeminiConfig `mapstructure:"gemini"`
}

// GeminiConfig holds Google Gemini configuration.
type GeminiConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	Timeout     string  `mapstructure:"timeout"`
	Temperature float32 `mapstructure:"temperature"`
}

// Database holds the Postgres connection configuration.
type Database struct {
	URL      string `mapstructure:"url"`
	MaxConns int32  `mapstructure:"max_conns"`
	Timeout  string `mapstructure:"timeout"`
}

// FTP holds the static-host FTP target configuration.
type FTP struct {
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
	User    string `mapstructure:"user"`
	Pass    string `mapstructure:"pass"`
	BaseURL string `mapstructure:"base_url"`
}

// Fetch holds outbound HTTP fetch configuration (reference pages, image downloads).
type Fetch struct {
	Timeout   string `mapstructure:"timeout"`
	UserAgent string `mapstructure:"user_agent"`
}

// Imaging holds image normalization configuration.
type Imaging struct {
	MaxWidth    int `mapstructure:"max_width"`
	JPEGQuality int `mapstructure:"jpeg_quality"`
	MaxBytes    int `mapstructure:"max_bytes"`
}

// Server holds HTTP server configuration.
type Server struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	ReadTimeout    string   `mapstructure:"read_timeout"`
	WriteTimeout   string   `mapstructure:"write_timeout"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

var globalConfig *Config

// Load loads the configuration from .env, an optional YAML config file, and the
// process environment. Components receive the resulting struct explicitly.
func Load(configFile string) (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	// Load .env file if it exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Printf("Warning: Error loading .env file: %v\n", err)
		}
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".blogforge")
		viper.SetConfigType("yaml")
	}

	setDefaults()
	bindEnvironmentVariables()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	globalConfig = config
	return config, nil
}

// setDefaults sets default configuration values.
func setDefaults() {
	viper.SetDefault("app.debug", false)
	viper.SetDefault("app.log_level", "info")

	viper.SetDefault("ai.gemini.model", "gemini-2.0-flash-exp")
	viper.SetDefault("ai.gemini.timeout", "60s")
	viper.SetDefault("ai.gemini.temperature", 0.7)

	viper.SetDefault("database.max_conns", 10)
	viper.SetDefault("database.timeout", "5s")

	viper.SetDefault("ftp.port", 21)

	viper.SetDefault("fetch.timeout", "30s")
	viper.SetDefault("fetch.user_agent",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")

	viper.SetDefault("imaging.max_width", 1920)
	viper.SetDefault("imaging.jpeg_quality", 80)
	viper.SetDefault("imaging.max_bytes", 4*1024*1024)

	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8000)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "120s")
	viper.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
}

// bindEnvironmentVariables sets up flexible environment variable binding.
func bindEnvironmentVariables() {
	// Gemini API key - support the same names the hosted deployments use
	bindEnvKeys("ai.gemini.api_key", []string{
		"GEMINI_API_KEY",
		"GOOGLE_API_KEY",
		"GOOGLE_GEMINI_API_KEY",
	})

	bindEnvKeys("database.url", []string{
		"DATABASE_URL",
		"POSTGRES_URL",
		"SUPABASE_DB_URL",
	})

	bindEnvKeys("ftp.host", []string{"FTP_HOST"})
	bindEnvKeys("ftp.port", []string{"FTP_PORT"})
	bindEnvKeys("ftp.user", []string{"FTP_USER"})
	bindEnvKeys("ftp.pass", []string{"FTP_PASS", "FTP_PASSWORD"})
	bindEnvKeys("ftp.base_url", []string{"FTP_BASE_URL"})

	bindEnvKeys("app.debug", []string{"DEBUG", "BLOGFORGE_DEBUG"})
	bindEnvKeys("app.log_level", []string{"BLOGFORGE_LOG_LEVEL", "LOG_LEVEL"})
}

// bindEnvKeys binds the first found environment variable to a viper key.
func bindEnvKeys(viperKey string, envKeys []string) {
	for _, envKey := range envKeys {
		if value := os.Getenv(envKey); value != "" {
			viper.Set(viperKey, value)
			return
		}
	}
}

// validateConfig ensures required configuration is present and well-formed.
func validateConfig(config *Config) error {
	var errors []string

	if config.AI.Gemini.APIKey == "" {
		errors = append(errors, "Gemini API key is required. Set GEMINI_API_KEY (or GOOGLE_API_KEY) or ai.gemini.api_key in the config file")
	}

	durations := map[string]string{
		"ai.gemini.timeout":    config.AI.Gemini.Timeout,
		"database.timeout":     config.Database.Timeout,
		"fetch.timeout":        config.Fetch.Timeout,
		"server.read_timeout":  config.Server.ReadTimeout,
		"server.write_timeout": config.Server.WriteTimeout,
	}
	for key, duration := range durations {
		if duration != "" {
			if _, err := time.ParseDuration(duration); err != nil {
				errors = append(errors, fmt.Sprintf("invalid duration for %s: %s", key, duration))
			}
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration errors:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

// FetchTimeout returns the parsed fetch timeout, falling back to 30s.
func (c *Config) FetchTimeout() time.Duration {
	if d, err := time.ParseDuration(c.Fetch.Timeout); err == nil && d > 0 {
		return d
	}
	return 30 * time.Second
}

// GeminiTimeout returns the parsed model-call timeout, falling back to 60s.
func (c *Config) GeminiTimeout() time.Duration {
	if d, err := time.ParseDuration(c.AI.Gemini.Timeout); err == nil && d > 0 {
		return d
	}
	return 60 * time.Second
}

// Get returns the loaded configuration, or nil before Load succeeds.
func Get() *Config {
	return globalConfig
}

// Reset clears the global configuration (useful for testing).
func Reset() {
	globalConfig = nil
	viper.Reset()
}
