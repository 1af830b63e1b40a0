package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/arcanaland/algodb/internal/upstream"
)

// Config represents the application configuration
type Config struct {
	UpstreamURL            string `toml:"upstream_url"`
	Output                 string `toml:"output"`
	ImageDir               string `toml:"image_dir"`
	ImageBaseURL           string `toml:"image_base_url"`
	ImageRequestsPerMinute int    `toml:"image_requests_per_minute"`
	HTTPTimeoutSeconds     int    `toml:"http_timeout_seconds"`
}

// HTTPTimeout returns the configured request timeout.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// Default returns the configuration used when no config file exists
func Default() *Config {
	return &Config{
		UpstreamURL:            upstream.DefaultURL,
		Output:                 "-",
		ImageDir:               filepath.Join(GetDataDir(), "card_images"),
		ImageRequestsPerMinute: 60,
		HTTPTimeoutSeconds:     30,
	}
}

// GetXDGDataHome returns XDG_DATA_HOME or default path
func GetXDGDataHome() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return xdgData
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".local", "share")
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetXDGCacheHome returns XDG_CACHE_HOME or default path
func GetXDGCacheHome() string {
	if xdgCache := os.Getenv("XDG_CACHE_HOME"); xdgCache != "" {
		return xdgCache
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".cache")
}

// GetDataDir returns the directory holding built databases and images
func GetDataDir() string {
	return filepath.Join(GetXDGDataHome(), "algodb")
}

// GetCacheDir returns the directory for generated ANSI art
func GetCacheDir() string {
	return filepath.Join(GetXDGCacheHome(), "algodb")
}

// GetDefaultDatabasePath returns where commands look for a built database
func GetDefaultDatabasePath() string {
	return filepath.Join(GetDataDir(), "cards_db.json")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "algodb", "config.toml")
}

// LoadEnv loads a .env file from the working directory if one exists.
func LoadEnv() {
	_ = godotenv.Load(".env")
}

// LoadConfig loads the config file, falling back to defaults when it does
// not exist, then applies environment overrides.
func LoadConfig() (*Config, error) {
	config := Default()

	configPath := GetConfigFilePath()
	if _, err := os.Stat(configPath); err == nil {
		if _, err := toml.DecodeFile(configPath, config); err != nil {
			return nil, fmt.Errorf("error decoding config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	config.UpstreamURL = envOr("ALGODB_UPSTREAM_URL", config.UpstreamURL)
	config.Output = envOr("ALGODB_OUTPUT", config.Output)
	config.ImageDir = envOr("ALGODB_IMAGE_DIR", config.ImageDir)
	config.ImageBaseURL = envOr("ALGODB_IMAGE_BASE_URL", config.ImageBaseURL)
	config.ImageRequestsPerMinute = envInt("ALGODB_IMAGE_REQUESTS_PER_MINUTE", config.ImageRequestsPerMinute)
	config.HTTPTimeoutSeconds = envInt("ALGODB_HTTP_TIMEOUT_SECONDS", config.HTTPTimeoutSeconds)

	return config, nil
}

// WriteDefaultConfig creates the config file with default values. An
// existing file is left alone.
func WriteDefaultConfig() (string, error) {
	configPath := GetConfigFilePath()
	if _, err := os.Stat(configPath); err == nil {
		return configPath, nil
	}

	// Ensure the config directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return "", fmt.Errorf("error creating config directory: %w", err)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return "", fmt.Errorf("error creating config file: %w", err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(Default()); err != nil {
		return "", fmt.Errorf("error encoding config: %w", err)
	}

	return configPath, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
