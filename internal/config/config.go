package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/jgoulah/seoulenergy/pkg/models"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// APIKeyEnv overrides the api_key setting when present in the environment or .env
const APIKeyEnv = "SEOUL_API_KEY"

// PlaceholderAPIKey is used when no key has been configured
const PlaceholderAPIKey = "API_KEY"

var (
	defaultStart = models.YearMonth{Year: 2015, Month: 1}
	defaultEnd   = models.YearMonth{Year: 2024, Month: 12}
)

// Config holds the application configuration
type Config struct {
	APIKey        string            `yaml:"api_key,omitempty"`
	Start         *models.YearMonth `yaml:"start,omitempty"` // fallback: 2015/01
	End           *models.YearMonth `yaml:"end,omitempty"`   // fallback: 2024/12
	OutputDir     string            `yaml:"output_dir,omitempty"`
	HomeAssistant HAConfig          `yaml:"home_assistant,omitempty"`
	MQTT          MQTTConfig        `yaml:"mqtt,omitempty"`
}

// HAConfig holds Home Assistant HTTP API configuration
type HAConfig struct {
	Enabled      bool   `yaml:"enabled"`
	URL          string `yaml:"url"`           // e.g., "http://homeassistant.local:8123"
	Token        string `yaml:"token"`         // Long-lived access token
	EntityPrefix string `yaml:"entity_prefix"` // e.g., "sensor.seoul_energy"
}

// MQTTConfig holds MQTT broker configuration
type MQTTConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Broker      string `yaml:"broker"` // host:port
	Username    string `yaml:"username,omitempty"`
	Password    string `yaml:"password,omitempty"`
	TopicPrefix string `yaml:"topic_prefix,omitempty"`
}

// Load reads the config file and applies environment overrides
func Load(configPath string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := &Config{}
	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	case os.IsNotExist(err):
		// Empty config if file doesn't exist
	default:
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if key := strings.TrimSpace(os.Getenv(APIKeyEnv)); key != "" {
		cfg.APIKey = key
	}

	return cfg, nil
}

// DefaultConfigPath returns the default config file path (local directory)
func DefaultConfigPath() string {
	return "config.yaml"
}

// GetAPIKey returns the configured key or the placeholder
func (c *Config) GetAPIKey() string {
	if c.APIKey == "" {
		return PlaceholderAPIKey
	}
	return c.APIKey
}

// GetStart returns the first month to collect (default 2015/01)
func (c *Config) GetStart() models.YearMonth {
	if c.Start == nil {
		return defaultStart
	}
	return *c.Start
}

// GetEnd returns the last month to collect (default 2024/12)
func (c *Config) GetEnd() models.YearMonth {
	if c.End == nil {
		return defaultEnd
	}
	return *c.End
}

// GetOutputDir returns the directory charts are saved to. Empty means
// charts are only displayed.
func (c *Config) GetOutputDir() string {
	return c.OutputDir
}

// Validate checks the date range and any enabled sinks
func (c *Config) Validate() error {
	start, end := c.GetStart(), c.GetEnd()
	for _, ym := range []models.YearMonth{start, end} {
		if ym.Month < 1 || ym.Month > 12 {
			return fmt.Errorf("invalid month in %s: must be between 1 and 12", ym)
		}
	}
	if end.Before(start) {
		return fmt.Errorf("end %s is before start %s", end, start)
	}

	if c.HomeAssistant.Enabled {
		if c.HomeAssistant.URL == "" {
			return fmt.Errorf("Home Assistant URL is required when enabled")
		}
		if c.HomeAssistant.Token == "" {
			return fmt.Errorf("Home Assistant token is required when enabled")
		}
		if c.HomeAssistant.EntityPrefix == "" {
			return fmt.Errorf("Home Assistant entity_prefix is required when enabled")
		}
	}

	if c.MQTT.Enabled && c.MQTT.Broker == "" {
		return fmt.Errorf("MQTT broker address is required when enabled")
	}

	return nil
}
