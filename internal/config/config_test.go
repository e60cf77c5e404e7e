package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jgoulah/seoulenergy/pkg/models"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(APIKeyEnv, "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := cfg.GetAPIKey(); got != PlaceholderAPIKey {
		t.Errorf("GetAPIKey() = %q, want %q", got, PlaceholderAPIKey)
	}
	if got := cfg.GetStart(); got != (models.YearMonth{Year: 2015, Month: 1}) {
		t.Errorf("GetStart() = %v", got)
	}
	if got := cfg.GetEnd(); got != (models.YearMonth{Year: 2024, Month: 12}) {
		t.Errorf("GetEnd() = %v", got)
	}
	if got := cfg.GetOutputDir(); got != "" {
		t.Errorf("GetOutputDir() = %q", got)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `api_key: from-file
start: 2020/03
end: 2021/02
output_dir: out
mqtt:
  enabled: true
  broker: localhost:1883
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	t.Setenv(APIKeyEnv, "")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.GetAPIKey() != "from-file" {
		t.Errorf("GetAPIKey() = %q", cfg.GetAPIKey())
	}
	if cfg.GetStart() != (models.YearMonth{Year: 2020, Month: 3}) {
		t.Errorf("GetStart() = %v", cfg.GetStart())
	}
	if cfg.GetEnd() != (models.YearMonth{Year: 2021, Month: 2}) {
		t.Errorf("GetEnd() = %v", cfg.GetEnd())
	}
	if !cfg.MQTT.Enabled || cfg.MQTT.Broker != "localhost:1883" {
		t.Errorf("MQTT = %+v", cfg.MQTT)
	}

	t.Setenv(APIKeyEnv, "from-env")
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.GetAPIKey() != "from-env" {
		t.Errorf("env override not applied, got %q", cfg.GetAPIKey())
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(APIKeyEnv+"=dotenv-key\n"), 0600); err != nil {
		t.Fatal(err)
	}
	// Unset so godotenv is allowed to populate it
	t.Setenv(APIKeyEnv, "")
	os.Unsetenv(APIKeyEnv)

	cfg, err := Load(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.GetAPIKey() != "dotenv-key" {
		t.Errorf("GetAPIKey() = %q, want dotenv-key", cfg.GetAPIKey())
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("start: [not a month"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestConfig_Validate(t *testing.T) {
	ym := func(y, m int) *models.YearMonth { return &models.YearMonth{Year: y, Month: m} }

	tests := []struct {
		name        string
		config      Config
		wantErr     bool
		errorString string
	}{
		{
			name:   "defaults",
			config: Config{},
		},
		{
			name:        "end before start",
			config:      Config{Start: ym(2020, 5), End: ym(2020, 4)},
			wantErr:     true,
			errorString: "end 2020/04 is before start 2020/05",
		},
		{
			name:        "month out of range",
			config:      Config{Start: ym(2020, 13)},
			wantErr:     true,
			errorString: "invalid month in 2020/13",
		},
		{
			name:        "home assistant without token",
			config:      Config{HomeAssistant: HAConfig{Enabled: true, URL: "http://ha", EntityPrefix: "sensor.x"}},
			wantErr:     true,
			errorString: "token is required",
		},
		{
			name:        "mqtt without broker",
			config:      Config{MQTT: MQTTConfig{Enabled: true}},
			wantErr:     true,
			errorString: "MQTT broker address is required",
		},
		{
			name: "disabled sinks are not checked",
			config: Config{
				HomeAssistant: HAConfig{Enabled: false},
				MQTT:          MQTTConfig{Enabled: false},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !strings.Contains(err.Error(), tt.errorString) {
				t.Errorf("Validate() error = %q, want substring %q", err.Error(), tt.errorString)
			}
		})
	}
}
