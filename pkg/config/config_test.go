package config

import (
	"os"
	"testing"
	"time"

	"github.com/davranaff/locusd/pkg/observability"
)

// TestGetEnv tests the getEnv helper function
func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		envValue     string
		want         string
	}{
		{
			name:         "returns env value when set",
			key:          "TEST_VAR",
			defaultValue: "default",
			envValue:     "custom",
			want:         "custom",
		},
		{
			name:         "returns default when env not set",
			key:          "TEST_VAR_NOT_SET",
			defaultValue: "default",
			envValue:     "",
			want:         "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				os.Setenv(tt.key, tt.envValue)
				defer os.Unsetenv(tt.key)
			}

			got := getEnv(tt.key, tt.defaultValue)
			if got != tt.want {
				t.Errorf("getEnv() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestGetEnvBool tests the getEnvBool helper function
func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue bool
		envValue     string
		want         bool
	}{
		{
			name:         "returns true for 'true'",
			key:          "TEST_BOOL",
			defaultValue: false,
			envValue:     "true",
			want:         true,
		},
		{
			name:         "returns true for '1'",
			key:          "TEST_BOOL",
			defaultValue: false,
			envValue:     "1",
			want:         true,
		},
		{
			name:         "returns false for 'false'",
			key:          "TEST_BOOL",
			defaultValue: true,
			envValue:     "false",
			want:         false,
		},
		{
			name:         "returns default when not set",
			key:          "TEST_BOOL_NOT_SET",
			defaultValue: true,
			envValue:     "",
			want:         true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				os.Setenv(tt.key, tt.envValue)
				defer os.Unsetenv(tt.key)
			} else {
				os.Unsetenv(tt.key)
			}

			got := getEnvBool(tt.key, tt.defaultValue)
			if got != tt.want {
				t.Errorf("getEnvBool() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestGetEnvDuration tests the getEnvDuration helper function
func TestGetEnvDuration(t *testing.T) {
	t.Run("parses valid duration", func(t *testing.T) {
		os.Setenv("TEST_DURATION", "45s")
		defer os.Unsetenv("TEST_DURATION")

		got := getEnvDuration("TEST_DURATION", time.Minute)
		if got != 45*time.Second {
			t.Errorf("getEnvDuration() = %v, want 45s", got)
		}
	})

	t.Run("falls back on invalid duration", func(t *testing.T) {
		os.Setenv("TEST_DURATION", "not-a-duration")
		defer os.Unsetenv("TEST_DURATION")

		got := getEnvDuration("TEST_DURATION", time.Minute)
		if got != time.Minute {
			t.Errorf("getEnvDuration() = %v, want 1m", got)
		}
	})
}

// TestParseRegionIDs tests allow-list parsing
func TestParseRegionIDs(t *testing.T) {
	t.Run("single id", func(t *testing.T) {
		ids, err := parseRegionIDs("32162857")
		if err != nil {
			t.Fatalf("parseRegionIDs() error = %v", err)
		}
		if len(ids) != 1 || ids[0] != 32162857 {
			t.Errorf("parseRegionIDs() = %v, want [32162857]", ids)
		}
	})

	t.Run("multiple ids with spaces", func(t *testing.T) {
		ids, err := parseRegionIDs("1, 2 ,3")
		if err != nil {
			t.Fatalf("parseRegionIDs() error = %v", err)
		}
		if len(ids) != 3 || ids[0] != 1 || ids[1] != 2 || ids[2] != 3 {
			t.Errorf("parseRegionIDs() = %v, want [1 2 3]", ids)
		}
	})

	t.Run("rejects non-integer", func(t *testing.T) {
		if _, err := parseRegionIDs("1,abc"); err == nil {
			t.Error("Expected error for non-integer region id")
		}
	})
}

// TestLoadConfig tests end-to-end loading and defaults
func TestLoadConfig(t *testing.T) {
	os.Setenv("LOCUSD_TOKEN_SECRET", "test-secret")
	defer os.Unsetenv("LOCUSD_TOKEN_SECRET")

	t.Run("defaults", func(t *testing.T) {
		cfg, err := LoadConfig()
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}

		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %v, want 8080", cfg.Server.Port)
		}
		if cfg.Server.HealthPort != "9090" {
			t.Errorf("Server.HealthPort = %v, want 9090", cfg.Server.HealthPort)
		}
		if cfg.Database.URL != DefaultPostgresURL {
			t.Errorf("Database.URL = %v, want default", cfg.Database.URL)
		}
		if cfg.Auth.TokenTTL != 24*time.Hour {
			t.Errorf("Auth.TokenTTL = %v, want 24h", cfg.Auth.TokenTTL)
		}
		if len(cfg.Auth.AllowedRegionIDs) != 1 || cfg.Auth.AllowedRegionIDs[0] != DefaultAllowedRegionID {
			t.Errorf("Auth.AllowedRegionIDs = %v, want [%d]", cfg.Auth.AllowedRegionIDs, DefaultAllowedRegionID)
		}
		if cfg.Observability.LogLevel != observability.InfoLevel {
			t.Errorf("Observability.LogLevel = %v, want InfoLevel", cfg.Observability.LogLevel)
		}
		if !cfg.Observability.MetricsEnabled {
			t.Error("Observability.MetricsEnabled should default to true")
		}
	})

	t.Run("overrides", func(t *testing.T) {
		os.Setenv("LOCUSD_PORT", "8888")
		os.Setenv("LOCUSD_ALLOWED_REGION_IDS", "1,2,3")
		os.Setenv("LOCUSD_POSTGRES_REPLICA_URLS", "postgres://r1/db,postgres://r2/db")
		os.Setenv("LOCUSD_LOG_LEVEL", "debug")
		defer func() {
			os.Unsetenv("LOCUSD_PORT")
			os.Unsetenv("LOCUSD_ALLOWED_REGION_IDS")
			os.Unsetenv("LOCUSD_POSTGRES_REPLICA_URLS")
			os.Unsetenv("LOCUSD_LOG_LEVEL")
		}()

		cfg, err := LoadConfig()
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}

		if cfg.Server.Port != "8888" {
			t.Errorf("Server.Port = %v, want 8888", cfg.Server.Port)
		}
		if len(cfg.Auth.AllowedRegionIDs) != 3 {
			t.Errorf("Auth.AllowedRegionIDs = %v, want three ids", cfg.Auth.AllowedRegionIDs)
		}
		if len(cfg.Database.ReplicaURLs) != 2 {
			t.Errorf("Database.ReplicaURLs = %v, want two urls", cfg.Database.ReplicaURLs)
		}
		if cfg.Observability.LogLevel != observability.DebugLevel {
			t.Errorf("Observability.LogLevel = %v, want DebugLevel", cfg.Observability.LogLevel)
		}
	})

	t.Run("invalid allow-list", func(t *testing.T) {
		os.Setenv("LOCUSD_ALLOWED_REGION_IDS", "xyz")
		defer os.Unsetenv("LOCUSD_ALLOWED_REGION_IDS")

		if _, err := LoadConfig(); err == nil {
			t.Error("Expected error for invalid allow-list")
		}
	})
}

// TestValidate tests configuration validation rules
func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server: ServerConfig{
				Port:       "8080",
				HealthPort: "9090",
			},
			Database: DatabaseConfig{URL: "postgres://localhost/test"},
			Auth: AuthConfig{
				TokenSecret:      "secret",
				TokenTTL:         time.Hour,
				AllowedRegionIDs: []int64{1},
			},
		}
	}

	t.Run("valid config passes", func(t *testing.T) {
		if err := valid().Validate(); err != nil {
			t.Errorf("Validate() error = %v", err)
		}
	})

	t.Run("missing port", func(t *testing.T) {
		cfg := valid()
		cfg.Server.Port = ""
		if err := cfg.Validate(); err == nil {
			t.Error("Expected error for missing port")
		}
	})

	t.Run("port collision", func(t *testing.T) {
		cfg := valid()
		cfg.Server.HealthPort = cfg.Server.Port
		if err := cfg.Validate(); err == nil {
			t.Error("Expected error for colliding ports")
		}
	})

	t.Run("missing postgres URL", func(t *testing.T) {
		cfg := valid()
		cfg.Database.URL = ""
		if err := cfg.Validate(); err == nil {
			t.Error("Expected error for missing postgres URL")
		}
	})

	t.Run("missing token secret", func(t *testing.T) {
		cfg := valid()
		cfg.Auth.TokenSecret = ""
		if err := cfg.Validate(); err == nil {
			t.Error("Expected error for missing token secret")
		}
	})

	t.Run("non-positive TTL", func(t *testing.T) {
		cfg := valid()
		cfg.Auth.TokenTTL = 0
		if err := cfg.Validate(); err == nil {
			t.Error("Expected error for zero TTL")
		}
	})

	t.Run("empty allow-list", func(t *testing.T) {
		cfg := valid()
		cfg.Auth.AllowedRegionIDs = nil
		if err := cfg.Validate(); err == nil {
			t.Error("Expected error for empty allow-list")
		}
	})
}
