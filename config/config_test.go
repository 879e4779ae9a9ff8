package config

import (
	"reflect"
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestParseServices(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    map[ServiceMode]bool
		expectError bool
	}{
		{
			name:  "single service - http",
			input: "http",
			expected: map[ServiceMode]bool{
				ServiceModeHTTP: true,
			},
			expectError: false,
		},
		{
			name:  "single service - maintenance",
			input: "maintenance",
			expected: map[ServiceMode]bool{
				ServiceModeMaintenance: true,
			},
			expectError: false,
		},
		{
			name:  "both services",
			input: "http,maintenance",
			expected: map[ServiceMode]bool{
				ServiceModeHTTP:        true,
				ServiceModeMaintenance: true,
			},
			expectError: false,
		},
		{
			name:  "services with spaces",
			input: " http , maintenance ",
			expected: map[ServiceMode]bool{
				ServiceModeHTTP:        true,
				ServiceModeMaintenance: true,
			},
			expectError: false,
		},
		{
			name:  "duplicate services",
			input: "http,http,maintenance",
			expected: map[ServiceMode]bool{
				ServiceModeHTTP:        true,
				ServiceModeMaintenance: true,
			},
			expectError: false,
		},
		{
			name:        "empty string",
			input:       "",
			expected:    nil,
			expectError: true,
		},
		{
			name:        "only spaces and commas",
			input:       " , , ",
			expected:    nil,
			expectError: true,
		},
		{
			name:        "invalid service name",
			input:       "http,worker",
			expected:    nil,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseServices(tt.input)
			if tt.expectError {
				if err == nil {
					t.Fatalf("expected error, got services %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("ParseServices(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestAuthModeUnmarshalText(t *testing.T) {
	tests := []struct {
		input       string
		expected    AuthMode
		expectError bool
	}{
		{input: "oauth", expected: AuthModeOAuth},
		{input: "OAuth", expected: AuthModeOAuth},
		{input: "mock", expected: AuthModeMock},
		{input: "MOCK", expected: AuthModeMock},
		{input: "ldap", expectError: true},
		{input: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var mode AuthMode
			err := mode.UnmarshalText([]byte(tt.input))
			if tt.expectError {
				if err == nil {
					t.Fatalf("expected error for %q, got mode %q", tt.input, mode)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if mode != tt.expected {
				t.Errorf("UnmarshalText(%q) = %q, want %q", tt.input, mode, tt.expected)
			}
		})
	}
}

func TestAppConfigDefaults(t *testing.T) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.Services != "http" {
		t.Errorf("Services default = %q, want %q", cfg.Services, "http")
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("HTTP.Addr default = %q, want %q", cfg.HTTP.Addr, ":8080")
	}
	if cfg.Postgres.Host != "localhost" || cfg.Postgres.Port != 5432 {
		t.Errorf("unexpected Postgres defaults: %+v", cfg.Postgres)
	}
	if cfg.Auth.Mode != AuthModeOAuth {
		t.Errorf("Auth.Mode default = %q, want %q", cfg.Auth.Mode, AuthModeOAuth)
	}
	if cfg.Auth.Guard.FallbackTimeout != 2*time.Second {
		t.Errorf("Guard.FallbackTimeout default = %v, want 2s", cfg.Auth.Guard.FallbackTimeout)
	}
	if !cfg.RateLimit.Enabled {
		t.Error("RateLimit.Enabled should default to true")
	}
	if cfg.Push.Enabled {
		t.Error("Push.Enabled should default to false")
	}
}

func TestSanitizeGuardrails(t *testing.T) {
	cfg := AppConfig{
		Auth: AuthConfig{
			Guard: GuardConfig{FallbackTimeout: -1},
		},
		HTTP: HTTPConfig{CompressionLevel: 42},
		Maintenance: MaintenanceConfig{
			Interval:              time.Second,
			AnnouncementRetention: -time.Hour,
		},
		Push: PushConfig{
			RelayURL:   "  https://relay.example.com/v1/send  ",
			Timeout:    0,
			RetryLimit: -5,
		},
	}
	cfg.Sanitize()

	if cfg.Auth.Guard.FallbackTimeout != 2*time.Second {
		t.Errorf("Guard.FallbackTimeout = %v, want 2s", cfg.Auth.Guard.FallbackTimeout)
	}
	if cfg.HTTP.CompressionLevel != 9 {
		t.Errorf("CompressionLevel = %d, want clamped to 9", cfg.HTTP.CompressionLevel)
	}
	if cfg.Maintenance.Interval != 15*time.Second {
		t.Errorf("Maintenance.Interval = %v, want floor of 15s", cfg.Maintenance.Interval)
	}
	if cfg.Maintenance.AnnouncementRetention != time.Hour {
		t.Errorf("AnnouncementRetention = %v, want floor of 1h", cfg.Maintenance.AnnouncementRetention)
	}
	if cfg.Push.RelayURL != "https://relay.example.com/v1/send" {
		t.Errorf("Push.RelayURL = %q, want trimmed", cfg.Push.RelayURL)
	}
	if cfg.Push.Timeout != 5*time.Second {
		t.Errorf("Push.Timeout = %v, want 5s", cfg.Push.Timeout)
	}
	if cfg.Push.RetryLimit != 0 {
		t.Errorf("Push.RetryLimit = %d, want 0", cfg.Push.RetryLimit)
	}
}

func TestRateLimitSanitizeDefaults(t *testing.T) {
	var cfg RateLimitConfig
	cfg.Sanitize()

	if cfg.Newsletter.MaxRequests != 5 || cfg.Newsletter.Window != time.Minute {
		t.Errorf("unexpected newsletter defaults: %+v", cfg.Newsletter)
	}
	if cfg.Contact.MaxRequests != 3 || cfg.Contact.Window != time.Minute {
		t.Errorf("unexpected contact defaults: %+v", cfg.Contact)
	}
	if cfg.Push.MaxRequests != 10 || cfg.Push.Window != time.Minute {
		t.Errorf("unexpected push defaults: %+v", cfg.Push)
	}
}

func TestServiceEnabledHelpers(t *testing.T) {
	cfg := AppConfig{Services: "http,maintenance"}
	if !cfg.IsHTTPServerEnabled() {
		t.Error("expected http to be enabled")
	}
	if !cfg.IsMaintenanceEnabled() {
		t.Error("expected maintenance to be enabled")
	}

	cfg.Services = "maintenance"
	if cfg.IsHTTPServerEnabled() {
		t.Error("expected http to be disabled")
	}

	cfg.Services = "bogus"
	if cfg.IsHTTPServerEnabled() || cfg.IsMaintenanceEnabled() {
		t.Error("invalid service list should disable everything")
	}
}
