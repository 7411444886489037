package config

import (
	"strings"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("NCP_API_KEY_ID", "id")
	t.Setenv("NCP_API_KEY", "secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)
	for _, k := range []string{"PORT", "GEOCODE_URL", "DIRECTION_URL", "REQUEST_INTERVAL", "HTTP_TIMEOUT", "ROUTE_EVALUATOR", "DB_DRIVER", "DB_PATH", "DATABASE_URL", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want %q", cfg.Port, "8080")
	}
	if cfg.GeocodeURL != DefaultGeocodeURL {
		t.Errorf("GeocodeURL = %q, want %q", cfg.GeocodeURL, DefaultGeocodeURL)
	}
	if cfg.RequestInterval != 200*time.Millisecond {
		t.Errorf("RequestInterval = %v, want 200ms", cfg.RequestInterval)
	}
	if cfg.RouteEvaluator != EvaluatorNCP {
		t.Errorf("RouteEvaluator = %q, want %q", cfg.RouteEvaluator, EvaluatorNCP)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.DSN() != "data/app.db" {
		t.Errorf("DSN() = %q, want %q", cfg.DSN(), "data/app.db")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "missing credentials",
			env:     map[string]string{"NCP_API_KEY_ID": "", "NCP_API_KEY": ""},
			wantErr: "NCP_API_KEY_ID is required",
		},
		{
			name:    "bad interval",
			env:     map[string]string{"REQUEST_INTERVAL": "soon"},
			wantErr: "REQUEST_INTERVAL",
		},
		{
			name:    "postgres without url",
			env:     map[string]string{"DB_DRIVER": "postgres", "DATABASE_URL": ""},
			wantErr: "DATABASE_URL is required",
		},
		{
			name:    "bad log level",
			env:     map[string]string{"LOG_LEVEL": "loud"},
			wantErr: "LOG_LEVEL",
		},
		{
			name:    "unknown evaluator",
			env:     map[string]string{"ROUTE_EVALUATOR": "teleport"},
			wantErr: "ROUTE_EVALUATOR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}
