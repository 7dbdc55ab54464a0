package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY", "STORAGE_BACKEND", "INSIGHTS_TEMPERATURE", "MONTHLY_BUDGET", "PORT", "LOG_JSON"} {
		t.Setenv(key, "")
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.StorageBackend != BackendSQLite {
		t.Errorf("StorageBackend = %q, want %q", cfg.StorageBackend, BackendSQLite)
	}
	if cfg.InsightsTemperature != 0.7 {
		t.Errorf("InsightsTemperature = %v, want 0.7", cfg.InsightsTemperature)
	}
	if cfg.MonthlyBudget != 5000 {
		t.Errorf("MonthlyBudget = %v, want 5000", cfg.MonthlyBudget)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	content := "GEMINI_API_KEY=from-file\nINSIGHTS_TEMPERATURE=0.3\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("INSIGHTS_TEMPERATURE", "")
	os.Unsetenv("GEMINI_API_KEY")
	os.Unsetenv("INSIGHTS_TEMPERATURE")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.GeminiAPIKey != "from-file" {
		t.Errorf("GeminiAPIKey = %q, want from-file", cfg.GeminiAPIKey)
	}
	if cfg.InsightsTemperature != 0.3 {
		t.Errorf("InsightsTemperature = %v, want 0.3", cfg.InsightsTemperature)
	}
}

func TestLoad_MissingEnvFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Error("Expected error for missing env file")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad temperature", "INSIGHTS_TEMPERATURE", "warm"},
		{"bad budget", "MONTHLY_BUDGET", "lots"},
		{"unknown backend", "STORAGE_BACKEND", "postgres"},
		{"bigquery without project", "STORAGE_BACKEND", "bigquery"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv("BIGQUERY_PROJECT", "")
			t.Setenv(tt.key, tt.val)
			if _, err := Load(""); err == nil {
				t.Errorf("Expected error for %s=%s", tt.key, tt.val)
			}
		})
	}
}
