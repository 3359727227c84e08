package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ADDRESS", "ENV", "LOG_LEVEL", "LOG_DIR",
		"LOG_RETENTION_WEEKS", "MAX_REQUEST_BODY", "MAX_HEADER_SIZE",
		"CATALOG_DB_PATH", "CATALOG_REMOTE_URL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "8000" {
		t.Errorf("Port = %q, expected 8000", cfg.Port)
	}
	if cfg.Address != "127.0.0.1" {
		t.Errorf("Address = %q, expected 127.0.0.1", cfg.Address)
	}
	if cfg.Env != "dev" {
		t.Errorf("Env = %q, expected dev", cfg.Env)
	}
	if cfg.CatalogDBPath != "catalog.db" {
		t.Errorf("CatalogDBPath = %q, expected catalog.db", cfg.CatalogDBPath)
	}
	if cfg.CatalogRemoteURL != "" {
		t.Errorf("CatalogRemoteURL = %q, expected empty", cfg.CatalogRemoteURL)
	}
	if cfg.LogRetentionWeeks != 4 {
		t.Errorf("LogRetentionWeeks = %d, expected 4", cfg.LogRetentionWeeks)
	}
	if cfg.MaxRequestBody != 1048576 {
		t.Errorf("MaxRequestBody = %d, expected 1048576", cfg.MaxRequestBody)
	}
}

func TestLoadInvalidPort(t *testing.T) {
	tests := []struct {
		name string
		port string
	}{
		{"not a number", "abc"},
		{"too large", "70000"},
		{"privileged", "80"},
		{"zero", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PORT", tt.port)
			if _, err := Load(); err == nil {
				t.Errorf("Load with PORT=%q should fail", tt.port)
			}
		})
	}
}

func TestLoadRemoteURL(t *testing.T) {
	t.Setenv("PORT", "8000")

	t.Run("valid https", func(t *testing.T) {
		t.Setenv("CATALOG_REMOTE_URL", "https://drugs.example.ng/api")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}
		if cfg.CatalogRemoteURL != "https://drugs.example.ng/api" {
			t.Errorf("CatalogRemoteURL = %q", cfg.CatalogRemoteURL)
		}
	})

	t.Run("missing scheme", func(t *testing.T) {
		t.Setenv("CATALOG_REMOTE_URL", "drugs.example.ng/api")
		if _, err := Load(); err == nil {
			t.Error("Load with a scheme-less remote URL should fail")
		}
	})

	t.Run("bad scheme", func(t *testing.T) {
		t.Setenv("CATALOG_REMOTE_URL", "ftp://drugs.example.ng")
		if _, err := Load(); err == nil {
			t.Error("Load with an ftp remote URL should fail")
		}
	})
}

func TestLoadBlankDBPath(t *testing.T) {
	t.Setenv("CATALOG_DB_PATH", "   ")
	if _, err := Load(); err == nil {
		t.Error("Load with a blank CATALOG_DB_PATH should fail")
	}
}

func TestLoadInvalidEnv(t *testing.T) {
	t.Setenv("ENV", "production")
	if _, err := Load(); err == nil {
		t.Error("Load with an unknown ENV should fail")
	}
}

func TestLoadInvalidLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "verbose")
	if _, err := Load(); err == nil {
		t.Error("Load with an unknown LOG_LEVEL should fail")
	}
}
