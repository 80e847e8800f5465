package config

import (
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STEMPELUHR_HTTP_PORT", "")
	t.Setenv("STEMPELUHR_SQLITE_DSN", "")
	t.Setenv("STEMPELUHR_REALM", "")
	t.Setenv("STEMPELUHR_DEFAULT_CLOCK", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.HTTPPort != 8080 {
		t.Errorf("Expected default port 8080, got %d", cfg.HTTPPort)
	}
	if cfg.SQLiteDSN != "file:stempeluhr.db" {
		t.Errorf("Expected default DSN, got %q", cfg.SQLiteDSN)
	}
	if cfg.Realm != "Stempeluhr" {
		t.Errorf("Expected default realm, got %q", cfg.Realm)
	}
	if cfg.DefaultClock != "Standard" {
		t.Errorf("Expected default clock, got %q", cfg.DefaultClock)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STEMPELUHR_HTTP_PORT", "9090")
	t.Setenv("STEMPELUHR_SQLITE_DSN", "file:other.db")
	t.Setenv("STEMPELUHR_REALM", "Werk")
	t.Setenv("STEMPELUHR_DEFAULT_CLOCK", "Werkstor")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.HTTPPort != 9090 {
		t.Errorf("Expected port 9090, got %d", cfg.HTTPPort)
	}
	if cfg.SQLiteDSN != "file:other.db" {
		t.Errorf("Expected overridden DSN, got %q", cfg.SQLiteDSN)
	}
	if cfg.Realm != "Werk" {
		t.Errorf("Expected overridden realm, got %q", cfg.Realm)
	}
	if cfg.DefaultClock != "Werkstor" {
		t.Errorf("Expected overridden clock, got %q", cfg.DefaultClock)
	}
}

func TestLoad_InvalidPort(t *testing.T) {
	cases := []string{"abc", "0", "-1"}

	for _, value := range cases {
		t.Run(value, func(t *testing.T) {
			t.Setenv("STEMPELUHR_HTTP_PORT", value)

			_, err := Load()
			if err == nil {
				t.Fatal("Expected error for invalid port, got nil")
			}
			if !strings.Contains(err.Error(), "STEMPELUHR_HTTP_PORT") {
				t.Errorf("Expected the variable name in the error, got %q", err)
			}
		})
	}
}
