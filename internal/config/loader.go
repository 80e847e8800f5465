package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config captures environment driven configuration values for the time-clock
// service.
type Config struct {
	HTTPPort     int
	SQLiteDSN    string
	Realm        string
	DefaultClock string
}

// Load parses configuration values from the current process environment.
//
// Every value has a usable default; set variables are validated and reported
// together when malformed.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:     8080,
		SQLiteDSN:    "file:stempeluhr.db",
		Realm:        "Stempeluhr",
		DefaultClock: "Standard",
	}

	invalid := make([]string, 0, 1)

	if portValue := strings.TrimSpace(os.Getenv("STEMPELUHR_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "STEMPELUHR_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("STEMPELUHR_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if realm := strings.TrimSpace(os.Getenv("STEMPELUHR_REALM")); realm != "" {
		cfg.Realm = realm
	}

	if clock := strings.TrimSpace(os.Getenv("STEMPELUHR_DEFAULT_CLOCK")); clock != "" {
		cfg.DefaultClock = clock
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
