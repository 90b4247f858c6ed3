// Package config loads and validates application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // lets TZ name any IANA zone even on minimal images
)

// Config holds all configuration values for the status bot.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP listener binds. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// LogFile, when set, receives a rotated copy of every log line.
	LogFile string

	// Location is the zone weekend and business-hours rules run in. Required (TZ).
	Location *time.Location

	// EnabledIntegrations lists integration names to run, in order. Required.
	EnabledIntegrations []string

	// Slack status API.
	SlackAPIURL        string
	SlackAPIKey        string
	DefaultStatus      string
	DefaultStatusEmoji string

	// TripIt trip API.
	TripItAPIURL string
	TripItAPIKey string
	Employer     string

	// CityEmojisFile and TravelStatusesFile are YAML files read once at startup.
	CityEmojisFile     string
	TravelStatusesFile string

	// HTTPTimeout bounds every call to the status and trip APIs. Defaults to 10s.
	HTTPTimeout time.Duration

	// DatabaseURL is the Postgres connection string for decision history.
	// Empty means history is kept in memory.
	DatabaseURL string

	// CORSOrigins is the list of allowed cross-origin request origins.
	CORSOrigins []string

	// RateLimitRPS and RateLimitBurst bound requests per client IP.
	RateLimitRPS   int
	RateLimitBurst int

	// ListenerAPIKey, when set, must accompany every request to the HTTP
	// listener in an x-api-key header.
	ListenerAPIKey string
}

// required lists every variable Load refuses to run without.
var required = []string{
	"TZ",
	"ENABLED_INTEGRATIONS",
	"SLACK_API_URL",
	"SLACK_API_KEY",
	"SLACK_API_DEFAULT_STATUS",
	"SLACK_API_DEFAULT_STATUS_EMOJI",
	"TRIPIT_WORK_COMPANY_NAME",
	"TRIPIT_API_URL",
	"TRIPIT_API_KEY",
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set, or the
// first optional value that does not parse.
func Load() (Config, error) {
	var missing []string
	for _, key := range required {
		if os.Getenv(key) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	loc, err := time.LoadLocation(os.Getenv("TZ"))
	if err != nil {
		return Config{}, fmt.Errorf("TZ must name a time zone: %w", err)
	}

	cfg := Config{
		Port:                getEnv("PORT", "8080"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogFile:             os.Getenv("LOG_FILE"),
		Location:            loc,
		EnabledIntegrations: splitCSV(os.Getenv("ENABLED_INTEGRATIONS")),
		SlackAPIURL:         strings.TrimSuffix(os.Getenv("SLACK_API_URL"), "/"),
		SlackAPIKey:         os.Getenv("SLACK_API_KEY"),
		DefaultStatus:       os.Getenv("SLACK_API_DEFAULT_STATUS"),
		DefaultStatusEmoji:  os.Getenv("SLACK_API_DEFAULT_STATUS_EMOJI"),
		TripItAPIURL:        strings.TrimSuffix(os.Getenv("TRIPIT_API_URL"), "/"),
		TripItAPIKey:        os.Getenv("TRIPIT_API_KEY"),
		Employer:            os.Getenv("TRIPIT_WORK_COMPANY_NAME"),
		CityEmojisFile:      getEnv("CITY_EMOJIS_FILE", "./include/city_emojis.yml"),
		TravelStatusesFile:  getEnv("TRAVEL_STATUSES_FILE", "./include/travel_statuses.yml"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		CORSOrigins:         splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		ListenerAPIKey:      os.Getenv("LISTENER_API_KEY"),
	}

	if cfg.HTTPTimeout, err = time.ParseDuration(getEnv("STATUS_HTTP_TIMEOUT", "10s")); err != nil {
		return Config{}, fmt.Errorf("STATUS_HTTP_TIMEOUT must be a duration (e.g. 10s): %w", err)
	}
	if cfg.RateLimitRPS, err = getInt("RATE_LIMIT_RPS", 5); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitBurst, err = getInt("RATE_LIMIT_BURST", 10); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// CheckFiles verifies that the YAML files named by the config exist.
func (c Config) CheckFiles() error {
	var errs []error
	for name, path := range map[string]string{
		"CITY_EMOJIS_FILE":     c.CityEmojisFile,
		"TRAVEL_STATUSES_FILE": c.TravelStatusesFile,
	} {
		if _, err := os.Stat(path); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getInt is getEnv for positive integers.
func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, v)
	}
	return n, nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
