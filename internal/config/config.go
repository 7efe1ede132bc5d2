package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds everything the weatherscreen process needs at startup.
type Config struct {
	APIKey string
	// Place is a free-form location name, geocoded at startup when the
	// coordinates are unset.
	Place     string
	Latitude  float64
	Longitude float64
	Units     string

	CurrentMaxAge  time.Duration
	ForecastMargin time.Duration
	TickPeriod     time.Duration
	Backlight      float64
}

const (
	defaultConfigPath = "~/.config/weatherscreen/config.toml"

	defaultUnits          = "metric"
	defaultCurrentMaxAge  = 5 * time.Minute
	defaultForecastMargin = 10 * time.Minute
	defaultTickPeriod     = time.Minute
	defaultBacklight      = 0.2
)

// raw mirrors the TOML file. Durations are written as strings ("5m", "90s").
type raw struct {
	APIKey         string  `toml:"api_key"`
	Place          string  `toml:"place"`
	Latitude       float64 `toml:"latitude"`
	Longitude      float64 `toml:"longitude"`
	Units          string  `toml:"units"`
	CurrentMaxAge  string  `toml:"current_max_age"`
	ForecastMargin string  `toml:"forecast_margin"`
	TickPeriod     string  `toml:"tick_period"`
	Backlight      float64 `toml:"backlight"`
}

// Load reads the TOML config (a missing file means defaults), then lets the
// environment override individual values. A .env file in the working
// directory is folded into the environment first, matching how the device is
// provisioned in the field.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Units:          defaultUnits,
		CurrentMaxAge:  defaultCurrentMaxAge,
		ForecastMargin: defaultForecastMargin,
		TickPeriod:     defaultTickPeriod,
		Backlight:      defaultBacklight,
	}

	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	bytes, err := os.ReadFile(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// Defaults plus environment is a complete configuration.
	case err != nil:
		return Config{}, fmt.Errorf("read config: %w", err)
	default:
		var r raw
		if err := toml.Unmarshal(bytes, &r); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
		if err := cfg.applyFile(r); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}

	if cfg.APIKey == "" {
		return Config{}, fmt.Errorf("no API key: set WEATHER_API_KEY or api_key in %s", resolved)
	}
	if cfg.Place == "" && cfg.Latitude == 0 && cfg.Longitude == 0 {
		return Config{}, fmt.Errorf("no location: set LATITUDE/LONGITUDE or place in %s", resolved)
	}
	return cfg, nil
}

func (c *Config) applyFile(r raw) error {
	if r.APIKey != "" {
		c.APIKey = r.APIKey
	}
	if r.Place != "" {
		c.Place = r.Place
	}
	if r.Latitude != 0 || r.Longitude != 0 {
		c.Latitude = r.Latitude
		c.Longitude = r.Longitude
	}
	if r.Units != "" {
		c.Units = r.Units
	}
	if r.Backlight > 0 {
		c.Backlight = r.Backlight
	}
	for _, d := range []struct {
		key   string
		value string
		dst   *time.Duration
	}{
		{"current_max_age", r.CurrentMaxAge, &c.CurrentMaxAge},
		{"forecast_margin", r.ForecastMargin, &c.ForecastMargin},
		{"tick_period", r.TickPeriod, &c.TickPeriod},
	} {
		if d.value == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.value)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", d.key, d.value, err)
		}
		*d.dst = parsed
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("WEATHER_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("WEATHER_LOCATION"); v != "" {
		c.Place = v
	}
	lat, latSet, err := getenvFloat("LATITUDE")
	if err != nil {
		return err
	}
	lon, lonSet, err := getenvFloat("LONGITUDE")
	if err != nil {
		return err
	}
	if latSet != lonSet {
		return fmt.Errorf("LATITUDE and LONGITUDE must be set together")
	}
	if latSet {
		c.Latitude = lat
		c.Longitude = lon
	}
	if v := os.Getenv("WEATHER_UNITS"); v != "" {
		c.Units = v
	}
	return nil
}

func getenvFloat(key string) (float64, bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0, false, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return f, true, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
