// Package config loads the weatherscreen configuration.
//
// # Resolution order
//
// The Load function follows this resolution order:
//
//  1. Built-in defaults (metric units, 5m current max age, 10m forecast
//     margin, 1m tick period, 0.2 backlight)
//  2. The TOML file — the explicit path when one is given, otherwise
//     ~/.config/weatherscreen/config.toml; a missing file is not an error
//  3. Environment variables, which override file values; a .env file in the
//     working directory is folded into the environment first
//
// # Environment variables
//
//   - WEATHER_API_KEY — OpenWeatherMap API key
//   - LATITUDE, LONGITUDE — coordinates (must be set together)
//   - WEATHER_LOCATION — place name, geocoded at startup when no coordinates
//     are configured
//   - WEATHER_UNITS — "metric" or "imperial"
//
// An API key and some form of location are required; everything else has a
// usable default.
package config
