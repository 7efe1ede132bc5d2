package owm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/jftsang/weatherscreen/internal/weather"
)

const (
	defaultBaseURL   = "https://api.openweathermap.org"
	defaultUserAgent = "weatherscreen/0.1"
	requestTimeout   = 5 * time.Second

	// Free-tier OWM allows 60 calls/minute; stay well under it.
	defaultRPS   = 0.5
	defaultBurst = 3
)

// Client talks to the OpenWeatherMap API. All calls share a rate limiter and a
// circuit breaker so a dead network fails fast instead of burning the request
// timeout on every tick.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	apiKey    string
	lat, lon  float64
	units     string
	limiter   *rate.Limiter
	breaker   *gobreaker.CircuitBreaker
}

// Ensure Client satisfies the cache's provider contract at compile time.
var _ weather.Provider = (*Client)(nil)

// Options configure a Client.
type Options struct {
	BaseURL  string // empty uses the public API
	APIKey   string
	Lat, Lon float64
	Units    string  // empty means metric
	RPS      float64 // zero uses the default throttle
	Burst    int
}

// NewClient builds a Client.
func NewClient(opts Options) (*Client, error) {
	raw := opts.BaseURL
	if raw == "" {
		raw = defaultBaseURL
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}

	units := opts.Units
	if units == "" {
		units = "metric"
	}
	rps := opts.RPS
	if rps <= 0 {
		rps = defaultRPS
	}
	burst := opts.Burst
	if burst <= 0 {
		burst = defaultBurst
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "openweathermap",
		Timeout: 30 * time.Second,
	})

	return &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: requestTimeout},
		userAgent: defaultUserAgent,
		apiKey:    opts.APIKey,
		lat:       opts.Lat,
		lon:       opts.Lon,
		units:     units,
		limiter:   rate.NewLimiter(rate.Limit(rps), burst),
		breaker:   breaker,
	}, nil
}

// SetLocation updates the coordinates used for subsequent fetches.
func (c *Client) SetLocation(lat, lon float64) {
	c.lat = lat
	c.lon = lon
}

// Current retrieves the current weather observation.
func (c *Client) Current(ctx context.Context) (weather.Snapshot, error) {
	var payload currentResponse
	if err := c.do(ctx, "/data/2.5/weather", c.locationQuery(), &payload); err != nil {
		return weather.Snapshot{}, fmt.Errorf("fetch current weather: %w", err)
	}
	return payload.snapshot(), nil
}

// Forecast retrieves the forecast series (3-hourly, 5 days).
func (c *Client) Forecast(ctx context.Context) (weather.Series, error) {
	var payload forecastResponse
	if err := c.do(ctx, "/data/2.5/forecast", c.locationQuery(), &payload); err != nil {
		return nil, fmt.Errorf("fetch forecast: %w", err)
	}
	return payload.series(), nil
}

// Geocode resolves a place name to coordinates using OWM's direct geocoding
// endpoint.
func (c *Client) Geocode(ctx context.Context, place string) (lat, lon float64, err error) {
	values := url.Values{}
	values.Set("q", place)
	values.Set("limit", "1")
	values.Set("appid", c.apiKey)

	var results []geocodeResult
	if err := c.do(ctx, "/geo/1.0/direct", values, &results); err != nil {
		return 0, 0, fmt.Errorf("geocode %q: %w", place, err)
	}
	if len(results) == 0 {
		return 0, 0, fmt.Errorf("geocode %q: no results", place)
	}
	return results[0].Lat, results[0].Lon, nil
}

func (c *Client) locationQuery() url.Values {
	values := url.Values{}
	values.Set("lat", strconv.FormatFloat(c.lat, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(c.lon, 'f', -1, 64))
	values.Set("units", c.units)
	values.Set("appid", c.apiKey)
	return values
}

func (c *Client) do(ctx context.Context, path string, values url.Values, dest any) error {
	rel := &url.URL{Path: path, RawQuery: values.Encode()}
	body, err := c.get(ctx, c.baseURL.ResolveReference(rel).String())
	if err != nil {
		return err
	}

	if dest == nil {
		return nil
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// get performs one throttled GET through the circuit breaker and returns the
// raw body. Every outbound request, JSON or image, goes through here, so an
// open breaker fails them all fast together.
func (c *Client) get(ctx context.Context, reqURL string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}
	body, err := c.breaker.Execute(func() (any, error) {
		return c.fetch(ctx, reqURL)
	})
	if err != nil {
		return nil, err
	}
	return body.([]byte), nil
}

// fetch performs one HTTP GET and returns the raw body. Runs inside the
// breaker so transport failures and server errors trip it.
func (c *Client) fetch(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("api %s returned status %d", req.URL.Path, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}
