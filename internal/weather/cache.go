package weather

import (
	"context"
	"time"
)

// Provider fetches weather data from the network. Failures are opaque to the
// cache beyond being errors; it does not inspect transport details.
type Provider interface {
	Current(ctx context.Context) (Snapshot, error)
	Forecast(ctx context.Context) (Series, error)
}

// Cache owns the two refreshable data series and their staleness policy.
// Staleness is checked lazily at read time, so a view that is never visited
// never triggers network traffic, and the two series age independently.
//
// The cache is not safe for concurrent use; all calls come from the
// controller's run loop.
type Cache struct {
	provider Provider

	// currentMaxAge is the maximum age, in seconds, of a reusable current
	// snapshot. forecastMargin is the minimum lead time, in seconds, the first
	// forecast entry must still have (forecasts are future-dated, so freshness
	// is forward-looking).
	currentMaxAge  int64
	forecastMargin int64

	// busy is toggled around every provider call; the controller maps it onto
	// the activity LED. onForecastReplace fires whenever the forecast series is
	// actually replaced; the controller resets its cursor there.
	busy              func(bool)
	onForecastReplace func()

	current    Snapshot
	hasCurrent bool
	forecast   Series
}

// CacheOptions configure a Cache.
type CacheOptions struct {
	Provider       Provider
	CurrentMaxAge  time.Duration
	ForecastMargin time.Duration
	// Busy, if set, is called with true immediately before a network fetch and
	// false after it returns, on every exit path including failure.
	Busy func(bool)
	// OnForecastReplace, if set, is called after the forecast series has been
	// replaced by a fresh fetch.
	OnForecastReplace func()
}

// NewCache builds a Cache. Zero thresholds mean "always stale".
func NewCache(opts CacheOptions) *Cache {
	return &Cache{
		provider:          opts.Provider,
		currentMaxAge:     int64(opts.CurrentMaxAge / time.Second),
		forecastMargin:    int64(opts.ForecastMargin / time.Second),
		busy:              opts.Busy,
		onForecastReplace: opts.OnForecastReplace,
	}
}

// Current returns the cached snapshot while it is younger than the configured
// maximum age, refetching otherwise. On fetch failure the error propagates and
// the previous snapshot, if any, is retained.
func (c *Cache) Current(ctx context.Context, now time.Time) (Snapshot, error) {
	if c.hasCurrent && c.current.Age(now) < c.currentMaxAge {
		return c.current, nil
	}
	snap, err := c.fetchCurrent(ctx)
	if err != nil {
		return c.current, err
	}
	c.current = snap
	c.hasCurrent = true
	return c.current, nil
}

// Forecast returns the cached series while its first entry still has the
// configured lead time, refetching otherwise. An actual refetch replaces the
// series wholesale and fires the replace hook. On fetch failure the error
// propagates and the previous series, if any, is retained.
func (c *Cache) Forecast(ctx context.Context, now time.Time) (Series, error) {
	if len(c.forecast) > 0 && c.forecast[0].Timestamp >= now.Unix()+c.forecastMargin {
		return c.forecast, nil
	}
	series, err := c.fetchForecast(ctx)
	if err != nil {
		return c.forecast, err
	}
	c.forecast = series
	if c.onForecastReplace != nil {
		c.onForecastReplace()
	}
	return c.forecast, nil
}

// Cached returns whatever is currently held without touching the network.
func (c *Cache) Cached() (Snapshot, bool, Series) {
	return c.current, c.hasCurrent, c.forecast
}

// ForecastLen returns the length of the cached forecast series.
func (c *Cache) ForecastLen() int {
	return len(c.forecast)
}

// Invalidate empties both series so the next read refetches.
func (c *Cache) Invalidate() {
	c.current = Snapshot{}
	c.hasCurrent = false
	c.forecast = nil
}

func (c *Cache) fetchCurrent(ctx context.Context) (Snapshot, error) {
	defer c.setBusy()()
	return c.provider.Current(ctx)
}

func (c *Cache) fetchForecast(ctx context.Context) (Series, error) {
	defer c.setBusy()()
	return c.provider.Forecast(ctx)
}

// setBusy asserts the busy indicator and returns the release. The release runs
// deferred so it fires on every exit path.
func (c *Cache) setBusy() func() {
	if c.busy == nil {
		return func() {}
	}
	c.busy(true)
	return func() { c.busy(false) }
}
