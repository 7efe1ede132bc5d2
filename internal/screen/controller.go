package screen

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jftsang/weatherscreen/internal/device"
	"github.com/jftsang/weatherscreen/internal/errsink"
	"github.com/jftsang/weatherscreen/internal/weather"
)

const (
	defaultCurrentMaxAge  = 5 * time.Minute
	defaultForecastMargin = 10 * time.Minute
	defaultTickPeriod     = time.Minute
	defaultBacklight      = 0.2
)

// IconSource supplies weather icon images for painting. May be absent.
type IconSource interface {
	Icon(ctx context.Context, code string) (device.Image, error)
	Clear()
}

// Options configure a Controller.
type Options struct {
	Display   device.Display
	Buttons   device.ButtonReader
	Indicator device.Indicator
	Provider  weather.Provider
	Icons     IconSource       // nil paints without icons
	NetInfo   func() []string  // nil hides the interface summary
	Now       func() time.Time // nil uses time.Now

	CurrentMaxAge  time.Duration
	ForecastMargin time.Duration
	TickPeriod     time.Duration
	Backlight      float64
}

// Controller is the single application state machine. It owns the weather
// cache, the error sink, the cursor and the active view, and rebinds the one
// button dispatch table and the one tick slot whenever the active view
// changes. The underlying hardware accepts exactly one button callback for the
// device's lifetime; dynamic behavior comes from redirecting through these
// slots, not from re-registering callbacks per view.
//
// All state mutation happens on the Run goroutine. Button presses from other
// goroutines enter through PressButton, which queues onto the run loop's
// channel; a press arriving mid-fetch waits its turn rather than interleaving.
type Controller struct {
	display   device.Display
	buttons   device.ButtonReader
	indicator device.Indicator
	cache     *weather.Cache
	icons     IconSource
	errs      *errsink.Sink
	netinfo   func() []string
	now       func() time.Time

	defaultTick time.Duration
	backlight   float64

	events chan device.Button

	ctx        context.Context
	active     View
	fidx       int
	handlers   [device.ButtonCount]func(*Controller)
	tick       func(*Controller)
	tickPeriod time.Duration
	timer      *time.Timer
}

// New builds a Controller. Constructing more than one per device would
// double-drive the hardware; that is a caller error.
func New(opts Options) *Controller {
	c := &Controller{
		display:     opts.Display,
		buttons:     opts.Buttons,
		indicator:   opts.Indicator,
		icons:       opts.Icons,
		netinfo:     opts.NetInfo,
		now:         opts.Now,
		defaultTick: opts.TickPeriod,
		backlight:   opts.Backlight,
		events:      make(chan device.Button, 16),
		ctx:         context.Background(),
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.defaultTick <= 0 {
		c.defaultTick = defaultTickPeriod
	}
	if c.backlight <= 0 {
		c.backlight = defaultBacklight
	}

	currentMaxAge := opts.CurrentMaxAge
	if currentMaxAge <= 0 {
		currentMaxAge = defaultCurrentMaxAge
	}
	forecastMargin := opts.ForecastMargin
	if forecastMargin <= 0 {
		forecastMargin = defaultForecastMargin
	}

	c.cache = weather.NewCache(weather.CacheOptions{
		Provider:       opts.Provider,
		CurrentMaxAge:  currentMaxAge,
		ForecastMargin: forecastMargin,
		Busy: func(on bool) {
			switch {
			case on:
				c.indicator.SetLED(device.Yellow)
			case c.errs.Len() > 0:
				// Keep the alert visible; releasing busy must not mask it.
				c.indicator.SetLED(device.Red)
			default:
				c.indicator.SetLED(device.Black)
			}
		},
		OnForecastReplace: func() { c.fidx = 0 },
	})
	c.errs = errsink.New(func() { c.indicator.SetLED(device.Red) })
	return c
}

// PressButton queues a physical button event for the run loop. Safe to call
// from any goroutine.
func (c *Controller) PressButton(pin device.Button) {
	c.events <- pin
}

// Run drives the state machine until ctx is cancelled. The initial view is
// Page: show weather first, diagnostics on request.
func (c *Controller) Run(ctx context.Context) {
	c.ctx = ctx
	c.indicator.SetBacklight(c.backlight)
	c.SwitchTo(Page)

	c.timer = time.NewTimer(c.tickPeriod)
	defer c.timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case pin := <-c.events:
			c.dispatch(pin)
		case <-c.timer.C:
			if c.tick != nil {
				c.tick(c)
			}
			// Reschedule from now, after the handler has finished: ticks may
			// drift under slow fetches but never stack up.
			c.timer.Reset(c.tickPeriod)
		}
	}
}

// SwitchTo makes v the active view: rebinds the four button slots and the tick
// slot, resets the tick timer to the view's period, then renders v before
// returning.
func (c *Controller) SwitchTo(v View) {
	c.active = v
	c.handlers = [device.ButtonCount]func(*Controller){
		device.ButtonA: v.ButtonA,
		device.ButtonB: v.ButtonB,
		device.ButtonX: v.ButtonX,
		device.ButtonY: v.ButtonY,
	}
	c.tick = v.Tick

	period := v.TickPeriod()
	if period <= 0 {
		period = c.defaultTick
	}
	c.tickPeriod = period
	c.resetTimer()

	v.Render(c)
}

// ActiveView returns the name of the current display mode.
func (c *Controller) ActiveView() string {
	if c.active == nil {
		return ""
	}
	return c.active.Name()
}

// Cursor returns the current forecast cursor.
func (c *Controller) Cursor() int {
	return c.fidx
}

// Sink exposes the error sink for collaborators that fail outside the render
// path (e.g. startup geocoding).
func (c *Controller) Sink() *errsink.Sink {
	return c.errs
}

// dispatch routes a pin to the active view's handler. The hardware delivers
// both edges; only a confirmed press is acted on. A pin outside the dispatch
// table is a contract violation, not a runtime condition.
func (c *Controller) dispatch(pin device.Button) {
	if pin < 0 || pin >= device.ButtonCount {
		panic(fmt.Sprintf("screen: dispatch for unmapped pin %d", int(pin)))
	}
	if !c.buttons.Pressed(pin) {
		return
	}
	if h := c.handlers[pin]; h != nil {
		h(c)
	}
}

// moveCursor shifts fidx by delta, clamped to [0, len(forecast)]. Index 0 is
// the current observation; the forecast entries follow it.
func (c *Controller) moveCursor(delta int) {
	c.fidx += delta
	if c.fidx < 0 {
		c.fidx = 0
	}
	if limit := c.cache.ForecastLen(); c.fidx > limit {
		c.fidx = limit
	}
}

// refresh brings both series up to date, forwarding any transient failure to
// the sink. Returns the current snapshot (zero if never fetched), whether one
// exists, and the forecast series; callers paint whatever came back.
func (c *Controller) refresh() (weather.Snapshot, bool, weather.Series) {
	now := c.now()
	if _, err := c.cache.Current(c.ctx, now); err != nil {
		log.Printf("current weather refresh failed: %v", err)
		c.errs.Capture(err)
	}
	if _, err := c.cache.Forecast(c.ctx, now); err != nil {
		log.Printf("forecast refresh failed: %v", err)
		c.errs.Capture(err)
	}
	current, ok, forecast := c.cache.Cached()
	return current, ok, forecast
}

// forceRefresh drops every cached lookup so the next render refetches.
func (c *Controller) forceRefresh() {
	c.cache.Invalidate()
	if c.icons != nil {
		c.icons.Clear()
	}
}

func (c *Controller) resetTimer() {
	if c.timer == nil {
		return
	}
	if !c.timer.Stop() {
		select {
		case <-c.timer.C:
		default:
		}
	}
	c.timer.Reset(c.tickPeriod)
}
