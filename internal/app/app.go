package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jftsang/weatherscreen/internal/config"
	"github.com/jftsang/weatherscreen/internal/netinfo"
	"github.com/jftsang/weatherscreen/internal/owm"
	"github.com/jftsang/weatherscreen/internal/screen"
	"github.com/jftsang/weatherscreen/internal/sim"
)

// Options configure the weatherscreen application.
type Options struct {
	ConfigPath string
	TickEvery  int // seconds; zero uses the configured or default period
}

// Run boots the weather screen until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	client, err := owm.NewClient(owm.Options{
		APIKey: cfg.APIKey,
		Lat:    cfg.Latitude,
		Lon:    cfg.Longitude,
		Units:  cfg.Units,
	})
	if err != nil {
		return fmt.Errorf("init weather client: %w", err)
	}

	// A bare place name is resolved once at startup.
	if cfg.Place != "" && cfg.Latitude == 0 && cfg.Longitude == 0 {
		geoCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		lat, lon, err := client.Geocode(geoCtx, cfg.Place)
		cancel()
		if err != nil {
			return fmt.Errorf("resolve location %q: %w", cfg.Place, err)
		}
		log.Printf("geocoded %q to %.4f, %.4f", cfg.Place, lat, lon)
		client.SetLocation(lat, lon)
	}

	tick := cfg.TickPeriod
	if opts.TickEvery > 0 {
		tick = time.Duration(opts.TickEvery) * time.Second
	}

	panel := sim.New()
	controller := screen.New(screen.Options{
		Display:        panel,
		Buttons:        panel,
		Indicator:      panel,
		Provider:       client,
		Icons:          owm.NewIconCache(client),
		NetInfo:        netinfo.Summary,
		CurrentMaxAge:  cfg.CurrentMaxAge,
		ForecastMargin: cfg.ForecastMargin,
		TickPeriod:     tick,
		Backlight:      cfg.Backlight,
	})
	panel.OnPress(controller.PressButton)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go controller.Run(runCtx)

	// Blocks until quit; the controller stops with it.
	return sim.Run(runCtx, panel)
}
