package screen

import (
	"fmt"
	"time"

	"github.com/jftsang/weatherscreen/internal/device"
	"github.com/jftsang/weatherscreen/internal/weather"
)

// paintWeather draws one snapshot across the full display, below a one-line
// header the caller owns. ok is false when the snapshot was never fetched.
func paintWeather(c *Controller, snap weather.Snapshot, ok bool) {
	if !ok {
		c.display.DrawText(0, 2, "no data yet", device.Grey, device.FontNormal)
		return
	}

	c.display.DrawText(0, 1, formatTimestamp(snap.Timestamp, false), device.Grey, device.FontSmall)
	c.display.DrawText(0, 3, fmt.Sprintf("%.1f°C", snap.Temp), device.White, device.FontLarge)
	c.display.DrawText(0, 5, fmt.Sprintf("feels like %.1f°C", snap.FeelsLike), device.White, device.FontNormal)
	c.display.DrawText(0, 6, fmt.Sprintf("humidity %d%%", snap.Humidity), device.White, device.FontNormal)
	if snap.Location != "" {
		c.display.DrawText(0, 7, snap.Location, device.Cyan, device.FontNormal)
	}
	paintIcon(c, snap, iconX(c), 3)
}

// paintWeatherSmall draws one snapshot into a quadrant anchored at (x, y).
func paintWeatherSmall(c *Controller, snap weather.Snapshot, x, y int, ok bool) {
	if !ok {
		c.display.DrawText(x, y, "--", device.Grey, device.FontSmall)
		return
	}
	c.display.DrawText(x, y, formatTimestamp(snap.Timestamp, true), device.Grey, device.FontSmall)
	c.display.DrawText(x, y+1, fmt.Sprintf("%.0f°C %d%%", snap.Temp, snap.Humidity), device.White, device.FontNormal)
	paintIcon(c, snap, x, y+2)
}

// paintIcon draws the snapshot's weather icon. A missing icon source or a
// fetch failure degrades to text-only output; the failure still reaches the
// sink.
func paintIcon(c *Controller, snap weather.Snapshot, x, y int) {
	if c.icons == nil || snap.Icon == "" {
		return
	}
	img, err := c.icons.Icon(c.ctx, snap.Icon)
	if err != nil {
		c.errs.Capture(err)
		return
	}
	c.display.DrawImage(x, y, img)
}

func iconX(c *Controller) int {
	w, _ := c.display.Size()
	return w - 8
}

// formatTimestamp renders an epoch-seconds timestamp in local time; short form
// fits quadrant cells.
func formatTimestamp(ts int64, short bool) string {
	t := time.Unix(ts, 0).Local()
	if short {
		return t.Format("15:04 Mon")
	}
	return t.Format("Mon 02 Jan, 15:04")
}
