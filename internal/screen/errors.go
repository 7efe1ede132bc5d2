package screen

import (
	"time"

	"github.com/jftsang/weatherscreen/internal/device"
)

// errorsView lists accumulated failures and device diagnostics. Rendering
// drains the sink and clears the alert LED. The short tick period keeps the
// clock line live; ticks repaint only that line, so the drained records stay
// on screen until the user leaves the view.
type errorsView struct{ baseView }

const errorsTickPeriod = time.Second

func (errorsView) Name() string { return "errors" }

func (errorsView) TickPeriod() time.Duration { return errorsTickPeriod }

func (errorsView) Render(c *Controller) {
	c.indicator.SetLED(device.Black)
	c.display.Clear()

	_, h := c.display.Size()
	records := c.errs.Drain()

	if len(records) == 0 {
		c.display.DrawText(0, 0, "No errors!", device.White, device.FontNormal)
	} else {
		c.display.DrawText(0, 0, "Errors", device.Red, device.FontNormal)
		y := 1
		for _, rec := range records {
			c.display.DrawText(2, y, rec.Message, device.Red, device.FontSmall)
			y++
		}
	}

	if c.netinfo != nil {
		y := h - 3
		for _, line := range c.netinfo() {
			c.display.DrawText(1, y, line, device.White, device.FontSmall)
			y++
		}
	}
	paintClock(c)

	c.display.Flush()
}

// paintClock draws the fixed-width clock line along the bottom edge.
func paintClock(c *Controller) {
	_, h := c.display.Size()
	c.display.DrawText(0, h-1, c.now().Local().Format("Mon 02 Jan 15:04:05"), device.Grey, device.FontSmall)
}

func (errorsView) ButtonA(c *Controller) { c.SwitchTo(Page) }

// ButtonB drops every cached lookup (weather series and icon table) and
// returns to the page view, which refetches.
func (errorsView) ButtonB(c *Controller) {
	c.forceRefresh()
	c.SwitchTo(Page)
}

// Tick advances only the clock line. A full render here would re-drain an
// empty sink and wipe the listed records within a second of showing them.
func (errorsView) Tick(c *Controller) {
	paintClock(c)
	c.display.Flush()
}
