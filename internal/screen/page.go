package screen

import (
	"github.com/jftsang/weatherscreen/internal/device"
	"github.com/jftsang/weatherscreen/internal/weather"
)

// pageView shows a single snapshot: the current observation at cursor 0, the
// forecast entries after it.
type pageView struct{ baseView }

func (pageView) Name() string { return "page" }

func (pageView) Render(c *Controller) {
	current, ok, forecast := c.refresh()

	all := append(weather.Series{current}, forecast...)
	idx := c.fidx
	if idx > len(all)-1 {
		idx = len(all) - 1
	}

	label := "Current"
	if idx > 0 {
		label = "Forecast"
	}

	c.display.Clear()
	c.display.DrawText(0, 0, label, device.White, device.FontNormal)
	// Forecast entries only exist once fetched; just index 0 can be empty.
	paintWeather(c, all[idx], ok || idx > 0)
	c.display.Flush()
}

func (pageView) ButtonA(c *Controller) { c.SwitchTo(Grid) }
func (pageView) ButtonB(c *Controller) { c.SwitchTo(Errors) }

func (pageView) ButtonX(c *Controller) {
	c.moveCursor(-1)
	c.SwitchTo(Page)
}

func (pageView) ButtonY(c *Controller) {
	c.moveCursor(+1)
	c.SwitchTo(Page)
}

// Tick re-renders so the cached series refresh on the background period even
// with no button input.
func (pageView) Tick(c *Controller) { c.SwitchTo(Page) }
