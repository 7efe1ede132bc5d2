package screen

import (
	"github.com/jftsang/weatherscreen/internal/weather"
)

// gridView shows four consecutive snapshots in quadrants, starting at the
// cursor.
type gridView struct{ baseView }

const gridPageSize = 4

func (gridView) Name() string { return "grid" }

func (gridView) Render(c *Controller) {
	current, ok, forecast := c.refresh()

	all := append(weather.Series{current}, forecast...)
	start := c.fidx
	if start > len(all) {
		start = len(all)
	}
	window := all[start:]
	if len(window) > gridPageSize {
		window = window[:gridPageSize]
	}

	w, h := c.display.Size()
	anchors := [gridPageSize][2]int{
		{0, 0},
		{w / 2, 0},
		{0, h / 2},
		{w / 2, h / 2},
	}

	c.display.Clear()
	for i, snap := range window {
		paintWeatherSmall(c, snap, anchors[i][0], anchors[i][1], ok || start+i > 0)
	}
	c.display.Flush()
}

func (gridView) ButtonA(c *Controller) { c.SwitchTo(Page) }
func (gridView) ButtonB(c *Controller) { c.SwitchTo(Errors) }

func (gridView) ButtonX(c *Controller) {
	c.moveCursor(-gridPageSize)
	c.SwitchTo(Grid)
}

func (gridView) ButtonY(c *Controller) {
	c.moveCursor(+gridPageSize)
	c.SwitchTo(Grid)
}

func (gridView) Tick(c *Controller) { c.SwitchTo(Grid) }
