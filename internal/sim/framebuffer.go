package sim

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jftsang/weatherscreen/internal/device"
)

// cell is one character position on the simulated panel.
type cell struct {
	r     rune
	color device.Color
	bold  bool
}

// framebuffer is the off-screen buffer behind the simulated display. All
// mutation happens on the controller goroutine; Render produces an immutable
// string that is handed to the Bubble Tea program.
type framebuffer struct {
	w, h  int
	cells []cell
}

func newFramebuffer(w, h int) *framebuffer {
	fb := &framebuffer{w: w, h: h, cells: make([]cell, w*h)}
	fb.clear()
	return fb
}

func (fb *framebuffer) clear() {
	for i := range fb.cells {
		fb.cells[i] = cell{r: ' ', color: device.Black}
	}
}

// drawText writes a string starting at (x, y), clipping at the panel edges.
func (fb *framebuffer) drawText(x, y int, text string, color device.Color, size device.FontSize) {
	if y < 0 || y >= fb.h {
		return
	}
	bold := size == device.FontLarge
	for _, r := range text {
		if x >= fb.w {
			return
		}
		if x >= 0 {
			fb.cells[y*fb.w+x] = cell{r: r, color: color, bold: bold}
		}
		x++
	}
}

// drawGlyph places a single rune, used for icon substitution.
func (fb *framebuffer) drawGlyph(x, y int, r rune, color device.Color) {
	if x < 0 || x >= fb.w || y < 0 || y >= fb.h {
		return
	}
	fb.cells[y*fb.w+x] = cell{r: r, color: color}
}

// render converts the buffer to a styled string. The backlight level scales
// every color, like the panel dimming.
func (fb *framebuffer) render(backlight float64) string {
	if backlight <= 0 {
		backlight = 1
	}
	var b strings.Builder
	for y := 0; y < fb.h; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		// Style runs of identical attributes together to keep the frame small.
		runStart := 0
		row := fb.cells[y*fb.w : (y+1)*fb.w]
		for x := 1; x <= len(row); x++ {
			if x < len(row) && row[x].color == row[runStart].color && row[x].bold == row[runStart].bold {
				continue
			}
			b.WriteString(styleRun(row[runStart:x], backlight))
			runStart = x
		}
	}
	return b.String()
}

func styleRun(run []cell, backlight float64) string {
	var text strings.Builder
	for _, c := range run {
		text.WriteRune(c.r)
	}
	style := lipgloss.NewStyle().Foreground(dimmed(run[0].color, backlight))
	if run[0].bold {
		style = style.Bold(true)
	}
	return style.Render(text.String())
}

// dimmed scales a color by the backlight level and returns it as a lipgloss
// hex color. Black cells stay black regardless.
func dimmed(c device.Color, backlight float64) lipgloss.Color {
	scale := func(v uint8) int {
		scaled := int(float64(v) * backlight)
		if scaled > 255 {
			scaled = 255
		}
		return scaled
	}
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", scale(c.R), scale(c.G), scale(c.B)))
}

// iconGlyph substitutes a rune for an OpenWeatherMap icon code; the cell panel
// cannot draw the PNG itself.
func iconGlyph(code string) rune {
	if len(code) < 2 {
		return '?'
	}
	switch code[:2] {
	case "01":
		return '*' // clear
	case "02", "03", "04":
		return '~' // clouds
	case "09", "10":
		return '/' // rain
	case "11":
		return '!' // thunder
	case "13":
		return 'x' // snow
	case "50":
		return '=' // mist
	}
	return '?'
}
