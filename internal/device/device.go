// Package device defines the contracts between the weatherscreen core and the
// physical (or simulated) display hardware: the framebuffer-style display, the
// four-button input source, and the LED/backlight indicator.
package device

// Button identifies one of the four physical buttons on the display.
type Button int

const (
	ButtonA Button = iota
	ButtonB
	ButtonX
	ButtonY

	// ButtonCount is the number of physical buttons.
	ButtonCount
)

// String returns the button's label as printed on the device.
func (b Button) String() string {
	switch b {
	case ButtonA:
		return "A"
	case ButtonB:
		return "B"
	case ButtonX:
		return "X"
	case ButtonY:
		return "Y"
	}
	return "?"
}

// Color is an RGB color for text and indicator output.
type Color struct {
	R, G, B uint8
}

var (
	Black  = Color{0, 0, 0}
	White  = Color{255, 255, 255}
	Red    = Color{255, 0, 0}
	Yellow = Color{255, 255, 0}
	Grey   = Color{128, 128, 128}
	Cyan   = Color{0, 255, 255}
)

// FontSize selects one of the display's text size classes.
type FontSize int

const (
	FontSmall FontSize = iota
	FontNormal
	FontLarge
)

// Image is a weather icon ready for drawing. Code is the provider's icon code
// (kept so cell-based displays can substitute a glyph); PNG holds the raw
// image bytes for pixel displays.
type Image struct {
	Code string
	PNG  []byte
}

// Display is an off-screen buffer with an explicit flush. The core calls Clear
// once at the start of a render pass, any number of draw calls, then Flush
// exactly once when the paint is complete.
type Display interface {
	// Size returns the drawable area in display cells (x grows right, y grows
	// down).
	Size() (w, h int)
	Clear()
	DrawText(x, y int, text string, color Color, size FontSize)
	DrawImage(x, y int, img Image)
	Flush()
}

// ButtonReader answers whether a button is currently held down. Dispatch
// confirms the press before routing it; a released button is a no-op.
type ButtonReader interface {
	Pressed(b Button) bool
}

// Indicator drives the RGB status LED and the backlight. Both are
// fire-and-forget; the core does not depend on a result.
type Indicator interface {
	SetLED(c Color)
	// SetBacklight sets brightness in [0, 1].
	SetBacklight(level float64)
}
