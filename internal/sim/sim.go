// Package sim emulates the 4-button display panel in a terminal. It stands in
// for the hardware driver: the same Display/ButtonReader/Indicator contracts,
// with key presses as buttons, a styled cell grid as the panel, and border
// decorations as the LED and backlight.
package sim

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jftsang/weatherscreen/internal/device"
)

// Panel dimensions in character cells, proportioned like the physical
// 320x240 display.
const (
	PanelWidth  = 64
	PanelHeight = 16
)

// Device is the simulated panel. The controller drives it through the device
// interfaces from its own goroutine; the Bubble Tea program only ever receives
// immutable frames via messages.
type Device struct {
	fb *framebuffer

	mu        sync.Mutex
	program   *tea.Program
	led       device.Color
	backlight float64
	pressed   map[device.Button]int
	onPress   func(device.Button)
}

var (
	_ device.Display      = (*Device)(nil)
	_ device.ButtonReader = (*Device)(nil)
	_ device.Indicator    = (*Device)(nil)
)

// New builds a simulated panel.
func New() *Device {
	return &Device{
		fb:        newFramebuffer(PanelWidth, PanelHeight),
		backlight: 1,
		pressed:   make(map[device.Button]int),
	}
}

// OnPress registers the single press callback, called once per confirmed key
// press. The hardware offers exactly one registration slot; so does the
// simulator.
func (d *Device) OnPress(fn func(device.Button)) {
	d.mu.Lock()
	d.onPress = fn
	d.mu.Unlock()
}

// Size implements device.Display.
func (d *Device) Size() (int, int) { return d.fb.w, d.fb.h }

// Clear implements device.Display.
func (d *Device) Clear() { d.fb.clear() }

// DrawText implements device.Display.
func (d *Device) DrawText(x, y int, text string, color device.Color, size device.FontSize) {
	d.fb.drawText(x, y, text, color, size)
}

// DrawImage implements device.Display by substituting a glyph for the icon.
func (d *Device) DrawImage(x, y int, img device.Image) {
	d.fb.drawGlyph(x, y, iconGlyph(img.Code), device.White)
}

// Flush implements device.Display: the rendered frame is handed to the UI.
func (d *Device) Flush() {
	d.mu.Lock()
	frame := d.fb.render(d.backlight)
	p := d.program
	d.mu.Unlock()
	if p != nil {
		p.Send(frameMsg(frame))
	}
}

// Pressed implements device.ButtonReader: it consumes one queued press
// confirmation for the pin.
func (d *Device) Pressed(b device.Button) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pressed[b] == 0 {
		return false
	}
	d.pressed[b]--
	return true
}

// SetLED implements device.Indicator.
func (d *Device) SetLED(c device.Color) {
	d.mu.Lock()
	d.led = c
	p := d.program
	status := statusMsg{led: c, backlight: d.backlight}
	d.mu.Unlock()
	if p != nil {
		p.Send(status)
	}
}

// SetBacklight implements device.Indicator.
func (d *Device) SetBacklight(level float64) {
	if level <= 0 || level > 1 {
		level = 1
	}
	d.mu.Lock()
	d.backlight = level
	p := d.program
	status := statusMsg{led: d.led, backlight: level}
	d.mu.Unlock()
	if p != nil {
		p.Send(status)
	}
}

// press latches a confirmation and fires the registered callback.
func (d *Device) press(b device.Button) {
	d.mu.Lock()
	d.pressed[b]++
	fn := d.onPress
	d.mu.Unlock()
	if fn != nil {
		fn(b)
	}
}

// Run starts the terminal UI and blocks until it exits or ctx is cancelled.
func Run(ctx context.Context, d *Device) error {
	m := model{dev: d, keys: defaultKeyMap(), backlight: 1}
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())

	d.mu.Lock()
	d.program = p
	d.mu.Unlock()

	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		return nil // shutdown, not a failure
	}
	return err
}

type frameMsg string

type statusMsg struct {
	led       device.Color
	backlight float64
}

// model is the Bubble Tea side of the simulator: it owns nothing but the last
// flushed frame and the indicator state.
type model struct {
	dev       *Device
	keys      keyMap
	frame     string
	led       device.Color
	backlight float64
	width     int
	height    int
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case frameMsg:
		m.frame = string(msg)
	case statusMsg:
		m.led = msg.led
		m.backlight = msg.backlight
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.ButtonA):
			m.dev.press(device.ButtonA)
		case key.Matches(msg, m.keys.ButtonB):
			m.dev.press(device.ButtonB)
		case key.Matches(msg, m.keys.ButtonX):
			m.dev.press(device.ButtonX)
		case key.Matches(msg, m.keys.ButtonY):
			m.dev.press(device.ButtonY)
		}
	}
	return m, nil
}

func (m model) View() string {
	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Render(m.frame)

	status := fmt.Sprintf("%s led  backlight %.0f%%", ledDot(m.led), m.backlight*100)
	help := "a/b/x/y: buttons   q: quit"
	footer := lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Render(status + "   " + help)

	view := lipgloss.JoinVertical(lipgloss.Left, panel, footer)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, view)
	}
	return view
}

func ledDot(c device.Color) string {
	if c == device.Black {
		return "○"
	}
	return lipgloss.NewStyle().Foreground(dimmed(c, 1)).Render("●")
}
