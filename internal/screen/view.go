package screen

import "time"

// View is one display mode. Each view paints the whole screen and may handle
// any of the four buttons and the periodic tick; unhandled buttons are no-ops.
//
// Handlers that change visible state conclude by switching (or re-switching)
// through the controller so the screen is never left stale.
type View interface {
	Name() string

	// Render performs a full redraw. Refresh failures are caught here and
	// forwarded to the error sink; a failed refresh degrades to showing
	// whatever is cached. Exactly one display flush per call.
	Render(c *Controller)

	ButtonA(c *Controller)
	ButtonB(c *Controller)
	ButtonX(c *Controller)
	ButtonY(c *Controller)

	// Tick is invoked by the controller's background timer while this view is
	// active.
	Tick(c *Controller)

	// TickPeriod overrides the controller's default tick period; zero keeps
	// the default.
	TickPeriod() time.Duration
}

// baseView provides the default no-op handlers.
type baseView struct{}

func (baseView) ButtonA(*Controller)       {}
func (baseView) ButtonB(*Controller)       {}
func (baseView) ButtonX(*Controller)       {}
func (baseView) ButtonY(*Controller)       {}
func (baseView) Tick(*Controller)          {}
func (baseView) TickPeriod() time.Duration { return 0 }

// The three display modes. Views are stateless; the cursor and all shared data
// live on the Controller.
var (
	Page   View = pageView{}
	Grid   View = gridView{}
	Errors View = errorsView{}
)
