// Package screen implements the weatherscreen state machine: a single
// controller owning the weather cache, the error sink and the cursor, and a
// closed set of views (page, grid, errors) switched by button presses.
//
// # Dispatch model
//
// The display hardware registers one button callback and one periodic timer
// for the life of the process. The controller therefore keeps one dispatch
// table (four handler slots plus a tick slot) and swaps its contents on every
// view switch; views never touch the hardware callbacks themselves.
//
// Button presses and ticks are asynchronous triggers, but every state
// mutation runs on the controller's Run goroutine: presses enter through a
// channel the run loop consumes, and the tick timer is part of the same
// select. A press arriving while a fetch is in flight queues behind it.
//
// # Refresh and degradation
//
// Views refresh through the cache at render time; staleness is decided there,
// so an unvisited view costs no network traffic. A failed refresh is recorded
// in the error sink and the view paints whatever is cached, or a placeholder
// when nothing ever arrived. Failures surface only on the errors view, which
// drains the sink as it renders.
package screen
