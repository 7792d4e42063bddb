// Package viz draws the node network in a terminal.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [App]: runs a visualizer with the terminal as its surface
//   - [Canvas]: Braille-based pixel canvas with per-cell ink
//   - [RenderNetwork]: perspective projection of nodes and connections
//   - a preset picker shown before the live view
//   - Theme selection with 5 built-in color schemes
//
// # Key Bindings
//
//	Space - Pause/Resume the frame loop
//	R     - Reseed the network
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	?     - Show help overlay
//	Q     - Quit
//
// Moving the mouse over the canvas pans the camera; leaving the canvas or
// losing terminal focus recentres it.
//
// # Recording
//
// G toggles recording of canvas frames; stopping writes nodemesh.gif to
// the current directory.
package viz
