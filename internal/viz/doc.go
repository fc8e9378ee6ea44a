// Package viz renders the grasp scene live in the terminal.
//
// The view is a Bubble Tea program: a braille [Canvas] draws the x-z side
// view of the table, gripper and box, and a status pane shows the active
// plan phase, heights, energy and the current contact set, with a small
// box height sparkline.
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Reset to initial state
//	C     - Toggle contact list
//	+/-   - Faster/slower playback
//	?     - Show help overlay
package viz
