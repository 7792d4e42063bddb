// Package visualizer runs the ambient node network: it owns one
// [network.Network], one [camera.Camera] and the pointer/viewport inputs,
// and drives them through a per-frame callback.
//
// The loop is a small state machine:
//
//	Stopped --Start--> Running --Stop / ctx done--> Stopped
//
// Frames are requested from a [Scheduler]. A [StepScheduler] fires only
// when ticked, which lets terminal, window and headless hosts (and tests)
// decide exactly when a frame runs. A [TickerScheduler] fires on a timer.
//
// Pointer and resize events may arrive at any time; each overwrites the
// previous value and the next frame reads whatever is current.
package visualizer
