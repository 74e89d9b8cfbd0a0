// Package sink adapts the frame loop's changed-cell lists to displays.
//
// ANSI drives the raw terminal package, Tcell drives any tcell.Screen, and
// Recorder keeps an in-memory grid for tests and headless runs.
package sink
