//go:build unix && !linux

package terminal

// resetTerminalMode is a no-op where termios ioctl names differ; Fini restores the saved state
func resetTerminalMode() {}
