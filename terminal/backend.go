package terminal

// Backend abstracts the platform terminal device
// The unix implementation drives a tty; tests substitute an in-memory backend
type Backend interface {
	Init() error
	Fini()

	Size() (width, height int)

	// Write writes raw bytes to the terminal output
	Write(p []byte) error

	// Read blocks until input is available, the stop channel is closed, or an error occurs
	// A nil slice with nil error signals a poll timeout or EOF
	Read(stopCh <-chan struct{}) ([]byte, error)

	// SetResizeHandler registers a callback for terminal resize events
	SetResizeHandler(handler func(width, height int))
}
