//go:build unix

package terminal

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// ErrNotTerminal is returned by Init when stdin is not a tty
var ErrNotTerminal = errors.New("stdin is not a terminal")

const (
	// inputPollMs bounds how long Read blocks before rechecking the stop channel
	inputPollMs = 100
	readBufSize = 256

	fallbackCols = 80
	fallbackRows = 24
)

// ttyBackend drives stdin/stdout as a raw tty
type ttyBackend struct {
	in, out *os.File
	saved   *term.State
	readBuf [readBufSize]byte
	winch   *winchWatcher
}

func newBackend() Backend {
	return &ttyBackend{in: os.Stdin, out: os.Stdout}
}

func (b *ttyBackend) inFd() int  { return int(b.in.Fd()) }
func (b *ttyBackend) outFd() int { return int(b.out.Fd()) }

func (b *ttyBackend) Init() error {
	if !term.IsTerminal(b.inFd()) {
		return ErrNotTerminal
	}
	saved, err := term.MakeRaw(b.inFd())
	if err != nil {
		return err
	}
	b.saved = saved
	return nil
}

func (b *ttyBackend) Fini() {
	if b.winch != nil {
		b.winch.stop()
		b.winch = nil
	}
	if b.saved != nil {
		term.Restore(b.inFd(), b.saved)
		b.saved = nil
	}
}

// Size prefers the output fd so redirected stdin still reports the screen
func (b *ttyBackend) Size() (int, int) {
	for _, fd := range []int{b.outFd(), b.inFd()} {
		if w, h, err := term.GetSize(fd); err == nil && w > 0 && h > 0 {
			return w, h
		}
	}
	return fallbackCols, fallbackRows
}

func (b *ttyBackend) Write(p []byte) error {
	_, err := b.out.Write(p)
	return err
}

// Read returns a fresh copy of the bytes read; nil, nil means timeout or stop
func (b *ttyBackend) Read(stopCh <-chan struct{}) ([]byte, error) {
	fds := []unix.PollFd{{Fd: int32(b.inFd()), Events: unix.POLLIN}}

	for {
		select {
		case <-stopCh:
			return nil, nil
		default:
		}

		ready, err := unix.Poll(fds, inputPollMs)
		switch {
		case errors.Is(err, unix.EINTR):
			continue
		case err != nil:
			return nil, err
		case ready == 0:
			return nil, nil
		}

		n, err := unix.Read(b.inFd(), b.readBuf[:])
		switch {
		case errors.Is(err, unix.EINTR), errors.Is(err, unix.EAGAIN):
			continue
		case err != nil:
			return nil, err
		case n <= 0:
			return nil, nil
		}
		return append([]byte(nil), b.readBuf[:n]...), nil
	}
}

func (b *ttyBackend) SetResizeHandler(handler func(width, height int)) {
	if b.winch != nil {
		b.winch.stop()
	}
	b.winch = watchWinch(b.Size, handler)
}

// winchWatcher calls handler with the new size on every SIGWINCH
type winchWatcher struct {
	sigCh  chan os.Signal
	stopCh chan struct{}
	doneCh chan struct{}
}

func watchWinch(size func() (int, int), handler func(width, height int)) *winchWatcher {
	w := &winchWatcher{
		sigCh:  make(chan os.Signal, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
	signal.Notify(w.sigCh, syscall.SIGWINCH)

	go func() {
		defer close(w.doneCh)
		for {
			select {
			case <-w.stopCh:
				return
			case <-w.sigCh:
				if cols, rows := size(); cols > 0 && rows > 0 {
					handler(cols, rows)
				}
			}
		}
	}()
	return w
}

func (w *winchWatcher) stop() {
	signal.Stop(w.sigCh)
	close(w.stopCh)
	<-w.doneCh
}
