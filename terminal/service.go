package terminal

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"
)

// Service owns a Terminal and pumps its events onto a channel
type Service struct {
	term    Terminal
	eventCh chan Event
	stopCh  chan struct{}
	doneCh  chan struct{}
	mu      sync.Mutex
	running bool
}

// NewService wraps an uninitialized terminal
func NewService(term Terminal) *Service {
	return &Service{
		term:    term,
		eventCh: make(chan Event, 256),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
}

// Start initializes the terminal and launches the event pump
func (s *Service) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}

	if err := s.term.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}

	s.running = true
	go s.pollLoop()
	return nil
}

func (s *Service) pollLoop() {
	defer close(s.doneCh)

	defer func() {
		if r := recover(); r != nil {
			EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mTERMINAL POLL CRASHED: %v\x1b[0m\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	for {
		ev := s.term.PollEvent()
		if ev.Type == EventClosed || ev.Type == EventError {
			select {
			case s.eventCh <- ev:
			default:
			}
			return
		}

		select {
		case s.eventCh <- ev:
		case <-s.stopCh:
			return
		}
	}
}

// Stop unblocks the pump and restores the terminal. Safe to call twice
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	close(s.stopCh)
	s.term.PostEvent(Event{Type: EventClosed})
	<-s.doneCh

	s.term.Fini()
}

// Terminal returns the wrapped terminal
func (s *Service) Terminal() Terminal {
	return s.term
}

// Events returns the input event channel
func (s *Service) Events() <-chan Event {
	return s.eventCh
}
