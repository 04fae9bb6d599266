// Package terminal queries and protects the controlling terminal: its
// geometry, its erase character, and its mode across the editor session.
package terminal

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/term"
)

// Fallback geometry when the size cannot be read.
const (
	DefaultRows = 24
	DefaultCols = 80
)

// DefaultErase is DEL, the usual erase character.
const DefaultErase rune = 0x7f

// ErrUnsupported is returned where the platform offers no termios access.
var ErrUnsupported = errors.New("terminal: not supported on this platform")

// IsTerminal reports whether fd refers to a terminal.
func IsTerminal(fd int) bool {
	return term.IsTerminal(fd)
}

// Size returns the terminal dimensions of fd. On failure, or when the
// terminal reports a zero size, it returns 24x80 together with the reason.
func Size(fd int) (rows, cols int, err error) {
	w, h, err := term.GetSize(fd)
	if err != nil {
		return DefaultRows, DefaultCols, fmt.Errorf("failed to get terminal size: %w", err)
	}
	if w == 0 || h == 0 {
		return DefaultRows, DefaultCols, fmt.Errorf("terminal reported size %dx%d", h, w)
	}
	return h, w, nil
}

// Session holds the terminal state saved at startup so that it can be put
// back on every exit path.
type Session struct {
	fd    int
	state *term.State
	once  sync.Once
	err   error
}

// Acquire saves the current state of the terminal on fd.
func Acquire(fd int) (*Session, error) {
	state, err := term.GetState(fd)
	if err != nil {
		return nil, fmt.Errorf("failed to save terminal state: %w", err)
	}
	return &Session{fd: fd, state: state}, nil
}

// Restore puts the saved state back. Only the first call has any effect;
// later calls return the first result.
func (s *Session) Restore() error {
	if s == nil {
		return nil
	}
	s.once.Do(func() {
		if err := term.Restore(s.fd, s.state); err != nil {
			s.err = fmt.Errorf("failed to restore terminal state: %w", err)
		}
	})
	return s.err
}
