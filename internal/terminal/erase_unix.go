//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package terminal

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// EraseChar returns the VERASE character configured for the terminal on fd.
// If it cannot be read or is disabled, DefaultErase is returned.
func EraseChar(fd int) (rune, error) {
	t, err := unix.IoctlGetTermios(fd, ioctlReadTermios)
	if err != nil {
		return DefaultErase, fmt.Errorf("failed to read termios: %w", err)
	}
	c := t.Cc[unix.VERASE]
	if c == 0 || c == 0xff {
		return DefaultErase, nil
	}
	return rune(c), nil
}
