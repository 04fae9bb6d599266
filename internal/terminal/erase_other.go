//go:build !linux && !darwin && !dragonfly && !freebsd && !netbsd && !openbsd

package terminal

// EraseChar returns DefaultErase; there is no termios to read here.
func EraseChar(fd int) (rune, error) {
	return DefaultErase, ErrUnsupported
}
