package textbuf

import (
	"errors"
	"fmt"
)

// Insert rejections. Callers match them with errors.Is.
var (
	// ErrOutOfLines means a newline would exceed the line limit.
	ErrOutOfLines = errors.New("out of lines")
	// ErrOutOfMemory means the buffer holds Capacity characters already.
	ErrOutOfMemory = errors.New("out of memory")
	// ErrUnhandledChar means the character is the erase character or is not
	// printable; the caller should treat it as a command.
	ErrUnhandledChar = errors.New("unhandled character")
)

// InsertError reports a rejected insert along with the offending character.
type InsertError struct {
	Char rune
	Err  error
}

func (e *InsertError) Error() string {
	return fmt.Sprintf("insert %q: %v", e.Char, e.Err)
}

func (e *InsertError) Unwrap() error {
	return e.Err
}
