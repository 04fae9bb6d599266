// Package textbuf implements the line-indexed text buffer behind the editor.
//
// Text is stored as a flat rune slice alongside one Line record per logical
// line. Insert is the only operation that changes content; the cursor can be
// repositioned with MoveTo.
package textbuf

import (
	"fmt"
	"slices"
	"unicode"
)

// Default limits.
const (
	DefaultMaxLines  = 1000
	DefaultCapacity  = 8192 // BUFSIZ
	DefaultEraseChar = '\x7f'
)

// Line describes one logical line: the offset of its first character and
// its length including the trailing newline, if any.
type Line struct {
	Start int
	Len   int
}

// End returns the offset just past the last character of the line.
func (l Line) End() int {
	return l.Start + l.Len
}

// Limits bounds what a Buffer will accept.
type Limits struct {
	MaxLines  int  // maximum number of logical lines
	Capacity  int  // maximum number of stored characters
	EraseChar rune // terminal erase character, rejected as data
}

// DefaultLimits returns the limits used when none are configured.
func DefaultLimits() Limits {
	return Limits{
		MaxLines:  DefaultMaxLines,
		Capacity:  DefaultCapacity,
		EraseChar: DefaultEraseChar,
	}
}

// Buffer holds the text and per-line metadata along with the insertion
// cursor. The zero value is not usable; call New.
type Buffer struct {
	text   []rune
	lines  []Line
	limits Limits

	cursor  int // offset into text
	curLine int // index into lines
	column  int // offset of cursor within curLine
}

// New creates an empty buffer. Non-positive limits fall back to defaults.
func New(limits Limits) *Buffer {
	if limits.MaxLines <= 0 {
		limits.MaxLines = DefaultMaxLines
	}
	if limits.Capacity <= 0 {
		limits.Capacity = DefaultCapacity
	}
	return &Buffer{
		text:   make([]rune, 0, min(limits.Capacity, 1024)),
		limits: limits,
	}
}

// Insert stores c at the cursor and advances the cursor past it.
//
// A newline splits the current line in two. Rejected characters leave the
// buffer untouched and return an *InsertError wrapping ErrOutOfLines,
// ErrOutOfMemory or ErrUnhandledChar.
func (b *Buffer) Insert(c rune) error {
	if c == '\n' && b.linesAfterNewline() > b.limits.MaxLines {
		return &InsertError{Char: c, Err: ErrOutOfLines}
	}
	if len(b.text) >= b.limits.Capacity {
		return &InsertError{Char: c, Err: ErrOutOfMemory}
	}
	if c == b.limits.EraseChar || (c != '\n' && !unicode.IsPrint(c)) {
		return &InsertError{Char: c, Err: ErrUnhandledChar}
	}

	// The first character creates line 0.
	if len(b.lines) == 0 {
		b.lines = append(b.lines, Line{})
	}

	b.text = slices.Insert(b.text, b.cursor, c)
	b.cursor++

	if c == '\n' {
		b.splitLine()
		return nil
	}

	b.lines[b.curLine].Len++
	b.column++
	b.shiftStarts(b.curLine+1, 1)
	return nil
}

// splitLine breaks the current line after the newline just stored at
// cursor-1. The characters that followed the insertion point move to a new
// line placed directly after the current one.
func (b *Buffer) splitLine() {
	cur := b.lines[b.curLine]
	head := b.column + 1
	tail := Line{Start: cur.Start + head, Len: cur.Len - b.column}

	b.lines[b.curLine].Len = head
	b.shiftStarts(b.curLine+1, 1)
	b.lines = slices.Insert(b.lines, b.curLine+1, tail)

	b.curLine++
	b.column = 0
}

// shiftStarts adds delta to the start of every line from index from onward.
func (b *Buffer) shiftStarts(from, delta int) {
	for i := from; i < len(b.lines); i++ {
		b.lines[i].Start += delta
	}
}

// linesAfterNewline is the line count a newline insert would produce. An
// empty buffer gains two lines: the one holding the newline and the empty
// line after it.
func (b *Buffer) linesAfterNewline() int {
	if len(b.lines) == 0 {
		return 2
	}
	return len(b.lines) + 1
}

// MoveTo places the cursor at column of line, clamping both to valid values.
// On a line that ends in a newline the cursor can sit on the newline but not
// past it. Content is not modified.
func (b *Buffer) MoveTo(line, column int) {
	if len(b.lines) == 0 {
		b.curLine, b.column, b.cursor = 0, 0, 0
		return
	}
	line = max(0, min(line, len(b.lines)-1))
	limit := b.lines[line].Len
	if line < len(b.lines)-1 {
		limit--
	}
	column = max(0, min(column, limit))
	b.curLine = line
	b.column = column
	b.cursor = b.lines[line].Start + column
}

// Len returns the number of stored characters.
func (b *Buffer) Len() int { return len(b.text) }

// LineCount returns the number of logical lines. An empty buffer has none.
func (b *Buffer) LineCount() int { return len(b.lines) }

// Line returns the record for line i. It panics if i is out of range.
func (b *Buffer) Line(i int) Line {
	if i < 0 || i >= len(b.lines) {
		panic(fmt.Sprintf("textbuf: line %d out of range [0,%d)", i, len(b.lines)))
	}
	return b.lines[i]
}

// LineStart returns the offset of line i, or Len() past the last line.
func (b *Buffer) LineStart(i int) int {
	if i < 0 || i >= len(b.lines) {
		return len(b.text)
	}
	return b.lines[i].Start
}

// LineLen returns the length of line i, or 0 for a line that does not exist.
func (b *Buffer) LineLen(i int) int {
	if i < 0 || i >= len(b.lines) {
		return 0
	}
	return b.lines[i].Len
}

// Lines returns a copy of the line records.
func (b *Buffer) Lines() []Line {
	return slices.Clone(b.lines)
}

// Cursor returns the insertion offset.
func (b *Buffer) Cursor() int { return b.cursor }

// CurrentLine returns the index of the line holding the cursor.
func (b *Buffer) CurrentLine() int { return b.curLine }

// Column returns the cursor offset within the current line.
func (b *Buffer) Column() int { return b.column }

// EraseChar returns the character Insert rejects as a control action.
func (b *Buffer) EraseChar() rune { return b.limits.EraseChar }

// Limits returns the limits the buffer was created with.
func (b *Buffer) Limits() Limits { return b.limits }

// Text returns the whole buffer content.
func (b *Buffer) Text() string { return string(b.text) }

// Slice returns the characters in [from, to), clamped to the buffer.
func (b *Buffer) Slice(from, to int) string {
	from = max(0, min(from, len(b.text)))
	to = max(from, min(to, len(b.text)))
	return string(b.text[from:to])
}

// LineText returns the characters of line i, including its newline.
func (b *Buffer) LineText(i int) string {
	if i < 0 || i >= len(b.lines) {
		return ""
	}
	l := b.lines[i]
	return string(b.text[l.Start:l.End()])
}

// RuneAt returns the character at offset i.
func (b *Buffer) RuneAt(i int) (rune, bool) {
	if i < 0 || i >= len(b.text) {
		return 0, false
	}
	return b.text[i], true
}
