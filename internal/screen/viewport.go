// Package screen maps buffer positions to terminal coordinates and decides
// when the visible window has to scroll.
//
// Logical lines wrap at the terminal width: a line of length L occupies
// ceil(L/cols) screen rows, and at least one. The last terminal row is
// kept for the status line.
package screen

import "fmt"

// Lines is the read-only view of a line-indexed buffer the mapper needs.
type Lines interface {
	LineCount() int
	LineStart(i int) int
	LineLen(i int) int
}

// Position is a zero-based screen coordinate.
type Position struct {
	Row int
	Col int
}

// Viewport is the window onto the buffer: the first visible logical line and
// the terminal dimensions.
type Viewport struct {
	Top  int
	Rows int
	Cols int
}

// NewViewport returns a viewport scrolled to the top of the buffer.
func NewViewport(rows, cols int) Viewport {
	v := Viewport{}
	v.Resize(rows, cols)
	return v
}

// Resize applies new terminal dimensions. There is always at least one text
// row and one column.
func (v *Viewport) Resize(rows, cols int) {
	v.Rows = max(rows, 2)
	v.Cols = max(cols, 1)
}

// TextRows returns the number of rows available for text.
func (v Viewport) TextRows() int {
	return v.Rows - 1
}

// RowsFor returns the number of screen rows a line of the given length
// occupies at the given width.
func RowsFor(length, cols int) int {
	if length <= cols {
		return 1
	}
	return (length + cols - 1) / cols
}

// lineTotal counts an empty buffer as a single empty line so the cursor
// always has a line to sit on.
func lineTotal(ls Lines) int {
	return max(ls.LineCount(), 1)
}

func checkLine(ls Lines, line int) {
	if line < 0 || line >= lineTotal(ls) {
		panic(fmt.Sprintf("screen: line %d out of range [0,%d)", line, lineTotal(ls)))
	}
}

// Locate returns the screen position of offset, which lies in line.
func Locate(ls Lines, v Viewport, offset, line int) Position {
	checkLine(ls, line)

	rows := 0
	for i := v.Top; i < line; i++ {
		rows += RowsFor(ls.LineLen(i), v.Cols)
	}
	column := offset - ls.LineStart(line)
	wrapped := column / v.Cols
	return Position{
		Row: rows + wrapped,
		Col: column - wrapped*v.Cols,
	}
}

// Resolve is the inverse of Locate: it returns the buffer offset and line
// shown at p. ok is false if p is not on a character position of a visible
// line. The final line accepts the position just past its last character.
func Resolve(ls Lines, v Viewport, p Position) (offset, line int, ok bool) {
	if p.Row < 0 || p.Col < 0 || p.Col >= v.Cols {
		return 0, 0, false
	}

	n := lineTotal(ls)
	row := 0
	for i := v.Top; i < n; i++ {
		span := RowsFor(ls.LineLen(i), v.Cols)
		final := i == n-1
		if p.Row < row+span || final {
			column := (p.Row-row)*v.Cols + p.Col
			limit := ls.LineLen(i)
			if !final {
				limit--
			}
			if column > limit {
				return 0, 0, false
			}
			return ls.LineStart(i) + column, i, true
		}
		row += span
	}
	return 0, 0, false
}

// LastVisibleLine returns the index of the last logical line that fits
// entirely on screen starting from v.Top. When not even the top line fits
// the result is v.Top-1; callers must treat that as "nothing fits".
func LastVisibleLine(ls Lines, v Viewport) int {
	n := lineTotal(ls)
	limit := v.TextRows()
	total := 0

	i := v.Top
	for i < n {
		total += RowsFor(ls.LineLen(i), v.Cols)
		if total > limit {
			break
		}
		i++
	}
	return i - 1
}

// VisibleRange returns the half-open range of buffer offsets to draw. If the
// top line is too tall for the screen, the range covers as much of it as
// fits.
func VisibleRange(ls Lines, v Viewport) (first, last int) {
	first = ls.LineStart(v.Top)
	end := LastVisibleLine(ls, v)
	if end < v.Top {
		top := ls.LineStart(v.Top) + ls.LineLen(v.Top)
		return first, min(top, first+v.TextRows()*v.Cols)
	}
	return first, ls.LineStart(end) + ls.LineLen(end)
}
