package screen

// Editable is a buffer whose cursor the window can move.
type Editable interface {
	Lines
	Cursor() int
	CurrentLine() int
	Column() int
	MoveTo(line, column int)
}

// Window ties a viewport to the on-screen cursor and implements cursor
// motion with scrolling.
//
// Top counts logical lines, so a line taller than the text area cannot be
// scrolled by Top alone. Skip holds the number of that line's wrapped rows
// hidden above the screen; it is non-zero only while the top line holds the
// cursor and does not fit.
type Window struct {
	View   Viewport
	Cursor Position
	Skip   int

	// ScrollOnLeft makes MoveLeft scroll like every other motion. When false,
	// moving left never scrolls, and stepping back across a wrapped row at
	// the top of the screen leaves the cursor above the text area.
	ScrollOnLeft bool
}

// NewWindow returns a window for a terminal of the given size.
func NewWindow(rows, cols int) *Window {
	return &Window{View: NewViewport(rows, cols)}
}

// Resize applies new terminal dimensions and brings the cursor back into
// view.
func (w *Window) Resize(b Editable, rows, cols int) Delta {
	w.View.Resize(rows, cols)
	return w.Sync(b)
}

// Sync scrolls to the buffer's current line and recomputes the cursor. Call
// it after every insert.
func (w *Window) Sync(b Editable) Delta {
	oldTop, oldSkip := w.View.Top, w.Skip
	w.ensureVisible(b, b.CurrentLine())
	return w.settle(b, oldTop, oldSkip, true)
}

// MoveUp moves to the previous line, keeping the column where possible.
func (w *Window) MoveUp(b Editable) Delta {
	oldTop, oldSkip := w.View.Top, w.Skip
	line := b.CurrentLine()
	if line == 0 {
		return w.settle(b, oldTop, oldSkip, true)
	}
	line--
	b.MoveTo(line, clampColumn(b.Column(), b.LineLen(line)))

	if line < w.View.Top {
		w.ensureVisible(b, line)
	}
	return w.settle(b, oldTop, oldSkip, true)
}

// MoveDown moves to the next line, keeping the column where possible.
func (w *Window) MoveDown(b Editable) Delta {
	oldTop, oldSkip := w.View.Top, w.Skip
	line := b.CurrentLine()
	if line >= b.LineCount()-1 {
		return w.settle(b, oldTop, oldSkip, true)
	}
	line++
	b.MoveTo(line, clampColumn(b.Column(), b.LineLen(line)))

	if line > LastVisibleLine(b, w.View) {
		w.ensureVisible(b, line)
	}
	return w.settle(b, oldTop, oldSkip, true)
}

// MoveRight advances one character. On the final line the cursor may sit
// just past the last character; elsewhere it stops on the newline's
// predecessor. Wrapping onto a row below the text area scrolls the window.
func (w *Window) MoveRight(b Editable) Delta {
	oldTop, oldSkip := w.View.Top, w.Skip
	line, col := b.CurrentLine(), b.Column()
	n := b.LineLen(line)
	final := line == b.LineCount()-1
	if col < n-1 || (final && col < n) {
		b.MoveTo(line, col+1)
	}
	return w.settle(b, oldTop, oldSkip, true)
}

// MoveLeft moves back one character within the line.
func (w *Window) MoveLeft(b Editable) Delta {
	oldTop, oldSkip := w.View.Top, w.Skip
	line, col := b.CurrentLine(), b.Column()
	if col > 0 {
		b.MoveTo(line, col-1)
	}
	if w.ScrollOnLeft {
		w.ensureVisible(b, line)
	}
	return w.settle(b, oldTop, oldSkip, w.ScrollOnLeft)
}

// ensureVisible runs EnsureVisible; a new top line starts unskipped.
func (w *Window) ensureVisible(b Editable, line int) {
	top := w.View.Top
	EnsureVisible(b, &w.View, line)
	if w.View.Top != top {
		w.Skip = 0
	}
}

// settle scrolls down when the cursor sits below the text area. If raise
// is set it also drops skipped rows the top line no longer needs and
// scrolls back up when the cursor sits above. It then recomputes the cursor
// and describes the change since oldTop and oldSkip.
func (w *Window) settle(b Editable, oldTop, oldSkip int, raise bool) Delta {
	if raise {
		w.clampSkip(b)
	}
	w.keepCursorRow(b)
	if row := w.row(b); raise && row < 0 {
		w.Skip = max(w.Skip+row, 0)
	}
	w.relocate(b)

	d := deltaFrom(b, w.View, oldTop)
	d.Rows += w.Skip - oldSkip
	if d.Direction == NoScroll {
		switch {
		case w.Skip > oldSkip:
			d.Direction = ScrollDown
		case w.Skip < oldSkip:
			d.Direction = ScrollUp
		}
	}
	return d
}

// keepCursorRow scrolls down when the cursor has wrapped onto a row below
// the text area. Top never passes the cursor line; past that point the
// cursor line's own rows are skipped.
func (w *Window) keepCursorRow(b Editable) {
	line := b.CurrentLine()
	over := w.row(b) - (w.View.TextRows() - 1)
	if over > 0 && w.View.Top < line {
		w.View.Top = min(w.View.Top+over, line)
		w.Skip = 0
		over = w.row(b) - (w.View.TextRows() - 1)
	}
	if over > 0 && w.View.Top == line {
		w.Skip += over
	}
}

// clampSkip drops skipped rows the top line no longer needs, after a
// resize or a move to another line.
func (w *Window) clampSkip(b Editable) {
	top := w.View.Top
	rows := RowsFor(b.LineLen(top), w.View.Cols)
	if b.CurrentLine() == top {
		rows = max(rows, Locate(b, w.View, b.Cursor(), top).Row+1)
	} else {
		rows = 0
	}
	w.Skip = max(min(w.Skip, rows-w.View.TextRows()), 0)
}

// row is the cursor's screen row, negative above the text area.
func (w *Window) row(b Editable) int {
	return Locate(b, w.View, b.Cursor(), b.CurrentLine()).Row - w.Skip
}

func (w *Window) relocate(b Editable) {
	w.Cursor = Locate(b, w.View, b.Cursor(), b.CurrentLine())
	w.Cursor.Row -= w.Skip
}

// VisibleRange is VisibleRange for the window, leaving out skipped rows of
// the top line.
func (w *Window) VisibleRange(ls Lines) (first, last int) {
	first, last = VisibleRange(ls, w.View)
	if w.Skip == 0 {
		return first, last
	}
	top := w.View.Top
	first = ls.LineStart(top) + w.Skip*w.View.Cols
	end := ls.LineStart(top) + ls.LineLen(top)
	return first, min(end, first+w.View.TextRows()*w.View.Cols)
}

// clampColumn keeps col inside a line of the given length, landing on the
// last character rather than past it.
func clampColumn(col, length int) int {
	if col >= length {
		return max(length-1, 0)
	}
	return col
}
