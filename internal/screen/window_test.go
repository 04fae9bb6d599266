package screen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willibrandon/simplevi/internal/textbuf"
)

// typeInto inserts s one character at a time, syncing the window after each
// insert like the editor does.
func typeInto(t *testing.T, w *Window, b *textbuf.Buffer, s string) {
	t.Helper()
	for _, r := range s {
		require.NoError(t, b.Insert(r))
		w.Sync(b)
		requireCursorConsistent(t, w, b)
	}
}

func requireCursorConsistent(t *testing.T, w *Window, b *textbuf.Buffer) {
	t.Helper()
	want := Locate(b, w.View, b.Cursor(), b.CurrentLine())
	want.Row -= w.Skip
	require.Equal(t, want, w.Cursor)
}

func requireCursorOnScreen(t *testing.T, w *Window) {
	t.Helper()
	require.GreaterOrEqual(t, w.Cursor.Row, 0)
	require.Less(t, w.Cursor.Row, w.View.TextRows())
}

// =============================================================================
// EnsureVisible Tests
// =============================================================================

func TestEnsureVisible_NoScrollNeeded(t *testing.T) {
	ls := lengths{2, 2, 2}
	v := NewViewport(24, 80)

	d := EnsureVisible(ls, &v, 2)
	assert.False(t, d.Scrolled())
	assert.Equal(t, 0, v.Top)
	assert.Equal(t, 2, d.LastVisible)
}

func TestEnsureVisible_ScrollsUp(t *testing.T) {
	ls := lengths{2, 2, 2, 2, 2, 2, 2, 2}
	v := NewViewport(5, 80)
	v.Top = 5

	d := EnsureVisible(ls, &v, 2)
	assert.Equal(t, 2, v.Top)
	assert.Equal(t, ScrollUp, d.Direction)
	assert.Equal(t, -3, d.Lines)
	assert.Equal(t, -3, d.Rows)
	assert.Equal(t, 5, d.LastVisible)
}

func TestEnsureVisible_MultiLineJump(t *testing.T) {
	ls := lengths{2, 2, 2, 2, 2, 2, 2, 2, 2, 2}
	v := NewViewport(5, 80)

	d := EnsureVisible(ls, &v, 9)
	assert.Equal(t, 6, v.Top)
	assert.Equal(t, ScrollDown, d.Direction)
	assert.Equal(t, 6, d.Lines)
	assert.Equal(t, 6, d.Rows)
	assert.Equal(t, 9, d.LastVisible)
}

func TestEnsureVisible_RepeatsOverWrappedLines(t *testing.T) {
	// Line 3 takes three rows; one scroll step is not enough.
	ls := lengths{1, 1, 1, 25, 1}
	v := NewViewport(5, 10)

	d := EnsureVisible(ls, &v, 4)
	assert.Equal(t, 3, v.Top)
	assert.Equal(t, 3, d.Lines)
	assert.Equal(t, 3, d.Rows)
	assert.Equal(t, 4, d.LastVisible)
}

func TestEnsureVisible_PinsTallLine(t *testing.T) {
	ls := lengths{5, 50, 5}
	v := NewViewport(4, 10)

	d := EnsureVisible(ls, &v, 1)
	assert.Equal(t, 1, v.Top)
	assert.Equal(t, ScrollDown, d.Direction)
	assert.Equal(t, 0, d.LastVisible)
}

func TestEnsureVisible_PanicsOnBadLine(t *testing.T) {
	v := NewViewport(5, 10)
	assert.Panics(t, func() { EnsureVisible(lengths{1}, &v, 3) })
}

// =============================================================================
// Window Sync Tests
// =============================================================================

func TestSync_WrapScenario(t *testing.T) {
	b := textbuf.New(textbuf.DefaultLimits())
	w := NewWindow(24, 10)

	typeInto(t, w, b, "abcdefghij")
	assert.Equal(t, Position{Row: 1, Col: 0}, w.Cursor)

	typeInto(t, w, b, "k")
	assert.Equal(t, Position{Row: 1, Col: 1}, w.Cursor)
}

func TestSync_ScrollsWhenTextAreaFills(t *testing.T) {
	b := textbuf.New(textbuf.DefaultLimits())
	w := NewWindow(5, 80)

	typeInto(t, w, b, "a\nb\nc\nd\ne")

	assert.Equal(t, 1, w.View.Top)
	assert.Equal(t, 4, b.CurrentLine())
	assert.LessOrEqual(t, b.CurrentLine(), LastVisibleLine(b, w.View))
	assert.Equal(t, Position{Row: 3, Col: 1}, w.Cursor)
}

func TestSync_KeepsTopWithinCurrentLine(t *testing.T) {
	b := textbuf.New(textbuf.DefaultLimits())
	w := NewWindow(5, 10)

	typeInto(t, w, b, "a\n"+strings.Repeat("x", 45))

	assert.Equal(t, 1, w.View.Top)
	assert.LessOrEqual(t, w.View.Top, b.CurrentLine())
}

func TestSync_CursorWrappedPastTextArea(t *testing.T) {
	b := textbuf.New(textbuf.DefaultLimits())
	w := NewWindow(4, 4)

	// Line 1 fills two rows exactly; the cursor after it wraps to a third.
	typeInto(t, w, b, "ab\ncdefghij")

	assert.Equal(t, 1, w.View.Top)
	assert.Equal(t, Position{Row: 2, Col: 0}, w.Cursor)
}

func TestResize_BringsCursorBack(t *testing.T) {
	b := textbuf.New(textbuf.DefaultLimits())
	w := NewWindow(24, 80)
	typeInto(t, w, b, "1\n2\n3\n4\n5\n6")

	d := w.Resize(b, 4, 80)
	assert.Equal(t, ScrollDown, d.Direction)
	assert.Equal(t, 3, w.View.Top)
	assert.Equal(t, Position{Row: 2, Col: 1}, w.Cursor)
}

// =============================================================================
// Window Motion Tests
// =============================================================================

func TestMove_BoundariesAreNoOps(t *testing.T) {
	b := textbuf.New(textbuf.DefaultLimits())
	w := NewWindow(24, 80)

	for name, move := range map[string]func(Editable) Delta{
		"up":    w.MoveUp,
		"down":  w.MoveDown,
		"left":  w.MoveLeft,
		"right": w.MoveRight,
	} {
		d := move(b)
		assert.False(t, d.Scrolled(), name)
		assert.Equal(t, Position{}, w.Cursor, name)
		assert.Equal(t, 0, b.Cursor(), name)
	}
}

func TestMoveUpDown_ClampColumn(t *testing.T) {
	b := textbuf.New(textbuf.DefaultLimits())
	w := NewWindow(24, 80)
	typeInto(t, w, b, "abcdef\nxy\nlonger")

	b.MoveTo(0, 5)
	w.Sync(b)

	w.MoveDown(b)
	assert.Equal(t, 1, b.CurrentLine())
	assert.Equal(t, 2, b.Column())
	requireCursorConsistent(t, w, b)

	w.MoveDown(b)
	assert.Equal(t, 2, b.CurrentLine())
	assert.Equal(t, 2, b.Column())

	w.MoveDown(b)
	assert.Equal(t, 2, b.CurrentLine())

	b.MoveTo(2, 6)
	w.MoveUp(b)
	assert.Equal(t, 1, b.CurrentLine())
	assert.Equal(t, 2, b.Column())
	assert.Equal(t, Position{Row: 1, Col: 2}, w.Cursor)
}

func TestMoveUpDown_Scroll(t *testing.T) {
	b := textbuf.New(textbuf.DefaultLimits())
	w := NewWindow(5, 80)
	typeInto(t, w, b, strings.Repeat("x\n", 9)+"x")
	require.Equal(t, 6, w.View.Top)

	for range 3 {
		d := w.MoveUp(b)
		assert.False(t, d.Scrolled())
	}
	assert.Equal(t, 6, b.CurrentLine())

	d := w.MoveUp(b)
	assert.Equal(t, ScrollUp, d.Direction)
	assert.Equal(t, 5, w.View.Top)
	assert.Equal(t, Position{Row: 0, Col: 1}, w.Cursor)

	for range 3 {
		w.MoveDown(b)
	}
	assert.Equal(t, 5, w.View.Top)

	d = w.MoveDown(b)
	assert.Equal(t, ScrollDown, d.Direction)
	assert.Equal(t, 6, w.View.Top)
	assert.Equal(t, 9, b.CurrentLine())
	assert.Equal(t, Position{Row: 3, Col: 0}, w.Cursor)
}

func TestMoveRight_StopsAtLineEnd(t *testing.T) {
	b := textbuf.New(textbuf.DefaultLimits())
	w := NewWindow(24, 80)
	typeInto(t, w, b, "ab\ncd")

	b.MoveTo(0, 0)
	w.Sync(b)
	w.MoveRight(b)
	w.MoveRight(b)
	w.MoveRight(b)
	assert.Equal(t, 2, b.Column(), "non-final line stops on its newline")

	b.MoveTo(1, 0)
	w.MoveRight(b)
	w.MoveRight(b)
	w.MoveRight(b)
	assert.Equal(t, 2, b.Column(), "final line allows the append position")
	requireCursorConsistent(t, w, b)
}

func TestMoveRight_ScrollsOnWrapPastTextArea(t *testing.T) {
	b := newBuffer(t, "ab\ncdefghij")
	b.MoveTo(1, 7)
	w := NewWindow(4, 4)
	w.Sync(b)
	require.Equal(t, 0, w.View.Top)
	require.Equal(t, Position{Row: 2, Col: 3}, w.Cursor)

	d := w.MoveRight(b)
	assert.Equal(t, ScrollDown, d.Direction)
	assert.Equal(t, 1, d.Lines)
	assert.Equal(t, 1, d.Rows)
	assert.Equal(t, 1, w.View.Top)
	assert.Equal(t, Position{Row: 2, Col: 0}, w.Cursor)

	d = w.MoveLeft(b)
	assert.False(t, d.Scrolled())
	assert.Equal(t, Position{Row: 1, Col: 3}, w.Cursor)
}

// tallLine types a ten-character line into a window with three text rows
// of two columns, leaving the cursor at the append position.
func tallLine(t *testing.T, scrollOnLeft bool) (*Window, *textbuf.Buffer) {
	t.Helper()
	b := textbuf.New(textbuf.DefaultLimits())
	w := NewWindow(4, 2)
	w.ScrollOnLeft = scrollOnLeft
	for _, r := range "abcdefghij" {
		require.NoError(t, b.Insert(r))
		w.Sync(b)
		requireCursorConsistent(t, w, b)
		requireCursorOnScreen(t, w)
	}
	return w, b
}

func TestSync_TallLineSkipsRows(t *testing.T) {
	w, b := tallLine(t, false)

	assert.Equal(t, 0, w.View.Top)
	assert.Equal(t, 3, w.Skip)
	assert.Equal(t, Position{Row: 2, Col: 0}, w.Cursor)

	first, last := w.VisibleRange(b)
	assert.Equal(t, "ghij", b.Slice(first, last))
}

func TestSync_ResizeDropsSkippedRows(t *testing.T) {
	w, b := tallLine(t, false)

	d := w.Resize(b, 24, 80)
	assert.Equal(t, ScrollUp, d.Direction)
	assert.Equal(t, -3, d.Rows)
	assert.Equal(t, 0, w.Skip)
	assert.Equal(t, Position{Row: 0, Col: 10}, w.Cursor)
}

func TestMoveUpDown_TallLineKeepsCursorOnScreen(t *testing.T) {
	b := newBuffer(t, strings.Repeat("x", 11)+"\nab")
	w := NewWindow(4, 2)
	b.MoveTo(1, 1)
	w.Sync(b)

	w.MoveUp(b)
	assert.Equal(t, 0, w.View.Top)
	assert.Equal(t, 1, b.Column())
	requireCursorOnScreen(t, w)
	requireCursorConsistent(t, w, b)

	for range 9 {
		w.MoveRight(b)
		requireCursorOnScreen(t, w)
		requireCursorConsistent(t, w, b)
	}
	assert.Equal(t, 10, b.Column())
	assert.Equal(t, 3, w.Skip)
	assert.Equal(t, Position{Row: 2, Col: 0}, w.Cursor)

	w.MoveDown(b)
	assert.Equal(t, 1, w.View.Top)
	assert.Equal(t, 0, w.Skip)
	assert.Equal(t, Position{Row: 0, Col: 1}, w.Cursor)
}

func TestMoveLeft_TallLineAsymmetry(t *testing.T) {
	w, b := tallLine(t, false)

	for range 5 {
		d := w.MoveLeft(b)
		assert.False(t, d.Scrolled())
	}
	assert.Equal(t, 5, b.Column())
	assert.Equal(t, 3, w.Skip)
	assert.Equal(t, Position{Row: -1, Col: 1}, w.Cursor, "left never scrolls")
	requireCursorConsistent(t, w, b)

	// The next motion that scrolls brings the cursor back.
	w.MoveLeft(b)
	w.MoveLeft(b)
	d := w.MoveRight(b)
	assert.Equal(t, ScrollUp, d.Direction)
	assert.Equal(t, -1, d.Rows)
	assert.Equal(t, 2, w.Skip)
	assert.Equal(t, Position{Row: 0, Col: 0}, w.Cursor)
}

func TestMoveLeft_ScrollOnLeft(t *testing.T) {
	w, b := tallLine(t, true)

	d := w.MoveLeft(b)
	assert.Equal(t, ScrollUp, d.Direction)
	assert.Equal(t, -1, d.Rows)
	assert.Equal(t, 2, w.Skip)

	for range 9 {
		w.MoveLeft(b)
		requireCursorOnScreen(t, w)
		requireCursorConsistent(t, w, b)
	}
	assert.Equal(t, 0, b.Column())
	assert.Equal(t, 0, w.Skip)
	assert.Equal(t, Position{Row: 0, Col: 0}, w.Cursor)
}
