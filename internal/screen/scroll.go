package screen

// Direction is the way the content moved during a scroll.
type Direction int

const (
	NoScroll Direction = iota
	ScrollUp
	ScrollDown
)

func (d Direction) String() string {
	switch d {
	case ScrollUp:
		return "up"
	case ScrollDown:
		return "down"
	default:
		return "none"
	}
}

// Delta describes what a viewport change did, so a renderer can redraw
// incrementally.
type Delta struct {
	Direction Direction
	// Lines is the change in Viewport.Top.
	Lines int
	// Rows is the number of screen rows the content moved, counting
	// skipped rows of a tall top line. Positive when the content moved up
	// the screen (scrolling down the buffer).
	Rows int
	// LastVisible is the last visible line after the change.
	LastVisible int
}

// Scrolled reports whether the viewport moved.
func (d Delta) Scrolled() bool {
	return d.Direction != NoScroll
}

// EnsureVisible adjusts v.Top so that line is on screen. Lines above the
// window scroll it up; lines below scroll it down, repeatedly if one step
// is not enough. Top never moves past line, so a line taller than the text
// area ends up pinned to the top row.
func EnsureVisible(ls Lines, v *Viewport, line int) Delta {
	checkLine(ls, line)

	oldTop := v.Top
	if line < v.Top {
		v.Top = line
	}

	last := LastVisibleLine(ls, *v)
	for line > last && v.Top < line {
		v.Top = min(v.Top+line-last, line)
		last = LastVisibleLine(ls, *v)
	}
	return deltaFrom(ls, *v, oldTop)
}

// deltaFrom describes the move from oldTop to v.Top.
func deltaFrom(ls Lines, v Viewport, oldTop int) Delta {
	dir := NoScroll
	switch {
	case v.Top > oldTop:
		dir = ScrollDown
	case v.Top < oldTop:
		dir = ScrollUp
	}
	return Delta{
		Direction:   dir,
		Lines:       v.Top - oldTop,
		Rows:        rowsBetween(ls, v.Cols, oldTop, v.Top),
		LastVisible: LastVisibleLine(ls, v),
	}
}

// rowsBetween returns the screen rows occupied by lines [from, to), negated
// when to is before from.
func rowsBetween(ls Lines, cols, from, to int) int {
	sign := 1
	if to < from {
		from, to = to, from
		sign = -1
	}
	rows := 0
	for i := from; i < to; i++ {
		rows += RowsFor(ls.LineLen(i), cols)
	}
	return sign * rows
}
