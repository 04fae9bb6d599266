package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/willibrandon/simplevi/internal/logger"
	"github.com/willibrandon/simplevi/internal/screen"
)

// View renders the visible part of the buffer followed by the status line.
// This is part of the tea.Model interface
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		strings.Join(m.renderText(), "\n"),
		m.renderStatusLine(),
	)
}

// screenRows wraps the visible lines at the terminal width. A newline is
// drawn as a blank cell; an empty line still takes one row.
func (m *Model) screenRows() [][]rune {
	v := m.win.View
	first, last := m.win.VisibleRange(m.buf)
	end := max(screen.LastVisibleLine(m.buf, v), v.Top)
	total := max(m.buf.LineCount(), 1)

	rows := make([][]rune, 0, v.TextRows())
	for i := v.Top; i <= end && i < total; i++ {
		start := max(m.buf.LineStart(i), first)
		stop := min(m.buf.LineStart(i)+m.buf.LineLen(i), last)
		text := []rune(m.buf.Slice(start, stop))
		for j, r := range text {
			if r == '\n' {
				text[j] = ' '
			}
		}

		if len(text) == 0 {
			rows = append(rows, nil)
		}
		for len(text) > 0 {
			n := min(len(text), v.Cols)
			rows = append(rows, text[:n])
			text = text[n:]
		}
		if len(rows) >= v.TextRows() {
			return rows[:v.TextRows()]
		}
	}
	return rows
}

func (m *Model) renderText() []string {
	rows := m.screenRows()
	out := make([]string, 0, m.win.View.TextRows())

	// A cursor left above the text area by a move left is drawn on the top
	// row.
	cur := m.win.Cursor
	cur.Row = max(min(cur.Row, m.win.View.TextRows()-1), 0)
	// Past the end of a full-width final line the cursor starts a new row.
	if cur.Row == len(rows) {
		rows = append(rows, nil)
	}
	for i, row := range rows {
		if i == cur.Row && m.mode != ModeCommand {
			out = append(out, m.renderCursorRow(row, cur.Col))
			continue
		}
		out = append(out, string(row))
	}

	for len(out) < m.win.View.TextRows() {
		if m.showTildes {
			out = append(out, m.tildeStyle.Render("~"))
		} else {
			out = append(out, "")
		}
	}
	return out
}

func (m *Model) renderCursorRow(row []rune, col int) string {
	cells := make([]rune, max(len(row), col+1))
	for i := copy(cells, row); i < len(cells); i++ {
		cells[i] = ' '
	}
	return string(cells[:col]) + m.cursorStyle.Render(string(cells[col])) + string(cells[col+1:])
}

func (m *Model) renderStatusLine() string {
	cols := m.win.View.Cols

	switch {
	case m.mode == ModeCommand:
		text := fit(":"+string(m.command), cols-1)
		return m.commandStyle.Render(text) + m.cursorStyle.Render(" ") +
			strings.Repeat(" ", max(cols-1-runewidth.StringWidth(text), 0))
	case m.debug:
		return m.debugStyle.Render(fill(m.debugText(), cols))
	case m.statusError:
		return m.errorStyle.Render(fill(m.status, cols))
	}
	return m.statusStyle.Render(fill(m.status, cols))
}

// debugText describes the cursor and window and counts logged warnings and
// errors, followed by the status message and the most recent log entry.
func (m *Model) debugText() string {
	text := fmt.Sprintf("Cursor: [%d,%d] line index: %d win topline: %d buf #lines: %d",
		m.win.Cursor.Row, m.win.Cursor.Col, m.buf.CurrentLine(), m.win.View.Top, m.buf.LineCount())
	if m.win.Skip > 0 {
		text += fmt.Sprintf(" skip: %d", m.win.Skip)
	}
	if warn, errs := logger.Counts(); warn+errs > 0 {
		text += fmt.Sprintf(" warn: %d err: %d", warn, errs)
	}
	if m.status != "" {
		text += " | " + m.status
	}
	if e, ok := logger.Latest(); ok {
		text += " | " + e.Format()
	}
	return text
}

// fit truncates s to width cells without padding.
func fit(s string, width int) string {
	return runewidth.Truncate(s, max(width, 0), "")
}

// fill truncates or pads s to exactly width cells.
func fill(s string, width int) string {
	return runewidth.FillRight(fit(s, width), max(width, 0))
}
