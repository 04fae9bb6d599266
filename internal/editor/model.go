// Package editor implements simplevi's modal editor as a Bubble Tea model.
//
// The model owns a text buffer and a window onto it. Normal mode moves the
// cursor, insert mode feeds typed characters to the buffer, and command mode
// collects a last-line command such as :w file or :q.
package editor

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/willibrandon/simplevi/internal/logger"
	"github.com/willibrandon/simplevi/internal/screen"
	"github.com/willibrandon/simplevi/internal/textbuf"
)

// Mode represents the current mode of the editor
type Mode int

const (
	// ModeNormal is the default mode for navigation
	ModeNormal Mode = iota
	// ModeInsert is for typing text into the buffer
	ModeInsert
	// ModeCommand is for entering a command after the ':' prompt
	ModeCommand
)

// String returns the string representation of the editor mode
func (m Mode) String() string {
	return [...]string{"NORMAL", "INSERT", "COMMAND"}[m]
}

// Status line texts.
const (
	insertIndicator = "---INSERT---"
	msgInterrupt    = "You typed Control-C."
	msgEOF          = "You typed Control-D."
	msgHelp         = "This is the Help Command. Not much help, sorry!"
	msgUnhandled    = "This input not yet implemented."
)

// Model is the editor state. Create it with New.
type Model struct {
	buf  *textbuf.Buffer
	win  *screen.Window
	keys KeyMap

	mode    Mode
	command []rune // command line input, without the ':'

	status      string
	statusError bool
	quitting    bool

	debug      bool
	showTildes bool

	cursorStyle  lipgloss.Style
	tildeStyle   lipgloss.Style
	statusStyle  lipgloss.Style
	errorStyle   lipgloss.Style
	commandStyle lipgloss.Style
	debugStyle   lipgloss.Style
}

// options holds configuration options for creating a new editor
type options struct {
	Limits       textbuf.Limits
	Rows, Cols   int
	ScrollOnLeft bool
	ShowTildes   bool
	Debug        bool
	KeyMap       KeyMap
	CursorStyle  lipgloss.Style
	StatusStyle  lipgloss.Style
}

// Option is a function that modifies the editor options
type Option func(*options)

// WithLimits sets the buffer limits and erase character.
func WithLimits(l textbuf.Limits) Option {
	return func(o *options) { o.Limits = l }
}

// WithSize sets the initial terminal size. Bubble Tea reports the real size
// with a WindowSizeMsg once the program starts.
func WithSize(rows, cols int) Option {
	return func(o *options) { o.Rows, o.Cols = rows, cols }
}

// WithScrollOnLeft makes moving left scroll like the other motions.
func WithScrollOnLeft(enabled bool) Option {
	return func(o *options) { o.ScrollOnLeft = enabled }
}

// WithShowTildes marks rows past the end of the buffer with ~.
func WithShowTildes(enabled bool) Option {
	return func(o *options) { o.ShowTildes = enabled }
}

// WithDebug replaces the status line with cursor diagnostics.
func WithDebug(enabled bool) Option {
	return func(o *options) { o.Debug = enabled }
}

// WithKeyMap replaces the default key bindings.
func WithKeyMap(km KeyMap) Option {
	return func(o *options) { o.KeyMap = km }
}

// WithCursorStyle sets the style of the cursor cell.
func WithCursorStyle(s lipgloss.Style) Option {
	return func(o *options) { o.CursorStyle = s }
}

// WithStatusStyle sets the style of ordinary status messages.
func WithStatusStyle(s lipgloss.Style) Option {
	return func(o *options) { o.StatusStyle = s }
}

// New creates an editor with an empty buffer.
func New(opts ...Option) *Model {
	o := &options{
		Limits:      textbuf.DefaultLimits(),
		Rows:        24,
		Cols:        80,
		ShowTildes:  true,
		KeyMap:      DefaultKeyMap(),
		CursorStyle: cursorStyle,
		StatusStyle: statusStyle,
	}
	for _, opt := range opts {
		opt(o)
	}

	win := screen.NewWindow(o.Rows, o.Cols)
	win.ScrollOnLeft = o.ScrollOnLeft

	return &Model{
		buf:          textbuf.New(o.Limits),
		win:          win,
		keys:         o.KeyMap,
		mode:         ModeNormal,
		debug:        o.Debug,
		showTildes:   o.ShowTildes,
		cursorStyle:  o.CursorStyle,
		tildeStyle:   tildeStyle,
		statusStyle:  o.StatusStyle,
		errorStyle:   errorStyle,
		commandStyle: commandStyle,
		debugStyle:   debugStyle,
	}
}

// Buffer returns the text buffer.
func (m *Model) Buffer() *textbuf.Buffer { return m.buf }

// Window returns the viewport and screen cursor.
func (m *Model) Window() *screen.Window { return m.win }

// Mode returns the current editor mode.
func (m *Model) Mode() Mode { return m.mode }

// Status returns the status message.
func (m *Model) Status() string { return m.status }

// Init is part of the tea.Model interface
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the editor state
// This is part of the tea.Model interface
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKeypress(msg)
	case tea.WindowSizeMsg:
		d := m.win.Resize(m.buf, msg.Height, msg.Width)
		logger.Debug("window resized", "rows", msg.Height, "cols", msg.Width, "scrolled", d.Direction.String())
	case writtenMsg:
		return m, m.handleWritten(msg)
	}
	return m, nil
}

// handleKeypress processes keyboard input based on the current editor mode
func (m *Model) handleKeypress(msg tea.KeyMsg) tea.Cmd {
	switch m.mode {
	case ModeInsert:
		m.handleInsert(msg)
	case ModeCommand:
		return m.handleCommandLine(msg)
	default:
		m.handleNormal(msg)
	}
	return nil
}

func (m *Model) handleNormal(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Insert):
		m.mode = ModeInsert
		m.setStatus(insertIndicator)
	case key.Matches(msg, m.keys.Command):
		m.mode = ModeCommand
		m.command = m.command[:0]
	case key.Matches(msg, m.keys.Interrupt):
		m.setStatus(msgInterrupt)
	case key.Matches(msg, m.keys.EOF):
		m.setStatus(msgEOF)
	case key.Matches(msg, m.keys.Help):
		m.setStatus(msgHelp)
	case key.Matches(msg, m.keys.Down):
		m.trace("down", m.win.MoveDown(m.buf))
	case key.Matches(msg, m.keys.Up):
		m.trace("up", m.win.MoveUp(m.buf))
	case key.Matches(msg, m.keys.Right):
		m.trace("right", m.win.MoveRight(m.buf))
	case key.Matches(msg, m.keys.Left):
		m.trace("left", m.win.MoveLeft(m.buf))
	default:
		if m.isErase(msg) {
			m.trace("left", m.win.MoveLeft(m.buf))
		}
	}
}

func (m *Model) handleInsert(msg tea.KeyMsg) {
	if key.Matches(msg, m.keys.Escape) {
		m.mode = ModeNormal
		m.setStatus("")
		return
	}

	runes, ok := keyRunes(msg)
	if !ok {
		m.setStatus(msgUnhandled)
		return
	}
	for _, r := range runes {
		if !m.insert(r) {
			return
		}
	}
}

// insert stores one typed character and reports whether typing can go on.
func (m *Model) insert(r rune) bool {
	err := m.buf.Insert(r)
	if err == nil {
		m.win.Sync(m.buf)
		m.setStatus(insertIndicator)
		return true
	}

	limits := m.buf.Limits()
	switch {
	case errors.Is(err, textbuf.ErrOutOfLines):
		logger.Warn("line limit reached", "max_lines", limits.MaxLines)
		m.setStatus(fmt.Sprintf("You reached the maximum number of lines (%s). Exiting input mode.",
			humanize.Comma(int64(limits.MaxLines))))
		m.mode = ModeNormal
		return false

	case errors.Is(err, textbuf.ErrOutOfMemory):
		logger.Warn("buffer capacity reached", "capacity", limits.Capacity)
		m.setStatus(fmt.Sprintf("You reached the maximum buffer size (%s characters). Exiting input mode.",
			humanize.Comma(int64(limits.Capacity))))
		m.mode = ModeNormal
		return false
	}

	var insErr *textbuf.InsertError
	if errors.As(err, &insErr) && insErr.Char == m.buf.EraseChar() {
		m.trace("left", m.win.MoveLeft(m.buf))
		return true
	}
	logger.Debug("unhandled input", "error", err)
	m.setStatus(msgUnhandled)
	return false
}

func (m *Model) handleCommandLine(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Execute):
		return m.execute()
	case key.Matches(msg, m.keys.Escape):
		m.cancelCommand()
		return nil
	}

	runes, ok := keyRunes(msg)
	if !ok {
		return nil
	}
	for _, r := range runes {
		switch {
		case r == m.buf.EraseChar():
			if len(m.command) == 0 {
				m.cancelCommand()
				return nil
			}
			m.command = m.command[:len(m.command)-1]
		case r >= ' ' && r != 0x7f:
			m.command = append(m.command, r)
		}
	}
	return nil
}

func (m *Model) cancelCommand() {
	m.command = m.command[:0]
	m.mode = ModeNormal
	m.setStatus("")
}

// isErase reports whether msg is the terminal's erase character.
func (m *Model) isErase(msg tea.KeyMsg) bool {
	runes, ok := keyRunes(msg)
	return ok && len(runes) == 1 && runes[0] == m.buf.EraseChar()
}

func (m *Model) trace(motion string, d screen.Delta) {
	if d.Scrolled() {
		logger.Debug("scrolled", "motion", motion, "direction", d.Direction.String(),
			"lines", d.Lines, "rows", d.Rows, "top", m.win.View.Top)
	}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusError = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusError = true
}
