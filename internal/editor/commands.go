package editor

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/willibrandon/simplevi/internal/logger"
)

// Command is a parsed last-line command.
type Command struct {
	Write bool
	Quit  bool
	File  string
}

// ParseError is returned for input that is not an editor command.
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf(": %s Not an editor command", e.Input)
}

// ParseCommand parses the text typed after ':'. It accepts q, w <file> and
// wq <file>, with any amount of surrounding space. Blank input is a valid
// command that does nothing.
func ParseCommand(input string) (Command, error) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return Command{}, nil
	}

	var cmd Command
	switch fields[0] {
	case "q":
		cmd.Quit = true
		if len(fields) != 1 {
			return Command{}, &ParseError{Input: input}
		}
		return cmd, nil
	case "w":
		cmd.Write = true
	case "wq":
		cmd.Write, cmd.Quit = true, true
	default:
		return Command{}, &ParseError{Input: input}
	}

	if len(fields) != 2 {
		return Command{}, &ParseError{Input: input}
	}
	cmd.File = fields[1]
	return cmd, nil
}

// writtenMsg reports the outcome of a :w or :wq.
type writtenMsg struct {
	path  string
	lines int
	chars int
	quit  bool
	err   error
}

// writeCmd writes a snapshot of the buffer in the background.
func writeCmd(path, text string, quit bool) tea.Cmd {
	return func() tea.Msg {
		lines, chars, err := writeBuffer(path, text)
		return writtenMsg{path: path, lines: lines, chars: chars, quit: quit, err: err}
	}
}

// writeBuffer stores text at path, adding a final newline if it lacks one.
func writeBuffer(path, text string) (lines, chars int, err error) {
	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return 0, 0, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return strings.Count(text, "\n"), utf8.RuneCountInString(text), nil
}

func (m writtenMsg) status() string {
	return fmt.Sprintf("%q %sL, %sC written", m.path,
		humanize.Comma(int64(m.lines)), humanize.Comma(int64(m.chars)))
}

// execute runs the command line and returns to normal mode.
func (m *Model) execute() tea.Cmd {
	input := string(m.command)
	m.command = m.command[:0]
	m.mode = ModeNormal

	cmd, err := ParseCommand(input)
	if err != nil {
		logger.Debug("command rejected", "input", input)
		m.setError(err.Error())
		return nil
	}

	switch {
	case cmd.Write:
		logger.Debug("writing buffer", "path", cmd.File, "quit", cmd.Quit)
		return writeCmd(cmd.File, m.buf.Text(), cmd.Quit)
	case cmd.Quit:
		m.quitting = true
		return tea.Quit
	}
	m.setStatus("")
	return nil
}

func (m *Model) handleWritten(msg writtenMsg) tea.Cmd {
	log := logger.With("path", msg.path, "quit", msg.quit)
	if msg.err != nil {
		log.Error("write failed", "error", msg.err)
		m.setError(msg.err.Error())
		return nil
	}

	log.Info("buffer written", "lines", msg.lines, "chars", msg.chars)
	m.setStatus(msg.status())
	if msg.quit {
		m.quitting = true
		return tea.Quit
	}
	return nil
}
