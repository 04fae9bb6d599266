package editor

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap defines the editor's named key bindings. Characters typed in
// insert mode and on the command line are not bindings; they go through
// keyRunes.
type KeyMap struct {
	// Mode changes
	Insert  key.Binding
	Command key.Binding
	Escape  key.Binding
	Execute key.Binding

	// Motion (normal mode)
	Left  key.Binding
	Down  key.Binding
	Up    key.Binding
	Right key.Binding

	// Control characters with a canned reply
	Interrupt key.Binding
	EOF       key.Binding
	Help      key.Binding
}

// DefaultKeyMap returns the vi-style default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Insert: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "insert mode"),
		),
		Command: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "command line"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "normal mode"),
		),
		Execute: key.NewBinding(
			key.WithKeys("enter", "ctrl+j"),
			key.WithHelp("enter", "run command"),
		),

		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("←/h", "left"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", " ", "right"),
			key.WithHelp("→/l", "right"),
		),

		Interrupt: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
		EOF: key.NewBinding(
			key.WithKeys("ctrl+d"),
		),
		Help: key.NewBinding(
			key.WithKeys("ctrl+h"),
			key.WithHelp("ctrl+h", "help"),
		),
	}
}

// keyRunes translates a key message into the characters a terminal in
// non-canonical mode would have delivered. Enter becomes a newline and
// Backspace becomes DEL. ok is false for keys with no character form, such
// as arrows and function keys, and for Alt combinations.
func keyRunes(msg tea.KeyMsg) (runes []rune, ok bool) {
	if msg.Alt {
		return nil, false
	}
	switch msg.Type {
	case tea.KeyRunes:
		return msg.Runes, len(msg.Runes) > 0
	case tea.KeySpace:
		return []rune{' '}, true
	case tea.KeyEnter, tea.KeyCtrlJ:
		return []rune{'\n'}, true
	case tea.KeyBackspace:
		return []rune{0x7f}, true
	}
	// Remaining control keys carry their ASCII code as the key type.
	if msg.Type >= tea.KeyNull && msg.Type <= tea.KeyCtrlUnderscore {
		return []rune{rune(msg.Type)}, true
	}
	return nil, false
}
