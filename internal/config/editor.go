package config

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// EraseAuto selects the terminal's own erase character.
const EraseAuto = "auto"

// EditorConfig holds buffer limits and editing behaviour.
type EditorConfig struct {
	// MaxLines is the maximum number of lines in the buffer (default: 1000).
	MaxLines int `mapstructure:"max_lines" yaml:"max_lines"`

	// Capacity is the maximum number of characters in the buffer
	// (default: 8192).
	Capacity int `mapstructure:"capacity" yaml:"capacity"`

	// EraseChar is "auto", a character code such as 127 or 0x08, caret
	// notation such as ^H or ^?, or a single non-digit character.
	EraseChar string `mapstructure:"erase_char" yaml:"erase_char"`

	// ScrollOnLeft makes moving left scroll the cursor line back into view.
	ScrollOnLeft bool `mapstructure:"scroll_on_left" yaml:"scroll_on_left"`

	// ShowTildes marks rows past the end of the buffer with ~.
	ShowTildes bool `mapstructure:"show_tildes" yaml:"show_tildes"`
}

// DefaultEditorConfig returns default editor configuration.
func DefaultEditorConfig() EditorConfig {
	return EditorConfig{
		MaxLines:   1000,
		Capacity:   8192,
		EraseChar:  EraseAuto,
		ShowTildes: true,
	}
}

// EraseRune resolves EraseChar. auto is true when the terminal setting
// should be used instead.
func (c EditorConfig) EraseRune() (r rune, auto bool, err error) {
	s := strings.TrimSpace(c.EraseChar)
	if s == "" || strings.EqualFold(s, EraseAuto) {
		return 0, true, nil
	}

	if len(s) == 2 && s[0] == '^' {
		ch := s[1]
		if ch == '?' {
			return 0x7f, false, nil
		}
		if ch >= 'a' && ch <= 'z' {
			ch -= 'a' - 'A'
		}
		if ch < '@' || ch > '_' {
			return 0, false, fmt.Errorf("invalid caret notation %q", s)
		}
		return rune(ch & 0x1f), false, nil
	}

	if s[0] >= '0' && s[0] <= '9' {
		n, perr := strconv.ParseInt(s, 0, 32)
		if perr != nil || n <= 0 || n > utf8.MaxRune {
			return 0, false, fmt.Errorf("invalid erase character %q", s)
		}
		return rune(n), false, nil
	}

	if utf8.RuneCountInString(s) != 1 {
		return 0, false, fmt.Errorf("invalid erase character %q", s)
	}
	r, _ = utf8.DecodeRuneInString(s)
	return r, false, nil
}
