package editor

import "github.com/charmbracelet/lipgloss"

// Default styles for the editor components.
// These can be overridden using the With* option functions.
var (
	// cursorStyle draws the cell under the cursor in reverse video
	cursorStyle = lipgloss.NewStyle().Reverse(true)

	// tildeStyle marks rows past the end of the buffer
	tildeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "245", Dark: "242"})

	// statusStyle is used for ordinary status messages
	statusStyle = lipgloss.NewStyle()

	// errorStyle is used for rejected commands and failed writes
	errorStyle = lipgloss.NewStyle().Reverse(true)

	// commandStyle defines the appearance of the command line
	commandStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "3", Dark: "3"}).
			Bold(true)

	// debugStyle is used for the cursor diagnostics line
	debugStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "7", Dark: "8"}).
			Background(lipgloss.AdaptiveColor{Light: "8", Dark: "7"})
)
