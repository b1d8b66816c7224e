// Package style defines the colours and text styles of the migration CLI so
// that tables, summaries and hints share one look.
//
// Call Init(colorEnabled) once at startup.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
)

var (
	Blue   = lipgloss.Color("#0078D4")
	Cyan   = lipgloss.Color("#00B4D8")
	Green  = lipgloss.Color("#22C55E")
	Yellow = lipgloss.Color("#FACC15")
	Red    = lipgloss.Color("#EF4444")
	Indigo = lipgloss.Color("#6366F1")

	White  = lipgloss.Color("#FAFAFA")
	Dim    = lipgloss.Color("#6B7280")
	Subtle = lipgloss.Color("#374151")
)

var (
	// Title is used for the report heading.
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Blue)

	Success = lipgloss.NewStyle().
		Foreground(Green).
		Bold(true)

	Warning = lipgloss.NewStyle().
		Foreground(Yellow)

	Error = lipgloss.NewStyle().
		Foreground(Red).
		Bold(true)

	Hacked = lipgloss.NewStyle().
		Foreground(Indigo)

	DimText = lipgloss.NewStyle().
		Foreground(Dim)
)

// Enabled tracks whether styles should render ANSI output.
// When false, all styles degrade to plain text.
var Enabled = true

// Init configures lipgloss and pterm together.
func Init(colorEnabled bool) {
	Enabled = colorEnabled
	if colorEnabled {
		pterm.EnableStyling()
		return
	}
	lipgloss.SetColorProfile(termenv.Ascii)
	pterm.DisableStyling()
}

// Hint renders a "next step" hint message.
func Hint(msg string) string {
	return DimText.Render("→ " + msg)
}
