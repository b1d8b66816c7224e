package progress

import (
	"fmt"
	"io"
	"sync"

	"github.com/harness/nexus-migrate/internal/style"
	"github.com/harness/nexus-migrate/internal/terminal"

	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"
)

// NewAutoReporter returns a SpinnerReporter when the terminal can redraw
// lines, a StyledReporter when it only supports colour and the plain
// ConsoleReporter otherwise.
func NewAutoReporter(info terminal.Info, out io.Writer) Reporter {
	switch {
	case info.LiveOutput:
		return NewSpinnerReporter()
	case info.ColorEnabled:
		return NewStyledReporter(out)
	default:
		return NewConsoleReporter(out)
	}
}

var (
	startStyle   = lipgloss.NewStyle().Bold(true).Foreground(style.Cyan)
	stepStyle    = lipgloss.NewStyle().Foreground(style.Dim).PaddingLeft(2)
	errorStyle   = lipgloss.NewStyle().Foreground(style.Red).Bold(true).PaddingLeft(2)
	successStyle = lipgloss.NewStyle().Foreground(style.Green).Bold(true).PaddingLeft(2)
)

// StyledReporter implements Reporter with lipgloss styled lines.
type StyledReporter struct {
	out io.Writer
}

// NewStyledReporter creates a reporter with lipgloss-styled output.
func NewStyledReporter(out io.Writer) *StyledReporter {
	return &StyledReporter{out: out}
}

func (r *StyledReporter) Start(message string) {
	fmt.Fprintln(r.out, startStyle.Render("⚡ "+message+"..."))
}

func (r *StyledReporter) Step(message string) {
	fmt.Fprintln(r.out, stepStyle.Render("→ "+message))
}

func (r *StyledReporter) Error(message string) {
	fmt.Fprintln(r.out, errorStyle.Render("✗ "+message))
}

func (r *StyledReporter) Success(message string) {
	fmt.Fprintln(r.out, successStyle.Render("✓ "+message))
}

func (r *StyledReporter) End() {}

// SpinnerReporter keeps a single pterm spinner on the current line. Steps
// replace the spinner text; Success and Error stop it.
type SpinnerReporter struct {
	mu      sync.Mutex
	spinner *pterm.SpinnerPrinter
}

// NewSpinnerReporter creates a SpinnerReporter. Nothing is drawn until Start.
func NewSpinnerReporter() *SpinnerReporter {
	return &SpinnerReporter{}
}

func (r *SpinnerReporter) Start(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.spinner != nil {
		return
	}
	spinner, err := pterm.DefaultSpinner.WithRemoveWhenDone(false).Start(message)
	if err != nil {
		return
	}
	r.spinner = spinner
}

func (r *SpinnerReporter) Step(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.spinner != nil {
		r.spinner.UpdateText(message)
	}
}

func (r *SpinnerReporter) Error(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.spinner == nil {
		pterm.Error.Println(message)
		return
	}
	r.spinner.Fail(message)
	r.spinner = nil
}

func (r *SpinnerReporter) Success(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.spinner == nil {
		pterm.Success.Println(message)
		return
	}
	r.spinner.Success(message)
	r.spinner = nil
}

// End stops a spinner that was neither completed nor failed.
func (r *SpinnerReporter) End() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.spinner != nil {
		_ = r.spinner.Stop()
		r.spinner = nil
	}
}
