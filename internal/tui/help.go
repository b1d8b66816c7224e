// Package tui holds terminal presentation helpers for the cobra command tree.
package tui

import (
	"github.com/harness/nexus-migrate/internal/style"

	"github.com/charmbracelet/lipgloss"
)

// StyledHelpTemplate returns a Cobra usage template whose fixed headings are
// styled with lipgloss. Command and flag names stay plain because the
// template engine fills them in after styling. An empty string means colour
// is off and the Cobra default should be kept.
func StyledHelpTemplate() string {
	if !style.Enabled {
		return ""
	}

	heading := lipgloss.NewStyle().Bold(true).Foreground(style.Cyan).Render
	dim := lipgloss.NewStyle().Foreground(style.Dim).Render

	return heading("Usage") + `:{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}
` + `{{if .HasExample}}
` + heading("Examples") + `
{{.Example | trimTrailingWhitespaces}}
{{end}}` + `{{if .HasAvailableSubCommands}}
` + heading("Available Commands") + `{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }}  {{.Short}}{{end}}{{end}}
{{end}}` + `{{if .HasAvailableLocalFlags}}
` + heading("Flags") + `
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}
{{end}}` + `{{if .HasAvailableInheritedFlags}}
` + heading("Global Flags") + `
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}
{{end}}` + `{{if .HasAvailableSubCommands}}
` + dim(`Use "{{.CommandPath}} [command] --help" for more information about a command.`) + `
{{end}}`
}
