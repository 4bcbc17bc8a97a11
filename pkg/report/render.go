package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Renderer renders reports as styled terminal text. With color disabled
// (non-terminal stdout, CI logs) the same layout is produced without
// ANSI styling.
type Renderer struct {
	title     lipgloss.Style
	label     lipgloss.Style
	value     lipgloss.Style
	converged lipgloss.Style
	warning   lipgloss.Style
}

// NewRenderer creates a renderer. Pass color=false when stdout is not a
// terminal.
func NewRenderer(color bool) *Renderer {
	if !color {
		plain := lipgloss.NewStyle()
		return &Renderer{title: plain, label: plain, value: plain, converged: plain, warning: plain}
	}
	return &Renderer{
		title:     lipgloss.NewStyle().Bold(true),
		label:     lipgloss.NewStyle().Faint(true),
		value:     lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		converged: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		warning:   lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
	}
}

// Render formats a report for humans.
func (r *Renderer) Render(rep *Report) string {
	var sb strings.Builder

	sb.WriteString(r.title.Render(fmt.Sprintf("Shrink result: %s", rep.TestName)))
	sb.WriteString("\n\n")

	rows := []struct {
		label string
		value string
	}{
		{"Original", rep.Original},
		{"Shrunk", rep.Shrunk},
		{"Steps", fmt.Sprintf("%d", rep.Steps)},
		{"Duration", rep.Duration.String()},
	}
	if rep.Seed != 0 {
		rows = append(rows, struct{ label, value string }{"Seed", fmt.Sprintf("%d", rep.Seed)})
	}
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("  %s %s\n", r.label.Render(row.label+":"), r.value.Render(row.value)))
	}

	sb.WriteString("\n")
	if rep.Converged {
		sb.WriteString(r.converged.Render("Fully converged: no further reduction possible."))
	} else {
		sb.WriteString(r.warning.Render("Terminated early by budget/timeout: a smaller counterexample may still exist."))
	}
	sb.WriteString("\n")

	return sb.String()
}
