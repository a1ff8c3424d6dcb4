package viz

import "github.com/charmbracelet/lipgloss"

// styles holds the lipgloss styles derived from a theme.
type styles struct {
	field  lipgloss.Style
	curve  lipgloss.Style
	header lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	status lipgloss.Style
	err    lipgloss.Style
	panel  lipgloss.Style
	title  lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		field:  lipgloss.NewStyle().Foreground(t.Field),
		curve:  lipgloss.NewStyle().Foreground(t.Curve).Bold(true),
		header: lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		label:  lipgloss.NewStyle().Foreground(t.Muted),
		value:  lipgloss.NewStyle().Foreground(t.Text),
		status: lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		err:    lipgloss.NewStyle().Foreground(t.Error).Bold(true),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(0, 1),
		title: lipgloss.NewStyle().Foreground(t.Accent).Bold(true).MarginBottom(1),
	}
}
