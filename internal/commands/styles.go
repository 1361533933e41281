package commands

import "github.com/charmbracelet/lipgloss"

// Terminal colours for command output. Labels render with the colour
// stored on the label itself.
const (
	colorSuccess = "#22C55E"
	colorError   = "#EF4444"
	colorMuted   = "240"
	colorDone    = "#6D7383"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorSuccess))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(colorError))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(colorDone)).Strikethrough(true)
)

// renderLabel paints a label name in its stored #rrggbb colour.
func renderLabel(name, color string) string {
	if color == "" {
		return name
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(name)
}
