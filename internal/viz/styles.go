package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("#444466"))

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	StatusRunning = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff88"))

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 1)
)

// ice thickness color ramp, thin to thick
var rampColors = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(lipgloss.Color("#223355")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#3366aa")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#44aadd")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#88ddff")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")),
}

// ProgressBar renders a bar filled to percent of width characters.
func ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return StatusRunning.Render(bar)
}
