package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/picalc/internal/ui"
)

var (
	panelStyle         lipgloss.Style
	panelTitleStyle    lipgloss.Style
	headerStyle        lipgloss.Style
	dimStyle           lipgloss.Style
	valueStyle         lipgloss.Style
	variantStyle       lipgloss.Style
	digitsStyle        lipgloss.Style
	errorStyle         lipgloss.Style
	statusRunningStyle lipgloss.Style
	statusPausedStyle  lipgloss.Style
	statusDoneStyle    lipgloss.Style
	cpuSparkStyle      lipgloss.Style
	memSparkStyle      lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds the styles from the active ui theme. Run calls it
// again after the theme has been initialized from the configuration.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()
	fg := func(c lipgloss.TerminalColor) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text).
		Padding(0, 1)
	panelTitleStyle = fg(t.Accent).Bold(true)
	headerStyle = fg(t.Accent).Bold(true).Padding(0, 1)
	dimStyle = fg(t.Dim)
	valueStyle = fg(t.Accent).Bold(true)
	variantStyle = fg(t.Accent)
	digitsStyle = fg(t.Success)
	errorStyle = fg(t.Error)
	statusRunningStyle = fg(t.Success).Bold(true)
	statusPausedStyle = fg(t.Warning).Bold(true)
	statusDoneStyle = fg(t.Accent).Bold(true)
	cpuSparkStyle = fg(t.Accent)
	memSparkStyle = fg(t.Warning)
}
