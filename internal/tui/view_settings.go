package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sant0-9/cvgen/internal/config"
)

func (a *App) renderSettings() string {
	var b strings.Builder

	// Title
	title := styleTitle.Render("Settings")
	b.WriteString(a.centered(title))
	b.WriteString("\n\n")

	configLines := []string{
		fmt.Sprintf("  API Key:     %s", a.state.config.MaskedAPIKey()),
		fmt.Sprintf("  Temperature: %.2f", a.state.config.Temperature),
	}
	if a.state.config.Timeout > 0 {
		configLines = append(configLines, fmt.Sprintf("  Timeout:     %s", a.state.config.Timeout))
	}

	configBox := styleBox.Copy().
		Width(50).
		Render(strings.Join(configLines, "\n"))
	b.WriteString(a.centered(configBox))
	b.WriteString("\n\n")

	b.WriteString(a.centered(styleSubtitle.Render("Model")))
	b.WriteString("\n")

	var lines []string
	for i, m := range config.Models {
		cursor := "  "
		if i == a.state.settingsSelected {
			cursor = "> "
		}
		// Mark current model
		current := ""
		if m.ID == a.state.config.Model {
			current = " (current)"
		}
		line := fmt.Sprintf("%s%-10s %s%s", cursor, m.Name, m.Description, current)
		if i == a.state.settingsSelected {
			line = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).Render(line)
		}
		lines = append(lines, line)
	}

	listBox := styleBox.Copy().
		Width(50).
		Render(strings.Join(lines, "\n"))
	b.WriteString(a.centered(listBox))
	b.WriteString("\n\n")

	instructions := styleStatusBar.Render("[Up/Down] Navigate  [Enter] Select  [k] API key  [Esc] Back")
	b.WriteString(a.centered(instructions))

	return a.centerVertically(b.String())
}
