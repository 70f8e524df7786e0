package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sant0-9/cvgen/internal/profile"
)

func (a *App) renderProcessing() string {
	var b strings.Builder

	// Title
	title := styleTitle.Render("Generating")
	b.WriteString(a.centered(title))
	b.WriteString("\n\n")

	// What was asked
	if role := a.state.role(); role != "" {
		b.WriteString(a.centered(styleSubtitle.Render("> " + truncate(role, 55))))
		b.WriteString("\n\n")
	}

	// Progress stages
	stages := []profile.Stage{profile.StageBuilding, profile.StageRequesting}

	var stageLines []string
	for _, stage := range stages {
		var icon string
		var style lipgloss.Style

		if stage < a.state.stage {
			// Completed
			icon = "[x]"
			style = lipgloss.NewStyle().Foreground(colorSuccess)
		} else if stage == a.state.stage {
			// Current
			icon = "[" + a.state.spinner.View() + "]"
			style = lipgloss.NewStyle().Foreground(colorSecondary).Bold(true)
		} else {
			// Pending
			icon = "[ ]"
			style = lipgloss.NewStyle().Foreground(colorMuted)
		}

		stageLines = append(stageLines, style.Render(fmt.Sprintf("  %s  %-22s", icon, stage)))
	}

	stagesBox := styleBox.Copy().
		Width(min(60, a.width-4)).
		Render(strings.Join(stageLines, "\n"))
	b.WriteString(a.centered(stagesBox))
	b.WriteString("\n\n")

	b.WriteString(a.centered(styleStatusBar.Render("[Esc] Cancel")))

	return a.centerVertically(b.String())
}
