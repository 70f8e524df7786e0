package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const ai21SignupURL = "https://studio.ai21.com/account/api-key"

func (a *App) renderSetup() string {
	var b strings.Builder

	// Header
	b.WriteString(a.centered(styleTitle.Render("CV Profile Generator")))
	b.WriteString("\n\n")

	title := "Enter your AI21 Studio API key:"
	if !a.state.needsSetup {
		title = "Update your AI21 Studio API key:"
	}
	b.WriteString(a.centered(lipgloss.NewStyle().
		Foreground(colorWhite).
		Bold(true).
		Render(title)))
	b.WriteString("\n\n")

	// Signup link
	b.WriteString(a.centered(styleSubtitle.Render("Get one at: " + ai21SignupURL)))
	b.WriteString("\n\n")

	// Input
	inputBox := styleBox.Copy().
		Width(60).
		BorderForeground(colorSecondary).
		Render(a.state.apiKeyInput.View())
	b.WriteString(a.centered(inputBox))
	b.WriteString("\n\n")

	if a.state.setupError != nil {
		errLine := lipgloss.NewStyle().Foreground(colorError).Render(a.state.setupError.Error())
		b.WriteString(a.centered(errLine))
		b.WriteString("\n\n")
	}

	// Instructions
	instructions := "[Enter] Save  [Esc] Back"
	if a.state.needsSetup {
		instructions = "[Enter] Save  [Esc] Quit"
	}
	b.WriteString(a.centered(styleStatusBar.Render(instructions)))

	return a.centerVertically(b.String())
}
