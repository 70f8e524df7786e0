package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sant0-9/cvgen/internal/config"
	"github.com/sant0-9/cvgen/internal/llm"
	"github.com/sant0-9/cvgen/internal/prompts"
)

func fieldLabel(i int) string {
	if i == 0 {
		return "Role"
	}
	return fmt.Sprintf("Highlight #%d (experience / skill / ambition / etc.)", i)
}

func (a *App) renderForm() string {
	var b strings.Builder
	boxWidth := min(70, a.width-4)

	b.WriteString(a.centered(styleTitle.Render("CV Profile Generator")))
	b.WriteString("\n")
	b.WriteString(a.centered(styleSubtitle.Render("Using AI21 Studio")))
	b.WriteString("\n\n")
	b.WriteString(a.centered(lipgloss.NewStyle().Foreground(colorWhite).Bold(true).Render("Enter a role and up to 4 skills:")))
	b.WriteString("\n\n")

	for i, f := range a.state.fields {
		labelStyle := styleSubtitle
		box := styleBox.Copy().Width(boxWidth)
		if i == a.state.focus {
			labelStyle = lipgloss.NewStyle().Foreground(colorSecondary).Bold(true)
			box = box.BorderForeground(colorSecondary)
		}
		b.WriteString(a.centered(lipgloss.NewStyle().Width(boxWidth).Render(labelStyle.Render(fieldLabel(i)))))
		b.WriteString("\n")
		b.WriteString(a.centered(box.Render(f.View())))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	button := styleButton
	if a.state.onButton() {
		button = styleButtonFocused
	}
	b.WriteString(a.centered(button.Render("Generate")))
	b.WriteString("\n\n")

	// Prompt preview line
	numbered := prompts.NumberedHighlights(a.state.highlights())
	tokens, fits := promptBudget(prompts.BuildProfilePrompt(a.state.role(), a.state.highlights()), llm.MaxTokens)
	budget := fmt.Sprintf("%d highlights  ~%d prompt tokens", len(numbered), tokens)
	budgetStyle := styleSubtitle
	if !fits {
		budgetStyle = lipgloss.NewStyle().Foreground(colorError)
		budget += " (too long for the model)"
	}
	b.WriteString(a.centered(budgetStyle.Render(budget)))
	b.WriteString("\n")

	modelName := a.state.config.Model
	if m := config.GetModel(modelName); m != nil {
		modelName = m.Name
	}
	model := styleSubtitle.Render(fmt.Sprintf("%s  temperature %.1f", modelName, a.state.config.Temperature))
	b.WriteString(a.centered(model))
	b.WriteString("\n\n")

	status := styleStatusBar.Render("[Tab/Enter] Next  [Enter on Generate] Submit  [Ctrl+S] Settings  [F1] Help  [Esc] Quit")
	b.WriteString(a.centered(status))

	return a.centerVertically(b.String())
}
