package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

func (a *App) renderResult() string {
	var b strings.Builder

	b.WriteString(a.centered(styleTitle.Render("Your CV Profile")))
	b.WriteString("\n")

	// Show what was asked
	asked := styleSubtitle.Render(fmt.Sprintf("> %s", a.state.role()))
	b.WriteString(a.centered(asked))
	b.WriteString("\n\n")

	result := ""
	if a.state.result != nil {
		result = a.state.result.Profile
	}
	if result == "" {
		result = styleSubtitle.Render("(the model returned an empty profile)")
	}

	resultBox := styleBox.Copy().
		Width(min(70, a.width-4)).
		BorderForeground(colorPrimary).
		Render(result)
	b.WriteString(a.centered(resultBox))
	b.WriteString("\n\n")

	if a.state.result != nil {
		meta := fmt.Sprintf("%s  %s", a.state.result.Model, a.state.result.Elapsed.Round(100*time.Millisecond))
		if a.state.result.FinishReason != "" {
			meta += "  " + a.state.result.FinishReason
		}
		b.WriteString(a.centered(styleSubtitle.Render(meta)))
		b.WriteString("\n\n")
	}

	if a.state.copied {
		copied := lipgloss.NewStyle().Foreground(colorSuccess).Render("Copied to clipboard")
		b.WriteString(a.centered(copied))
		b.WriteString("\n\n")
	}

	// Status bar
	status := styleStatusBar.Render("[c] Copy  [r] Regenerate  [n] New  [Esc] Edit")
	b.WriteString(a.centered(status))

	return a.centerVertically(b.String())
}
