package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sant0-9/cvgen/internal/llm"
	"github.com/sant0-9/cvgen/internal/profile"
)

// errorTitle names the kind of failure
func errorTitle(err error) string {
	switch {
	case errors.Is(err, llm.ErrInvalidModel):
		return "Invalid model"
	case errors.Is(err, profile.ErrInvalidInput):
		return "Invalid input"
	case errors.Is(err, llm.ErrRequestFailed):
		return "Request Failed"
	case errors.Is(err, llm.ErrMalformedResponse):
		return "Malformed Response"
	case errors.Is(err, llm.ErrTransport):
		return "Connection failed"
	default:
		return "Something went wrong"
	}
}

// errorSuggestions returns hints based on the error kind
func errorSuggestions(err error) []string {
	var rf *llm.RequestFailedError
	switch {
	case errors.Is(err, llm.ErrInvalidModel):
		return []string{"Pick large, grande or jumbo", "Press [s] to open settings"}
	case errors.Is(err, profile.ErrInvalidInput):
		return []string{"Shorten the field and try again"}
	case errors.As(err, &rf) && (rf.StatusCode == 401 || rf.StatusCode == 403):
		return []string{"Check your API key in ~/.config/cvgen/config.yaml", "Or press [k] to enter a new key"}
	case errors.As(err, &rf) && rf.StatusCode == 429:
		return []string{"You've hit the API rate limit", "Wait a moment and try again"}
	case errors.Is(err, llm.ErrRequestFailed), errors.Is(err, llm.ErrMalformedResponse):
		return []string{"The completion API may be having trouble", "Press [r] to retry"}
	case errors.Is(err, context.DeadlineExceeded):
		return []string{"The request timed out", "Raise timeout in the config file"}
	case errors.Is(err, llm.ErrTransport):
		return []string{"Check your internet connection"}
	case strings.Contains(strings.ToLower(err.Error()), "api key"):
		return []string{"Press [k] to enter your API key"}
	}
	return nil
}

func (a *App) renderError() string {
	var b strings.Builder

	err := a.state.generateError
	if err == nil {
		err = errors.New("unknown error")
	}

	// Error title
	title := lipgloss.NewStyle().
		Foreground(colorError).
		Bold(true).
		Render(errorTitle(err))
	b.WriteString(a.centered(title))
	b.WriteString("\n\n")

	errBox := styleBox.Copy().
		Width(min(60, a.width-4)).
		BorderForeground(colorError).
		Render(err.Error())
	b.WriteString(a.centered(errBox))
	b.WriteString("\n\n")

	if suggestions := errorSuggestions(err); len(suggestions) > 0 {
		suggBox := styleBox.Copy().
			Width(min(60, a.width-4)).
			BorderForeground(colorMuted).
			Render("Suggestions:\n" + strings.Join(suggestions, "\n"))
		b.WriteString(a.centered(suggBox))
		b.WriteString("\n\n")
	}

	// Actions
	status := styleStatusBar.Render("[r] Retry  [s] Settings  [k] API key  [Esc] Back")
	b.WriteString(a.centered(status))

	return a.centerVertically(b.String())
}
