package tui

import "strings"

func (a *App) renderHelp() string {
	var b strings.Builder

	// Title
	b.WriteString(a.centered(styleTitle.Render("Help")))
	b.WriteString("\n\n")

	about := []string{
		"  Type a role and up to four highlights, then",
		"  press Enter on Generate. Empty highlights are",
		"  skipped but keep their number in the prompt.",
	}
	aboutBox := styleBox.Copy().
		Width(54).
		Render(strings.Join(about, "\n"))
	b.WriteString(a.centered(aboutBox))
	b.WriteString("\n\n")

	// Keyboard shortcuts
	shortcuts := []string{
		"  Tab, Down      Next field",
		"  Shift+Tab, Up  Previous field",
		"  Enter          Next field / Generate",
		"  Ctrl+S         Settings",
		"  F1             This help",
		"  Esc            Go back / Quit",
		"  Ctrl+C         Quit",
	}

	b.WriteString(a.centered(styleSubtitle.Render("Keyboard Shortcuts")))
	b.WriteString("\n\n")

	shortcutsBox := styleBox.Copy().
		Width(54).
		Render(strings.Join(shortcuts, "\n"))
	b.WriteString(a.centered(shortcutsBox))
	b.WriteString("\n\n")

	// Instructions
	b.WriteString(a.centered(styleStatusBar.Render("[Esc] Back")))

	return a.centerVertically(b.String())
}
