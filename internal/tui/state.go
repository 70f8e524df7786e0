package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sant0-9/cvgen/internal/config"
	"github.com/sant0-9/cvgen/internal/profile"
	"github.com/sant0-9/cvgen/internal/prompts"
)

const defaultRole = "Software Engineer"

type state struct {
	// Config
	config     *config.Config
	needsSetup bool

	// Setup / API key entry
	apiKeyInput textinput.Model
	setupReturn view

	// Form: fields[0] is the role, then the highlights.
	// focus == len(fields) means the Generate button.
	fields []textinput.Model
	focus  int

	// Settings
	settingsSelected int

	// Processing
	processing bool
	generation int
	stage      profile.Stage
	spinner    spinner.Model
	cancel     context.CancelFunc

	// Result
	result *profile.Result
	copied bool

	// Errors
	generateError error
	setupError    error

	generator *profile.Generator
}

func newState() *state {
	apiKey := textinput.New()
	apiKey.Placeholder = "Paste your AI21 API key here..."
	apiKey.EchoMode = textinput.EchoPassword
	apiKey.CharLimit = 200
	apiKey.Width = 50

	role := textinput.New()
	role.Placeholder = "e.g. Software Engineer"
	role.CharLimit = profile.MaxRoleLength
	role.Width = 40
	role.SetValue(defaultRole)

	fields := []textinput.Model{role}
	for n := 0; n < prompts.MaxHighlights; n++ {
		h := textinput.New()
		h.Placeholder = fmt.Sprintf("Highlight #%d", n+1)
		h.CharLimit = profile.MaxHighlightLength
		h.Width = 62
		fields = append(fields, h)
	}

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = sp.Style.Foreground(colorSecondary)

	return &state{
		apiKeyInput: apiKey,
		fields:      fields,
		spinner:     sp,
	}
}

func (s *state) role() string {
	return s.fields[0].Value()
}

func (s *state) highlights() []string {
	out := make([]string, 0, len(s.fields)-1)
	for _, f := range s.fields[1:] {
		out = append(out, f.Value())
	}
	return out
}

func (s *state) request() profile.Request {
	return profile.Request{
		Role:        s.role(),
		Highlights:  s.highlights(),
		Model:       s.config.Model,
		Temperature: s.config.Temperature,
	}
}

func (s *state) onButton() bool {
	return s.focus == len(s.fields)
}

func (s *state) resetForm() {
	for i := range s.fields {
		s.fields[i].Reset()
	}
	s.fields[0].SetValue(defaultRole)
	s.result = nil
	s.copied = false
	s.generateError = nil
}
