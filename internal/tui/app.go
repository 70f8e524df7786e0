package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sant0-9/cvgen/internal/config"
	"github.com/sant0-9/cvgen/internal/llm"
	"github.com/sant0-9/cvgen/internal/profile"
)

type view int

const (
	viewForm view = iota
	viewSetup
	viewProcessing
	viewResult
	viewError
	viewSettings
	viewHelp
)

type App struct {
	width    int
	height   int
	view     view
	state    *state
	quitting bool
	program  *tea.Program

	// newProvider is swapped in tests
	newProvider func(*config.Config) (llm.Provider, error)

	// copy is swapped in tests
	copy func(string) error
}

// NewApp creates the terminal UI for an already resolved config
func NewApp(cfg *config.Config) *App {
	s := newState()
	s.config = cfg
	s.needsSetup = cfg.APIKey == ""

	return &App{
		view:        viewForm,
		state:       s,
		newProvider: llm.NewProvider,
		copy:        clipboard.WriteAll,
	}
}

// SetProgram lets generation progress be sent back to the running program
func (a *App) SetProgram(p *tea.Program) {
	a.program = p
}

func (a *App) Init() tea.Cmd {
	if a.state.needsSetup {
		a.view = viewSetup
		a.state.setupReturn = viewForm
		return tea.Batch(tea.WindowSize(), a.state.apiKeyInput.Focus())
	}

	if err := a.buildGenerator(); err != nil {
		a.state.generateError = err
		a.view = viewError
		return tea.WindowSize()
	}

	return tea.Batch(
		tea.WindowSize(),
		a.focusField(0),
	)
}

func (a *App) buildGenerator() error {
	provider, err := a.newProvider(a.state.config)
	if err != nil {
		return err
	}
	a.state.generator = profile.NewGenerator(provider, a.state.config.Model)
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd, handled := a.handleKey(msg)
		if handled {
			return a, cmd
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case setupCompleteMsg:
		a.state.needsSetup = false
		a.state.setupError = nil
		a.state.apiKeyInput.Reset()
		a.state.apiKeyInput.Blur()
		if err := a.buildGenerator(); err != nil {
			a.state.generateError = err
			a.view = viewError
			return a, nil
		}
		a.view = a.state.setupReturn
		if a.view == viewForm {
			return a, a.focusField(a.state.focus)
		}
		return a, nil

	case setupErrorMsg:
		a.state.setupError = msg.error
		return a, nil

	case stageMsg:
		if msg.id == a.state.generation {
			a.state.stage = msg.stage
		}
		return a, nil

	case generateDoneMsg:
		if msg.id != a.state.generation || !a.state.processing {
			return a, nil
		}
		a.state.processing = false
		a.state.cancel = nil
		a.state.result = msg.result
		a.state.copied = false
		a.view = viewResult
		return a, nil

	case generateErrorMsg:
		if msg.id != a.state.generation || !a.state.processing {
			// cancelled by the user
			return a, nil
		}
		a.state.processing = false
		a.state.cancel = nil
		a.state.generateError = msg.error
		a.view = viewError
		return a, nil

	case saveErrorMsg:
		a.state.generateError = msg.error
		a.view = viewError
		return a, nil

	case spinner.TickMsg:
		if !a.state.processing {
			return a, nil
		}
		var cmd tea.Cmd
		a.state.spinner, cmd = a.state.spinner.Update(msg)
		return a, cmd
	}

	// Update text inputs based on view
	switch a.view {
	case viewSetup:
		var cmd tea.Cmd
		a.state.apiKeyInput, cmd = a.state.apiKeyInput.Update(msg)
		cmds = append(cmds, cmd)
	case viewForm:
		if !a.state.onButton() {
			var cmd tea.Cmd
			a.state.fields[a.state.focus], cmd = a.state.fields[a.state.focus].Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return a, tea.Batch(cmds...)
}

// handleKey returns handled=false when the key should reach the focused input
func (a *App) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if key.Matches(msg, keys.Quit) {
		a.cancelGeneration()
		a.quitting = true
		return tea.Quit, true
	}

	switch a.view {
	case viewForm:
		return a.handleFormKey(msg)
	case viewSetup:
		return a.handleSetupKey(msg)
	case viewProcessing:
		if key.Matches(msg, keys.Back) {
			a.cancelGeneration()
			a.view = viewForm
			return a.focusField(a.state.focus), true
		}
		return nil, true
	case viewResult:
		return a.handleResultKey(msg), true
	case viewError:
		return a.handleErrorKey(msg), true
	case viewSettings:
		return a.handleSettingsKey(msg), true
	case viewHelp:
		if key.Matches(msg, keys.Back) || key.Matches(msg, keys.Help) {
			a.view = viewForm
			return a.focusField(a.state.focus), true
		}
		return nil, true
	}

	return nil, false
}

func (a *App) handleFormKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Back):
		a.quitting = true
		return tea.Quit, true

	case key.Matches(msg, keys.Help):
		a.view = viewHelp
		return nil, true

	case key.Matches(msg, keys.Settings):
		a.openSettings()
		return nil, true

	case key.Matches(msg, keys.Tab), key.Matches(msg, keys.Down):
		return a.focusField((a.state.focus + 1) % (len(a.state.fields) + 1)), true

	case key.Matches(msg, keys.ShiftTab), key.Matches(msg, keys.Up):
		n := len(a.state.fields) + 1
		return a.focusField((a.state.focus + n - 1) % n), true

	case key.Matches(msg, keys.Enter):
		if a.state.onButton() {
			return a.generate(), true
		}
		return a.focusField(a.state.focus + 1), true
	}

	return nil, false
}

func (a *App) handleSetupKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Back):
		if a.state.needsSetup {
			a.quitting = true
			return tea.Quit, true
		}
		a.state.apiKeyInput.Reset()
		a.state.apiKeyInput.Blur()
		a.state.setupError = nil
		a.view = a.state.setupReturn
		return nil, true

	case key.Matches(msg, keys.Enter):
		apiKey := strings.TrimSpace(a.state.apiKeyInput.Value())
		if apiKey == "" {
			a.state.setupError = fmt.Errorf("the API key must not be empty")
			return nil, true
		}
		a.state.config.SetAPIKey(apiKey)
		return a.saveConfig(), true
	}

	return nil, false
}

func (a *App) handleResultKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Back):
		a.view = viewForm
		return a.focusField(a.state.focus)
	}

	switch msg.String() {
	case "c":
		if a.state.result != nil {
			a.state.copied = a.copy(a.state.result.Profile) == nil
		}
	case "r":
		return a.generate()
	case "n":
		a.state.resetForm()
		a.view = viewForm
		return a.focusField(0)
	}
	return nil
}

func (a *App) handleErrorKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Back):
		a.view = viewForm
		return a.focusField(a.state.focus)
	}

	switch msg.String() {
	case "r":
		if a.state.generator != nil {
			return a.generate()
		}
	case "s":
		a.openSettings()
	case "k":
		return a.openAPIKeyEntry(viewForm)
	}
	return nil
}

func (a *App) handleSettingsKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Back):
		a.view = viewForm
		return a.focusField(a.state.focus)
	case key.Matches(msg, keys.Up):
		if a.state.settingsSelected > 0 {
			a.state.settingsSelected--
		}
	case key.Matches(msg, keys.Down):
		if a.state.settingsSelected < len(config.Models)-1 {
			a.state.settingsSelected++
		}
	case key.Matches(msg, keys.Enter):
		a.state.config.Model = config.Models[a.state.settingsSelected].ID
		if a.state.config.APIKey != "" {
			if err := a.buildGenerator(); err != nil {
				a.state.generateError = err
				a.view = viewError
				return nil
			}
		}
		return a.saveSettings()
	}

	if msg.String() == "k" {
		return a.openAPIKeyEntry(viewSettings)
	}
	return nil
}

func (a *App) openSettings() {
	a.state.settingsSelected = 0
	for i, m := range config.Models {
		if m.ID == a.state.config.Model {
			a.state.settingsSelected = i
		}
	}
	a.blurFields()
	a.view = viewSettings
}

func (a *App) openAPIKeyEntry(back view) tea.Cmd {
	a.state.setupReturn = back
	a.state.setupError = nil
	a.view = viewSetup
	return a.state.apiKeyInput.Focus()
}

// focusField moves the cursor to field i, or to the Generate button
func (a *App) focusField(i int) tea.Cmd {
	if i > len(a.state.fields) {
		i = len(a.state.fields)
	}
	a.state.focus = i
	a.blurFields()
	if a.state.onButton() {
		return nil
	}
	return a.state.fields[i].Focus()
}

func (a *App) blurFields() {
	for i := range a.state.fields {
		a.state.fields[i].Blur()
	}
}

// generate starts one completion request in the background
func (a *App) generate() tea.Cmd {
	if a.state.generator == nil || a.state.processing {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	a.state.generation++
	id := a.state.generation
	a.state.cancel = cancel
	a.state.processing = true
	a.state.stage = profile.StageBuilding
	a.state.generateError = nil
	a.blurFields()
	a.view = viewProcessing

	gen := a.state.generator
	req := a.state.request()
	program := a.program
	req.OnProgress = func(s profile.Stage) {
		if program != nil {
			program.Send(stageMsg{id: id, stage: s})
		}
	}

	run := func() tea.Msg {
		defer cancel()
		res, err := gen.Generate(ctx, req)
		if err != nil {
			return generateErrorMsg{id: id, error: err}
		}
		return generateDoneMsg{id: id, result: res}
	}

	return tea.Batch(run, a.state.spinner.Tick)
}

func (a *App) cancelGeneration() {
	if a.state.cancel != nil {
		a.state.cancel()
		a.state.cancel = nil
	}
	a.state.processing = false
}

func (a *App) saveConfig() tea.Cmd {
	cfg := *a.state.config
	return func() tea.Msg {
		if err := cfg.Save(); err != nil {
			return setupErrorMsg{err}
		}
		return setupCompleteMsg{}
	}
}

func (a *App) saveSettings() tea.Cmd {
	a.view = viewForm
	cfg := *a.state.config
	focus := a.focusField(a.state.focus)
	return tea.Batch(focus, func() tea.Msg {
		if err := cfg.Save(); err != nil {
			return saveErrorMsg{fmt.Errorf("save settings: %w", err)}
		}
		return nil
	})
}

type setupCompleteMsg struct{}
type setupErrorMsg struct{ error }
type saveErrorMsg struct{ error }

type stageMsg struct {
	id    int
	stage profile.Stage
}

type generateDoneMsg struct {
	id     int
	result *profile.Result
}

type generateErrorMsg struct {
	id int
	error
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}

	switch a.view {
	case viewForm:
		return a.renderForm()
	case viewSetup:
		return a.renderSetup()
	case viewProcessing:
		return a.renderProcessing()
	case viewResult:
		return a.renderResult()
	case viewError:
		return a.renderError()
	case viewSettings:
		return a.renderSettings()
	case viewHelp:
		return a.renderHelp()
	default:
		return a.renderForm()
	}
}
