package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sant0-9/cvgen/internal/config"
	"github.com/sant0-9/cvgen/internal/llm"
)

type fakeProvider struct {
	text  string
	err   error
	calls []*llm.CompletionRequest
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Complete(ctx context.Context, req *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}
	return &llm.CompletionResponse{Text: f.text, Model: req.Model}, nil
}

func newTestApp(t *testing.T, cfg *config.Config, fp *fakeProvider) *App {
	t.Helper()
	t.Setenv(config.EnvConfigDir, t.TempDir())

	a := NewApp(cfg)
	a.newProvider = func(*config.Config) (llm.Provider, error) { return fp, nil }
	a.copy = func(string) error { return nil }
	a.Init()
	a.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return a
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.APIKey = "test-key"
	return cfg
}

func press(a *App, k tea.KeyType) tea.Cmd {
	_, cmd := a.Update(tea.KeyMsg{Type: k})
	return cmd
}

func typeText(a *App, s string) tea.Cmd {
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return cmd
}

// runCmd executes cmd and every batched command and returns the messages
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// deliver runs cmd and feeds generation results back into the app
func deliver(a *App, cmd tea.Cmd) {
	for _, msg := range runCmd(cmd) {
		switch msg.(type) {
		case generateDoneMsg, generateErrorMsg, setupCompleteMsg, setupErrorMsg, saveErrorMsg:
			a.Update(msg)
		}
	}
}

func TestFocusCycle(t *testing.T) {
	a := newTestApp(t, testConfig(), &fakeProvider{})

	assert.Equal(t, viewForm, a.view)
	assert.Equal(t, 0, a.state.focus)
	assert.True(t, a.state.fields[0].Focused())

	for i := 1; i <= len(a.state.fields); i++ {
		press(a, tea.KeyTab)
		assert.Equal(t, i, a.state.focus)
	}
	assert.True(t, a.state.onButton())

	press(a, tea.KeyTab)
	assert.Equal(t, 0, a.state.focus)

	press(a, tea.KeyShiftTab)
	assert.True(t, a.state.onButton())

	press(a, tea.KeyUp)
	assert.Equal(t, len(a.state.fields)-1, a.state.focus)
	assert.True(t, a.state.fields[len(a.state.fields)-1].Focused())
}

func TestFormDefaults(t *testing.T) {
	a := newTestApp(t, testConfig(), &fakeProvider{})

	assert.Len(t, a.state.fields, 5)
	assert.Equal(t, "Software Engineer", a.state.role())
	assert.Equal(t, 30, a.state.fields[0].CharLimit)
	for _, f := range a.state.fields[1:] {
		assert.Equal(t, 60, f.CharLimit)
	}
}

func TestTypingRespectsCharLimit(t *testing.T) {
	a := newTestApp(t, testConfig(), &fakeProvider{})

	press(a, tea.KeyTab)
	typeText(a, strings.Repeat("x", 70))
	assert.Equal(t, strings.Repeat("x", 60), a.state.fields[1].Value())
}

func TestEnterAdvancesThenGenerates(t *testing.T) {
	fp := &fakeProvider{text: " I am a logical thinker. "}
	a := newTestApp(t, testConfig(), fp)

	press(a, tea.KeyEnter)
	typeText(a, "Logical mind")
	press(a, tea.KeyEnter)
	press(a, tea.KeyEnter)
	typeText(a, "Eager to learn")
	press(a, tea.KeyEnter)
	press(a, tea.KeyEnter)
	require.True(t, a.state.onButton())

	cmd := press(a, tea.KeyEnter)
	require.NotNil(t, cmd)
	assert.Equal(t, viewProcessing, a.view)
	assert.Contains(t, a.View(), "Generating")

	deliver(a, cmd)

	assert.Equal(t, viewResult, a.view)
	require.NotNil(t, a.state.result)
	assert.Equal(t, "I am a logical thinker.", a.state.result.Profile)
	assert.Contains(t, a.View(), "I am a logical thinker.")

	require.Len(t, fp.calls, 1)
	assert.Equal(t, "jumbo", fp.calls[0].Model)
	assert.Equal(t, 0.5, fp.calls[0].Temperature)
	assert.True(t, strings.HasSuffix(fp.calls[0].Prompt, "1. Logical mind\n3. Eager to learn\n\nProfile:"))
}

func TestGenerateError(t *testing.T) {
	fp := &fakeProvider{err: &llm.RequestFailedError{StatusCode: 401}}
	a := newTestApp(t, testConfig(), fp)

	a.focusField(len(a.state.fields))
	deliver(a, press(a, tea.KeyEnter))

	assert.Equal(t, viewError, a.view)
	assert.ErrorIs(t, a.state.generateError, llm.ErrRequestFailed)
	out := a.View()
	assert.Contains(t, out, "Request Failed")
	assert.Contains(t, out, "press [k] to enter a new key")

	press(a, tea.KeyEsc)
	assert.Equal(t, viewForm, a.view)
}

func TestCancelDropsLateResult(t *testing.T) {
	fp := &fakeProvider{text: "late"}
	a := newTestApp(t, testConfig(), fp)

	a.focusField(len(a.state.fields))
	cmd := press(a, tea.KeyEnter)
	require.Equal(t, viewProcessing, a.view)

	press(a, tea.KeyEsc)
	assert.Equal(t, viewForm, a.view)
	assert.False(t, a.state.processing)

	deliver(a, cmd)
	assert.Equal(t, viewForm, a.view)
	assert.Nil(t, a.state.result)
}

func TestResultActions(t *testing.T) {
	fp := &fakeProvider{text: "Profile text"}
	a := newTestApp(t, testConfig(), fp)

	var copied string
	a.copy = func(s string) error {
		copied = s
		return nil
	}

	a.focusField(len(a.state.fields))
	deliver(a, press(a, tea.KeyEnter))
	require.Equal(t, viewResult, a.view)

	typeText(a, "c")
	assert.Equal(t, "Profile text", copied)
	assert.True(t, a.state.copied)
	assert.Contains(t, a.View(), "Copied to clipboard")

	deliver(a, typeText(a, "r"))
	assert.Equal(t, viewResult, a.view)
	assert.Len(t, fp.calls, 2)

	typeText(a, "n")
	assert.Equal(t, viewForm, a.view)
	assert.Nil(t, a.state.result)
	assert.Equal(t, "Software Engineer", a.state.role())
	assert.Equal(t, 0, a.state.focus)
}

func TestCopyFailure(t *testing.T) {
	a := newTestApp(t, testConfig(), &fakeProvider{text: "x"})
	a.copy = func(string) error { return errors.New("no clipboard") }

	a.focusField(len(a.state.fields))
	deliver(a, press(a, tea.KeyEnter))
	typeText(a, "c")
	assert.False(t, a.state.copied)
}

func TestSetupFlow(t *testing.T) {
	cfg := config.DefaultConfig()
	a := newTestApp(t, cfg, &fakeProvider{})

	require.Equal(t, viewSetup, a.view)
	assert.Nil(t, a.state.generator)

	press(a, tea.KeyEnter)
	assert.Error(t, a.state.setupError)

	typeText(a, "my-secret-key")
	deliver(a, press(a, tea.KeyEnter))

	assert.Equal(t, viewForm, a.view)
	assert.NotNil(t, a.state.generator)
	assert.Equal(t, "my-secret-key", cfg.APIKey)

	saved, err := config.Load()
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "my-secret-key", saved.APIKey)
}

func TestSetupEscQuits(t *testing.T) {
	a := newTestApp(t, config.DefaultConfig(), &fakeProvider{})

	cmd := press(a, tea.KeyEsc)
	require.NotNil(t, cmd)
	assert.True(t, a.quitting)
	assert.Equal(t, "", a.View())
}

func TestSettingsChangeModel(t *testing.T) {
	cfg := testConfig()
	a := newTestApp(t, cfg, &fakeProvider{})

	press(a, tea.KeyCtrlS)
	require.Equal(t, viewSettings, a.view)
	assert.Equal(t, 2, a.state.settingsSelected, "jumbo is preselected")
	assert.Contains(t, a.View(), "(current)")

	press(a, tea.KeyUp)
	press(a, tea.KeyEnter)

	assert.Equal(t, viewForm, a.view)
	assert.Equal(t, "grande", cfg.Model)
	assert.Equal(t, "grande", a.state.generator.DefaultModel())
}

func TestSettingsSaveKeepsOverriddenKey(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.OverrideAPIKey("env-key")
	a := newTestApp(t, cfg, &fakeProvider{})

	// Focus on the button so saving returns no blink command
	a.focusField(len(a.state.fields))
	press(a, tea.KeyCtrlS)
	press(a, tea.KeyUp)
	runCmd(press(a, tea.KeyEnter))

	saved, err := config.Load()
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "grande", saved.Model)
	assert.Empty(t, saved.APIKey)
	assert.Equal(t, "env-key", cfg.APIKey)
}

func TestHelpView(t *testing.T) {
	a := newTestApp(t, testConfig(), &fakeProvider{})

	press(a, tea.KeyF1)
	assert.Equal(t, viewHelp, a.view)
	assert.Contains(t, a.View(), "Keyboard Shortcuts")

	press(a, tea.KeyEsc)
	assert.Equal(t, viewForm, a.view)
}

func TestProviderErrorOnInit(t *testing.T) {
	t.Setenv(config.EnvConfigDir, t.TempDir())

	a := NewApp(testConfig())
	a.newProvider = func(*config.Config) (llm.Provider, error) { return nil, llm.ErrInvalidModel }
	a.Init()
	a.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	assert.Equal(t, viewError, a.view)
	assert.Contains(t, a.View(), "Invalid model")
}

func TestPromptBudget(t *testing.T) {
	tokens, fits := promptBudget(strings.Repeat("a", 400), llm.MaxTokens)
	assert.Equal(t, 100, tokens)
	assert.True(t, fits)

	_, fits = promptBudget(strings.Repeat("a", 4*j1ContextTokens), llm.MaxTokens)
	assert.False(t, fits)
}
