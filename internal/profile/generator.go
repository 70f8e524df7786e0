package profile

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/sant0-9/cvgen/internal/config"
	"github.com/sant0-9/cvgen/internal/llm"
	"github.com/sant0-9/cvgen/internal/prompts"
)

// Form limits
const (
	MaxRoleLength      = 30
	MaxHighlightLength = 60
)

// ErrInvalidInput matches any *ValidationError.
var ErrInvalidInput = errors.New("invalid input")

// ValidationError reports a form field outside its bounds.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Stage represents a generation stage
type Stage int

const (
	StageBuilding Stage = iota
	StageRequesting
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageBuilding:
		return "Building prompt"
	case StageRequesting:
		return "Requesting completion"
	case StageDone:
		return "Done"
	default:
		return "Unknown"
	}
}

// Request holds everything one Generate action needs.
type Request struct {
	Role        string
	Highlights  []string
	Model       string
	Temperature float64

	// OnProgress, if set, is called as each stage starts
	OnProgress func(Stage)
}

// Result contains generator output
type Result struct {
	RequestID    string
	Profile      string
	Prompt       string
	Model        string
	FinishReason string
	Elapsed      time.Duration
}

// Generator turns a role and highlights into a CV profile
type Generator struct {
	provider     llm.Provider
	defaultModel string
}

// NewGenerator creates a generator. defaultModel is used when a request
// leaves Model empty.
func NewGenerator(provider llm.Provider, defaultModel string) *Generator {
	return &Generator{
		provider:     provider,
		defaultModel: defaultModel,
	}
}

func (g *Generator) DefaultModel() string {
	return g.defaultModel
}

// Validate checks the request against the form limits. Content is not
// inspected.
func Validate(req Request) error {
	if n := utf8.RuneCountInString(req.Role); n > MaxRoleLength {
		return &ValidationError{Field: "role", Message: fmt.Sprintf("%d characters, at most %d allowed", n, MaxRoleLength)}
	}
	if len(req.Highlights) > prompts.MaxHighlights {
		return &ValidationError{Field: "highlights", Message: fmt.Sprintf("%d given, at most %d allowed", len(req.Highlights), prompts.MaxHighlights)}
	}
	for i, h := range req.Highlights {
		if n := utf8.RuneCountInString(h); n > MaxHighlightLength {
			return &ValidationError{
				Field:   fmt.Sprintf("highlights[%d]", i),
				Message: fmt.Sprintf("%d characters, at most %d allowed", n, MaxHighlightLength),
			}
		}
	}
	if math.IsNaN(req.Temperature) || req.Temperature < 0 || req.Temperature > 1 {
		return &ValidationError{Field: "temperature", Message: fmt.Sprintf("%v out of range [0,1]", req.Temperature)}
	}
	return nil
}

// Prompt validates the request and returns the prompt it would send.
func Prompt(req Request) (string, error) {
	if err := Validate(req); err != nil {
		return "", err
	}
	return prompts.BuildProfilePrompt(req.Role, req.Highlights), nil
}

// Generate builds the prompt and sends it to the provider.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	id := uuid.NewString()
	start := time.Now()

	progress := func(s Stage) {
		if req.OnProgress != nil {
			req.OnProgress(s)
		}
	}

	model := req.Model
	if model == "" {
		model = g.defaultModel
	}

	if config.GetModel(model) == nil {
		err := fmt.Errorf("%w: got %q", llm.ErrInvalidModel, model)
		log.Printf("[Generator] %s rejected: %v", id, err)
		return nil, err
	}

	progress(StageBuilding)
	prompt, err := Prompt(req)
	if err != nil {
		log.Printf("[Generator] %s rejected: %v", id, err)
		return nil, err
	}

	progress(StageRequesting)
	log.Printf("[Generator] %s requesting %s profile for role %q (%d highlights, temperature %.2f)",
		id, model, req.Role, countNonEmpty(req.Highlights), req.Temperature)

	resp, err := g.provider.Complete(ctx, llm.NewRequest(model, prompt, req.Temperature))
	if err != nil {
		log.Printf("[Generator] %s failed after %s: %v", id, time.Since(start).Round(time.Millisecond), err)
		return nil, fmt.Errorf("generate profile: %w", err)
	}

	progress(StageDone)
	elapsed := time.Since(start)
	log.Printf("[Generator] %s completed in %s", id, elapsed.Round(time.Millisecond))

	return &Result{
		RequestID:    id,
		Profile:      strings.TrimSpace(resp.Text),
		Prompt:       prompt,
		Model:        resp.Model,
		FinishReason: resp.FinishReason,
		Elapsed:      elapsed,
	}, nil
}

func countNonEmpty(values []string) int {
	n := 0
	for _, v := range values {
		if v != "" {
			n++
		}
	}
	return n
}
