package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	huma "github.com/danielgtaylor/huma/v2"

	"github.com/sant0-9/cvgen/internal/config"
	"github.com/sant0-9/cvgen/internal/llm"
	"github.com/sant0-9/cvgen/internal/profile"
	"github.com/sant0-9/cvgen/internal/prompts"
)

// ProfileInput is the form as JSON
type ProfileInput struct {
	Role        string   `json:"role" maxLength:"30" example:"Software Engineer" doc:"Job role the profile is written for"`
	Highlights  []string `json:"highlights,omitempty" maxItems:"4" doc:"Up to 4 skills, experiences or ambitions (max 60 characters each). Empty entries are skipped but keep their number."`
	Model       string   `json:"model,omitempty" enum:"large,grande,jumbo" doc:"Jurassic-1 tier, defaults to the server's model"`
	Temperature *float64 `json:"temperature,omitempty" minimum:"0" maximum:"1" doc:"Sampling temperature, defaults to the server's temperature"`
}

type PostProfileRequest struct {
	Body ProfileInput
}

type PostProfileResponse struct {
	Body struct {
		Profile      string `json:"profile" doc:"Generated CV profile text"`
		Prompt       string `json:"prompt" doc:"Prompt sent to the model"`
		Model        string `json:"model" doc:"Model that produced the profile"`
		FinishReason string `json:"finishReason,omitempty" doc:"Why the model stopped"`
		RequestID    string `json:"requestId" doc:"Identifier for this generation, also found in the server log"`
	}
}

type PostPromptRequest struct {
	Body ProfileInput
}

type PostPromptResponse struct {
	Body struct {
		Prompt     string   `json:"prompt" doc:"Prompt that would be sent to the model"`
		Highlights []string `json:"highlights" doc:"Numbered highlight lines included in the prompt"`
	}
}

type GetModelsRequest struct{}

type GetModelsResponse struct {
	Body struct {
		Models  []config.ModelInfo `json:"models" doc:"Available models"`
		Default string             `json:"default" doc:"Model used when none is given"`
	}
}

type HealthRequest struct{}

type HealthResponse struct {
	Body struct {
		Status string `json:"status" example:"ok"`
	}
}

func (in ProfileInput) toRequest(d Defaults) profile.Request {
	req := profile.Request{
		Role:        in.Role,
		Highlights:  in.Highlights,
		Model:       in.Model,
		Temperature: d.Temperature,
	}
	if req.Model == "" {
		req.Model = d.Model
	}
	if in.Temperature != nil {
		req.Temperature = *in.Temperature
	}
	return req
}

// RegisterProfileRoutes registers the JSON API routes
func RegisterProfileRoutes(api huma.API, gen *profile.Generator, d Defaults) error {
	if gen == nil {
		return fmt.Errorf("provided generator is nil")
	}

	postProfileOp := huma.Operation{
		OperationID: "postProfile",
		Method:      http.MethodPost,
		Path:        "/v1/profiles",
		Summary:     "Generate a CV profile from a role and highlights",
		Tags:        []string{"profiles"},
	}
	postPromptOp := huma.Operation{
		OperationID: "postPrompt",
		Method:      http.MethodPost,
		Path:        "/v1/prompts",
		Summary:     "Preview the prompt for a role and highlights without calling the model",
		Tags:        []string{"profiles"},
	}
	getModelsOp := huma.Operation{
		OperationID: "getModels",
		Method:      http.MethodGet,
		Path:        "/v1/models",
		Summary:     "List available models",
		Tags:        []string{"models"},
	}
	healthOp := huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/healthz",
		Summary:     "Liveness check",
		Tags:        []string{"admin"},
	}

	huma.Register(api, postProfileOp, func(ctx context.Context, input *PostProfileRequest) (*PostProfileResponse, error) {
		res, err := gen.Generate(ctx, input.Body.toRequest(d))
		if err != nil {
			return nil, apiError(err)
		}
		resp := &PostProfileResponse{}
		resp.Body.Profile = res.Profile
		resp.Body.Prompt = res.Prompt
		resp.Body.Model = res.Model
		resp.Body.FinishReason = res.FinishReason
		resp.Body.RequestID = res.RequestID
		return resp, nil
	})

	huma.Register(api, postPromptOp, func(ctx context.Context, input *PostPromptRequest) (*PostPromptResponse, error) {
		prompt, err := profile.Prompt(input.Body.toRequest(d))
		if err != nil {
			return nil, apiError(err)
		}
		resp := &PostPromptResponse{}
		resp.Body.Prompt = prompt
		resp.Body.Highlights = prompts.NumberedHighlights(input.Body.Highlights)
		if resp.Body.Highlights == nil {
			resp.Body.Highlights = []string{}
		}
		return resp, nil
	})

	huma.Register(api, getModelsOp, func(ctx context.Context, input *GetModelsRequest) (*GetModelsResponse, error) {
		resp := &GetModelsResponse{}
		resp.Body.Models = config.Models
		resp.Body.Default = d.Model
		return resp, nil
	})

	huma.Register(api, healthOp, func(ctx context.Context, input *HealthRequest) (*HealthResponse, error) {
		resp := &HealthResponse{}
		resp.Body.Status = "ok"
		return resp, nil
	})

	return nil
}

// statusFor maps a generation error to the HTTP status shown to clients
func statusFor(err error) int {
	switch {
	case errors.Is(err, profile.ErrInvalidInput), errors.Is(err, llm.ErrInvalidModel):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, llm.ErrRequestFailed), errors.Is(err, llm.ErrMalformedResponse), errors.Is(err, llm.ErrTransport):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func apiError(err error) error {
	return huma.NewError(statusFor(err), userMessage(err), err)
}

// userMessage describes an error in terms of what the user can do about it
func userMessage(err error) string {
	var rf *llm.RequestFailedError
	switch {
	case errors.Is(err, profile.ErrInvalidInput):
		return "Invalid input: " + err.Error()
	case errors.Is(err, llm.ErrInvalidModel):
		return "Invalid model: must be one of large, grande or jumbo"
	case errors.As(err, &rf):
		return fmt.Sprintf("Request Failed: the completion API answered with status %d", rf.StatusCode)
	case errors.Is(err, llm.ErrMalformedResponse):
		return "Malformed Response: the completion API returned no profile text"
	case errors.Is(err, context.DeadlineExceeded):
		return "The completion API did not answer in time"
	case errors.Is(err, llm.ErrTransport):
		return "Cannot reach the completion API"
	default:
		return "Unexpected error while generating the profile"
	}
}
