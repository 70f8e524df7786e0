package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sant0-9/cvgen/internal/config"
	"github.com/sant0-9/cvgen/internal/prompts"
)

// Fixed sampling parameters sent with every request. MaxTokens is the
// completion length limit.
const (
	j1NumResults = 1
	MaxTokens    = 200
	j1TopKReturn = 0
	j1TopP       = 0.9

	maxErrorBody = 512
)

// J1Provider talks to the AI21 Studio Jurassic-1 completion endpoints.
type J1Provider struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewJ1Provider returns a provider with no request timeout. Callers that
// need bounded latency pass a deadline on the context or use
// WithHTTPClient.
func NewJ1Provider(apiKey, model string) *J1Provider {
	if model == "" {
		model = config.DefaultModel
	}
	return &J1Provider{
		apiKey:     apiKey,
		model:      model,
		baseURL:    config.DefaultBaseURL,
		httpClient: &http.Client{},
	}
}

// WithBaseURL points the provider at another host, e.g. a proxy or test server.
func (p *J1Provider) WithBaseURL(baseURL string) *J1Provider {
	p.baseURL = strings.TrimRight(baseURL, "/")
	return p
}

func (p *J1Provider) WithHTTPClient(c *http.Client) *J1Provider {
	p.httpClient = c
	return p
}

func (p *J1Provider) Name() string {
	return "ai21"
}

// Endpoint returns the completion URL for a model.
func (p *J1Provider) Endpoint(model string) string {
	return fmt.Sprintf("%s/j1-%s/complete", p.baseURL, model)
}

type j1Request struct {
	Prompt        string   `json:"prompt"`
	NumResults    int      `json:"numResults"`
	MaxTokens     int      `json:"maxTokens"`
	Temperature   float64  `json:"temperature"`
	TopKReturn    int      `json:"topKReturn"`
	TopP          float64  `json:"topP"`
	StopSequences []string `json:"stopSequences"`
}

type j1Response struct {
	Completions []struct {
		Data *struct {
			Text *string `json:"text"`
		} `json:"data"`
		FinishReason *struct {
			Reason string `json:"reason"`
		} `json:"finishReason"`
	} `json:"completions"`
}

func (p *J1Provider) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	model := req.Model
	if model == "" {
		model = p.model
	}
	if config.GetModel(model) == nil {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidModel, model)
	}

	apiReq := j1Request{
		Prompt:        req.Prompt,
		NumResults:    j1NumResults,
		MaxTokens:     MaxTokens,
		Temperature:   req.Temperature,
		TopKReturn:    j1TopKReturn,
		TopP:          j1TopP,
		StopSequences: []string{prompts.StopSequence},
	}

	body, err := json.Marshal(apiReq)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.Endpoint(model), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	// AI21 expects the raw key, without a Bearer prefix
	httpReq.Header.Set("Authorization", p.apiKey)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &RequestFailedError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(errBody)),
		}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	var apiResp j1Response
	if err := json.Unmarshal(raw, &apiResp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if len(apiResp.Completions) == 0 {
		return nil, fmt.Errorf("%w: no completions", ErrMalformedResponse)
	}
	first := apiResp.Completions[0]
	if first.Data == nil || first.Data.Text == nil {
		return nil, fmt.Errorf("%w: missing completions[0].data.text", ErrMalformedResponse)
	}

	out := &CompletionResponse{
		Text:  *first.Data.Text,
		Model: model,
		Raw:   json.RawMessage(raw),
	}
	if first.FinishReason != nil {
		out.FinishReason = first.FinishReason.Reason
	}
	return out, nil
}
