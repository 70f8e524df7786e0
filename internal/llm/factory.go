package llm

import (
	"fmt"
	"net/http"

	"github.com/sant0-9/cvgen/internal/config"
)

// NewProvider creates a provider from config
func NewProvider(cfg *config.Config) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("AI21 requires an API key (set api_key or %s)", config.EnvAPIKey)
	}
	if config.GetModel(cfg.Model) == nil {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidModel, cfg.Model)
	}

	p := NewJ1Provider(cfg.APIKey, cfg.Model)
	if cfg.BaseURL != "" {
		p.WithBaseURL(cfg.BaseURL)
	}
	if cfg.Timeout > 0 {
		p.WithHTTPClient(&http.Client{Timeout: cfg.Timeout})
	}
	return p, nil
}
