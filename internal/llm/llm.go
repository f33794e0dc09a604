// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package llm is the language-model capability used by every stage that
// writes prompts: a Backend interface, provider implementations, a model
// registry, and a retrying wrapper with per-call timeouts.
package llm

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/ideation-engine/pkg/types"
)

// Backend abstracts the Generative AI API so tests can supply a mock.
// Implementations return the model's text or an error wrapping
// types.ErrService.
type Backend interface {
	Generate(ctx context.Context, prompt string, temperature float64) (string, error)
}

// Provider identifies an LLM vendor API.
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderClaude Provider = "claude"
	ProviderOpenAI Provider = "openai"
)

// supportedModels maps every accepted model identifier to its provider.
var supportedModels = map[string]Provider{
	"gemini-1.5-pro-latest": ProviderGemini,
	"gemini-1.5-flash":      ProviderGemini,
	"gemini-2.0-flash":      ProviderGemini,
	"claude-sonnet-4-5":     ProviderClaude,
	"claude-haiku-4-5":      ProviderClaude,
	"gpt-4o":                ProviderOpenAI,
	"gpt-4o-mini":           ProviderOpenAI,
}

// SupportedModels returns the accepted model identifiers, sorted.
func SupportedModels() []string {
	out := make([]string, 0, len(supportedModels))
	for m := range supportedModels {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// ProviderFor returns the provider serving model.
func ProviderFor(model string) (Provider, error) {
	p, ok := supportedModels[strings.TrimSpace(model)]
	if !ok {
		return "", fmt.Errorf("%w: unsupported model %q (supported: %s)", types.ErrConfiguration, model, strings.Join(SupportedModels(), ", "))
	}
	return p, nil
}

// SecretName returns the .secrets/ file name holding the provider's API key.
func (p Provider) SecretName() string {
	switch p {
	case ProviderClaude:
		return "anthropic-api-key"
	case ProviderOpenAI:
		return "openai-api-key"
	default:
		return "gemini-api-key"
	}
}

// New builds the backend for cfg.Model, wrapped with retries and a per-call
// timeout. A missing API key or unknown model fails before any network call.
func New(cfg types.AIConfig, log zerolog.Logger) (Backend, error) {
	provider, err := ProviderFor(cfg.Model)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%w: no API key for %s (set --api-key or .secrets/%s)", types.ErrConfiguration, provider, provider.SecretName())
	}
	if cfg.Temperature < 0 || cfg.Temperature > 1 {
		return nil, fmt.Errorf("%w: temperature %.2f outside [0,1]", types.ErrConfiguration, cfg.Temperature)
	}
	if cfg.MaxRetries < 0 {
		return nil, fmt.Errorf("%w: max_retries %d must not be negative", types.ErrConfiguration, cfg.MaxRetries)
	}

	var backend Backend
	switch provider {
	case ProviderGemini:
		backend = &GeminiBackend{APIKey: cfg.APIKey, Model: cfg.Model}
	case ProviderClaude:
		backend = &ClaudeBackend{APIKey: cfg.APIKey, Model: cfg.Model}
	case ProviderOpenAI:
		backend = NewOpenAIBackend(cfg.APIKey, cfg.Model, cfg.BaseURL)
	}

	return &Retrying{
		Backend:    backend,
		MaxRetries: cfg.MaxRetries,
		Timeout:    cfg.Timeout,
		Log:        log.With().Str("provider", string(provider)).Str("model", cfg.Model).Logger(),
	}, nil
}

// backoffBase controls the base duration for exponential backoff between
// retries. Tests override this to avoid real sleeps.
var backoffBase = time.Second

// Retrying retries failed calls of the wrapped backend with exponential
// backoff and bounds every attempt with Timeout.
//
// Configuration errors and cancellation of the caller's context are never
// retried. MaxRetries of 0 means a single attempt.
type Retrying struct {
	Backend    Backend
	MaxRetries int
	Timeout    time.Duration
	Log        zerolog.Logger
}

// Generate calls the wrapped backend until it succeeds or retries run out.
func (r *Retrying) Generate(ctx context.Context, prompt string, temperature float64) (string, error) {
	retries := max(r.MaxRetries, 0)
	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * backoffBase
			r.Log.Warn().Err(lastErr).Int("attempt", attempt).Dur("backoff", backoff).Msg("retrying model call")
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		text, err := r.once(ctx, prompt, temperature)
		if err == nil {
			return text, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if errors.Is(err, types.ErrConfiguration) {
			return "", err
		}
		lastErr = err
	}
	if retries == 0 {
		return "", lastErr
	}
	return "", fmt.Errorf("after %d retries: %w", retries, lastErr)
}

func (r *Retrying) once(ctx context.Context, prompt string, temperature float64) (string, error) {
	callCtx := ctx
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}
	text, err := r.Backend.Generate(callCtx, prompt, temperature)
	if err != nil {
		if !errors.Is(err, types.ErrService) && !errors.Is(err, types.ErrConfiguration) {
			err = fmt.Errorf("%w: %v", types.ErrService, err)
		}
		return "", err
	}
	return text, nil
}

// nonEmpty returns ErrService when the model produced no text.
func nonEmpty(provider Provider, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: %s returned empty content", types.ErrService, provider)
	}
	return text, nil
}
