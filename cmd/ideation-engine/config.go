// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/ideation-engine/internal/agent"
	"github.com/pdiddy/ideation-engine/internal/evidence"
	"github.com/pdiddy/ideation-engine/internal/ideation"
	"github.com/pdiddy/ideation-engine/internal/llm"
	"github.com/pdiddy/ideation-engine/internal/retrieve"
	"github.com/pdiddy/ideation-engine/internal/search"
	"github.com/pdiddy/ideation-engine/internal/selector"
	"github.com/pdiddy/ideation-engine/internal/summarize"
	"github.com/pdiddy/ideation-engine/pkg/types"
)

func bindFlag(key string, f *pflag.Flag) {
	if err := viper.BindPFlag(key, f); err != nil {
		panic(fmt.Sprintf("binding flag %s: %v", f.Name, err))
	}
}

// setDefaults registers every configuration key so environment variables
// resolve even when no config file exists.
func setDefaults() {
	d := types.DefaultConfig()
	viper.SetDefault("language", string(d.Language))
	viper.SetDefault("api_key", "")
	viper.SetDefault("llm.model", d.LLM.Model)
	viper.SetDefault("llm.base_url", "")
	viper.SetDefault("llm.temperature", d.LLM.Temperature)
	viper.SetDefault("llm.timeout", d.LLM.Timeout)
	viper.SetDefault("llm.max_retries", d.LLM.MaxRetries)
	viper.SetDefault("search.timeout", d.Search.Timeout)
	viper.SetDefault("search.user_agent", d.Search.UserAgent)
	viper.SetDefault("search.max_results", d.Search.MaxResults)
	viper.SetDefault("search.safesearch", string(d.Search.SafeSearch))
	viper.SetDefault("fetch.timeout", d.Fetch.Timeout)
	viper.SetDefault("fetch.user_agent", d.Fetch.UserAgent)
	viper.SetDefault("fetch.max_bytes", d.Fetch.MaxBytes)
	viper.SetDefault("fetch.concurrency", d.Fetch.Concurrency)
	viper.SetDefault("evidence.top_k", d.Evidence.TopK)
	viper.SetDefault("pipeline.concurrency", d.Pipeline.Concurrency)
}

// loadConfig decodes the merged flag, environment, file and default layers
// and validates the enumerated settings.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("%w: decoding configuration: %v", types.ErrConfiguration, err)
	}

	lang, err := types.ParseLanguage(string(cfg.Language))
	if err != nil {
		return cfg, err
	}
	cfg.Language = lang

	ss, err := types.ParseSafeSearch(string(cfg.Search.SafeSearch))
	if err != nil {
		return cfg, err
	}
	cfg.Search.SafeSearch = ss

	if cfg.Evidence.TopK < 1 {
		return cfg, fmt.Errorf("%w: evidence.top_k must be at least 1, got %d", types.ErrConfiguration, cfg.Evidence.TopK)
	}
	return cfg, nil
}

// newBackend resolves the provider credential and builds the model backend.
// The key comes from --api-key, then IDEATION_ENGINE_API_KEY or the config
// file, then the provider's file in the secrets directory.
func newBackend(cfg types.Config) (llm.Backend, error) {
	provider, err := llm.ProviderFor(cfg.LLM.Model)
	if err != nil {
		return nil, err
	}
	flagKey, _ := rootCmd.PersistentFlags().GetString("api-key")
	key, source := loadedSecrets.Resolve(flagKey, viper.GetString("api_key"), provider.SecretName())
	logger.Debug().Str("provider", string(provider)).Str("source", string(source)).Msg("resolved credential")

	ai := cfg.LLM
	ai.APIKey = key
	return llm.New(ai, logger)
}

// newEvidence wires search, selection, retrieval and summarization.
func newEvidence(cfg types.Config, backend llm.Backend) *evidence.Runner {
	return &evidence.Runner{
		Gatherer: &search.Gatherer{
			Backend: &search.DuckDuckGoBackend{},
			Config:  cfg.Search,
			Log:     logger.With().Str("stage", "search").Logger(),
		},
		Selector: &selector.Selector{
			LLM:         backend,
			Temperature: cfg.LLM.Temperature,
			Log:         logger.With().Str("stage", "select").Logger(),
		},
		Retriever: &retrieve.Retriever{
			Fetcher:     retrieve.NewHTTPFetcher(cfg.Fetch),
			Concurrency: cfg.Fetch.Concurrency,
			Log:         logger.With().Str("stage", "retrieve").Logger(),
		},
		Summarizer: &summarize.Summarizer{
			LLM:         backend,
			Temperature: cfg.LLM.Temperature,
			Splitter:    summarize.DefaultSplitter(),
			Log:         logger.With().Str("stage", "summarize").Logger(),
		},
		TopK: cfg.Evidence.TopK,
		Log:  logger.With().Str("stage", "evidence").Logger(),
	}
}

// newAgentRunner builds a pipeline runner that reports progress on stderr.
func newAgentRunner(cfg types.Config, backend llm.Backend, ev *evidence.Runner) *agent.Runner {
	return &agent.Runner{
		LLM:         backend,
		Evidence:    ev,
		Temperature: cfg.LLM.Temperature,
		Language:    cfg.Language,
		Concurrency: cfg.Pipeline.Concurrency,
		Log:         logger.With().Str("stage", "pipeline").Logger(),
		Out:         os.Stderr,
	}
}

// newAssistant loads configuration and builds the single-shot assistant
// used by problems, solutions and the canvases.
func newAssistant() (*ideation.Assistant, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	backend, err := newBackend(cfg)
	if err != nil {
		return nil, err
	}
	return &ideation.Assistant{
		LLM:         backend,
		Ranker:      newEvidence(cfg, backend),
		Temperature: cfg.LLM.Temperature,
		Language:    cfg.Language,
		Log:         logger.With().Str("stage", "ideation").Logger(),
	}, nil
}
