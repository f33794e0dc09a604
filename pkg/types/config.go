package types

import "time"

// DefaultBrowserUserAgent is sent on page fetches and search requests.
// Many sites reject clients that do not identify as a browser.
const DefaultBrowserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout bounds each individual request.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// SearchConfig holds settings for the evidence gatherer.
type SearchConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// MaxResults caps the number of results kept from the engine (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`

	// SafeSearch is the default filtering level for queries that do not set one.
	SafeSearch SafeSearch `json:"safesearch" yaml:"safesearch" mapstructure:"safesearch"`
}

// FetchConfig holds settings for the content retriever.
type FetchConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// MaxBytes caps how much of a response body is read (default 2 MiB).
	MaxBytes int64 `json:"max_bytes" yaml:"max_bytes" mapstructure:"max_bytes"`

	// Concurrency is the number of pages fetched at once (default 4).
	Concurrency int `json:"concurrency" yaml:"concurrency" mapstructure:"concurrency"`
}

// AIConfig holds shared settings for stages that call a Generative AI API.
type AIConfig struct {
	// Model is the AI model identifier (e.g. "gemini-1.5-pro-latest").
	Model string `json:"model" yaml:"model" mapstructure:"model"`

	// APIKey is the authentication key for the AI API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// BaseURL overrides the provider endpoint (OpenAI-compatible gateways).
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty" mapstructure:"base_url"`

	// Temperature is the sampling temperature in [0,1].
	Temperature float64 `json:"temperature" yaml:"temperature" mapstructure:"temperature"`

	// Timeout bounds each model call (default 60s).
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// MaxRetries is the number of retry attempts for failed API calls (default 2).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// EvidenceConfig holds settings for the evidence sub-pipeline.
type EvidenceConfig struct {
	// TopK is how many URLs the relevance selector keeps (default 3).
	TopK int `json:"top_k" yaml:"top_k" mapstructure:"top_k"`
}

// PipelineConfig holds settings for the agent pipeline runner.
type PipelineConfig struct {
	// Concurrency bounds how many independent tasks run at once.
	// 1 (the default) executes strictly sequentially.
	Concurrency int `json:"concurrency" yaml:"concurrency" mapstructure:"concurrency"`
}

// Config groups all stage configurations.
type Config struct {
	Language Language       `json:"language" yaml:"language" mapstructure:"language"`
	LLM      AIConfig       `json:"llm" yaml:"llm" mapstructure:"llm"`
	Search   SearchConfig   `json:"search" yaml:"search" mapstructure:"search"`
	Fetch    FetchConfig    `json:"fetch" yaml:"fetch" mapstructure:"fetch"`
	Evidence EvidenceConfig `json:"evidence" yaml:"evidence" mapstructure:"evidence"`
	Pipeline PipelineConfig `json:"pipeline" yaml:"pipeline" mapstructure:"pipeline"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Language: LanguageFrench,
		LLM: AIConfig{
			Model:       "gemini-1.5-pro-latest",
			Temperature: 0.5,
			Timeout:     60 * time.Second,
			MaxRetries:  2,
		},
		Search: SearchConfig{
			HTTPConfig: HTTPConfig{Timeout: 30 * time.Second, UserAgent: DefaultBrowserUserAgent},
			MaxResults: 20,
			SafeSearch: SafeSearchModerate,
		},
		Fetch: FetchConfig{
			HTTPConfig:  HTTPConfig{Timeout: 30 * time.Second, UserAgent: DefaultBrowserUserAgent},
			MaxBytes:    2 << 20,
			Concurrency: 4,
		},
		Evidence: EvidenceConfig{TopK: 3},
		Pipeline: PipelineConfig{Concurrency: 1},
	}
}
