package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderNone      = "none"
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderGemini    = "gemini"
	ProviderMock      = "mock"
	// ProviderAuto selects the first provider whose standard API key
	// variable is set, or none.
	ProviderAuto = "auto"
)

// Config holds all LLM provider configuration.
type Config struct {
	Provider string

	Anthropic AnthropicConfig
	OpenAI    OpenAIConfig
	Gemini    GeminiConfig
	Retry     RetryConfig

	// Timeout bounds a single Generate call including retries.
	Timeout time.Duration
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // OpenAI-compatible endpoints
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with the LLM layer disabled and
// per-provider defaults filled in.
func DefaultConfig() Config {
	return Config{
		Provider:  ProviderNone,
		Anthropic: AnthropicConfig{Model: "claude-haiku"},
		OpenAI:    OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:    GeminiConfig{Model: "gemini-flash"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// Resolve returns cfg with ProviderAuto replaced by a concrete provider.
// Standard API key variables are probed in order Gemini, OpenAI, Anthropic;
// keys already present in cfg take precedence.
func (c Config) Resolve() Config {
	if c.Provider != ProviderAuto {
		return c
	}
	pick := func(name string, key *string, env string) bool {
		if *key == "" {
			*key = os.Getenv(env)
		}
		if *key != "" {
			c.Provider = name
			return true
		}
		return false
	}
	switch {
	case pick(ProviderGemini, &c.Gemini.APIKey, "GEMINI_API_KEY"):
	case pick(ProviderOpenAI, &c.OpenAI.APIKey, "OPENAI_API_KEY"):
	case pick(ProviderAnthropic, &c.Anthropic.APIKey, "ANTHROPIC_API_KEY"):
	default:
		c.Provider = ProviderNone
	}
	return c
}

// Enabled reports whether a provider is configured.
func (c Config) Enabled() bool {
	return c.Provider != "" && c.Provider != ProviderNone
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderAnthropic:
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("llm.anthropic.api_key is required for the anthropic provider")
		}
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("llm.openai.api_key is required for the openai provider")
		}
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("llm.gemini.api_key is required for the gemini provider")
		}
	case ProviderMock, ProviderNone, ProviderAuto, "":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
