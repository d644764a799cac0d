package llm

import (
	"fmt"
	"os"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "deepseek", "groq", "openai", "anthropic", "gemini", "mock"
	Provider string

	Anthropic AnthropicConfig
	OpenAI    OpenAIConfig
	DeepSeek  CompatConfig
	Groq      CompatConfig
	Gemini    GeminiConfig
	Retry     RetryConfig

	// Timeout is the maximum duration for a single LLM request
	// (including retries). Default: 90s.
	Timeout time.Duration
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey  string
	Model   string // Default: "claude-haiku"
	BaseURL string // Optional. Proxy or gateway in front of the API.
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional. Override for OpenAI-compatible APIs.

	// PlainText disables JSON schema response formats for servers that do
	// not implement them. Responses are then returned as text.
	PlainText bool
}

// CompatConfig configures a hosted OpenAI-compatible API with its own
// default endpoint and model.
type CompatConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey  string
	Model   string // Default: "gemini-flash"
	BaseURL string // Optional. Proxy or gateway in front of the API.
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "deepseek",
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		DeepSeek: CompatConfig{
			Model:   "deepseek-chat",
			BaseURL: defaultDeepSeekBaseURL,
		},
		Groq: CompatConfig{
			Model:   "llama-3.1-8b-instant",
			BaseURL: defaultGroqBaseURL,
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 90 * time.Second,
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values. Vendor variables such as DEEPSEEK_API_KEY
// are honoured when the MATHGEN_ form is absent.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if p := os.Getenv("MATHGEN_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}
	if t := os.Getenv("MATHGEN_LLM_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil {
			cfg.Timeout = d
		}
	}

	cfg.DeepSeek.APIKey = firstEnv("MATHGEN_DEEPSEEK_API_KEY", "DEEPSEEK_API_KEY")
	if m := os.Getenv("MATHGEN_DEEPSEEK_MODEL"); m != "" {
		cfg.DeepSeek.Model = m
	}
	if u := os.Getenv("MATHGEN_DEEPSEEK_BASE_URL"); u != "" {
		cfg.DeepSeek.BaseURL = u
	}

	cfg.Groq.APIKey = firstEnv("MATHGEN_GROQ_API_KEY", "GROQ_API_KEY")
	if m := os.Getenv("MATHGEN_GROQ_MODEL"); m != "" {
		cfg.Groq.Model = m
	}

	cfg.Anthropic.APIKey = firstEnv("MATHGEN_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY")
	if m := os.Getenv("MATHGEN_ANTHROPIC_MODEL"); m != "" {
		cfg.Anthropic.Model = m
	}
	cfg.Anthropic.BaseURL = os.Getenv("MATHGEN_ANTHROPIC_BASE_URL")

	cfg.OpenAI.APIKey = firstEnv("MATHGEN_OPENAI_API_KEY", "OPENAI_API_KEY")
	if m := os.Getenv("MATHGEN_OPENAI_MODEL"); m != "" {
		cfg.OpenAI.Model = m
	}
	if u := os.Getenv("MATHGEN_OPENAI_BASE_URL"); u != "" {
		cfg.OpenAI.BaseURL = u
	}
	if os.Getenv("MATHGEN_OPENAI_PLAIN_TEXT") == "true" {
		cfg.OpenAI.PlainText = true
	}

	cfg.Gemini.APIKey = firstEnv("MATHGEN_GEMINI_API_KEY", "GEMINI_API_KEY")
	if m := os.Getenv("MATHGEN_GEMINI_MODEL"); m != "" {
		cfg.Gemini.Model = m
	}
	cfg.Gemini.BaseURL = os.Getenv("MATHGEN_GEMINI_BASE_URL")

	return cfg
}

// DiscoverConfig checks vendor API key env vars in priority order
// (DeepSeek → Groq → OpenAI → Anthropic → Gemini) and returns a Config for
// the first provider whose key is found. Returns (Config{}, false) if none
// found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	if k := os.Getenv("DEEPSEEK_API_KEY"); k != "" {
		cfg.Provider = "deepseek"
		cfg.DeepSeek.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("GROQ_API_KEY"); k != "" {
		cfg.Provider = "groq"
		cfg.Groq.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = k
		return cfg, true
	}

	return Config{}, false
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "deepseek":
		if c.DeepSeek.APIKey == "" {
			return fmt.Errorf("MATHGEN_DEEPSEEK_API_KEY or DEEPSEEK_API_KEY is required for the deepseek provider")
		}
	case "groq":
		if c.Groq.APIKey == "" {
			return fmt.Errorf("MATHGEN_GROQ_API_KEY or GROQ_API_KEY is required for the groq provider")
		}
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("MATHGEN_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("MATHGEN_OPENAI_API_KEY is required for the openai provider")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("MATHGEN_GEMINI_API_KEY is required for the gemini provider")
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
