package llm

import "fmt"

const (
	defaultDeepSeekBaseURL = "https://api.deepseek.com/v1"
	defaultGroqBaseURL     = "https://api.groq.com/openai/v1"
)

// NewDeepSeekProvider creates a provider targeting the DeepSeek API.
// DeepSeek is OpenAI-compatible but has no JSON schema response format,
// so requests run in plain-text mode.
func NewDeepSeekProvider(cfg CompatConfig) (*OpenAIProvider, error) {
	return newCompatProvider("deepseek", cfg, defaultDeepSeekBaseURL)
}

// NewGroqProvider creates a provider targeting Groq's OpenAI-compatible API.
func NewGroqProvider(cfg CompatConfig) (*OpenAIProvider, error) {
	return newCompatProvider("groq", cfg, defaultGroqBaseURL)
}

func newCompatProvider(name string, cfg CompatConfig, defaultBaseURL string) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s API key is required", name)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return NewOpenAIProvider(OpenAIConfig{
		APIKey:    cfg.APIKey,
		Model:     cfg.Model,
		BaseURL:   baseURL,
		PlainText: true,
	})
}
