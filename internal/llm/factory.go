package llm

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/abhisek/mathgen/internal/store"
)

// ErrNotConfigured is returned by NewProviderFromEnv when no provider is
// selected and no vendor API key is present.
var ErrNotConfigured = errors.New("no LLM provider configured: set MATHGEN_LLM_PROVIDER or a vendor API key such as DEEPSEEK_API_KEY")

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with retry and logging middleware.
// eventRepo may be nil.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, logger *zap.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case "deepseek":
		base, err = NewDeepSeekProvider(cfg.DeepSeek)
	case "groq":
		base, err = NewGroqProvider(cfg.Groq)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller → retry → logging → base
	logged := WithLogging(base, cfg.Provider, eventRepo, logger)
	retried := WithRetry(logged, cfg.Retry)

	return retried, nil
}

// ResolveConfig picks the provider configuration: an explicit
// MATHGEN_LLM_PROVIDER wins, then the first vendor key found.
func ResolveConfig() (Config, error) {
	if os.Getenv("MATHGEN_LLM_PROVIDER") != "" {
		return ConfigFromEnv(), nil
	}
	if cfg, ok := DiscoverConfig(); ok {
		env := ConfigFromEnv()
		env.Provider = cfg.Provider
		return env, nil
	}
	return Config{}, ErrNotConfigured
}

// NewProviderFromEnv resolves configuration from the environment and builds
// the decorated provider.
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo, logger *zap.Logger) (Provider, Config, error) {
	cfg, err := ResolveConfig()
	if err != nil {
		return nil, Config{}, err
	}
	p, err := NewProvider(ctx, cfg, eventRepo, logger)
	if err != nil {
		return nil, cfg, err
	}
	return p, cfg, nil
}
