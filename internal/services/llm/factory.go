package llm

import (
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/lectio/internal/common"
	"github.com/ternarybob/lectio/internal/interfaces"
)

// NewLLMService creates the appropriate LLM service implementation based on
// configuration. Gemini is always initialized because it supplies embeddings
// for both providers; with the Claude provider it also backs Embed calls.
func NewLLMService(cfg *common.Config, logger arbor.ILogger) (interfaces.LLMService, error) {
	provider := cfg.LLM.DefaultProvider
	if provider == "" {
		provider = common.LLMProviderGemini
	}

	logger.Info().Str("provider", string(provider)).Msg("Initializing LLM service")

	switch provider {
	case common.LLMProviderGemini:
		return NewGeminiService(&cfg.Gemini, cfg.RAG.MaxResponseTokens, logger)

	case common.LLMProviderClaude:
		// Gemini backs embeddings when Claude handles chat
		gemini, err := NewGeminiService(&cfg.Gemini, cfg.RAG.MaxResponseTokens, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create embedding provider for Claude service: %w", err)
		}
		return NewClaudeService(&cfg.Claude, cfg.RAG.MaxResponseTokens, gemini, logger)

	default:
		return nil, fmt.Errorf("unsupported LLM provider '%s': must be 'gemini' or 'claude'", provider)
	}
}
