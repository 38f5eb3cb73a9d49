package app

import (
	"fmt"

	"infralab/internal/gateway/config"
	"infralab/internal/llm"
	llmclient "infralab/internal/llmClient"
)

// newChatClient builds the configured provider.
func newChatClient(cfg config.LLMConfig) (llmclient.ChatClient, error) {
	switch cfg.Provider {
	case config.ProviderOpenRouter:
		return llmclient.NewOpenRouterClient(llmclient.OpenRouterConfig{
			APIKey:  cfg.OpenRouterAPIKey,
			BaseURL: cfg.OpenRouterBaseURL,
			Model:   cfg.OpenRouterModel,
			Site:    cfg.OpenRouterSite,
			Title:   cfg.OpenRouterTitle,
		})
	case config.ProviderGemini:
		return llmclient.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel, llmclient.DefaultTimeout)
	case config.ProviderFake:
		return llm.NewFakeClient(), nil
	default:
		return nil, &config.ConfigurationError{Key: "LLM_PROVIDER", Reason: fmt.Sprintf("unknown provider %q", cfg.Provider)}
	}
}
