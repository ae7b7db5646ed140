// Package ai provides factory functions for creating AI service adapters.
package ai

import (
	"fmt"

	ollamaembed "github.com/finsight-labs/finsight-cli/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/finsight-labs/finsight-cli/internal/adapters/driven/embedding/openai"
	geminillm "github.com/finsight-labs/finsight-cli/internal/adapters/driven/llm/gemini"
	ollamallm "github.com/finsight-labs/finsight-cli/internal/adapters/driven/llm/ollama"
	openaillm "github.com/finsight-labs/finsight-cli/internal/adapters/driven/llm/openai"
	"github.com/finsight-labs/finsight-cli/internal/config"
	"github.com/finsight-labs/finsight-cli/internal/core/ports/driven"
)

// CreateEmbeddingService creates the embedding service selected by the
// configuration.
func CreateEmbeddingService(cfg config.Embedding) (driven.EmbeddingService, error) {
	switch cfg.Provider {
	case "ollama":
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		}), nil

	case "openai":
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})

	case "gemini":
		return nil, fmt.Errorf("gemini is not supported for embeddings, use ollama or openai")

	default:
		return nil, fmt.Errorf("unsupported embedding provider: %q", cfg.Provider)
	}
}

// CreateLLMService creates the LLM service selected by the configuration.
func CreateLLMService(cfg config.LLM) (driven.LLMService, error) {
	switch cfg.Provider {
	case "ollama":
		return ollamallm.NewLLMService(ollamallm.Config{
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		}), nil

	case "openai":
		return openaillm.NewLLMService(openaillm.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})

	case "gemini":
		return geminillm.NewLLMService(geminillm.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %q", cfg.Provider)
	}
}
